package web

import (
	"context"
	"travelbook/pkg/client"
	"travelbook/pkg/model"
)

type ListState string

const (
	StateLoading ListState = "loading"
	StateError   ListState = "error"
	StateLoaded  ListState = "loaded"
)

type ListView struct {
	State    ListState
	Bookings []model.Booking
	Err      error
}

func NewListView() *ListView {
	return &ListView{State: StateLoading}
}

// Load fetches the full record set. A failure replaces the list; there is
// no retry.
func (v *ListView) Load(ctx context.Context, api client.BookingAPI) {
	v.State = StateLoading
	v.Bookings = nil
	v.Err = nil

	bookings, err := api.GetBookings(ctx)
	if err != nil {
		v.State = StateError
		v.Err = err
		return
	}

	v.Bookings = bookings
	v.State = StateLoaded
}

func (v *ListView) Loading() bool { return v.State == StateLoading }
func (v *ListView) Failed() bool  { return v.State == StateError }
