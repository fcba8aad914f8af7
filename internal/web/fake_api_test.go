package web

import (
	"context"
	"fmt"
	"travelbook/pkg/client"
	apperrors "travelbook/pkg/errors"
	"travelbook/pkg/model"
)

// fakeAPI is an in-memory BookingAPI. A non-nil err fails every call.
type fakeAPI struct {
	bookings []model.Booking
	nextID   int
	err      error

	calls   int
	updates []model.BookingUpdate
}

func newFakeAPI(seed ...model.Booking) *fakeAPI {
	f := &fakeAPI{}
	for _, b := range seed {
		f.nextID++
		b.ID = fmt.Sprintf("b%d", f.nextID)
		f.bookings = append(f.bookings, b)
	}
	return f
}

func (f *fakeAPI) notFound(id string) error {
	return &client.APIError{Code: apperrors.CodeNotFound, Message: "Booking " + id + " not found"}
}

func (f *fakeAPI) index(id string) int {
	for i, b := range f.bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeAPI) GetBookings(ctx context.Context) ([]model.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Booking{}, f.bookings...), nil
}

func (f *fakeAPI) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	i := f.index(id)
	if i < 0 {
		return nil, f.notFound(id)
	}
	b := f.bookings[i]
	return &b, nil
}

func (f *fakeAPI) AddBooking(ctx context.Context, booking model.Booking) (*model.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	booking.ID = fmt.Sprintf("b%d", f.nextID)
	f.bookings = append(f.bookings, booking)
	return &booking, nil
}

func (f *fakeAPI) UpdateBooking(ctx context.Context, id string, update model.BookingUpdate) (*model.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	i := f.index(id)
	if i < 0 {
		return nil, f.notFound(id)
	}
	f.updates = append(f.updates, update)
	f.bookings[i] = update.Apply(f.bookings[i])
	b := f.bookings[i]
	return &b, nil
}

func (f *fakeAPI) DeleteBooking(ctx context.Context, id string) (*model.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	i := f.index(id)
	if i < 0 {
		return nil, f.notFound(id)
	}
	b := f.bookings[i]
	f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
	return &b, nil
}

var _ client.BookingAPI = (*fakeAPI)(nil)

func annToRome() model.Booking {
	return model.Booking{
		Name:        "Ann",
		Email:       "a@x.com",
		Destination: "Rome",
		Date:        "2025-06-01",
		Travelers:   2,
	}
}
