package client

import (
	"context"
	"travelbook/pkg/model"
)

const bookingFields = "id name email destination date travelers"

const (
	getBookingsQuery = `query GetBookings { getBookings { ` + bookingFields + ` } }`

	getBookingQuery = `query GetBooking($id: ID!) { getBooking(id: $id) { ` + bookingFields + ` } }`

	addBookingMutation = `mutation AddBooking($name: String!, $email: String!, $destination: String!, $date: String!, $travelers: Int!) {
  addBooking(name: $name, email: $email, destination: $destination, date: $date, travelers: $travelers) { ` + bookingFields + ` }
}`

	updateBookingMutation = `mutation UpdateBooking($id: ID!, $name: String, $email: String, $destination: String, $date: String, $travelers: Int) {
  updateBooking(id: $id, name: $name, email: $email, destination: $destination, date: $date, travelers: $travelers) { ` + bookingFields + ` }
}`

	deleteBookingMutation = `mutation DeleteBooking($id: ID!) { deleteBooking(id: $id) { ` + bookingFields + ` } }`
)

// BookingAPI is the booking service as seen by its clients.
type BookingAPI interface {
	GetBookings(ctx context.Context) ([]model.Booking, error)
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
	AddBooking(ctx context.Context, booking model.Booking) (*model.Booking, error)
	UpdateBooking(ctx context.Context, id string, update model.BookingUpdate) (*model.Booking, error)
	DeleteBooking(ctx context.Context, id string) (*model.Booking, error)
}

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(endpoint string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(endpoint),
	}
}

func (c *BookingClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *BookingClient) GetBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.httpClient.Do(ctx, getBookingsQuery, nil, "getBookings", &bookings); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}

func (c *BookingClient) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	return c.single(ctx, getBookingQuery, map[string]any{"id": id}, "getBooking")
}

func (c *BookingClient) AddBooking(ctx context.Context, booking model.Booking) (*model.Booking, error) {
	return c.single(ctx, addBookingMutation, map[string]any{
		"name":        booking.Name,
		"email":       booking.Email,
		"destination": booking.Destination,
		"date":        booking.Date,
		"travelers":   booking.Travelers,
	}, "addBooking")
}

// UpdateBooking sends only the fields set in update.
func (c *BookingClient) UpdateBooking(ctx context.Context, id string, update model.BookingUpdate) (*model.Booking, error) {
	vars := map[string]any{"id": id}
	if update.Name != nil {
		vars["name"] = *update.Name
	}
	if update.Email != nil {
		vars["email"] = *update.Email
	}
	if update.Destination != nil {
		vars["destination"] = *update.Destination
	}
	if update.Date != nil {
		vars["date"] = *update.Date
	}
	if update.Travelers != nil {
		vars["travelers"] = *update.Travelers
	}
	return c.single(ctx, updateBookingMutation, vars, "updateBooking")
}

func (c *BookingClient) DeleteBooking(ctx context.Context, id string) (*model.Booking, error) {
	return c.single(ctx, deleteBookingMutation, map[string]any{"id": id}, "deleteBooking")
}

func (c *BookingClient) single(ctx context.Context, query string, vars map[string]any, field string) (*model.Booking, error) {
	var booking *model.Booking
	if err := c.httpClient.Do(ctx, query, vars, field, &booking); err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, transportError("data.%s was null without an error", field)
	}
	return booking, nil
}

var _ BookingAPI = (*BookingClient)(nil)
