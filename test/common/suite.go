package common

import (
	"context"
	"os"
	"testing"
	"time"
	"travelbook/pkg/client"
)

const defaultServerURL = "http://localhost:4000"

type IntegrationTestSuite struct {
	ServerURL   string
	Client      *client.BookingClient
	ServiceName string
}

// NewIntegrationTestSuite targets TEST_SERVER_URL and waits for the server
// to report healthy.
func NewIntegrationTestSuite(t *testing.T, serviceName string) *IntegrationTestSuite {
	t.Helper()

	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	s := &IntegrationTestSuite{
		ServerURL:   serverURL,
		Client:      client.NewBookingClient(serverURL + "/graphql"),
		ServiceName: serviceName,
	}

	if err := s.Client.HTTP().WaitForHealthy(context.Background(), 30*time.Second); err != nil {
		t.Fatalf("%s: server at %s is not healthy: %v", serviceName, serverURL, err)
	}
	return s
}

// ClearBookings deletes every booking the server holds.
func (s *IntegrationTestSuite) ClearBookings(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	bookings, err := s.Client.GetBookings(ctx)
	if err != nil {
		t.Fatalf("failed to list bookings: %v", err)
	}
	for _, b := range bookings {
		if _, err := s.Client.DeleteBooking(ctx, b.ID); err != nil && !client.IsNotFound(err) {
			t.Fatalf("failed to delete booking %s: %v", b.ID, err)
		}
	}
}
