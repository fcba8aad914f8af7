package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"travelbook/internal/bookings/events"
	"travelbook/internal/bookings/repository"
	"travelbook/internal/bookings/service"
	"travelbook/internal/bookings/validator"
	"travelbook/pkg/config"
	"travelbook/pkg/logger"
	"travelbook/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []gqlError                 `json:"errors"`
}

func (r gqlResponse) booking(t *testing.T, field string) *model.Booking {
	t.Helper()
	raw, ok := r.Data[field]
	require.True(t, ok, "missing data.%s", field)
	var b *model.Booking
	require.NoError(t, json.Unmarshal(raw, &b))
	return b
}

func (r gqlResponse) bookings(t *testing.T) []model.Booking {
	t.Helper()
	var list []model.Booking
	require.NoError(t, json.Unmarshal(r.Data["getBookings"], &list))
	return list
}

type testServer struct {
	*httptest.Server
	repo repository.BookingRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.Discard()
	cfg := &config.Config{
		SQLitePath:   filepath.Join(t.TempDir(), "graphql.db"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Log:          log,
	}

	repo, err := repository.NewSQLiteBookingRepository(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(context.Background()) })

	svc := service.NewBookingService(repo, validator.NewBookingValidator(log), events.NewNoopPublisher(), cfg)
	h, err := NewGraphQLHandler(svc, log)
	require.NoError(t, err)

	router := httprouter.New()
	h.RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, repo: repo}
}

func (s *testServer) do(t *testing.T, query string, variables map[string]any) gqlResponse {
	t.Helper()

	body, err := json.Marshal(Request{Query: query, Variables: variables})
	require.NoError(t, err)

	resp, err := http.Post(s.URL+Path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out gqlResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *testServer) count(t *testing.T) int {
	t.Helper()
	all, err := s.repo.FindAll(context.Background())
	require.NoError(t, err)
	return len(all)
}

const (
	addMutation = `mutation Add($name: String!, $email: String!, $destination: String!, $date: String!, $travelers: Int!) {
		addBooking(name: $name, email: $email, destination: $destination, date: $date, travelers: $travelers) {
			id name email destination date travelers
		}
	}`
	listQuery   = `{ getBookings { id name email destination date travelers } }`
	getQuery    = `query Get($id: ID!) { getBooking(id: $id) { id name travelers } }`
	deleteQuery = `mutation Delete($id: ID!) { deleteBooking(id: $id) { id name destination } }`
	updateQuery = `mutation Update($id: ID!, $travelers: Int, $destination: String) {
		updateBooking(id: $id, travelers: $travelers, destination: $destination) { id name destination date travelers }
	}`
)

func annVars() map[string]any {
	return map[string]any{
		"name":        "Ann",
		"email":       "a@x.com",
		"destination": "Rome",
		"date":        "2025-06-01",
		"travelers":   2,
	}
}

func TestGraphQL_BookingLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := srv.do(t, addMutation, annVars())
	require.Empty(t, created.Errors)
	b := created.booking(t, "addBooking")
	require.NotEmpty(t, b.ID)
	assert.Equal(t, model.Booking{ID: b.ID, Name: "Ann", Email: "a@x.com", Destination: "Rome", Date: "2025-06-01", Travelers: 2}, *b)

	list := srv.do(t, listQuery, nil).bookings(t)
	require.Len(t, list, 1)
	assert.Equal(t, *b, list[0])

	updated := srv.do(t, updateQuery, map[string]any{"id": b.ID, "travelers": 3})
	require.Empty(t, updated.Errors)
	u := updated.booking(t, "updateBooking")
	assert.Equal(t, b.ID, u.ID)
	assert.Equal(t, 3, u.Travelers)
	assert.Equal(t, "Rome", u.Destination)
	assert.Equal(t, "2025-06-01", u.Date)

	list = srv.do(t, listQuery, nil).bookings(t)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].Travelers)

	fetched := srv.do(t, getQuery, map[string]any{"id": b.ID}).booking(t, "getBooking")
	assert.Equal(t, 3, fetched.Travelers)

	deleted := srv.do(t, deleteQuery, map[string]any{"id": b.ID})
	require.Empty(t, deleted.Errors)
	assert.Equal(t, b.ID, deleted.booking(t, "deleteBooking").ID)

	list = srv.do(t, listQuery, nil).bookings(t)
	assert.Empty(t, list)
}

func TestGraphQL_AddBookingValidation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("name argument omitted", func(t *testing.T) {
		resp := srv.do(t, `mutation { addBooking(email: "a@x.com", destination: "Rome", date: "2025-06-01", travelers: 2) { id } }`, nil)
		require.NotEmpty(t, resp.Errors)
		assert.Equal(t, "VALIDATION_ERROR", resp.Errors[0].Extensions["code"])
		assert.Nil(t, resp.Data)
	})

	t.Run("name variable null", func(t *testing.T) {
		vars := annVars()
		vars["name"] = nil
		resp := srv.do(t, addMutation, vars)
		require.NotEmpty(t, resp.Errors)
		assert.Equal(t, "VALIDATION_ERROR", resp.Errors[0].Extensions["code"])
	})

	t.Run("name empty string", func(t *testing.T) {
		vars := annVars()
		vars["name"] = ""
		resp := srv.do(t, addMutation, vars)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "VALIDATION_ERROR", resp.Errors[0].Extensions["code"])
		assert.Contains(t, resp.Errors[0].Message, "name is required")
		assert.Equal(t, "null", string(resp.Data["addBooking"]))
	})

	t.Run("travelers wrong type", func(t *testing.T) {
		vars := annVars()
		vars["travelers"] = "two"
		resp := srv.do(t, addMutation, vars)
		require.NotEmpty(t, resp.Errors)
		assert.Equal(t, "VALIDATION_ERROR", resp.Errors[0].Extensions["code"])
	})

	assert.Zero(t, srv.count(t), "collection must be unchanged")
}

func TestGraphQL_UnknownIDs(t *testing.T) {
	srv := newTestServer(t)

	created := srv.do(t, addMutation, annVars()).booking(t, "addBooking")

	tests := []struct {
		name  string
		query string
		vars  map[string]any
		field string
	}{
		{name: "delete", query: deleteQuery, vars: map[string]any{"id": "does-not-exist"}, field: "deleteBooking"},
		{name: "update", query: updateQuery, vars: map[string]any{"id": "does-not-exist", "travelers": 9}, field: "updateBooking"},
		{name: "get", query: getQuery, vars: map[string]any{"id": "does-not-exist"}, field: "getBooking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.do(t, tt.query, tt.vars)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, "NOT_FOUND", resp.Errors[0].Extensions["code"])
			assert.Equal(t, "Booking not found", resp.Errors[0].Message)
			assert.Equal(t, "null", string(resp.Data[tt.field]))
		})
	}

	list := srv.do(t, listQuery, nil).bookings(t)
	require.Len(t, list, 1)
	assert.Equal(t, *created, list[0])
}

func TestGraphQL_GetBookingsInsertionOrder(t *testing.T) {
	srv := newTestServer(t)

	destinations := []string{"Rome", "Paris", "Lisbon"}
	for _, dest := range destinations {
		vars := annVars()
		vars["destination"] = dest
		require.Empty(t, srv.do(t, addMutation, vars).Errors)
	}

	first := srv.do(t, listQuery, nil).bookings(t)
	require.Len(t, first, 3)
	seen := map[string]bool{}
	for i, b := range first {
		assert.Equal(t, destinations[i], b.Destination)
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}

	second := srv.do(t, listQuery, nil).bookings(t)
	assert.Equal(t, first, second)
}

func TestGraphQL_Transport(t *testing.T) {
	srv := newTestServer(t)

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(srv.URL+Path, "application/json", strings.NewReader("{not json"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty query", func(t *testing.T) {
		resp, err := http.Post(srv.URL+Path, "application/json", strings.NewReader(`{"query":""}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("syntax error", func(t *testing.T) {
		resp := srv.do(t, `{ getBookings { id `, nil)
		require.NotEmpty(t, resp.Errors)
		assert.Equal(t, "VALIDATION_ERROR", resp.Errors[0].Extensions["code"])
	})

	t.Run("GET query", func(t *testing.T) {
		resp, err := http.Get(srv.URL + Path + "?query=" + url.QueryEscape(listQuery))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out gqlResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Empty(t, out.Errors)
		assert.Equal(t, "[]", string(out.Data["getBookings"]))
	})

	t.Run("GET bad variables", func(t *testing.T) {
		resp, err := http.Get(srv.URL + Path + "?query=" + url.QueryEscape(getQuery) + "&variables=%7Bbad")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
