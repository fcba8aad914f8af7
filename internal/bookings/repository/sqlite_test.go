package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"
	bookingserrors "travelbook/internal/bookings/errors"
	"travelbook/pkg/config"
	"travelbook/pkg/logger"
	"travelbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTestSQLiteRepo(t *testing.T) BookingRepository {
	t.Helper()

	cfg := &config.Config{
		SQLitePath:   filepath.Join(t.TempDir(), "bookings.db"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Log:          logger.Discard(),
	}

	repo, err := NewSQLiteBookingRepository(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(context.Background()) })
	return repo
}

func TestNewSQLiteBookingRepository_IgnoresMongoBudget(t *testing.T) {
	cfg := &config.Config{
		SQLitePath:       filepath.Join(t.TempDir(), "budget.db"),
		MongoConnTimeout: time.Nanosecond,
		ReadTimeout:      5 * time.Second,
		WriteTimeout:     5 * time.Second,
		Log:              logger.Discard(),
	}

	repo, err := NewSQLiteBookingRepository(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(context.Background()) })

	require.NoError(t, repo.Ping(context.Background()))
	require.NoError(t, repo.Create(context.Background(), annToRome()))
}

func annToRome() *model.Booking {
	return &model.Booking{
		Name:        "Ann",
		Email:       "a@x.com",
		Destination: "Rome",
		Date:        "2025-06-01",
		Travelers:   2,
	}
}

func TestSQLite_CreateAndFind(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	booking := annToRome()
	require.NoError(t, repo.Create(ctx, booking))
	require.NotEmpty(t, booking.ID)

	found, err := repo.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking, found)
}

func TestSQLite_CreateAssignsUniqueIDs(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	first, second := annToRome(), annToRome()
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSQLite_FindAllInsertionOrder(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	var ids []string
	for _, dest := range []string{"Rome", "Paris", "Lisbon"} {
		b := annToRome()
		b.Destination = dest
		require.NoError(t, repo.Create(ctx, b))
		ids = append(ids, b.ID)
	}

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, b := range all {
		assert.Equal(t, ids[i], b.ID)
	}
	assert.Equal(t, "Lisbon", all[2].Destination)
}

func TestSQLite_Update(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	booking := annToRome()
	require.NoError(t, repo.Create(ctx, booking))

	tests := []struct {
		name   string
		update *model.BookingUpdate
		want   model.Booking
	}{
		{
			name:   "travelers only",
			update: &model.BookingUpdate{Travelers: ptr(3)},
			want:   model.Booking{ID: booking.ID, Name: "Ann", Email: "a@x.com", Destination: "Rome", Date: "2025-06-01", Travelers: 3},
		},
		{
			name:   "destination and date",
			update: &model.BookingUpdate{Destination: ptr("Oslo"), Date: ptr("2025-07-01")},
			want:   model.Booking{ID: booking.ID, Name: "Ann", Email: "a@x.com", Destination: "Oslo", Date: "2025-07-01", Travelers: 3},
		},
		{
			name:   "empty patch returns current",
			update: &model.BookingUpdate{},
			want:   model.Booking{ID: booking.ID, Name: "Ann", Email: "a@x.com", Destination: "Oslo", Date: "2025-07-01", Travelers: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Update(ctx, booking.ID, tt.update)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)

			stored, err := repo.FindByID(ctx, booking.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *stored)
		})
	}
}

func TestSQLite_UpdateUnknownID(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	booking := annToRome()
	require.NoError(t, repo.Create(ctx, booking))

	_, err := repo.Update(ctx, "missing", &model.BookingUpdate{Travelers: ptr(9)})
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].Travelers)
}

func TestSQLite_Delete(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	booking := annToRome()
	require.NoError(t, repo.Create(ctx, booking))

	deleted, err := repo.Delete(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking, deleted)

	_, err = repo.FindByID(ctx, booking.ID)
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)

	_, err = repo.Delete(ctx, booking.ID)
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)
}

func TestSQLite_Ping(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestWithTimeout_KeepsEarlierDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ctx, cancelChild := withTimeout(parent, time.Hour)
	defer cancelChild()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
}

func TestUpdateFields(t *testing.T) {
	assert.Empty(t, updateFields(nil))
	assert.Empty(t, updateFields(&model.BookingUpdate{}))

	set := updateFields(&model.BookingUpdate{Name: ptr("Bo"), Travelers: ptr(4)})
	assert.Len(t, set, 2)
	assert.Equal(t, "Bo", set["name"])
	assert.Equal(t, 4, set["travelers"])
}
