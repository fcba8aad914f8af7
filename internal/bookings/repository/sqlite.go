package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	bookingserrors "travelbook/internal/bookings/errors"
	"travelbook/pkg/config"
	"travelbook/pkg/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

const bookingColumns = "id, name, email, destination, date, travelers"

type sqliteBookingRepository struct {
	cfg *config.Config
	db  *sql.DB
}

// NewSQLiteBookingRepository opens (creating if needed) the database at
// cfg.SQLitePath and ensures the bookings table exists.
func NewSQLiteBookingRepository(ctx context.Context, cfg *config.Config) (BookingRepository, error) {
	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	ctx, cancel := withTimeout(ctx, cfg.WriteTimeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize sqlite schema: %w", err)
	}

	return &sqliteBookingRepository{cfg: cfg, db: db}, nil
}

func (r *sqliteBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO bookings ("+bookingColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		id, booking.Name, booking.Email, booking.Destination, booking.Date, booking.Travelers,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = id
	return nil
}

func (r *sqliteBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id)
	return scanOne(row, "find")
}

func (r *sqliteBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, "SELECT "+bookingColumns+" FROM bookings ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Destination, &b.Date, &b.Travelers); err != nil {
			return nil, fmt.Errorf("failed to decode bookings: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}

	return bookings, nil
}

// Update writes the supplied fields in a single statement. NULL parameters
// keep the stored column through COALESCE, so an empty patch returns the
// current row.
func (r *sqliteBookingRepository) Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error) {
	if update == nil {
		update = &model.BookingUpdate{}
	}

	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `UPDATE bookings SET
		name = COALESCE(?, name),
		email = COALESCE(?, email),
		destination = COALESCE(?, destination),
		date = COALESCE(?, date),
		travelers = COALESCE(?, travelers)
		WHERE id = ?
		RETURNING `+bookingColumns,
		update.Name, update.Email, update.Destination, update.Date, update.Travelers, id,
	)
	return scanOne(row, "update")
}

func (r *sqliteBookingRepository) Delete(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, "DELETE FROM bookings WHERE id = ? RETURNING "+bookingColumns, id)
	return scanOne(row, "delete")
}

func (r *sqliteBookingRepository) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()
	return r.db.PingContext(ctx)
}

func (r *sqliteBookingRepository) Close(context.Context) error {
	return r.db.Close()
}

func scanOne(row *sql.Row, op string) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.Name, &b.Email, &b.Destination, &b.Date, &b.Travelers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to %s booking: %w", op, err)
	}
	return &b, nil
}
