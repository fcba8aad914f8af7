package service

import (
	"context"
	"errors"
	"strings"
	"travelbook/internal/bookings/events"
	bookingserrors "travelbook/internal/bookings/errors"
	"travelbook/internal/bookings/repository"
	"travelbook/internal/bookings/validator"
	"travelbook/pkg/config"
	apperrors "travelbook/pkg/errors"
	"travelbook/pkg/model"
)

const resourceName = "Booking"

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context) ([]*model.Booking, error)
	Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create validates and stores booking, assigning its ID.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	if booking == nil {
		return apperrors.InvalidInput("Booking cannot be empty")
	}

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return toValidationError("Invalid booking input", err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"destination", booking.Destination,
		"date", booking.Date,
	)
	s.publish(ctx, events.TypeCreated, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.NotFoundWithID(resourceName, id)
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, id, "Failed to retrieve booking")
	}

	return booking, nil
}

// GetAll returns every stored booking in insertion order, never nil.
func (s *bookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}

	s.cfg.Log.Debug("Bookings listed", "count", len(bookings))
	return bookings, nil
}

// Update applies a sparse patch. Fields left nil keep their stored value.
func (s *bookingService) Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.NotFoundWithID(resourceName, id)
	}

	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, toValidationError("Invalid update input", err)
	}

	booking, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, s.mapRepositoryError(err, id, "Failed to update booking")
	}

	if update.IsEmpty() {
		s.cfg.Log.Debug("Booking update had no fields", "id", id)
		return booking, nil
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)
	s.publish(ctx, events.TypeUpdated, booking)
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.NotFoundWithID(resourceName, id)
	}

	booking, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, id, "Failed to delete booking")
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.publish(ctx, events.TypeDeleted, booking)
	return booking, nil
}

// --- Helpers ---

// mapRepositoryError converts store sentinels into AppErrors. An id the
// backend cannot parse can never resolve, so it reads as not found.
func (s *bookingService) mapRepositoryError(err error, id, message string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID(resourceName, id)
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

// publish runs after the write has committed. A failure is logged and never
// reported to the caller.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"id", booking.ID,
			"error", err,
		)
	}
}

func toValidationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, e := range verrs {
			messages = append(messages, e.Message)
		}
		return apperrors.Validation(message+": "+strings.Join(messages, "; "), verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
