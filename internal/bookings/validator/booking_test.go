package validator

import (
	"errors"
	"testing"
	"travelbook/pkg/logger"
	"travelbook/pkg/model"
)

func ptr[T any](v T) *T { return &v }

func validBooking() *model.Booking {
	return &model.Booking{
		Name:        "Ann",
		Email:       "a@x.com",
		Destination: "Rome",
		Date:        "2025-06-01",
		Travelers:   2,
	}
}

func TestBookingValidator_Validate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	tests := []struct {
		name       string
		mutate     func(*model.Booking)
		wantFields []string
	}{
		{name: "valid", mutate: func(*model.Booking) {}},
		{name: "zero travelers accepted", mutate: func(b *model.Booking) { b.Travelers = 0 }},
		{name: "missing name", mutate: func(b *model.Booking) { b.Name = "" }, wantFields: []string{"name"}},
		{name: "missing email", mutate: func(b *model.Booking) { b.Email = "" }, wantFields: []string{"email"}},
		{name: "email not format checked", mutate: func(b *model.Booking) { b.Email = "not-an-email" }},
		{name: "date stored as text", mutate: func(b *model.Booking) { b.Date = "06/01/2025" }},
		{
			name:       "several missing",
			mutate:     func(b *model.Booking) { b.Destination = ""; b.Date = "" },
			wantFields: []string{"destination", "date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}
			if len(verrs) != len(tt.wantFields) {
				t.Fatalf("expected %d errors, got %d: %v", len(tt.wantFields), len(verrs), verrs)
			}
			for i, field := range tt.wantFields {
				if verrs[i].Field != field {
					t.Errorf("error %d: expected field %q, got %q", i, field, verrs[i].Field)
				}
			}
		})
	}
}

func TestBookingValidator_RequiredMessage(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	b := validBooking()
	b.Name = ""

	var verrs ValidationErrors
	if !errors.As(v.Validate(b), &verrs) {
		t.Fatal("expected ValidationErrors")
	}
	if verrs[0].Message != "name is required" {
		t.Errorf("unexpected message %q", verrs[0].Message)
	}
	if got := verrs.Details()["name"]; got != "name is required" {
		t.Errorf("unexpected details %v", verrs.Details())
	}
}

func TestBookingValidator_ValidateUpdate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	tests := []struct {
		name    string
		update  *model.BookingUpdate
		wantErr bool
	}{
		{name: "nil", update: nil},
		{name: "empty patch", update: &model.BookingUpdate{}},
		{name: "travelers only", update: &model.BookingUpdate{Travelers: ptr(3)}},
		{name: "negative travelers accepted", update: &model.BookingUpdate{Travelers: ptr(-1)}},
		{name: "valid date", update: &model.BookingUpdate{Date: ptr("2025-12-31")}},
		{name: "empty name", update: &model.BookingUpdate{Name: ptr("")}, wantErr: true},
		{name: "empty destination", update: &model.BookingUpdate{Destination: ptr("")}, wantErr: true},
		{name: "empty date", update: &model.BookingUpdate{Date: ptr("")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpdate(tt.update)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUpdate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "date", Message: "date is required"},
	}

	want := "validation failed: 2 error(s): [name: name is required; date: date is required]"
	if errs.Error() != want {
		t.Errorf("got %q, want %q", errs.Error(), want)
	}
	if (ValidationErrors{}).Error() != "" {
		t.Error("empty errors should render empty")
	}
}
