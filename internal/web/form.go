package web

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"travelbook/pkg/client"
	"travelbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

const defaultTravelers = 1

// ErrInvalidDraft is returned by Submit when the draft fails Validate.
var ErrInvalidDraft = errors.New("booking draft is invalid")

var draftValidate = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// Draft holds the values typed into the booking form.
type Draft struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Travelers   int    `json:"travelers" validate:"min=1"`
}

func (d Draft) Booking() model.Booking {
	return model.Booking{
		Name:        d.Name,
		Email:       d.Email,
		Destination: d.Destination,
		Date:        d.Date,
		Travelers:   d.Travelers,
	}
}

// Update sends every draft field, so an edit replaces the whole record.
func (d Draft) Update() model.BookingUpdate {
	return model.BookingUpdate{
		Name:        &d.Name,
		Email:       &d.Email,
		Destination: &d.Destination,
		Date:        &d.Date,
		Travelers:   &d.Travelers,
	}
}

type Form struct {
	Mode   Mode
	EditID string
	Draft  Draft
	Errors map[string]string
	Notice string

	bindErrors map[string]string
}

func NewForm() *Form {
	return &Form{
		Mode:  ModeCreate,
		Draft: Draft{Travelers: defaultTravelers},
	}
}

// Edit switches the form to edit mode with booking's values as the draft.
func (f *Form) Edit(booking model.Booking) {
	f.Mode = ModeEdit
	f.EditID = booking.ID
	f.Draft = Draft{
		Name:        booking.Name,
		Email:       booking.Email,
		Destination: booking.Destination,
		Date:        booking.Date,
		Travelers:   booking.Travelers,
	}
	f.Errors = nil
	f.bindErrors = nil
}

// Bind copies submitted form values into the draft as typed.
func (f *Form) Bind(values url.Values) {
	f.bindErrors = nil
	f.Draft.Name = values.Get("name")
	f.Draft.Email = values.Get("email")
	f.Draft.Destination = values.Get("destination")
	f.Draft.Date = values.Get("date")

	travelers, err := strconv.Atoi(strings.TrimSpace(values.Get("travelers")))
	if err != nil {
		f.bindErrors = map[string]string{"travelers": "travelers must be a whole number"}
		travelers = 0
	}
	f.Draft.Travelers = travelers
}

// Validate reports whether the draft may be submitted and fills Errors
// with one message per offending field.
func (f *Form) Validate() bool {
	f.Errors = make(map[string]string, len(f.bindErrors))
	for field, msg := range f.bindErrors {
		f.Errors[field] = msg
	}

	var verrs validator.ValidationErrors
	if err := draftValidate.Struct(f.Draft); errors.As(err, &verrs) {
		for _, fe := range verrs {
			if _, seen := f.Errors[fe.Field()]; seen {
				continue
			}
			f.Errors[fe.Field()] = fieldMessage(fe)
		}
	}

	return len(f.Errors) == 0
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// Submit validates the draft and sends it: a create in create mode, an
// update of EditID in edit mode. On success the form is reset.
func (f *Form) Submit(ctx context.Context, api client.BookingAPI) (*model.Booking, error) {
	if !f.Validate() {
		return nil, ErrInvalidDraft
	}

	var (
		booking *model.Booking
		err     error
	)
	switch f.Mode {
	case ModeEdit:
		booking, err = api.UpdateBooking(ctx, f.EditID, f.Draft.Update())
	default:
		booking, err = api.AddBooking(ctx, f.Draft.Booking())
	}
	if err != nil {
		return nil, err
	}

	f.Reset()
	return booking, nil
}

// Reset clears the draft and returns to create mode.
func (f *Form) Reset() {
	*f = *NewForm()
}

func (f *Form) Editing() bool {
	return f.Mode == ModeEdit
}
