package model

// DateLayout is the wire and storage format of Booking.Date.
const DateLayout = "2006-01-02"

type Booking struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name" validate:"required"`
	Email       string `json:"email" bson:"email" validate:"required"`
	Destination string `json:"destination" bson:"destination" validate:"required"`
	Date        string `json:"date" bson:"date" validate:"required"`
	Travelers   int    `json:"travelers" bson:"travelers"`
}

// BookingUpdate is a sparse patch: nil fields are left untouched.
type BookingUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email       *string `json:"email,omitempty" validate:"omitempty,min=1"`
	Destination *string `json:"destination,omitempty" validate:"omitempty,min=1"`
	Date        *string `json:"date,omitempty" validate:"omitempty,min=1"`
	Travelers   *int    `json:"travelers,omitempty"`
}

func (u *BookingUpdate) IsEmpty() bool {
	return u == nil ||
		(u.Name == nil && u.Email == nil && u.Destination == nil && u.Date == nil && u.Travelers == nil)
}

// Apply returns a copy of b with every supplied field of u written over it.
func (u *BookingUpdate) Apply(b Booking) Booking {
	if u == nil {
		return b
	}
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Email != nil {
		b.Email = *u.Email
	}
	if u.Destination != nil {
		b.Destination = *u.Destination
	}
	if u.Date != nil {
		b.Date = *u.Date
	}
	if u.Travelers != nil {
		b.Travelers = *u.Travelers
	}
	return b
}
