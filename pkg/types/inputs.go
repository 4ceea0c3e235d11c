package types

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/agentstation/eventhub/pkg/constants"
)

// Input payloads are validated client-side before any network call. The
// server revalidates everything; these rules only exist to fail fast on
// forms the server would certainly reject.

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements client-side validation for login.
func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required),
	)
}

// SignupInput carries account registration fields.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements client-side validation for signup.
func (in SignupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(2, 50)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(constants.MinPasswordLength, 0)),
	)
}

// EventInput carries the fields of an event create or update. Date is the
// raw form value; the server parses and stores it.
type EventInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Capacity    int     `json:"capacity"`
}

// Validate implements client-side validation for event mutations.
func (in EventInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, constants.MaxTitleLength)),
		validation.Field(&in.Description, validation.Length(0, constants.MaxDescriptionLength)),
		validation.Field(&in.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&in.Location, validation.Required),
		validation.Field(&in.Price, validation.Min(0.0)),
		validation.Field(&in.Category, validation.Required),
		validation.Field(&in.Capacity, validation.Required, validation.Min(1)),
	)
}

// RejectInput carries the reason an admin supplies when rejecting a
// registration.
type RejectInput struct {
	Reason string `json:"reason"`
}

// Validate implements client-side validation for rejections.
func (in RejectInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Reason, validation.Required, validation.Length(1, constants.MaxReasonLength)),
	)
}
