package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "organization-backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("ids", func(fl validator.FieldLevel) bool {
		ids, ok := fl.Field().Interface().(IDList)
		return ok && idListProblem(ids) == ""
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the shape of the organization: a non-empty name, positive
// and unique identifiers in every id list and a positive theme_id if set. It
// does not check theme containment, see CheckInvariants, nor the write
// bounds, see CheckWriteLimits.
func (o *Organization) Validate() error {
	if err := validate.Struct(o); err != nil {
		return toValidationError(o, err)
	}
	if o.ThemeID != nil && !o.ThemeID.Valid() {
		return apperrors.NewValidationError("theme_id", fmt.Sprintf("%d is not an identifier", *o.ThemeID))
	}
	return nil
}

// ValidateSettings checks a settings bundle on its own.
func ValidateSettings(s *OrganizationSettings) error {
	if err := validate.Struct(s); err != nil {
		return toValidationError(nil, err)
	}
	if s.ThemeID != nil && !s.ThemeID.Valid() {
		return apperrors.NewValidationError("theme_id", fmt.Sprintf("%d is not an identifier", *s.ThemeID))
	}
	return nil
}

// writeLimits holds the values whose size or range is bounded when an
// organization is written.
type writeLimits struct {
	Name            string `json:"name" validate:"max=256"`
	URL             string `json:"url" validate:"max=2048"`
	LimitOfMeetings int    `json:"limit_of_meetings" validate:"gte=0"`
	LimitOfUsers    int    `json:"limit_of_users" validate:"gte=0"`
}

// CheckWriteLimits reports a ValidationError when the organization does not
// fit its columns (name up to 256 characters, url up to 2048) or carries a
// negative limit. Construction and decoding never apply it.
func (o *Organization) CheckWriteLimits() error {
	s := o.Settings()
	return s.CheckWriteLimits()
}

// CheckWriteLimits applies the write bounds to a settings bundle.
func (s *OrganizationSettings) CheckWriteLimits() error {
	limits := writeLimits{
		Name:            s.Name,
		URL:             s.URL,
		LimitOfMeetings: s.LimitOfMeetings,
		LimitOfUsers:    s.LimitOfUsers,
	}
	if err := validate.Struct(limits); err != nil {
		return toValidationError(nil, err)
	}
	return nil
}

func toValidationError(o *Organization, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return apperrors.NewValidationError(field, "is required")
	case "max":
		return apperrors.NewValidationError(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "gte":
		return apperrors.NewValidationError(field, fmt.Sprintf("must be at least %s", fe.Param()))
	case "ids":
		msg := "must contain unique identifiers"
		if o != nil {
			if ids, ok := o.RelationIDs(field); ok {
				msg = idListProblem(ids)
			}
		}
		return apperrors.NewValidationError(field, msg)
	}
	return apperrors.NewValidationError(field, fmt.Sprintf("failed on %q", fe.Tag()))
}

// idListProblem describes the first defect of an id list, or "" if none.
func idListProblem(ids IDList) string {
	if bad := ids.Invalid(); len(bad) > 0 {
		return fmt.Sprintf("%d is not an identifier", bad[0])
	}
	if dups := ids.Duplicates(); len(dups) > 0 {
		return fmt.Sprintf("duplicate identifier %d", dups[0])
	}
	return ""
}
