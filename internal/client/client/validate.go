package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/go-playground/validator/v10"
)

// formValidator checks sign-up forms before they leave the process, so the
// user sees the same kind of message for local and server-side rejections.
type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{v: validator.New()}
}

func (fv *formValidator) register(role models.Role, form models.RegisterForm) error {
	if err := fv.check(form); err != nil {
		return err
	}
	if role == models.RoleAgent {
		return fv.check(form.Agent())
	}
	return nil
}

func (fv *formValidator) check(s any) error {
	err := fv.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &APIError{Kind: ErrValidation, Err: err}
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return &APIError{Kind: ErrValidation, Detail: strings.Join(msgs, "; ")}
}

// fieldError converts a single validation failure into a form message.
func fieldError(fe validator.FieldError) string {
	field := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "eqfield":
		return "Passwords do not match"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

var fieldLabels = map[string]string{
	"FullName":        "full name",
	"ConfirmPassword": "password confirmation",
	"LicenseNumber":   "license number",
}

func fieldLabel(name string) string {
	if l, ok := fieldLabels[name]; ok {
		return l
	}
	return strings.ToLower(name)
}
