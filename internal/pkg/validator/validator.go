package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	unsafeTextRe   = regexp.MustCompile(`(?i)<script|javascript:|on\w+=`)
	phoneRe        = regexp.MustCompile(`^[\+]?[(]?[0-9]{1,4}[)]?[-\s\.]?[(]?[0-9]{1,4}[)]?[-\s\.]?[0-9]{1,9}$`)
	memberNumberRe = regexp.MustCompile(`^[A-Z0-9-]+$`)
	postalCodeRe   = regexp.MustCompile(`^\d{5}$`)
	timeHHMMRe     = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

func init() {
	validate = validator.New()

	// Report fields by their json names so errors match the wire format.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("safetext", func(fl validator.FieldLevel) bool {
		return !unsafeTextRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = validate.RegisterValidation("membernum", func(fl validator.FieldLevel) bool {
		return memberNumberRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return postalCodeRe.MatchString(fl.Field().String())
	})
	// ymddate requires YYYY-MM-DD and a real calendar date.
	_ = validate.RegisterValidation("ymddate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return timeHHMMRe.MatchString(fl.Field().String())
	})
}

// FieldError is the first failing field of a validation pass.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

// FirstError validates v and returns only the first failing field, so
// callers can render one inline message per submission.
func FirstError(v interface{}) *FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &FieldError{Field: "input", Message: "invalid input"}
	}

	fe := verrs[0]
	return &FieldError{
		Field:   fieldPath(fe),
		Message: messageFor(fe),
	}
}

func fieldPath(fe validator.FieldError) string {
	// Namespace looks like "CreateMemberRequest.address.postal_code";
	// drop the struct name.
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email format"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "safetext":
		return "invalid characters detected"
	case "phone":
		return "invalid phone number format"
	case "membernum":
		return "must contain only uppercase letters, numbers, and hyphens"
	case "postalcode":
		return "must be 5 digits"
	case "ymddate":
		return "must be a valid date in YYYY-MM-DD format"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "eqfield":
		return "does not match"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
