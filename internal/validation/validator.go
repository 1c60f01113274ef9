package validation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"launchpad-api/internal/apperr"

	"github.com/go-playground/validator/v10"
)

const (
	LocationBody   = "body"
	LocationParams = "params"
	LocationQuery  = "query"

	InvalidPayloadMessage = "Invalid request payload"
)

type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return IsHTTPURL(value)
	})

	return &Validator{v: v}
}

// IsHTTPURL accepts only absolute http/https URLs with a plausible host.
func IsHTTPURL(raw string) bool {
	if raw == "" || strings.ContainsAny(raw, " \t\n") {
		return false
	}
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	if host == "localhost" {
		return true
	}
	dot := strings.LastIndex(host, ".")
	return dot > 0 && dot < len(host)-1
}

func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

// Validate checks s and returns one violation per failing field, paths
// prefixed with location ("body.title").
func (v *Validator) Validate(ctx context.Context, location string, s interface{}) []Violation {
	err := v.v.StructCtx(ctx, s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Violation{{Path: location, Message: err.Error()}}
	}

	labels := labelsOf(s)
	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		label := labels[fe.StructField()]
		if label == "" {
			label = fe.Field()
		}
		out = append(out, Violation{
			Path:    location + "." + fe.Field(),
			Message: message(fe, label),
		})
	}
	return out
}

// Check wraps Validate into the 400 failure handlers return.
func (v *Validator) Check(ctx context.Context, location string, s interface{}) error {
	if violations := v.Validate(ctx, location, s); len(violations) > 0 {
		return Failed(violations...)
	}
	return nil
}

func Failed(violations ...Violation) error {
	return apperr.BadRequest(InvalidPayloadMessage).WithDetails(violations)
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s must be %s characters or fewer", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s should be at least %s characters", label, fe.Param())
	case "len":
		return "Invalid " + lowerFirst(label)
	case "url":
		return "Invalid " + label
	case "httpurl":
		return "Enter a valid external link (http or https)"
	case "email":
		return "Enter a valid email address"
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func labelsOf(s interface{}) map[string]string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	labels := map[string]string{}
	if t == nil || t.Kind() != reflect.Struct {
		return labels
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if label := f.Tag.Get("label"); label != "" {
			labels[f.Name] = label
		}
	}
	return labels
}
