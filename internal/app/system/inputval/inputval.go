// internal/app/system/inputval/inputval.go
//
// Package inputval validates decoded request bodies using struct tags.
//
//	type registerInput struct {
//	    Name  string `json:"name" validate:"required,min=2,max=50" label:"Name"`
//	    Email string `json:"email" validate:"required,email" label:"Email"`
//	}
//
// Field paths in the result use JSON names ("location.city"), so clients can
// attach messages to the inputs they sent.
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects every failed rule for one input.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Add appends a hand-made error, for rules that cannot be expressed in tags.
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		must(v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return IsValidObjectID(fl.Field().String())
		}))
		must(v.RegisterValidation("propertytype", func(fl validator.FieldLevel) bool {
			return models.PropertyType(fl.Field().String()).Valid()
		}))
		must(v.RegisterValidation("propertystatus", func(fl validator.FieldLevel) bool {
			return models.ListingStatus(fl.Field().String()).Valid()
		}))
		must(v.RegisterValidation("apptype", func(fl validator.FieldLevel) bool {
			return models.AppointmentType(fl.Field().String()).Valid()
		}))
		must(v.RegisterValidation("apptstatus", func(fl validator.FieldLevel) bool {
			return models.AppointmentStatus(fl.Field().String()).Valid()
		}))
		must(v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, ok := models.ParseRole(fl.Field().String())
			return ok
		}))
		must(v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		}))
		must(v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		}))
	})
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate runs the struct's validate tags. s must be a struct or a pointer
// to one.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Add("", err.Error())
		return res
	}

	labels := labelsFor(s)
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		label := labels[fe.StructNamespace()]
		if label == "" {
			label = fe.Field()
		}
		res.Add(path, message(fe, label))
	}
	return res
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// labelsFor maps struct namespaces ("Input.Location.City") to label tags.
func labelsFor(s any) map[string]string {
	out := map[string]string{}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	collectLabels(t, t.Name(), out)
	return out
}

func collectLabels(t reflect.Type, prefix string, out map[string]string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		ns := prefix + "." + f.Name
		if l := f.Tag.Get("label"); l != "" {
			out[ns] = l
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft != reflect.TypeOf(time.Time{}) {
			collectLabels(ft, ns, out)
		}
	}
}

func message(fe validator.FieldError, label string) string {
	kind := fe.Kind()
	isString := kind == reflect.String
	isList := kind == reflect.Slice || kind == reflect.Array

	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "A valid email address is required."
	case "max", "lte":
		switch {
		case isString:
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		case isList:
			return fmt.Sprintf("%s must have at most %s items.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min", "gte":
		switch {
		case isString:
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		case isList:
			return fmt.Sprintf("%s must have at least %s items.", label, fe.Param())
		case fe.Param() == "0":
			return label + " cannot be negative."
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "objectid":
		return label + " must be a valid ID."
	case "isodate":
		return label + " must be an ISO-8601 date."
	case "phone":
		return label + " must be a valid phone number."
	case "propertytype", "propertystatus", "apptype", "apptstatus", "role":
		return "Invalid " + strings.ToLower(label) + "."
	}
	return label + " is invalid."
}

// IsValidObjectID reports whether s is a 24-char hex Mongo ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// IsValidPhone accepts digits with common separators and an optional
// leading "+", between 7 and 15 digits in total.
func IsValidPhone(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	n := len(normalize.Digits(s))
	return n >= 7 && n <= 15
}

// ParseDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date (UTC).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
