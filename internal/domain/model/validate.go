package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance. validator.Validate caches
// struct metadata and is safe for concurrent use.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks the shot context against its documented ranges.
// Out-of-range values are reported, never clamped.
func (s ShotContext) Validate() error {
	if err := Validator().Struct(s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidShotContext, Describe(err))
	}
	return nil
}

// Validate checks the shot-placement bands of an opponent.
func (o Opponent) Validate() error {
	if o.HighPct < 0 || o.MidPct < 0 || o.LowPct < 0 {
		return fmt.Errorf("%w: negative band percentage", ErrInvalidOpponent)
	}
	if sum := o.HighPct + o.MidPct + o.LowPct; sum > 100 {
		return fmt.Errorf("%w: bands sum to %.1f", ErrInvalidOpponent, sum)
	}
	return nil
}

// Describe converts validator errors to a compact, readable message.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
