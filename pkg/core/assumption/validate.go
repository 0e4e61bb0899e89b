package assumption

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report json keys so API callers see the field names they sent.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ErrOutOfBounds is returned (wrapped) when an input falls outside its documented range.
var ErrOutOfBounds = errors.New("assumption out of bounds")

// Validate checks a baseline set against the documented field bounds.
// The engine itself never calls this; it only clamps rates.
func Validate(a AssumptionSet) error {
	return check(a)
}

// ValidateGrowth checks pro forma drivers against their documented bounds.
func ValidateGrowth(g GrowthAssumptions) error {
	return check(g)
}

func check(v interface{}) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v violates %s=%s", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("%w: %s", ErrOutOfBounds, strings.Join(msgs, "; "))
}
