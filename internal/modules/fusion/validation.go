package fusion

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks input or profile names the evaluator rejects
var ErrInvalidInput = errors.New("invalid input")

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// ValidateInput checks an Input before evaluation
func ValidateInput(in Input) error {
	if in.RiskScore != nil && !isFinite(*in.RiskScore) {
		return fmt.Errorf("%w: risk_score must be a finite number", ErrInvalidInput)
	}
	if in.Uncertainty != nil && !isFinite(*in.Uncertainty) {
		return fmt.Errorf("%w: uncertainty must be a finite number", ErrInvalidInput)
	}

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Tag() == "required" {
				return fmt.Errorf("%w: %s is required", ErrInvalidInput, fe.Field())
			}
			return fmt.Errorf("%w: %s must be between 0 and 1", ErrInvalidInput, fe.Field())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
