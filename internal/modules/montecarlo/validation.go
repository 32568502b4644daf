package montecarlo

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Limits bound the work a single request may ask for
type Limits struct {
	MaxSimulations int   `json:"maxSimulations"`
	MaxHorizonDays int   `json:"maxHorizonDays"`
	MaxAssets      int   `json:"maxAssets"`
	MaxDraws       int64 `json:"maxDraws"`
}

// DefaultLimits are used when no configuration overrides them
func DefaultLimits() Limits {
	return Limits{
		MaxSimulations: 100000,
		MaxHorizonDays: 2520,
		MaxAssets:      200,
		MaxDraws:       50_000_000,
	}
}

// Validator checks resolved requests before any computation runs
type Validator struct {
	validate *validator.Validate
	limits   Limits
}

// NewValidator creates a request validator enforcing the given limits.
// A zero limit is not enforced.
func NewValidator(limits Limits) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v, limits: limits}
}

// Validate returns a *ValidationError for the first problem found, or nil
func (v *Validator) Validate(req PortfolioRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fromFieldError(fieldErrs[0])
		}
		return &ValidationError{Message: err.Error()}
	}

	for i, asset := range req.Assets {
		field := fmt.Sprintf("assets[%d]", i)
		if strings.TrimSpace(asset.Symbol) == "" {
			return invalid(field+".symbol", "is required")
		}
		if math.IsNaN(asset.Weight) || math.IsInf(asset.Weight, 0) {
			return invalid(field+".weight", "must be a finite number")
		}
	}

	return v.checkLimits(req)
}

func (v *Validator) checkLimits(req PortfolioRequest) error {
	l := v.limits
	if l.MaxSimulations > 0 && req.Simulations > l.MaxSimulations {
		return invalid("simulations", fmt.Sprintf("must not exceed %d", l.MaxSimulations))
	}
	if l.MaxHorizonDays > 0 && req.HorizonDays > l.MaxHorizonDays {
		return invalid("horizonDays", fmt.Sprintf("must not exceed %d", l.MaxHorizonDays))
	}
	if l.MaxAssets > 0 && len(req.Assets) > l.MaxAssets {
		return invalid("assets", fmt.Sprintf("must not contain more than %d assets", l.MaxAssets))
	}
	if l.MaxDraws > 0 && req.Draws() > l.MaxDraws {
		return invalid("", fmt.Sprintf("simulations x horizonDays x assets = %d exceeds %d draws", req.Draws(), l.MaxDraws))
	}
	return nil
}

func fromFieldError(fe validator.FieldError) *ValidationError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return invalid(field, "is required")
	case "min":
		return invalid(field, "must contain at least one asset")
	case "gt":
		return invalid(field, "must be positive")
	default:
		return invalid(field, fmt.Sprintf("failed %q check", fe.Tag()))
	}
}
