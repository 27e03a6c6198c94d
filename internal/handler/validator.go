package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/inventory"
)

// Validator checks request structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	shared        *Validator
)

// InitValidator builds the shared validator; later calls are no-ops
func InitValidator() {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("category", enumValidator(func(s string) bool { return domain.Category(s).Valid() }))
		_ = v.RegisterValidation("rarity", enumValidator(func(s string) bool { return domain.Rarity(s).Valid() }))
		shared = &Validator{validate: v}
	})
}

func GetValidator() *Validator {
	InitValidator()
	return shared
}

func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// jsonFieldName reports fields under their wire name
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

// enumValidator accepts empty and "all" so optional filters need no extra tags
func enumValidator(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := strings.ToLower(fl.Field().String())
		return v == "" || v == inventory.FilterAll || valid(v)
	}
}

var fixedMessages = map[string]string{
	"required":    "This field is required",
	"category":    "Unknown category",
	"rarity":      "Unknown rarity",
	"excludesall": "Contains invalid characters",
}

var paramMessages = map[string]string{
	"max":   "Must be at most %s",
	"min":   "Must be at least %s",
	"gte":   "Must be %s or more",
	"lte":   "Must be %s or less",
	"oneof": "Must be one of: %s",
}

// FormatValidationError maps each failing field to a readable message
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		msg, ok := fixedMessages[e.Tag()]
		if !ok {
			msg = "Invalid value"
			if tmpl, ok := paramMessages[e.Tag()]; ok {
				msg = fmt.Sprintf(tmpl, e.Param())
			}
		}
		out[e.Field()] = msg
	}
	return out
}
