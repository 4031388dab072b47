package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"lysodata_backend/internal/models"
)

// registerCustomRules adds the catalog's domain rules. Registration only
// fails for empty tag names, so failures here are programmer errors.
func registerCustomRules(v *validator.Validate) {
	must(v.RegisterValidation("boolean_code", validBooleanCode))
	must(v.RegisterValidation("test_type", validTestType))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// validBooleanCode accepts the categorical result codes, case-insensitively.
func validBooleanCode(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case models.BooleanPositive, models.BooleanNegative, models.BooleanIntermediate,
		strings.ToLower(models.BooleanNoData):
		return true
	}
	return false
}

func validTestType(fl validator.FieldLevel) bool {
	switch models.TestType(fl.Field().String()) {
	case models.TestTypeBoolean, models.TestTypeNumeric, models.TestTypeText:
		return true
	}
	return false
}
