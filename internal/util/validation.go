package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"file-sharing-server/internal/model"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("password", validatePasswordMix); err != nil {
		panic(err)
	}

	return v
}

// validatePasswordMix : хотя бы одна строчная, одна заглавная буква и одна цифра
func validatePasswordMix(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, c := range fl.Field().String() {
		switch {
		case unicode.IsLower(c):
			lower = true
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsDigit(c):
			digit = true
		}
	}
	return lower && upper && digit
}

// ValidateStruct : проверяет структуру по тегам validate и возвращает *model.ValidationError
func ValidateStruct(s interface{}) error {
	return toValidationError(validate.Struct(s), "")
}

// ValidateVar : проверяет одно значение, ошибки привязываются к полю field
func ValidateVar(field string, value interface{}, tag string) error {
	return toValidationError(validate.Var(value, tag), field)
}

func toValidationError(err error, field string) error {
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	result := &model.ValidationError{Fields: make(map[string]string, len(fieldErrors))}
	for _, fe := range fieldErrors {
		name := field
		if name == "" {
			name = fe.Field()
		}
		if _, exists := result.Fields[name]; exists {
			continue
		}
		result.Fields[name] = fieldMessage(fe)
	}

	return result
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("may not be greater than %s characters", fe.Param())
	case "password":
		return "must contain a lower-case letter, an upper-case letter and a digit"
	case "excludesall":
		return "contains forbidden characters"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
