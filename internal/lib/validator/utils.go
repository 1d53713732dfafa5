package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	govalidator "github.com/go-playground/validator/v10"
)

const passwordSymbols = "#?!@$%^&*-"

type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors keeps the order in which fields are declared on the validated struct.
type ValidationErrors []FieldError

func (v ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

func (v ValidationErrors) Error() string {
	return strings.Join(v.Messages(), "; ")
}

// New returns a validator that reports json field names and knows the custom tags used by the api.
func New() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("strongpassword", ValidateStrongPassword); err != nil {
		panic(err)
	}
	return v
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name := strings.Split(tag, ",")[0]; name != "" {
		return name
	}
	return lowerFirst(field.Name)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// stripIndex turns "actors[2]" into "actors".
func stripIndex(name string) string {
	if i := strings.IndexByte(name, '['); i != -1 {
		return name[:i]
	}
	return name
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) ValidationErrors {
	processed := make(ValidationErrors, 0, len(errs))
	for _, e := range errs {
		processed = append(processed, FieldError{
			Field:   stripIndex(e.Field()),
			Message: GetErrorMsgForField(obj, e),
		})
	}
	return processed
}

func ValidateStruct(validator *govalidator.Validate, obj any) ValidationErrors {
	if err := validator.Struct(obj); err != nil {
		validationErrs, ok := err.(govalidator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return ProcessValidationErrors(obj, validationErrs)
	}
	return nil
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	structField := stripIndex(err.StructField())
	field, found := t.FieldByName(structField)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", structField, t.Name()))
	}
	if errorMsg = field.Tag.Get("errorMsg"); errorMsg != "" {
		return
	}
	name := stripIndex(err.Field())
	if strings.Contains(err.Field(), "[") {
		return fmt.Sprintf("each value in %s must be a non-empty string", name)
	}
	isNumber := false
	switch err.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		isNumber = true
	}
	isList := err.Kind() == reflect.Slice || err.Kind() == reflect.Array
	switch err.Tag() {
	case "required":
		errorMsg = fmt.Sprintf("%s should not be empty", name)
	case "max":
		switch {
		case isNumber:
			errorMsg = fmt.Sprintf("%s must not be greater than %s", name, err.Param())
		case isList:
			errorMsg = fmt.Sprintf("%s must contain no more than %s elements", name, err.Param())
		default:
			errorMsg = fmt.Sprintf("%s must be shorter than or equal to %s characters", name, err.Param())
		}
	case "min":
		switch {
		case isNumber:
			errorMsg = fmt.Sprintf("%s must not be less than %s", name, err.Param())
		case isList, err.Param() == "1":
			errorMsg = fmt.Sprintf("%s should not be empty", name)
		default:
			errorMsg = fmt.Sprintf("%s must be longer than or equal to %s characters", name, err.Param())
		}
	case "oneof":
		errorMsg = fmt.Sprintf("%s must be one of the following values: %s", name, strings.Join(strings.Fields(err.Param()), ", "))
	case "url":
		errorMsg = fmt.Sprintf("%s must be a URL address", name)
	case "email":
		errorMsg = fmt.Sprintf("%s must be an email", name)
	case "datetime":
		errorMsg = fmt.Sprintf("%s must be a valid date and must be in the format YYYY-MM-DD", name)
	case "strongpassword":
		errorMsg = fmt.Sprintf("%s must be 8 characters or more, must contain mixed case, number and symbol", name)
	default:
		errorMsg = fmt.Sprintf("%s is invalid", name)
	}
	return
}

// CUSTOM VALIDATORS

func ValidateStrongPassword(fl govalidator.FieldLevel) bool {
	var upper, lower, digit, symbol bool
	password := fl.Field().String()
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol && len([]rune(password)) >= 8
}
