package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Violation is single failed rule
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PayloadError lists all violations of validated payload
type PayloadError struct {
	violations []Violation
}

func (e *PayloadError) Error() string {
	buff := bytes.NewBufferString("")

	for i, v := range e.violations {
		if i > 0 {
			buff.WriteString("; ")
		}
		buff.WriteString(v.Message)
	}

	return buff.String()
}

// Violation appends violation
func (e *PayloadError) Violation(v Violation) {
	e.violations = append(e.violations, v)
}

// Violations returns all violations
func (e *PayloadError) Violations() []Violation {
	return e.violations
}

func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []Violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// Validator validates entity inputs and translates violations to english
type Validator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// New builds Validator with english translations, fields are named by their json keys
func New() (*Validator, error) {
	locale := en.New()
	uni := ut.New(locale, locale)

	translator, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("english translator is not registered")
	}

	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	if err := entranslations.RegisterDefaultTranslations(v, translator); err != nil {
		return nil, fmt.Errorf("failed to register validation translations - %w", err)
	}

	return &Validator{validator: v, translator: translator}, nil
}

// Validate returns *PayloadError if i violates any rule
func (v *Validator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return fmt.Errorf("failed to validate payload - %w", err)
}

func (v *Validator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make([]Violation, 0)}
	for _, e := range ve {
		pldErr.Violation(Violation{
			Field:   e.Namespace(),
			Message: e.Translate(v.translator),
		})
	}
	return pldErr
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
