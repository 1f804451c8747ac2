// Package validate configures go-playground/validator for request DTOs.
// Struct rules are read from `binding` tags so gin and the service layer share them.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// BDMobileTag validates an 11-digit local mobile number starting with 01.
const BDMobileTag = "bdmobile"

var bdMobileRegex = regexp.MustCompile(`^01\d{9}$`)

// Validator wraps a validator instance with English messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator with the custom tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")

	// report JSON names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	translator, _ := ut.New(english, english).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	_ = v.RegisterValidation(BDMobileTag, func(fl validator.FieldLevel) bool {
		return IsBDMobile(fl.Field().String())
	})
	_ = v.RegisterTranslation(BDMobileTag, translator,
		func(t ut.Translator) error {
			return t.Add(BDMobileTag, "{0} must be an 11 digit mobile number starting with 01", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(BDMobileTag, fe.Field())
			return s
		},
	)

	return &Validator{validate: v, translator: translator}
}

// IsBDMobile reports whether s matches ^01\d{9}$.
func IsBDMobile(s string) bool {
	return bdMobileRegex.MatchString(s)
}

// Struct validates a struct by its binding tags.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Var validates a single value against tag.
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// Messages renders validation errors as "field: message" pairs sorted by field.
// Errors that did not come from the validator are returned verbatim.
func (v *Validator) Messages(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(v.translator))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// Gin adapts the Validator to gin's binding.StructValidator.
func (v *Validator) Gin() *GinValidator {
	return &GinValidator{v: v}
}

// GinValidator plugs Validator into gin binding.
type GinValidator struct {
	v *Validator
}

// ValidateStruct implements binding.StructValidator.
func (g *GinValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	val := reflect.ValueOf(obj)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}
	return g.v.Struct(obj)
}

// Engine implements binding.StructValidator.
func (g *GinValidator) Engine() interface{} {
	return g.v.validate
}
