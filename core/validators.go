package core

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const DateLayout = "2006-01-02"

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	isoDateTag  = "isodate"
	isoDateText = "must be a date formatted as YYYY-MM-DD"

	hhmmTag   = "hhmm"
	hhmmText  = "must be a time formatted as HH:MM"
	hhmmRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// NewValidate returns a validator and its english translator with the custom validators registered.
func NewValidate() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	InitValidators(validate, translator)
	return validate, translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)
	_ = validate.RegisterValidation(isoDateTag, isoDateValidation)
	RegisterCustomTranslation(validate, translator, isoDateTag, isoDateText)
	_ = validate.RegisterValidation(hhmmTag, hhmmValidation)
	RegisterCustomTranslation(validate, translator, hhmmTag, hhmmText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isoDateValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

// hhmmValidation only allows 24h clock times, eg. 08:30.
func hhmmValidation(fl validator.FieldLevel) bool {
	return hhmmRegex.MatchString(fl.Field().String())
}
