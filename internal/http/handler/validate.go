package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"empapi/internal/model"
)

type requestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var validate = newRequestValidator()

func joinValues[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	enums := []struct {
		tag     string
		valid   func(string) bool
		allowed string
	}{
		{"jobtitle", func(s string) bool { return model.JobTitle(s).Valid() }, joinValues(model.JobTitles)},
		{"mission", func(s string) bool { return model.Mission(s).Valid() }, joinValues(model.Missions)},
	}
	for _, e := range enums {
		_ = v.RegisterValidation(e.tag, func(fl validator.FieldLevel) bool {
			return e.valid(fl.Field().String())
		})
		_ = v.RegisterTranslation(e.tag, trans, func(t ut.Translator) error {
			return t.Add(e.tag, "{0} must be one of "+e.allowed, true)
		}, func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(fe.Tag(), fe.Field())
			return msg
		})
	}

	return &requestValidator{validate: v, translator: trans}
}

// Struct validates req and returns a client-safe message for the first failure.
func (rv *requestValidator) Struct(req any) (string, bool) {
	err := rv.validate.Struct(req)
	if err == nil {
		return "", true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Translate(rv.translator), false
	}
	return "invalid request", false
}
