package validator

import (
	"log"
	"strings"

	"irrigation_backend/internal/models"
	"irrigation_backend/pkg/mediaurl"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate, opts Options) {
	// Ошибка регистрации - ошибка программиста, приложение не должно стартовать
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	prefix := opts.UploadPrefix
	if prefix == "" {
		prefix = mediaurl.DefaultUploadPrefix
	}

	// 'mediaref': путь к картинке/файлу, который можно сохранить в записи
	mustRegister("mediaref", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true // пустое ловит 'required'
		}
		switch mediaurl.ClassifyWithPrefix(value, prefix) {
		case mediaurl.KindAbsolute, mediaurl.KindServerRelative:
			return true
		default:
			return false
		}
	})

	mustRegister("contactstatus", validateContactStatus)

	// 'notblank': строка не из одних пробелов
	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

func validateContactStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ContactStatus(value).Valid()
}
