package webutil

import (
	"log"
	"reflect"
	"strings"

	ptBR "github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptbr_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

// Validator é a instância compartilhada por toda a aplicação.
var Validator *validator.Validate

// Trans traduz as mensagens de erro para português.
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"name":          "nome",
	"email":         "e-mail",
	"password":      "senha",
	"product_slug":  "produto",
	"coupon_code":   "cupom",
	"day_number":    "dia",
	"code":          "código",
	"price_cents":   "preço",
	"discount_type": "tipo de desconto",
	"title":         "título",
	"slug":          "slug",
	// ... outros campos entram aqui conforme necessário ...
}

func init() {
	Validator = validator.New()

	// usa o nome do campo do JSON nas mensagens
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// locale pt_BR e tradutor
	brazilian := ptBR.New()
	uni := ut.New(brazilian, brazilian)
	var found bool
	Trans, found = uni.GetTranslator("pt_BR")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ptbr_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// sobrescreve as mensagens mais comuns usando o nome traduzido do campo
	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			fieldName := fe.Field()
			translatedFieldName, ok := fieldNameTranslations[fieldName]
			if !ok {
				translatedFieldName = fieldName
			}
			t, _ := ut.T(tag, translatedFieldName)
			return t
		})
	}

	registerTranslation("required", "O campo {0} é obrigatório.")
	registerTranslation("email", "O campo {0} não é um e-mail válido.")

	// min e max precisam do parâmetro da tag
	registerWithParam := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			fieldName := fe.Field()
			translatedFieldName, ok := fieldNameTranslations[fieldName]
			if !ok {
				translatedFieldName = fieldName
			}
			t, _ := ut.T(tag, translatedFieldName, fe.Param())
			return t
		})
	}

	registerWithParam("min", "O campo {0} deve ter pelo menos {1} caracteres.")
	registerWithParam("max", "O campo {0} deve ter no máximo {1} caracteres.")
}
