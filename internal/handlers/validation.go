package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_translations "github.com/go-playground/validator/v10/translations/pt_BR"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

var (
	translatorOnce sync.Once
	translator     ut.Translator
)

// setupValidator registra as mensagens em português no validador do gin
// e usa o nome do campo JSON nas mensagens.
func setupValidator() ut.Translator {
	translatorOnce.Do(func() {
		locale := pt_BR.New()
		uni := ut.New(locale, locale)
		translator, _ = uni.GetTranslator("pt_BR")

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = pt_translations.RegisterDefaultTranslations(v, translator)
	})
	return translator
}

// bindJSON faz o bind e responde 400 com o primeiro erro de campo traduzido.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		httperr.BadRequest(c, "invalid_request", verrs[0].Translate(setupValidator()))
		return false
	}

	httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
	return false
}

// bindQuery é o mesmo para query string.
func bindQuery(c *gin.Context, req any) bool {
	err := c.ShouldBindQuery(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		httperr.BadRequest(c, "invalid_request", verrs[0].Translate(setupValidator()))
		return false
	}

	httperr.BadRequest(c, "invalid_request", "Parâmetros inválidos.")
	return false
}
