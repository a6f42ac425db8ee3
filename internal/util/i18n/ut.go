package i18n

import (
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
)

// UT holds the locales validation messages are available in. English is the fallback.
var UT = ut.New(en.New(), en.New(), es.New(), fr.New(), ja.New())
