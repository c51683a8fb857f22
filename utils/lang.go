package utils

import (
	"fmt"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var bundle *i18n.Bundle

// InitI18NBundle loads every yaml catalog from the configured i18n
// directory. English is the fallback language; the shipped UI language
// is Korean.
func InitI18NBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	dir := viper.GetString("i18n.dir")
	catalogs, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if nil != err || len(catalogs) == 0 {
		panic(fmt.Sprintf("no message catalogs under %s", dir))
	}
	for _, file := range catalogs {
		bundle.MustLoadMessageFile(file)
	}
}

func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang)
}
