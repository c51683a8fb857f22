package utils

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInitI18NBundleLoadsShippedCatalogs(t *testing.T) {
	viper.Set("i18n.dir", "../i18n")
	InitI18NBundle()

	msg, err := NewLocalizer("ko").Localize(&i18n.LocalizeConfig{
		MessageID: "login_invalid_credentials",
	})
	assert.NoError(t, err)
	assert.Equal(t, "아이디 또는 비밀번호가 올바르지 않습니다", msg)

	msg, err = NewLocalizer("en").Localize(&i18n.LocalizeConfig{
		MessageID: "login_invalid_credentials",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Invalid user ID or password.", msg)
}

func TestInitI18NBundlePanicsWithoutCatalogs(t *testing.T) {
	dir, err := ioutil.TempDir("", "i18n-empty")
	if nil != err {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	viper.Set("i18n.dir", dir)
	assert.Panics(t, InitI18NBundle)
}
