package main

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInitConfigReadsPrefixedEnv(t *testing.T) {
	t.Cleanup(viper.Reset)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PDF2JSON_RELAY_URL", "http://relay.test/hook")

	initConfig()

	assert.Equal(t, "http://relay.test/hook", viper.GetString("relay-url"))
}
