// Package main is the pdf2json command-line client. It sends a PDF to the
// conversion server, prints the structured JSON and can relay it onwards.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// envKeyReplacer maps flag names like relay-url to PDF2JSON_RELAY_URL.
var envKeyReplacer = strings.NewReplacer("-", "_")

var rootCmd = &cobra.Command{
	Use:   "pdf2json",
	Short: "Turn PDFs into LLM-structured JSON",
	Long: `pdf2json uploads a PDF to a pdf-to-json server, which extracts the text and
asks a language model to restructure it as JSON. The result is printed, can be
copied to the clipboard, and can be POSTed to any URL (or written to an
s3://bucket/key object) for payload testing.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf2json.yaml or ~/.config/pdf2json/pdf2json.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2json")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf2json"))
		}
	}

	viper.SetEnvPrefix("PDF2JSON")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
