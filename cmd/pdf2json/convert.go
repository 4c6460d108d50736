package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BerylCAtieno/pdf-to-json/internal/client"
	"github.com/BerylCAtieno/pdf-to-json/internal/relay"
	"github.com/BerylCAtieno/pdf-to-json/internal/storage"
	"github.com/BerylCAtieno/pdf-to-json/internal/utils"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.pdf>",
	Short: "Convert a PDF to JSON and optionally relay it",
	Long: `Convert reads a PDF, sends it to the server's /api/convert endpoint and
prints the returned JSON text to stdout exactly as received.

With --copy the result is also placed on the clipboard. With --relay-url the
result is POSTed verbatim (Content-Type: application/json) to that URL and the
target's response is printed, indented, to stderr. An s3://bucket/key target
writes the result to object storage instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := convertOptionsFromViper()
		return runConvert(ctx, args[0], opts, client.SystemClipboard{}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

type convertOptions struct {
	Server       string
	Timeout      time.Duration
	Copy         bool
	RelayURL     string
	RelayTimeout time.Duration
	LogLevel     string
	S3           storage.S3Config
}

func convertOptionsFromViper() convertOptions {
	return convertOptions{
		Server:       viper.GetString("server"),
		Timeout:      viper.GetDuration("timeout"),
		Copy:         viper.GetBool("copy"),
		RelayURL:     viper.GetString("relay-url"),
		RelayTimeout: viper.GetDuration("relay-timeout"),
		LogLevel:     viper.GetString("log-level"),
		S3: storage.S3Config{
			Endpoint:        viper.GetString("s3-endpoint"),
			AccessKeyID:     viper.GetString("s3-access-key"),
			SecretAccessKey: viper.GetString("s3-secret-key"),
			Region:          viper.GetString("s3-region"),
			UseSSL:          viper.GetBool("s3-use-ssl"),
		},
	}
}

func runConvert(ctx context.Context, path string, opts convertOptions, cb client.Clipboard, stdout, stderr io.Writer) error {
	logger := utils.NewLoggerTo(stderr, opts.LogLevel)

	var store storage.ObjectStore
	if opts.S3.Endpoint != "" {
		s, err := storage.NewS3Store(opts.S3)
		if err != nil {
			return err
		}
		store = s
	}

	ctrl := client.NewController(
		client.NewAPIClient(opts.Server, opts.Timeout),
		relay.New(opts.RelayTimeout, store, logger),
		cb,
		logger,
	)

	doc, err := client.LoadDocument(path)
	if err != nil {
		return err
	}
	if err := ctrl.Select(doc); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Converting %s...\n", doc.Name)
	ctrl.Convert(ctx)

	if ctrl.State() == client.ConversionFailed {
		fmt.Fprintf(stderr, "Error: %s\n", ctrl.Error())
		return errors.New(ctrl.Error())
	}

	result, _ := ctrl.Result()
	fmt.Fprintln(stdout, result)

	if opts.Copy {
		ctrl.Copy()
		if ctrl.Copied() {
			fmt.Fprintln(stderr, "Copied!")
		}
	}

	if opts.RelayURL != "" {
		ctrl.SendToRelay(ctx, opts.RelayURL)
		fmt.Fprintf(stderr, "Relay response:\n%s\n", ctrl.RelayResponse())
	}

	return nil
}

func init() {
	convertCmd.Flags().String("server", "http://localhost:8080", "base URL of the pdf-to-json server")
	convertCmd.Flags().Duration("timeout", 2*time.Minute, "timeout for the conversion request")
	convertCmd.Flags().Bool("copy", false, "copy the resulting JSON to the clipboard")
	convertCmd.Flags().String("relay-url", "", "POST the resulting JSON to this URL (or s3://bucket/key)")
	convertCmd.Flags().Duration("relay-timeout", 30*time.Second, "timeout for the relay request")
	convertCmd.Flags().String("s3-endpoint", "", "S3-compatible endpoint for s3:// relay targets, e.g. localhost:9000")
	convertCmd.Flags().String("s3-access-key", "", "S3 access key id")
	convertCmd.Flags().String("s3-secret-key", "", "S3 secret access key")
	convertCmd.Flags().String("s3-region", "", "S3 region (default us-east-1)")
	convertCmd.Flags().Bool("s3-use-ssl", false, "use TLS for the S3 endpoint")

	viper.BindPFlags(convertCmd.Flags())

	rootCmd.AddCommand(convertCmd)
}
