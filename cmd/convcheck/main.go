// Package main provides the convcheck CLI tool for validating a record
// converter configuration offline.
//
// Usage:
//
//	convcheck validate --config ./configs/config.local.yaml
//
// The tool loads the configuration, builds the schema table, resolves every
// configured source (including registry subjects), and reports a per-source
// result. It exits non-zero if any source fails to resolve.
package main

import (
	"fmt"
	"os"

	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/config"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/schema"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "convcheck",
		Short:   "Validate record converter configuration",
		Long:    `convcheck resolves every schema a converter configuration references and reports what is broken before the pipeline starts.`,
		Version: version,
	}

	rootCmd.AddCommand(newValidateCmd())

	return rootCmd
}

func newValidateCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Resolve every configured source schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, configFile)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "path to the configuration file (required)")
	_ = cmd.MarkFlagRequired("config") //nolint:errcheck // flag exists

	return cmd
}

func runValidate(cmd *cobra.Command, configFile string) error {
	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file [%s]: %w", configFile, err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	var fetcher schema.Fetcher
	if cfg.Registry.URL != "" {
		clientConf := schemaregistry.NewConfig(cfg.Registry.URL)
		clientConf.RequestTimeoutMs = int(cfg.Registry.RequestTimeout.Milliseconds())

		client, err := schemaregistry.NewClient(clientConf)
		if err != nil {
			return fmt.Errorf("failed to create schema registry client: %w", err)
		}
		defer client.Close() //nolint:errcheck // process exits right after

		fetcher = schema.NewConfluentFetcher(client)
	}

	table, err := schema.NewTable(cfg, fetcher, zap.NewNop())
	if err != nil {
		return err
	}

	sources := table.Sources()
	failed := 0
	for _, src := range sources {
		if _, err := table.Lookup(src.ID); err != nil {
			failed++
			cmd.Printf("FAIL %s (%s %s): %v\n", src.ID, src.Origin, src.Locator, err)
			continue
		}
		cmd.Printf("OK   %s (%s %s)\n", src.ID, src.Origin, src.Locator)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed to resolve", failed, len(sources))
	}

	cmd.Printf("all %d sources resolved\n", len(sources))
	return nil
}
