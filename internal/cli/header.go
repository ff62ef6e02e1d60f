package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/sheeter"
)

func newHeaderCmd(root *rootFlags) *cobra.Command {
	var flags convertFlags
	cmd := &cobra.Command{
		Use:   "header",
		Short: "Write only the header row of a schema",
		Example: `  # Start a CSV file with the schema's column names
  sheeter header --schema orders.yaml -f csv > orders.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, &flags)
			if err != nil {
				return err
			}
			cfg.Schema.Header = true
			schema, err := cfg.Schema.Build()
			if err != nil {
				return err
			}
			format, err := sheeter.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			log, err := root.logger()
			if err != nil {
				return err
			}
			sink, err := sheeter.NewSink(cmd.OutOrStdout(), format, schema)
			if err != nil {
				return err
			}
			// No events: closing emits the header on its own.
			g := sheeter.New(sink, schema, sheeter.Options{Logger: log})
			if err := g.Close(); err != nil {
				return fmt.Errorf("write header: %w", err)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "YAML config with format and schema")
	f.StringVarP(&flags.schema, "schema", "s", "", "YAML schema file")
	f.StringVarP(&flags.format, "format", "f", "", "output format (default table)")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, f := range sheeter.Formats() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), f); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "go-template=<template>")
			return err
		},
	}
}
