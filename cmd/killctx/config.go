package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/killctx/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect settings",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings after file and environment overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Write(cmd.OutOrStdout(), a.settings, format)
		},
	}
	show.Flags().StringVarP(&format, "format", "f", "toml", "toml or yaml")

	cmd.AddCommand(show)
	return cmd
}
