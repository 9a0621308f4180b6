package main

import (
	"github.com/spf13/cobra"
)

func newMapCommand(opts *rootOptions) *cobra.Command {
	var primary, secondary string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Print the education mapping for a thinking style",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), engine.MapEducation(primary, secondary))
		},
	}

	cmd.Flags().StringVar(&primary, "primary", "", "Primary style, e.g. analytical")
	cmd.Flags().StringVar(&secondary, "secondary", "", "Secondary style")
	_ = cmd.MarkFlagRequired("primary")

	return cmd
}
