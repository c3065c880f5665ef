package main

import (
	"github.com/spf13/cobra"

	pawpal "github.com/five82/pawpal"
	"github.com/five82/pawpal/internal/changelog"
)

func newChangelogCmd() *cobra.Command {
	var (
		all    bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Show release notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			var entries []changelog.Entry
			if all {
				entries = changelog.Parse(pawpal.Changelog)
			} else if latest := changelog.ParseLatest(pawpal.Changelog); latest != nil {
				entries = []changelog.Entry{*latest}
			}
			return writeEntries(cmd.OutOrStdout(), entries, f)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every release instead of the latest")
	cmd.Flags().StringVarP(&format, "format", "f", string(formatText), "Output format (text, json, yaml)")
	return cmd
}
