package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/pawpal/internal/app"
)

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage saved animals",
	}
	cmd.AddCommand(newFavoritesListCmd(), newFavoritesClearCmd())
	return cmd
}

func newFavoritesListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			return withEnv(cmd, func(env *app.Env) error {
				return writeFavorites(cmd.OutOrStdout(), env.Prefs.Favorites.List(), f)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(formatText), "Output format (text, json, yaml)")
	return cmd
}

func newFavoritesClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *app.Env) error {
				n := env.Prefs.Favorites.Len()
				if err := env.Prefs.Favorites.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear favorites: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d favorites.\n", n)
				return nil
			})
		},
	}
}
