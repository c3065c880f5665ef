package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/pawpal/internal/app"
	"github.com/five82/pawpal/internal/prefs"
	"github.com/five82/pawpal/internal/rescue"
)

const defaultSearchLimit = 20

type searchFlags struct {
	animalType string
	location   string
	distance   int
	sort       string
	page       int
	limit      int
}

func newSearchCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search adoptable animals",
		Long:  "Searches adoptable animals. Unset flags fall back to the preferences saved in the TUI.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *app.Env) error {
				query, err := buildQuery(cmd, flags, env.Prefs)
				if err != nil {
					return err
				}
				page, err := env.Client.SearchAnimals(cmd.Context(), query)
				if err != nil {
					return err
				}
				return writeAnimals(cmd.OutOrStdout(), page)
			})
		},
	}

	cmd.Flags().StringVarP(&flags.animalType, "type", "t", "", "Species, e.g. Dog or Cat")
	cmd.Flags().StringVarP(&flags.location, "location", "l", "", "ZIP code or \"City, ST\"")
	cmd.Flags().IntVarP(&flags.distance, "distance", "d", 0, fmt.Sprintf("Radius in miles (%d-%d)", prefs.MinDistance, prefs.MaxDistance))
	cmd.Flags().StringVarP(&flags.sort, "sort", "s", "", "recent, -recent, distance, -distance or random")
	cmd.Flags().IntVarP(&flags.page, "page", "p", 1, "Result page")
	cmd.Flags().IntVar(&flags.limit, "limit", defaultSearchLimit, "Results per page")

	return cmd
}

// buildQuery starts from the saved preferences and applies the flags the
// user actually passed.
func buildQuery(cmd *cobra.Command, flags searchFlags, set *prefs.Set) (rescue.AnimalQuery, error) {
	loc := set.Location.Get()
	order := set.Sort.Get()
	animalType := set.Species.Get()

	if cmd.Flags().Changed("type") {
		animalType = flags.animalType
	}
	if cmd.Flags().Changed("location") {
		loc.Location = flags.location
	}
	if cmd.Flags().Changed("distance") {
		loc.Distance = prefs.ClampDistance(flags.distance)
	}
	if cmd.Flags().Changed("sort") {
		parsed, err := prefs.ParseSortOrder(flags.sort)
		if err != nil {
			return rescue.AnimalQuery{}, err
		}
		order = parsed
	}

	return rescue.AnimalQuery{
		Type:     animalType,
		Location: loc.Location,
		Distance: loc.Distance,
		Sort:     string(order.Effective(loc.IsSet())),
		Page:     max(flags.page, 1),
		Limit:    max(flags.limit, 1),
	}, nil
}
