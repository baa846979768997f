package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/tier"
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run tier discovery against the catalog and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := catalogPath(cmd)
		if err != nil {
			return err
		}
		cat, err := catalog.LoadDump(path)
		if err != nil {
			return err
		}

		profile := tier.Discover(cat)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Raid gear prefix\t%s\n", orDash(profile.RaidGearPrefix))
		fmt.Fprintf(w, "Augmented gear prefix\t%s\n", orDash(profile.AugmentedGearPrefix))
		fmt.Fprintf(w, "Tome gear prefix\t%s\n", orDash(profile.BaseTomeGearPrefix))
		fmt.Fprintf(w, "Tome gear item level\t%d\n", profile.TomeGearItemLevel)
		fmt.Fprintf(w, "Food min item level\t%d\n", profile.FoodMinItemLevel)
		fmt.Fprintf(w, "Book keyword\t%s\n", orDash(profile.BookKeyword))
		fmt.Fprintf(w, "Material family\t%s\n", orDash(profile.MaterialKeyword))
		fmt.Fprintf(w, "Universal tomestone\t%d\n", profile.UniversalTomestoneID)
		fmt.Fprintf(w, "Twine / Glaze / Solvent\t%d / %d / %d\n", profile.TwineID, profile.GlazeID, profile.SolventID)
		for floor := 1; floor <= 4; floor++ {
			if id, ok := profile.BookItems[floor]; ok {
				fmt.Fprintf(w, "Floor %d book\t%d\n", floor, id)
			}
		}
		for i, name := range profile.RaidNames {
			fmt.Fprintf(w, "Floor %d\t%s\n", i+1, name)
		}
		return w.Flush()
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
