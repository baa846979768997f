package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/compare"
	"github.com/aventurescence/gearplan/pkg/storage"
	"github.com/aventurescence/gearplan/pkg/tier"
)

var slotNames = map[catalog.SlotID]string{
	catalog.SlotMainHand: "Main Hand",
	catalog.SlotOffHand:  "Off Hand",
	catalog.SlotHead:     "Head",
	catalog.SlotBody:     "Body",
	catalog.SlotHands:    "Hands",
	catalog.SlotLegs:     "Legs",
	catalog.SlotFeet:     "Feet",
	catalog.SlotEars:     "Ears",
	catalog.SlotNeck:     "Neck",
	catalog.SlotWrists:   "Wrists",
	catalog.SlotRingR:    "Ring R",
	catalog.SlotRingL:    "Ring L",
}

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare equipped gear against the stored best-in-slot set",
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := jobFlag(cmd)
		if err != nil {
			return err
		}

		catPath, err := catalogPath(cmd)
		if err != nil {
			return err
		}
		cat, err := catalog.LoadDump(catPath)
		if err != nil {
			return err
		}
		profile := tier.Discover(cat)

		db, err := storage.Open(databasePath(cmd))
		if err != nil {
			return err
		}
		defer db.Close()

		set, err := db.GetSet(cmd.Context(), job)
		if err != nil {
			return err
		}
		if set == nil {
			return fmt.Errorf("no stored set for %s; run 'gearplan import' first", job)
		}
		equipped, err := db.GetEquipped(cmd.Context(), job)
		if err != nil {
			return err
		}

		engine := compare.NewEngine(cat, profile)
		comparisons, costs := engine.Compare(equipped.Items, set)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SLOT\tTARGET\tOWNED\tNEEDS\t")
		for _, c := range comparisons {
			name := "-"
			if c.Target != nil {
				name = c.Target.Name
			}
			owned := ""
			if c.Owned {
				owned = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", slotNames[c.Slot], name, owned, c.Label)
		}
		w.Flush()

		fmt.Println()
		fmt.Printf("Tomestones: %d", costs.Tomestones)
		if costs.UniversalTomestones > 0 {
			fmt.Printf(" (+%d universal)", costs.UniversalTomestones)
		}
		fmt.Println()
		fmt.Printf("Books: 1:%d 2:%d 3:%d 4:%d\n", costs.Books[1], costs.Books[2], costs.Books[3], costs.Books[4])
		fmt.Printf("Twine: %d  Glaze: %d  Solvent: %d\n", costs.Twine, costs.Glaze, costs.Solvent)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().String("job", "", "Job abbreviation to compare")
}
