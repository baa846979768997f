package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/simulate"
	"github.com/aventurescence/gearplan/pkg/storage"
)

var statNames = map[catalog.StatID]string{
	catalog.StatStrength:      "Strength",
	catalog.StatDexterity:     "Dexterity",
	catalog.StatVitality:      "Vitality",
	catalog.StatIntelligence:  "Intelligence",
	catalog.StatMind:          "Mind",
	catalog.StatPiety:         "Piety",
	catalog.StatTenacity:      "Tenacity",
	catalog.StatDirectHit:     "Direct Hit",
	catalog.StatCriticalHit:   "Critical Hit",
	catalog.StatDetermination: "Determination",
	catalog.StatSkillSpeed:    "Skill Speed",
	catalog.StatSpellSpeed:    "Spell Speed",
}

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print full-set stat totals for the stored best-in-slot set",
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

		foodID, _ := cmd.Flags().GetUint32("food")
		if foodID == 0 {
			foodID = set.FoodID
		}

		engine := simulate.NewEngine(cat)
		totals := engine.FullSetStats(set.Slots, foodID)

		stats := make([]catalog.StatID, 0, len(totals))
		for stat := range totals {
			stats = append(stats, stat)
		}
		sort.Slice(stats, func(i, j int) bool { return stats[i] < stats[j] })

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		for _, stat := range stats {
			name := statNames[stat]
			if name == "" {
				name = fmt.Sprintf("Stat %d", stat)
			}
			fmt.Fprintf(w, "%s\t%d\t\n", name, totals[stat])
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("job", "", "Job abbreviation to simulate")
	statsCmd.Flags().Uint32("food", 0, "Food item id to apply (defaults to the set's)")
}
