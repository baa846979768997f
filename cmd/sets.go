package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aventurescence/gearplan/internal/utils"
	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/storage"
)

// setsCmd represents the sets command
var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Manage stored best-in-slot sets",
}

var setsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(databasePath(cmd))
		if err != nil {
			return err
		}
		defer db.Close()

		sets, err := db.ListSets(cmd.Context())
		if err != nil {
			return err
		}
		if len(sets) == 0 {
			fmt.Println("No stored sets.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "JOB\tNAME\tSOURCE\tSLOTS\tUPDATED\t")
		for _, s := range sets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t\n",
				s.Job, s.Name, s.Source, s.SlotCount, s.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var setsClearCmd = &cobra.Command{
	Use:   "clear <job> [slot]",
	Short: "Delete a job's set, or clear a single slot of it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		job := args[0]

		dbPath := databasePath(cmd)
		lock, err := utils.NewDBLock(dbPath)
		if err != nil {
			return err
		}
		if err := lock.Lock(); err != nil {
			return err
		}
		defer lock.Unlock()

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if len(args) == 2 {
			slot, err := strconv.Atoi(args[1])
			if err != nil || !catalog.ValidSlot(catalog.SlotID(slot)) {
				return fmt.Errorf("invalid slot: %s", args[1])
			}
			if err := db.ClearSlot(cmd.Context(), job, catalog.SlotID(slot)); err != nil {
				return err
			}
			utils.Log.Infof("Cleared slot %d of %s", slot, job)
			return nil
		}

		if err := db.DeleteSet(cmd.Context(), job); err != nil {
			return err
		}
		utils.Log.Infof("Deleted set for %s", job)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setsCmd)
	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsClearCmd)
}
