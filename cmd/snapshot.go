package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aventurescence/gearplan/internal/utils"
	"github.com/aventurescence/gearplan/pkg/providers"
	"github.com/aventurescence/gearplan/pkg/providers/armory"
	"github.com/aventurescence/gearplan/pkg/storage"
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot [profile-url]",
	Short: "Snapshot currently equipped gear from an armory profile page",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileURL := viper.GetString("armory.profile")
		if len(args) > 0 {
			profileURL = args[0]
		}
		if profileURL == "" {
			return fmt.Errorf("no profile URL: pass one or set armory.profile in ~/.gearplan.yaml")
		}
		proxy, _ := cmd.Flags().GetString("proxy")
		job, _ := cmd.Flags().GetString("job")

		gear, err := armory.Fetch(cmd.Context(), profileURL, providers.FetchOptions{Job: job, Proxy: proxy})
		if err != nil {
			return err
		}
		if gear.Job == "" {
			return fmt.Errorf("could not determine job from profile; pass --job")
		}

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

		if err := db.SaveEquipped(cmd.Context(), gear); err != nil {
			return err
		}
		utils.Log.Infof("Snapshot saved for %s: %d items, avg item level %.1f",
			gear.Job, len(gear.Items), gear.AvgItemLevel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().String("job", "", "Job abbreviation the snapshot is for")
}
