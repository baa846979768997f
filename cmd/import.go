package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aventurescence/gearplan/internal/utils"
	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/gearset"
	"github.com/aventurescence/gearplan/pkg/providers"
	etroprovider "github.com/aventurescence/gearplan/pkg/providers/etro"
	xivgearprovider "github.com/aventurescence/gearplan/pkg/providers/xivgear"
	"github.com/aventurescence/gearplan/pkg/storage"
	"github.com/aventurescence/gearplan/pkg/tier"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <gearset-url>",
	Short: "Import a best-in-slot set from a gearset site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawURL := args[0]
		proxy, _ := cmd.Flags().GetString("proxy")
		job, _ := cmd.Flags().GetString("job")

		provider, ok := providers.Resolve(rawURL,
			&etroprovider.Provider{},
			&xivgearprovider.Provider{},
		)
		if !ok {
			return fmt.Errorf("no provider recognizes %q", rawURL)
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

		imported, err := provider.Fetch(cmd.Context(), rawURL, providers.FetchOptions{Job: job, Proxy: proxy})
		if err != nil {
			return err
		}
		if job == "" {
			job = imported.Job
		}
		if job == "" {
			return fmt.Errorf("provider %s returned no job; pass --job", provider.Name())
		}

		set := gearset.NewSet(job)
		stored := imported.Apply(set, profile, cat)
		if stored == 0 {
			return fmt.Errorf("gearset %q contained no storable slots", imported.Name)
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

		if err := db.SaveSet(cmd.Context(), set); err != nil {
			return err
		}
		utils.Log.Infof("Imported %q (%s) for %s: %d slots", set.Name, provider.Name(), job, stored)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("job", "", "Job abbreviation the set is for (defaults to the provider's)")
}
