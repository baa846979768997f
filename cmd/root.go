package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aventurescence/gearplan/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `   __ _  ___  __ _ _ __ _ __ | | __ _ _ __
  / _` + "`" + ` |/ _ \/ _` + "`" + ` | '__| '_ \| |/ _` + "`" + ` | '_ \
 | (_| |  __/ (_| | |  | |_) | | (_| | | | |
  \__, |\___|\__,_|_|  | .__/|_|\__,_|_| |_|
  |___/                |_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gearplan",
	Short: "A best-in-slot progress tracker for gear-progression games.",
	Long: LOGO + `gearplan figures out, from catalog data alone, which gear belongs to the
current raid tier, imports best-in-slot sets from gearset sites, and tells you
what each missing piece still costs in tomestones, books and upgrade materials.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gearplan.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("catalog", "", "Path to the catalog dump JSON (default from config: catalog.path)")
	rootCmd.PersistentFlags().String("dbpath", "", "Path to SQLite DB file (default: gearplan.sqlite in CWD)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".gearplan")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.gearplan.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("catalog.path", "")
	viper.SetDefault("armory.profile", "")
	viper.SetDefault("player.job", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// catalogPath resolves the catalog dump location from flag or config.
func catalogPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = viper.GetString("catalog.path")
	}
	if path == "" {
		return "", fmt.Errorf("no catalog dump configured: pass --catalog or set catalog.path in ~/.gearplan.yaml")
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("catalog dump not found: %s", path)
	}
	return path, nil
}

// databasePath resolves the sets database location.
func databasePath(cmd *cobra.Command) string {
	dbPath, _ := cmd.Flags().GetString("dbpath")
	if dbPath == "" {
		dbPath = "gearplan.sqlite"
	}
	return dbPath
}

// jobFlag resolves the job from flag or config.
func jobFlag(cmd *cobra.Command) (string, error) {
	job, _ := cmd.Flags().GetString("job")
	if job == "" {
		job = viper.GetString("player.job")
	}
	if job == "" {
		return "", fmt.Errorf("no job given: pass --job or set player.job in ~/.gearplan.yaml")
	}
	return job, nil
}
