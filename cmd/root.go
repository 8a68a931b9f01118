package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meusprojetos/minhasferramentas/internal/utils"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minhasferramentas",
	Short: "Small everyday tools, starting with a price-per-kg calculator.",
	Long: `minhasferramentas collects small everyday tools.

Run "minhasferramentas tools" to list them, "minhasferramentas kg <grams> <price>"
for a quick calculation, or "minhasferramentas session" for an interactive one.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return utils.SetLogLevel(viper.GetString("loglevel"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.minhasferramentas.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "warn", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("dbpath", "", "Path to the prefs SQLite file (default: $HOME/.config/minhasferramentas/prefs.sqlite)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep history in memory only; nothing is written to disk")
	rootCmd.PersistentFlags().String("ordering", "sequence", "How history is persisted: sequence (keeps order) or legacy-set (unordered set, sorted on load)")
	rootCmd.PersistentFlags().String("locale", "pt", "Message language: pt or en")

	_ = viper.BindPFlag("loglevel", rootCmd.PersistentFlags().Lookup("loglevel"))
	_ = viper.BindPFlag("dbpath", rootCmd.PersistentFlags().Lookup("dbpath"))
	_ = viper.BindPFlag("ephemeral", rootCmd.PersistentFlags().Lookup("ephemeral"))
	_ = viper.BindPFlag("history.ordering", rootCmd.PersistentFlags().Lookup("ordering"))
	_ = viper.BindPFlag("format.locale", rootCmd.PersistentFlags().Lookup("locale"))
}

// initConfig reads in a .env file, the config file and ENV variables if set.
func initConfig() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".minhasferramentas")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MINHASFERRAMENTAS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("db.timeout", "5s")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			utils.Log.Warnf("Could not read config file: %v", err)
		}
	} else {
		utils.Log.Debugf("Using config file %s", filepath.Clean(viper.ConfigFileUsed()))
	}
}
