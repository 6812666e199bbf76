package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"claim_relay/config"
	"claim_relay/handlers"
	"claim_relay/pkg/logging"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claim-relay",
	Short: "Authenticated relay between the claim wizard and a workflow webhook",
	Long: `claim-relay forwards claim wizard requests (JSON or multipart uploads) to an
externally hosted workflow-automation webhook and relays its replies.

Run "claim-relay serve" for the HTTP relay and browser client, or
"claim-relay claim" to walk through a claim from the terminal.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig(viper.GetViper())
		logging.Init(cfg.AppEnv, cfg.LogLevel)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "claim-relay", handlers.Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the optional config file and binds environment variables.
// Values from .env are already in the environment at this point.
func initConfig() {
	config.Bind(viper.GetViper())
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}
