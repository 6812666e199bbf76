package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"claim_relay/client"
	"claim_relay/wizard"
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Walk through a claim from the terminal",
	Long: `Drive the claim wizard against a running relay:
start a workflow, upload an invoice, pick products and submit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		relay := client.NewRelayClient(
			viper.GetString("server"),
			viper.GetString("auth_user"),
			viper.GetString("auth_pass"),
			viper.GetDuration("client_timeout"),
		)
		view := newTerminalView(cmd.OutOrStdout())
		ctrl := wizard.NewController(relay, view)
		return runSession(cmd.Context(), ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	claimCmd.Flags().String("server", "http://localhost:3000", "relay base URL")
	claimCmd.Flags().String("user", "", "Basic auth user (env AUTH_USER)")
	claimCmd.Flags().String("password", "", "Basic auth password (env AUTH_PASS)")
	claimCmd.Flags().Duration("timeout", 2*time.Minute, "per request timeout, 0 disables it")
	_ = viper.BindPFlag("server", claimCmd.Flags().Lookup("server"))
	_ = viper.BindPFlag("auth_user", claimCmd.Flags().Lookup("user"))
	_ = viper.BindPFlag("auth_pass", claimCmd.Flags().Lookup("password"))
	_ = viper.BindPFlag("client_timeout", claimCmd.Flags().Lookup("timeout"))
	rootCmd.AddCommand(claimCmd)
}
