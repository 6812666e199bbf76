package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"claim_relay/bootstrap"
	"claim_relay/config"
	"claim_relay/pkg/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP relay and the browser client",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig(viper.GetViper())
		app, err := bootstrap.NewApp(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- app.Listen() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logging.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (env PORT)")
	serveCmd.Flags().String("webhook-url", "", "default webhook URL for trigger-workflow (env WEBHOOK_URL)")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("webhook_url", serveCmd.Flags().Lookup("webhook-url"))
	rootCmd.AddCommand(serveCmd)
}
