package command

import (
	"os/signal"
	"syscall"

	"playground/config"
	"playground/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery on localhost",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Server.Port = port
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			defer zap.L().Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.StartServer(ctx, cfg)
		},
	}
	cmd.Flags().String("port", "", "override SERVER_PORT")
	return cmd
}
