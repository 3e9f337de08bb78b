package command

import (
	"os"

	"playground/config"
	"playground/internal/logger"

	"github.com/spf13/cobra"
)

const AppName = "playground"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Thesis Playground - gallery with per-device feedback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(); err != nil {
				return err
			}
			_, err := logger.Init(config.AppConfig.Env)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.AddCommand(
		NewServeCmd(),
		NewFeedbackCmd(),
	)
	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
