package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/baechuer/cityevents/services/nearby-service/internal/logger"
)

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "nearby-tool",
		Short:        "Operator commands for the nearby service",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitWithWriter(cmd.ErrOrStderr())
		},
	}

	root.AddCommand(schemaCommand(), seedCommand(), searchCommand())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
