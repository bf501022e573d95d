package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// WatchCmd creates the watch command
func WatchCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream live shift and assignment changes from the backend",
		Long: `Stream live shift and assignment changes until interrupted.
Every change is printed as it lands, so a second terminal shows sign-ups
and withdrawals from other volunteers in real time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(app.Ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Println("\nWatching for changes (Ctrl-C to stop)...")

			err := app.Database.WatchChanges(ctx, func(payload string) {
				fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), payload)
			})
			if errors.Is(err, context.Canceled) {
				fmt.Println("\nStopped watching.")
				return nil
			}
			if err != nil {
				app.Logger.Error("Change feed terminated", zap.Error(err))
			}
			return err
		},
	}
}
