package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/cmd/cli/commands"
	"github.com/cedarwatch/shiftdesk/internal/config"
	"github.com/cedarwatch/shiftdesk/pkg/postgres"
	"github.com/cedarwatch/shiftdesk/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftdesk",
		Short: "Shiftdesk CLI - Manage volunteer shift scheduling",
		Long:  `A CLI tool for volunteer shift sign-ups, withdrawals, bulk shift generation and role management.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Database != nil {
					app.Database.Close()
				}
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	app = &commands.AppContext{}
	rootCmd.AddCommand(commands.LoginCmd(app))
	rootCmd.AddCommand(commands.LogoutCmd(app))
	rootCmd.AddCommand(commands.ListShiftsCmd(app))
	rootCmd.AddCommand(commands.SignUpCmd(app))
	rootCmd.AddCommand(commands.SignUpPairCmd(app))
	rootCmd.AddCommand(commands.WithdrawCmd(app))
	rootCmd.AddCommand(commands.WithdrawPairCmd(app))
	rootCmd.AddCommand(commands.GenerateShiftsCmd(app))
	rootCmd.AddCommand(commands.WatchCmd(app))
	rootCmd.AddCommand(commands.RequestRoleChangeCmd(app))
	rootCmd.AddCommand(commands.ApproveRoleChangeCmd(app))
	rootCmd.AddCommand(commands.RejectRoleChangeCmd(app))
	rootCmd.AddCommand(commands.UpdateProfileCmd(app))
	rootCmd.AddCommand(commands.UploadAvatarCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the backend connection
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	// Load OAuth client configuration
	app.Logger.Info("Loading OAuth client configuration")
	app.OAuthCfg, err = config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.Logger.Debug("OAuth configuration loaded successfully")

	// Connect to the backend
	connString, err := app.Cfg.DatabaseURL()
	if err != nil {
		return err
	}

	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, connString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Logger.Info("Running migrations")
	if err := app.Database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database initialized successfully")

	return nil
}
