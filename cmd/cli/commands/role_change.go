package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/services"
)

// RequestRoleChangeCmd creates the requestRoleChange command
func RequestRoleChangeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "requestRoleChange <role>",
		Short: "Request a move to a different role (team_leader, level_1 or level_2)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requested, err := model.ParseRole(args[0])
			if err != nil {
				return fmt.Errorf("role must be one of team_leader, level_1, level_2: %w", err)
			}

			volunteer, err := app.CurrentVolunteer()
			if err != nil {
				return loginHint(err)
			}

			app.Logger.Debug("requestRoleChange command",
				zap.String("volunteer_id", volunteer.ID),
				zap.String("requested_role", requested.String()))

			request, err := services.RequestRoleChange(app.Ctx, app.Database, app.Logger, volunteer.ID, requested)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Role change to %s requested\n", requested.Display())
			fmt.Printf("Request ID: %s (an administrator will approve or reject it)\n", request.ID)
			return nil
		},
	}
}

// ApproveRoleChangeCmd creates the approveRoleChange command
func ApproveRoleChangeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "approveRoleChange <request-id>",
		Short: "Approve a pending role change request (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID := args[0]

			admin, err := app.CurrentVolunteer()
			if err != nil {
				return loginHint(err)
			}

			if err := services.ApproveRoleChange(app.Ctx, app.Database, app.Logger, admin, requestID); err != nil {
				return err
			}

			fmt.Printf("\n✓ Role change request %s approved\n", requestID)
			fmt.Println("Existing assignments keep their signed-up role; mismatches are logged for follow-up.")
			return nil
		},
	}
}

// RejectRoleChangeCmd creates the rejectRoleChange command
func RejectRoleChangeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rejectRoleChange <request-id>",
		Short: "Reject a pending role change request (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID := args[0]

			admin, err := app.CurrentVolunteer()
			if err != nil {
				return loginHint(err)
			}

			if err := services.RejectRoleChange(app.Ctx, app.Database, app.Logger, admin, requestID); err != nil {
				return err
			}

			fmt.Printf("\n✓ Role change request %s rejected\n", requestID)
			return nil
		},
	}
}
