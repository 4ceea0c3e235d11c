package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentstation/eventhub/internal/cmd/output"
	"github.com/agentstation/eventhub/pkg/constants"
	"github.com/agentstation/eventhub/pkg/types"
	"github.com/agentstation/eventhub/pkg/view"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin dashboards and registration review",
	Long: `Review pending registrations, approve or reject them, and inspect
the dashboard aggregates. All subcommands require an admin account.

Examples:
  eventhub admin registrations --status pending
  eventhub admin approve <id>
  eventhub admin reject <id> --reason "Event is invite only"
  eventhub admin stats
  eventhub admin export registrations.csv`,
}

var adminRegistrationsCmd = &cobra.Command{
	Use:   "registrations",
	Short: "List registrations across all users",
	RunE: func(cmd *cobra.Command, _ []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		var regs []types.Registration
		if eventID, _ := cmd.Flags().GetString("event"); eventID != "" {
			regs, err = hub.Registrations().GetEventRegistrations(cmd.Context(), eventID)
		} else {
			regs, err = hub.Registrations().GetAdminRegistrations(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("%s", hub.Registrations().Error())
		}

		status, _ := cmd.Flags().GetString("status")
		regs = view.FilterByStatus(regs, types.RegistrationStatus(status))

		return renderRegistrations(cmd, hub, regs)
	},
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		reg, err := hub.Registrations().ApproveRegistration(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("%s", hub.Registrations().Error())
		}

		loc := locale(hub)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n",
			loc.T("registrations.status"), loc.Status(string(reg.Status)))
		return nil
	},
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a registration with a reason",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")

		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		reg, err := hub.Registrations().RejectRegistration(cmd.Context(), args[0], reason)
		if err != nil {
			return fmt.Errorf("%s", hub.Registrations().Error())
		}

		loc := locale(hub)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n",
			loc.T("registrations.status"), loc.Status(string(reg.Status)))
		return nil
	},
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the registration aggregate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		if perEvent, _ := cmd.Flags().GetBool("per-event"); perEvent {
			stats, err := hub.Registrations().GetEventRegistrationStats(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", hub.Registrations().Error())
			}
			format := output.Format(globalFlags.Output)
			if format == output.FormatTable || format == output.FormatCSV {
				ids := make([]string, 0, len(stats))
				for id := range stats {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				return formatter().Format(cmd.OutOrStdout(), output.EventStatsData(stats, ids, locale(hub)))
			}
			return formatter().Format(cmd.OutOrStdout(), stats)
		}

		stats, err := hub.Registrations().GetAdminStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s", hub.Registrations().Error())
		}
		format := output.Format(globalFlags.Output)
		if format == output.FormatTable || format == output.FormatCSV {
			return formatter().Format(cmd.OutOrStdout(), output.StatsData(stats, locale(hub)))
		}
		return formatter().Format(cmd.OutOrStdout(), stats)
	},
}

var adminExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all registrations to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		regs, err := hub.Registrations().GetAdminRegistrations(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s", hub.Registrations().Error())
		}

		rows := view.RegistrationRows(regs)
		data := output.Data{Headers: rows[0], Rows: rows[1:]}

		file, err := os.OpenFile(args[0], os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.SecureFilePermissions)
		if err != nil {
			return err
		}
		defer file.Close()

		if err := (&output.CSVFormatter{}).Format(file, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d registrations to %s\n", len(regs), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminRegistrationsCmd)
	adminCmd.AddCommand(adminApproveCmd)
	adminCmd.AddCommand(adminRejectCmd)
	adminCmd.AddCommand(adminStatsCmd)
	adminCmd.AddCommand(adminExportCmd)

	adminRegistrationsCmd.Flags().String("event", "", "Only registrations for this event id")
	adminRegistrationsCmd.Flags().String("status", "", "Only registrations in this status: pending, approved, rejected")

	adminRejectCmd.Flags().String("reason", "", "Why the registration is rejected")
	_ = adminRejectCmd.MarkFlagRequired("reason")

	adminStatsCmd.Flags().Bool("per-event", false, "Break the aggregate down per event")
}
