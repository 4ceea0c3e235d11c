package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/eventhub"
	"github.com/agentstation/eventhub/internal/cmd/output"
	"github.com/agentstation/eventhub/pkg/types"
	"github.com/agentstation/eventhub/pkg/view"
)

var registrationsCmd = &cobra.Command{
	Use:     "registrations",
	Aliases: []string{"regs"},
	Short:   "Track your event registrations",
	Long: `List your registrations and their approval status, or cancel one.

Examples:
  eventhub registrations list
  eventhub registrations list --status approved
  eventhub registrations cancel <id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return registrationsListCmd.RunE(cmd, args)
	},
}

var registrationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your registrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		regs, err := hub.Registrations().GetUserRegistrations(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s", hub.Registrations().Error())
		}

		status, _ := cmd.Flags().GetString("status")
		regs = view.FilterByStatus(regs, types.RegistrationStatus(status))

		return renderRegistrations(cmd, hub, regs)
	},
}

var registrationsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel one of your registrations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		if err := hub.Registrations().CancelRegistration(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("%s", hub.Registrations().Error())
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled", args[0])
		return nil
	},
}

var registrationsStatusCmd = &cobra.Command{
	Use:   "status <event-id>",
	Short: "Show your registration for one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		reg, err := hub.Registrations().GetUserRegistrationForEvent(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("%s", hub.Registrations().Error())
		}
		if reg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not registered")
			return nil
		}

		loc := locale(hub)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n",
			loc.T("registrations.status"), loc.Status(string(reg.Status)))
		if reg.Status == types.StatusRejected && reg.Reason != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", loc.T("registrations.reason"), reg.Reason)
		}
		return nil
	},
}

func renderRegistrations(cmd *cobra.Command, hub eventhub.EventHub, regs []types.Registration) error {
	format := output.Format(globalFlags.Output)
	if format == output.FormatTable || format == output.FormatCSV {
		return formatter().Format(cmd.OutOrStdout(), output.RegistrationsData(regs, locale(hub)))
	}
	return formatter().Format(cmd.OutOrStdout(), regs)
}

func init() {
	rootCmd.AddCommand(registrationsCmd)
	registrationsCmd.AddCommand(registrationsListCmd)
	registrationsCmd.AddCommand(registrationsCancelCmd)
	registrationsCmd.AddCommand(registrationsStatusCmd)

	registrationsListCmd.Flags().String("status", "", "Only registrations in this status: pending, approved, rejected")
}
