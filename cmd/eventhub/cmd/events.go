package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/eventhub"
	"github.com/agentstation/eventhub/internal/cmd/output"
	"github.com/agentstation/eventhub/pkg/types"
	"github.com/agentstation/eventhub/pkg/view"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse and manage events",
	Long: `List, search, and inspect events. Admins can also create, update,
and delete them.

Examples:
  eventhub events list
  eventhub events list --sort price
  eventhub events search --title conference --category tech
  eventhub events get <id>
  eventhub events register <id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return eventsListCmd.RunE(cmd, args)
	},
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events",
	RunE: func(cmd *cobra.Command, _ []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		events, err := hub.Events().GetEvents(cmd.Context(), nil)
		if err != nil {
			return fmt.Errorf("%s", hub.Events().Error())
		}

		if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
			events = hub.Events().Filter(filter)
		}
		if upcoming, _ := cmd.Flags().GetBool("upcoming"); upcoming {
			events = view.UpcomingEvents(events, time.Now())
		}
		sortKey, _ := cmd.Flags().GetString("sort")
		events = view.SortEvents(events, view.ParseSortKey(sortKey))

		return renderEvents(cmd, hub, events)
	},
}

var eventsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search events by title, date, or category",
	RunE: func(cmd *cobra.Command, _ []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		search := types.EventSearch{}
		search.Title, _ = cmd.Flags().GetString("title")
		search.Date, _ = cmd.Flags().GetString("date")
		search.Category, _ = cmd.Flags().GetString("category")

		events, err := hub.Events().SearchEvents(cmd.Context(), search)
		if err != nil {
			return fmt.Errorf("%s", hub.Events().Error())
		}
		return renderEvents(cmd, hub, events)
	},
}

var eventsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		event, err := hub.Events().GetEvent(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("%s", hub.Events().Error())
		}
		return formatter().Format(cmd.OutOrStdout(), event)
	},
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event (admin)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		event, err := hub.Events().AddEvent(cmd.Context(), eventInputFromFlags(cmd))
		if err != nil {
			return fmt.Errorf("%s", hub.Events().Error())
		}
		return formatter().Format(cmd.OutOrStdout(), event)
	},
}

var eventsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an event (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		event, err := hub.Events().UpdateEvent(cmd.Context(), args[0], eventInputFromFlags(cmd))
		if err != nil {
			return fmt.Errorf("%s", hub.Events().Error())
		}
		return formatter().Format(cmd.OutOrStdout(), event)
	},
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		if err := hub.Events().DeleteEvent(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("%s", hub.Events().Error())
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted", args[0])
		return nil
	},
}

var eventsRegisterCmd = &cobra.Command{
	Use:   "register <id>",
	Short: "Register for an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hub, err := newClient()
		if err != nil {
			return err
		}
		defer hub.Close()

		result, err := hub.Registrations().RegisterForEvent(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("%s", hub.Registrations().Error())
		}
		if result.Rejected() {
			// The server declined; its wording explains why.
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		}

		loc := locale(hub)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n",
			loc.T("registrations.status"), loc.Status(string(result.Registration.Status)))
		return nil
	},
}

func renderEvents(cmd *cobra.Command, hub eventhub.EventHub, events []types.Event) error {
	format := output.Format(globalFlags.Output)
	if format == output.FormatTable || format == output.FormatCSV {
		return formatter().Format(cmd.OutOrStdout(), output.EventsData(events, locale(hub)))
	}
	return formatter().Format(cmd.OutOrStdout(), events)
}

func eventInputFromFlags(cmd *cobra.Command) types.EventInput {
	in := types.EventInput{}
	in.Title, _ = cmd.Flags().GetString("title")
	in.Description, _ = cmd.Flags().GetString("description")
	in.Date, _ = cmd.Flags().GetString("date")
	in.Location, _ = cmd.Flags().GetString("location")
	in.Price, _ = cmd.Flags().GetFloat64("price")
	in.Category, _ = cmd.Flags().GetString("category")
	in.Capacity, _ = cmd.Flags().GetInt("capacity")
	return in
}

func addEventInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Event title")
	cmd.Flags().String("description", "", "Event description")
	cmd.Flags().String("date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().String("location", "", "Event location")
	cmd.Flags().Float64("price", 0, "Ticket price")
	cmd.Flags().String("category", "", "Event category")
	cmd.Flags().Int("capacity", 0, "Total capacity")
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsSearchCmd)
	eventsCmd.AddCommand(eventsGetCmd)
	eventsCmd.AddCommand(eventsCreateCmd)
	eventsCmd.AddCommand(eventsUpdateCmd)
	eventsCmd.AddCommand(eventsDeleteCmd)
	eventsCmd.AddCommand(eventsRegisterCmd)

	eventsListCmd.Flags().String("sort", "date", "Sort order: date, title, price")
	eventsListCmd.Flags().String("filter", "", "Client-side match against title and description")
	eventsListCmd.Flags().Bool("upcoming", false, "Only events that have not happened yet")

	eventsSearchCmd.Flags().String("title", "", "Title to search for")
	eventsSearchCmd.Flags().String("date", "", "Date to search for (YYYY-MM-DD)")
	eventsSearchCmd.Flags().String("category", "", "Category to search for")

	addEventInputFlags(eventsCreateCmd)
	addEventInputFlags(eventsUpdateCmd)
}
