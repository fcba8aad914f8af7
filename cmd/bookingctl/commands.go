package main

import (
	"fmt"
	"travelbook/pkg/model"

	"github.com/spf13/cobra"
)

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all bookings",
		Long: `List fetches every booking in insertion order.

Example:
  bookingctl list
  bookingctl list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookings, err := c.api.GetBookings(cmd.Context())
			if err != nil {
				return fmt.Errorf("list bookings: %w", err)
			}
			return c.printBookings(bookings)
		},
	}
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			booking, err := c.api.GetBooking(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get booking: %w", err)
			}
			return c.printBooking(booking)
		},
	}
}

func (c *cli) addCmd() *cobra.Command {
	var booking model.Booking

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a booking",
		Long: `Add creates a booking from the given fields.

Example:
  bookingctl add --name Ann --email a@x.com --destination Rome --date 2025-06-01 --travelers 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := c.api.AddBooking(cmd.Context(), booking)
			if err != nil {
				return fmt.Errorf("add booking: %w", err)
			}
			return c.printBooking(created)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&booking.Name, "name", "", "traveler name (required)")
	flags.StringVar(&booking.Email, "email", "", "contact email (required)")
	flags.StringVar(&booking.Destination, "destination", "", "destination (required)")
	flags.StringVar(&booking.Date, "date", "", "travel date, YYYY-MM-DD (required)")
	flags.IntVar(&booking.Travelers, "travelers", 1, "number of travelers")
	for _, name := range []string{"name", "email", "destination", "date"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (c *cli) updateCmd() *cobra.Command {
	var (
		name, email, destination, date string
		travelers                      int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a booking",
		Long: `Update changes only the fields whose flags are given.

Example:
  bookingctl update 665f1c2e9b1e8a3d4c5b6a79 --travelers 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update model.BookingUpdate
			flags := cmd.Flags()
			if flags.Changed("name") {
				update.Name = &name
			}
			if flags.Changed("email") {
				update.Email = &email
			}
			if flags.Changed("destination") {
				update.Destination = &destination
			}
			if flags.Changed("date") {
				update.Date = &date
			}
			if flags.Changed("travelers") {
				update.Travelers = &travelers
			}

			updated, err := c.api.UpdateBooking(cmd.Context(), args[0], update)
			if err != nil {
				return fmt.Errorf("update booking: %w", err)
			}
			return c.printBooking(updated)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "traveler name")
	flags.StringVar(&email, "email", "", "contact email")
	flags.StringVar(&destination, "destination", "", "destination")
	flags.StringVar(&date, "date", "", "travel date, YYYY-MM-DD")
	flags.IntVar(&travelers, "travelers", 0, "number of travelers")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := c.api.DeleteBooking(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("delete booking: %w", err)
			}
			if c.output == outputJSON {
				return c.printJSON(deleted)
			}
			fmt.Fprintf(c.out, "Deleted booking: %s\n", deleted.ID)
			return nil
		},
	}
}
