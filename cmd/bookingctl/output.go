package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"travelbook/pkg/model"
)

func (c *cli) printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(c.out, string(output))
	return nil
}

func (c *cli) printBooking(b *model.Booking) error {
	if c.output == outputJSON {
		return c.printJSON(b)
	}
	return c.printTable([]model.Booking{*b})
}

func (c *cli) printBookings(bookings []model.Booking) error {
	if c.output == outputJSON {
		return c.printJSON(bookings)
	}
	if len(bookings) == 0 {
		fmt.Fprintln(c.out, "No bookings found.")
		return nil
	}
	if err := c.printTable(bookings); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Total: %d booking(s)\n", len(bookings))
	return nil
}

// printTable aligns bookings in columns, trimming the padding tabwriter
// leaves at line ends.
func (c *cli) printTable(bookings []model.Booking) error {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tDESTINATION\tDATE\tTRAVELERS")
	for _, b := range bookings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", b.ID, b.Name, b.Email, b.Destination, b.Date, b.Travelers)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(c.out, strings.TrimRight(line, " "))
	}
	return nil
}
