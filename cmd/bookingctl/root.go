package main

import (
	"io"
	"travelbook/pkg/client"

	"github.com/spf13/cobra"
)

type cli struct {
	out        io.Writer
	configFile string
	output     string
	api        client.BookingAPI
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:   "bookingctl",
		Short: "bookingctl manages travel bookings",
		Long: `bookingctl lists, creates, updates and deletes travel bookings through
the booking service's GraphQL API.

The endpoint and output format come from flags, TRAVELBOOK_ENDPOINT and
TRAVELBOOK_OUTPUT, or ~/.travelbook.yaml, in that order.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.init,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default: ~/.travelbook.yaml)")
	flags.String(cfgKeyEndpoint, "", "booking GraphQL endpoint")
	flags.String(cfgKeyOutput, "", "output format: table or json")

	root.AddCommand(
		c.listCmd(),
		c.getCmd(),
		c.addCmd(),
		c.updateCmd(),
		c.deleteCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command, args []string) error {
	v, err := loadConfig(c.configFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	c.output = v.GetString(cfgKeyOutput)
	if c.api == nil {
		c.api = client.NewBookingClient(v.GetString(cfgKeyEndpoint))
	}
	return nil
}
