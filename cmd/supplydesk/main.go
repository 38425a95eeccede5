// Command supplydesk runs the supply desk API.
//
//	supplydesk serve          start the HTTP server
//	supplydesk migrate        apply the embedded schema migrations
//	supplydesk invoke         answer one request envelope read from stdin
//	supplydesk hash-password  print a bcrypt hash for seeding users
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "supplydesk",
		Short:         "Product catalog and employee supply orders",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newInvokeCommand(),
		newHashPasswordCommand(),
	)

	return root
}
