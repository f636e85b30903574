package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dfstats/deltaquery/internal/endpoints"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List available query endpoints",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDESCRIPTION")
		for _, def := range endpoints.Definitions() {
			fmt.Fprintf(w, "%s\t%s\n", def.Name, def.Label)
		}
		w.Flush()
	},
}
