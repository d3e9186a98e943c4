package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stock_search/internal/feature/screener/usecase"
)

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns FILE",
		Short: "List the columns of a CSV with labels and categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := parseFile(args[0])
			if err != nil {
				return err
			}
			return printColumns(cmd.OutOrStdout(), table.Columns)
		},
	}
}

func printColumns(w io.Writer, keys []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL\tCATEGORY\tESSENTIAL")
	for _, c := range usecase.DefaultColumns(keys) {
		essential := ""
		if c.Essential {
			essential = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Key, c.Label, c.Category, essential)
	}
	return tw.Flush()
}
