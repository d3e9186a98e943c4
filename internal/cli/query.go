package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stock_search/internal/feature/screener/adapters/querycodec"
	"stock_search/internal/feature/screener/domain/entity"
)

func newQueryCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the canonical share query for a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := entity.DefaultFilterSpec().Merge(querycodec.DecodeString(query))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), querycodec.Encode(spec))
			return err
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter as a share query string")
	return cmd
}
