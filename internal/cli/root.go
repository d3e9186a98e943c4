// Package cli はローカルのCSVに対して絞り込み・並べ替え・エクスポートを行うコマンドを提供します。
package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the screen command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "screen",
		Short:         "Screen Japanese/US stock CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFilterCmd(), newColumnsCmd(), newQueryCmd(), newTokenCmd())
	return root
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
