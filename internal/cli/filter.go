package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"stock_search/internal/feature/screener/adapters/querycodec"
	"stock_search/internal/feature/screener/domain/entity"
	"stock_search/internal/feature/screener/usecase"
	"stock_search/internal/feature/stocks/adapters/csvfile"
	stock "stock_search/internal/feature/stocks/domain/entity"
)

type filterOptions struct {
	query   string
	sortKey string
	desc    bool
	columns string
	out     string
	page    int
	perPage int
	now     func() time.Time
}

func newFilterCmd() *cobra.Command {
	opts := &filterOptions{now: time.Now}
	cmd := &cobra.Command{
		Use:   "filter FILE",
		Short: "Filter and sort a CSV and print it in export format",
		Long: `Filter and sort a CSV and print it in export format.

--query takes the same parameters as the share URL (e.g. "mcMin=20&roeMin=8&mt=JP").
Without --page all matching rows are written. If --out is an existing directory,
a file named like the download (stock_data_filtered_12件_20250307_0905.csv) is created in it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.query, "query", "q", "", "filter as a share query string")
	f.StringVarP(&opts.sortKey, "sort", "s", "", "column key to sort by")
	f.BoolVar(&opts.desc, "desc", false, "sort descending")
	f.StringVarP(&opts.columns, "columns", "c", "", "comma separated column keys to export (essentials are always included)")
	f.StringVarP(&opts.out, "out", "o", "", "output file or directory (default stdout)")
	f.IntVar(&opts.page, "page", 0, "write only this page (1-based)")
	f.IntVar(&opts.perPage, "per-page", entity.DefaultItemsPerPage, "rows per page (50, 100 or 200)")
	return cmd
}

func runFilter(stdout, stderr io.Writer, path string, opts *filterOptions) error {
	table, err := parseFile(path)
	if err != nil {
		return err
	}

	filter := entity.DefaultFilterSpec().Merge(querycodec.DecodeString(opts.query))
	sort := entity.SortSpec{}
	if opts.sortKey != "" {
		sort = entity.SortSpec{Key: opts.sortKey, Direction: entity.Ascending}
		if opts.desc {
			sort.Direction = entity.Descending
		}
	}

	view := usecase.NewView(table.Records, filter, sort, opts.perPage)
	rows := view.Filtered()
	if opts.page > 0 {
		view = view.WithPage(opts.page)
		rows = view.Page()
	}
	cols := usecase.SelectColumns(usecase.DefaultColumns(table.Columns), splitList(opts.columns))

	enc := csvfile.Encoder{BaseName: csvfile.DefaultExportBaseName}
	body := enc.Export(rows, cols)

	filtered := len(view.Filtered())
	if opts.page > 0 {
		p := view.Pagination()
		fmt.Fprintf(stderr, "%d件中%d件 (ページ %d/%d)\n", len(table.Records), filtered, p.CurrentPage, p.TotalPages())
	} else {
		fmt.Fprintf(stderr, "%d件中%d件\n", len(table.Records), filtered)
	}

	if opts.out == "" || opts.out == "-" {
		_, err := io.WriteString(stdout, body)
		return err
	}
	dest := opts.out
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, enc.FileName(filtered, len(table.Records), opts.now()))
	}
	if err := os.WriteFile(dest, []byte(body), 0o644); err != nil {
		return fmt.Errorf("出力に失敗しました: %w", err)
	}
	fmt.Fprintln(stderr, dest)
	return nil
}

func parseFile(path string) (*stock.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ファイルの読み込みに失敗しました: %w", err)
	}
	defer f.Close()

	table, err := csvfile.NewParser().Parse(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("CSVファイルの解析に失敗しました: %w", err)
	}
	return table, nil
}
