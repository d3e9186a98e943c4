package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"stock_search/internal/feature/stocks/domain/entity"
)

// Parser はCSVテキストを銘柄レコードに変換します。状態を持たないため並行利用できます。
type Parser struct{}

// NewParser は新しいParserを生成します。
func NewParser() *Parser {
	return &Parser{}
}

// Parse はCSVを読み込み、正規化済みのレコードを返します。
// sourceFile は各レコードの出所として記録されます（CSV側に_source_file列があればそちらを優先）。
// 会社名またはコードを欠く行は黙って除外します。クォート不正などの構文エラーは全体を失敗させます。
func (p *Parser) Parse(r io.Reader, sourceFile string) (*entity.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("read: %w", err)}
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	cr := csv.NewReader(strings.NewReader(text))
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &entity.Table{Records: []entity.StockRecord{}, Columns: []string{}}, nil
	}
	if err != nil {
		return nil, newParseError(err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.TrimSpace(h)
	}

	records := make([]entity.StockRecord, 0)
	dropped := 0
	for row := 0; ; row++ {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newParseError(err)
		}

		rec := normalizeRow(keys, cells)
		if !rec.Valid() {
			dropped++
			continue
		}
		if rec.SourceFile == "" {
			rec.SourceFile = sourceFile
		}
		if rec.RowIndex == nil {
			idx := row
			rec.RowIndex = &idx
		}
		records = append(records, rec)
	}

	slog.Debug("csv parsed", "source", sourceFile, "records", len(records), "dropped", dropped)
	return &entity.Table{Records: records, Columns: visibleColumns(keys)}, nil
}

// normalizeRow は1行分のセルを列定義に従って型変換します。
func normalizeRow(keys, cells []string) entity.StockRecord {
	var rec entity.StockRecord
	for i, key := range keys {
		if key == "" || i >= len(cells) {
			continue
		}
		if entity.IsNumericHeader(key) {
			rec.SetNumeric(key, ParseNumber(cells[i]))
			continue
		}
		if !entity.IsTextKey(key) {
			rec.Extras.Set(key, extraValue(cells[i]))
			continue
		}
		rec.SetText(key, cells[i])
	}
	return rec
}

// visibleColumns は重複と内部列を除いた列キーをヘッダー順で返します。
func visibleColumns(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" || entity.IsInternalKey(k) {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func newParseError(err error) *ParseError {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}
