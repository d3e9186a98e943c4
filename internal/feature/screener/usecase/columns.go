package usecase

import (
	_ "embed"
	"fmt"

	stock "stock_search/internal/feature/stocks/domain/entity"

	"gopkg.in/yaml.v3"
)

// 列のカテゴリ。
const (
	CategoryBasic       = "basic"
	CategoryValuation   = "valuation"
	CategoryPerformance = "performance"
	CategoryBalance     = "balance"
	CategoryCash        = "cash"
)

//go:embed column_catalog.yaml
var columnCatalogYAML []byte

type catalogEntry struct {
	Key       string `yaml:"key"`
	Label     string `yaml:"label"`
	Category  string `yaml:"category"`
	Essential bool   `yaml:"essential"`
}

type columnCatalog struct {
	Columns []catalogEntry `yaml:"columns"`
}

// catalog は列名から表示定義への対応表です。
var catalog = mustLoadCatalog(columnCatalogYAML)

func loadCatalog(data []byte) (map[string]catalogEntry, error) {
	var c columnCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("column catalog: %w", err)
	}
	out := make(map[string]catalogEntry, len(c.Columns))
	for _, e := range c.Columns {
		if e.Key == "" {
			return nil, fmt.Errorf("column catalog: entry without key")
		}
		out[e.Key] = e
	}
	return out, nil
}

func mustLoadCatalog(data []byte) map[string]catalogEntry {
	c, err := loadCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultColumns は列名の一覧から既定の列設定（すべて表示）を生成します。
// 同じ指標の現行名の列があれば、旧名の列は含めません。
func DefaultColumns(keys []string) []stock.ColumnConfig {
	present := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		present[k] = struct{}{}
	}
	out := make([]stock.ColumnConfig, 0, len(keys))
	for _, k := range keys {
		if f, ok := stock.NumericFieldByHeader(k); ok && f.Header() != k {
			if _, dup := present[f.Header()]; dup {
				continue
			}
		}
		c := stock.ColumnConfig{Key: k, Label: k, Category: CategoryBasic, Visible: true}
		if e, ok := catalog[k]; ok {
			c.Label = e.Label
			c.Category = e.Category
			c.Essential = e.Essential
		}
		out = append(out, c)
	}
	return out
}

// SetVisible は指定した列の表示状態を変更した新しいスライスを返します。
// 必須列は非表示にできません。
func SetVisible(cols []stock.ColumnConfig, key string, visible bool) []stock.ColumnConfig {
	return mapColumns(cols, func(c stock.ColumnConfig) stock.ColumnConfig {
		if c.Key == key {
			c.Visible = visible || c.Essential
		}
		return c
	})
}

// SetCategoryVisible はカテゴリ単位で表示状態を変更した新しいスライスを返します。
func SetCategoryVisible(cols []stock.ColumnConfig, category string, visible bool) []stock.ColumnConfig {
	return mapColumns(cols, func(c stock.ColumnConfig) stock.ColumnConfig {
		if c.Category == category {
			c.Visible = visible || c.Essential
		}
		return c
	})
}

// SelectColumns は指定した列と必須列だけを表示にした新しいスライスを返します。
// keysが空なら列設定をそのまま返します。
func SelectColumns(cols []stock.ColumnConfig, keys []string) []stock.ColumnConfig {
	if len(keys) == 0 {
		return mapColumns(cols, func(c stock.ColumnConfig) stock.ColumnConfig { return c })
	}
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	return mapColumns(cols, func(c stock.ColumnConfig) stock.ColumnConfig {
		_, ok := want[c.Key]
		c.Visible = ok || c.Essential
		return c
	})
}

// VisibleColumns は表示中の列だけを返します。
func VisibleColumns(cols []stock.ColumnConfig) []stock.ColumnConfig {
	out := make([]stock.ColumnConfig, 0, len(cols))
	for _, c := range cols {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

func mapColumns(cols []stock.ColumnConfig, fn func(stock.ColumnConfig) stock.ColumnConfig) []stock.ColumnConfig {
	out := make([]stock.ColumnConfig, len(cols))
	for i, c := range cols {
		out[i] = fn(c)
	}
	return out
}
