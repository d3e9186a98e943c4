package usecase

import (
	"cmp"
	"sort"

	"stock_search/internal/feature/screener/domain/entity"
	stock "stock_search/internal/feature/stocks/domain/entity"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator はSortSpecに従って2つのレコードを比較します。
// 文字列は日本語の照合順序で比較します。collate.Collatorは並行利用できないため、
// Comparatorも1つのゴルーチン内で使ってください。
type Comparator struct {
	key  string
	desc bool
	col  *collate.Collator
}

// NewComparator はソート条件からComparatorを生成します。
func NewComparator(spec entity.SortSpec) *Comparator {
	return &Comparator{
		key:  spec.Key,
		desc: spec.Direction == entity.Descending,
		col:  collate.New(language.Japanese),
	}
}

// Compare はaがbより前なら負、後なら正、同順なら0を返します。
// nullは向きに関係なく常に末尾に並びます。型が異なる値同士は同順とみなします。
func (c *Comparator) Compare(a, b *stock.StockRecord) int {
	if c.key == "" {
		return 0
	}
	va, vb := a.Value(c.key), b.Value(c.key)
	switch {
	case va.IsNull() && vb.IsNull():
		return 0
	case va.IsNull():
		return 1
	case vb.IsNull():
		return -1
	}

	var res int
	switch {
	case va.Kind == stock.KindNumber && vb.Kind == stock.KindNumber:
		res = cmp.Compare(va.Num, vb.Num)
	case va.Kind == stock.KindString && vb.Kind == stock.KindString:
		res = c.col.CompareString(va.Str, vb.Str)
	default:
		return 0
	}
	if c.desc {
		return -res
	}
	return res
}

// Sort はレコードを安定ソートした新しいスライスを返します。
// ソート指定がなければ入力と同じ順序のコピーを返します。
func Sort(records []stock.StockRecord, spec entity.SortSpec) []stock.StockRecord {
	out := make([]stock.StockRecord, len(records))
	copy(out, records)
	if spec.IsZero() {
		return out
	}
	c := NewComparator(spec)
	sort.SliceStable(out, func(i, j int) bool {
		return c.Compare(&out[i], &out[j]) < 0
	})
	return out
}
