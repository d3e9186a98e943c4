package csvfile

import (
	"math"
	"strconv"
	"strings"

	"stock_search/internal/feature/stocks/domain/entity"

	"golang.org/x/text/width"
)

// 数値セルの末尾に付く単位表記。
var unitSuffixes = []string{"倍", "%", "円"}

// ParseNumber は日本語表記の数値セルを解析します。
// 桁区切りのカンマと末尾の単位（倍、%、円）を除去し、全角数字も受け付けます。
// 空文字・"-"・"N/A"・数値でない値はnilを返します。
func ParseNumber(raw string) *float64 {
	s := width.Fold.String(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ",", "")
	for _, suffix := range unitSuffixes {
		s = strings.TrimSuffix(s, suffix)
	}
	s = strings.TrimSpace(s)

	switch s {
	case "", "-", "N/A":
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// extraValue は登録表にない列のセルを変換します。
// 数値として読めれば数値、空文字・"-"・"N/A"はnull、それ以外は文字列です。
func extraValue(raw string) entity.Value {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "-", "N/A":
		return entity.NullValue()
	}
	if v := ParseNumber(s); v != nil {
		return entity.NumberValue(*v)
	}
	return entity.StringValue(s)
}
