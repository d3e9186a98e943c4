package entity

import (
	"math"
	"strconv"
)

// ValueKind はセル値の型を表します。
type ValueKind int

const (
	// KindNull は値が存在しないことを表します。
	KindNull ValueKind = iota
	// KindString は文字列値です。
	KindString
	// KindNumber は数値です。
	KindNumber
)

// Value は任意の列の値を型付きで保持します。
// 固定フィールドと追加列の双方をソート・エクスポートで同じように扱うために使います。
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
}

// NullValue は値なしを返します。
func NullValue() Value { return Value{Kind: KindNull} }

// StringValue は文字列値を返します。
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// NumberValue は数値を返します。NaNや無限大は値なしとして扱います。
func NumberValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NullValue()
	}
	return Value{Kind: KindNumber, Num: f}
}

// FromFloatPtr はnil許容の数値をValueに変換します。
func FromFloatPtr(p *float64) Value {
	if p == nil {
		return NullValue()
	}
	return NumberValue(*p)
}

// FromStringPtr はnil許容の文字列をValueに変換します。
func FromStringPtr(p *string) Value {
	if p == nil {
		return NullValue()
	}
	return StringValue(*p)
}

// IsNull は値が存在しない場合にtrueを返します。
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Text は値をCSV出力用の文字列にします。
// 数値は桁区切りなしの10進表記、値なしは空文字になります。
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// Interface はJSONレスポンス用にGoの素の値を返します。
func (v Value) Interface() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	default:
		return nil
	}
}
