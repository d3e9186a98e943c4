package entity

// Direction はソートの向きです。
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection は"asc"/"desc"を変換します。それ以外は昇順として扱います。
func ParseDirection(s string) Direction {
	if Direction(s) == Descending {
		return Descending
	}
	return Ascending
}

// SortSpec はソート条件です。Keyが空ならソートせず、絞り込み後の順序をそのまま使います。
type SortSpec struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// IsZero はソート指定がなければtrueを返します。
func (s SortSpec) IsZero() bool { return s.Key == "" }

// NextSort は列見出しをクリックしたときの次のソート状態を返します。
// 同じ列では 昇順 → 降順 → 解除 の順に切り替わり、別の列では昇順から始まります。
func NextSort(current SortSpec, key string) SortSpec {
	if current.Key != key {
		return SortSpec{Key: key, Direction: Ascending}
	}
	if current.Direction == Ascending {
		return SortSpec{Key: key, Direction: Descending}
	}
	return SortSpec{}
}
