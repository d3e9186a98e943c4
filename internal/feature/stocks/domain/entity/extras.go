package entity

// Extras は既知のフィールドに該当しないCSV列を、ヘッダー順を保ったまま保持します。
// 再エクスポート時に元の列順を再現するため、挿入順を記録します。
type Extras struct {
	keys   []string
	values map[string]Value
}

// Set は列の値を設定します。既存のキーは位置を変えずに上書きされます。
func (e *Extras) Set(key string, v Value) {
	if e.values == nil {
		e.values = make(map[string]Value)
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = v
}

// Get は列の値を返します。
func (e Extras) Get(key string) (Value, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Keys は挿入順の列名のコピーを返します。
func (e Extras) Keys() []string {
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// Len は列数を返します。
func (e Extras) Len() int { return len(e.keys) }
