// Package csvfile はCSVテキストと銘柄レコードの相互変換（解析・エクスポート）を提供します。
package csvfile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreadableEncoding はUTF-8としてもShift_JISとしても読めない入力で返されます。
	ErrUnreadableEncoding = errors.New("文字コードを判別できません")
)

// ParseError はCSV全体の解析失敗を表します。部分的な結果は返されません。
type ParseError struct {
	Line int // 1始まりの行番号。不明な場合は0
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("CSVファイルの解析中にエラーが発生しました（%d行目）: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("CSVファイルの解析中にエラーが発生しました: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
