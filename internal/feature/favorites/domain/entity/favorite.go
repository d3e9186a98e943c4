// Package entity はfavoritesフィーチャーのドメインモデルを定義します。
package entity

import (
	"regexp"
	"strings"
	"time"
)

// MaxCodeLength は銘柄コードとして受け付ける最大文字数です。
const MaxCodeLength = 16

var shortDigits = regexp.MustCompile(`^[0-9]{1,4}$`)

// Favorite はユーザーがお気に入りに登録した銘柄です。
type Favorite struct {
	UserID  string
	Code    string // 正規化済みの銘柄コード
	Name    string
	AddedAt time.Time
}

// NormalizeCode は銘柄コードを正規化します。
// 前後の空白を除き、1〜4桁の数字は4桁にゼロ埋めします（"7" → "0007"）。それ以外はそのまま返します。
func NormalizeCode(code string) string {
	s := strings.TrimSpace(code)
	if shortDigits.MatchString(s) {
		return strings.Repeat("0", 4-len(s)) + s
	}
	return s
}
