package entity

import (
	"strings"
	"time"
)

// 日付付きファイル名の接尾辞と探索日数。
const (
	DatedFileSuffix  = "_combined.csv"
	DatedFileLayout  = "20060102"
	DatedLookbackDay = 30
)

// JST は日付付きファイル名の日付を決めるタイムゾーンです。
var JST = time.FixedZone("JST", 9*60*60)

// DatedFileName は指定日の "YYYYMMDD_combined.csv" を返します。
func DatedFileName(t time.Time) string {
	return t.In(JST).Format(DatedFileLayout) + DatedFileSuffix
}

// ParseDatedFileName は "YYYYMMDD_combined.csv" 形式のファイル名から日付を取り出します。
func ParseDatedFileName(name string) (time.Time, bool) {
	stem, ok := strings.CutSuffix(name, DatedFileSuffix)
	if !ok || len(stem) != len(DatedFileLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DatedFileLayout, stem, JST)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RecentDatedFileNames は今日から遡ってdays日分のファイル名を新しい順に返します。
func RecentDatedFileNames(now time.Time, days int) []string {
	now = now.In(JST)
	out := make([]string, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, DatedFileName(now.AddDate(0, 0, -i)))
	}
	return out
}

// DisplayName はファイル名から拡張子を除き、"_" を空白にした表示名を返します。
func DisplayName(name string) string {
	return strings.ReplaceAll(strings.TrimSuffix(name, ".csv"), "_", " ")
}

// ValidFileName はディレクトリ区切りや親参照を含まないCSVファイル名であればtrueを返します。
func ValidFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}
