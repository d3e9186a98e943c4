package entity

import (
	"regexp"
	"strings"
)

// MarketType は銘柄の市場区分（日本株/米国株）です。
type MarketType string

const (
	MarketJP MarketType = "JP"
	MarketUS MarketType = "US"
)

// domesticSuffix は東証銘柄のティッカー接尾辞です。
const domesticSuffix = ".T"

var (
	// domesticCode は4桁の数値コード（日本株）にマッチします。
	domesticCode = regexp.MustCompile(`^[0-9]{4}$`)
	// usTicker は1〜5文字の英字ティッカー（米国株）にマッチします。
	usTicker = regexp.MustCompile(`^[A-Za-z]{1,5}$`)
)

// AllMarketTypes は市場タイプフィルターの既定値（全選択）です。
func AllMarketTypes() []MarketType {
	return []MarketType{MarketJP, MarketUS}
}

// ParseMarketType は"JP"/"US"を市場タイプに変換します。
func ParseMarketType(s string) (MarketType, bool) {
	switch MarketType(strings.ToUpper(strings.TrimSpace(s))) {
	case MarketJP:
		return MarketJP, true
	case MarketUS:
		return MarketUS, true
	}
	return "", false
}

// InferMarketType はティッカーシンボルから市場タイプを判定します。
// 判定できない場合や空の場合は、従来の挙動に合わせて日本株とします。
func InferMarketType(ticker string) MarketType {
	t := strings.TrimSpace(ticker)
	if t == "" {
		return MarketJP
	}
	if strings.HasSuffix(t, domesticSuffix) {
		return MarketJP
	}
	if domesticCode.MatchString(t) {
		return MarketJP
	}
	if usTicker.MatchString(t) {
		return MarketUS
	}
	return MarketJP
}
