package cache

import (
	"time"
)

// jst は日本時間です。tzdataのない環境でも動くよう固定オフセットで定義します。
var jst = time.FixedZone("Asia/Tokyo", 9*60*60)

// TimeUntilNext8AM は now から次の午前8時（日本時間）までの期間を返します。
// CSVは毎朝更新されるため、キャッシュはそこで切れるようにします。
func TimeUntilNext8AM(now time.Time) time.Duration {
	now = now.In(jst)

	// 次の午前8時を計算
	next8am := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, jst)

	// 今日の午前8時が既に過ぎている場合は明日の午前8時を使用
	if !now.Before(next8am) {
		next8am = next8am.Add(24 * time.Hour)
	}

	return next8am.Sub(now)
}
