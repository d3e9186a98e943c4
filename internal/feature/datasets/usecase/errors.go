package usecase

import "errors"

var (
	// ErrNoDataset はデータがまだ読み込まれていない場合のエラーです。
	ErrNoDataset = errors.New("データが読み込まれていません")
	// ErrInvalidName はファイル名が不正な場合のエラーです。
	ErrInvalidName = errors.New("ファイル名が不正です")
	// ErrLoadFailed はファイルの取得に失敗した場合のエラーです。
	ErrLoadFailed = errors.New("ファイルの読み込みに失敗しました")
	// ErrParseFailed はCSVの解析に失敗した場合のエラーです。
	ErrParseFailed = errors.New("CSVファイルの解析に失敗しました")
	// ErrListFailed はファイル一覧の取得に失敗した場合のエラーです。
	ErrListFailed = errors.New("ファイル一覧の取得に失敗しました")
	// ErrSuperseded は後から開始された読み込みがあったため、結果を破棄した場合のエラーです。
	ErrSuperseded = errors.New("新しい読み込みが開始されたため、この読み込みは破棄されました")
)
