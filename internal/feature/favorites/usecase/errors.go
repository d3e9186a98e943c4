package usecase

import "errors"

var (
	// ErrInvalidCode は銘柄コードが空または長すぎる場合のエラーです。
	ErrInvalidCode = errors.New("銘柄コードが不正です")

	// ErrNotFound はお気に入りに登録されていない銘柄を削除しようとした場合のエラーです。
	ErrNotFound = errors.New("お気に入りに登録されていません")
)
