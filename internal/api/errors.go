package api

import (
	"errors"
	"net/http"

	"stock_search/internal/feature/datasets/usecase"
	favorites "stock_search/internal/feature/favorites/usecase"
)

// 想定外のエラーで利用者に返すメッセージ。
const internalErrorMessage = "サーバー内部でエラーが発生しました"

// errorStatus は利用者向けのエラーとHTTPステータスの対応です。
var errorStatus = []struct {
	err    error
	status int
}{
	{usecase.ErrNoDataset, http.StatusNotFound},
	{usecase.ErrInvalidName, http.StatusBadRequest},
	{usecase.ErrParseFailed, http.StatusUnprocessableEntity},
	{usecase.ErrLoadFailed, http.StatusBadGateway},
	{usecase.ErrListFailed, http.StatusBadGateway},
	{usecase.ErrSuperseded, http.StatusConflict},
	{favorites.ErrInvalidCode, http.StatusBadRequest},
	{favorites.ErrNotFound, http.StatusNotFound},
}

// Status はエラーに対応するHTTPステータスと利用者向けメッセージを返します。
// 内部の詳細（パスや下位のエラー）はメッセージに含めません。
func Status(err error) (int, ErrorResponse) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status, ErrorResponse{Error: e.err.Error()}
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage}
}
