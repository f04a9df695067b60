package handler

import (
	"net/http"

	"farmmarket/internal/domain/model"
	"farmmarket/internal/middleware"
	"farmmarket/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのエラー種別をHTTPステータスへ写す。
var kindStatus = map[usecase.ErrorKind]int{
	usecase.KindInvalidInput:      http.StatusBadRequest,
	usecase.KindUnauthorized:      http.StatusUnauthorized,
	usecase.KindForbidden:         http.StatusForbidden,
	usecase.KindNotFound:          http.StatusNotFound,
	usecase.KindUnavailable:       http.StatusConflict,
	usecase.KindInsufficientStock: http.StatusConflict,
	usecase.KindConflict:          http.StatusConflict,
	usecase.KindInternal:          http.StatusInternalServerError,
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := usecase.AsAppError(err); ok {
		status, known := kindStatus[ae.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		return c.JSON(status, ErrorResponse{Error: ae.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// AuthJWTが入れた値を取り出す。無ければ未認証扱い。
func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	id, ok := raw.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func getUserRoleFromContext(c echo.Context) (model.Role, bool) {
	raw := c.Get(middleware.CtxUserRoleKey)
	role, ok := raw.(string)
	if !ok || role == "" {
		return "", false
	}
	return model.Role(role), true
}
