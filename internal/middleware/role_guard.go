package middleware

import (
	"net/http"

	"farmmarket/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// contextに入っているroleが要求と一致するか確認する。
// AuthJWTの後ろに置くこと。
func RoleGuard(required model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if model.Role(role) != required {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}
