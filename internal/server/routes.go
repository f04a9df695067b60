package server

import (
	"farmmarket/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, cfg)
	h.Negotiation.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Upload.RegisterRoutes(e, cfg)

	//アップロード済み画像の配信
	e.Static("/uploads", cfg.UploadDir)
}
