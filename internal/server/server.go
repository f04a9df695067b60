package server

import (
	"farmmarket/internal/config"
	"farmmarket/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers はルート登録に必要なハンドラをまとめる。
type Handlers struct {
	Auth        interface{ RegisterRoutes(e *echo.Echo) }
	Product     RouteRegistrar
	Negotiation RouteRegistrar
	Order       RouteRegistrar
	Upload      RouteRegistrar
}

type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo, cfg config.Config)
}

// New はechoを組み立てて返す。起動はStartで。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Validator = validator.New()

	RegisterRoutes(e, cfg, h)
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
