package handler

import (
	"net/http"
	"strconv"

	"farmmarket/internal/config"
	"farmmarket/internal/domain/model"
	"farmmarket/internal/middleware"
	"farmmarket/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NegotiationHandler struct {
	uc *usecase.NegotiationUsecase
}

// DI
func NewNegotiationHandler(uc *usecase.NegotiationUsecase) *NegotiationHandler {
	return &NegotiationHandler{uc: uc}
}

func (h *NegotiationHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/negotiations")
	g.Use(middleware.AuthJWT(cfg))

	//作成は顧客のみ。一覧と遷移は両ロール（所有チェックはusecase側）。
	g.POST("", h.create, middleware.RoleGuard(model.RoleCustomer))
	g.GET("", h.list)
	g.PATCH("/:id", h.transition)
}

type negotiationCreateRequest struct {
	ProductID     int64  `json:"productId" validate:"required,gt=0"`
	ProposedPrice int64  `json:"proposedPrice" validate:"required,gt=0"`
	Quantity      int64  `json:"quantity" validate:"required,gte=1"`
	Message       string `json:"message"`
}

func (h *NegotiationHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req negotiationCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateNegotiation(c.Request().Context(), userID, usecase.CreateNegotiationInput{
		ProductID:     req.ProductID,
		ProposedPrice: req.ProposedPrice,
		Quantity:      req.Quantity,
		Message:       req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *NegotiationHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	role, ok := getUserRoleFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListNegotiations(c.Request().Context(), userID, role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *NegotiationHandler) transition(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	role, ok := getUserRoleFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.TransitionNegotiation(c.Request().Context(), userID, role, id, model.NegotiationStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
