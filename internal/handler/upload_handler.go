package handler

import (
	"io"
	"net/http"

	"farmmarket/internal/config"
	"farmmarket/internal/domain/model"
	"farmmarket/internal/middleware"

	"github.com/labstack/echo/v4"
)

// 画像の保存先の約束。実体はinfra/storage。
type ImageStore interface {
	Save(filename string, r io.Reader) (imageURL string, err error)
}

type UploadHandler struct {
	store ImageStore
}

// DI
func NewUploadHandler(store ImageStore) *UploadHandler {
	return &UploadHandler{store: store}
}

func (h *UploadHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/upload", h.upload,
		middleware.AuthJWT(cfg),
		middleware.RoleGuard(model.RoleFarmer),
	)
}

type uploadResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
}

func (h *UploadHandler) upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no file uploaded"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no file uploaded"})
	}
	defer src.Close()

	imageURL, err := h.store.Save(fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, uploadResponse{
		Message:  "file uploaded successfully",
		ImageURL: imageURL,
	})
}
