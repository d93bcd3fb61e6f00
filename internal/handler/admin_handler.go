package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unlockedcoding/backend/internal/service"
	"github.com/unlockedcoding/backend/pkg/apperror"
	"github.com/unlockedcoding/backend/pkg/response"
	"github.com/unlockedcoding/backend/pkg/storage"
)

// AdminHandler serves the dashboard stats and the image upload used by the
// admin forms.
type AdminHandler struct {
	stats        service.StatService
	images       storage.ImageStorage
	uploadFolder string
}

func NewAdminHandler(stats service.StatService, images storage.ImageStorage, uploadFolder string) *AdminHandler {
	return &AdminHandler{
		stats:        stats,
		images:       images,
		uploadFolder: uploadFolder,
	}
}

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) UserCount(c *gin.Context) {
	h.count(c, h.stats.UserCount)
}

func (h *AdminHandler) CourseCount(c *gin.Context) {
	h.count(c, h.stats.CourseCount)
}

func (h *AdminHandler) CategoryCount(c *gin.Context) {
	h.count(c, h.stats.CategoryCount)
}

func (h *AdminHandler) EnrollmentCount(c *gin.Context) {
	h.count(c, h.stats.EnrollmentCount)
}

func (h *AdminHandler) count(c *gin.Context, fetch func(ctx context.Context) (int64, error)) {
	count, err := fetch(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *AdminHandler) Upload(c *gin.Context) {
	if h.images == nil {
		response.Error(c, apperror.New(http.StatusServiceUnavailable, "image storage is not configured", apperror.ErrInternal))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.Validation("file", "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	url, err := h.images.UploadImage(c.Request.Context(), file, h.uploadFolder, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
