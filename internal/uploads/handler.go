package uploads

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mshoaibkhan0786/Mess-Site/internal/llm"
	"github.com/mshoaibkhan0786/Mess-Site/internal/mess"
)

// Images larger than this are rejected before hitting storage or the AI.
const maxImageBytes = 10 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func actorFrom(c *gin.Context) Actor {
	return Actor{
		Email:  c.GetString("userEmail"),
		Name:   c.GetString("userName"),
		Role:   c.GetString("userRole"),
		MessID: c.GetString("userMessID"),
	}
}

// Upload accepts a multipart menu image and runs the full pipeline.
// The previous menu survives every failure mode.
func (h *Handler) Upload(c *gin.Context) {
	messID := c.Param("id")

	file, header, err := c.Request.FormFile("menu_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu_image is required"})
		return
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}

	target := mess.TargetCurrentWeek
	if c.PostForm("target") == string(mess.TargetNextWeek) {
		target = mess.TargetNextWeek
	}

	result, err := h.service.ProcessImage(
		c.Request.Context(),
		actorFrom(c),
		messID,
		header.Filename,
		image,
		target,
	)

	switch {
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to update this mess"})
	case errors.Is(err, ErrInvalidFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
	case errors.Is(err, mess.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "mess not found"})
	case errors.Is(err, ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "AI processing timed out, menu unchanged"})
	case errors.Is(err, llm.ErrInvalidOutput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "AI returned invalid data"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message": "Menu updated successfully",
			"result":  result,
		})
	}
}
