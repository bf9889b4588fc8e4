package controller

import (
	"time"

	"docrag-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type HealthStatus struct {
	Status          string `json:"status"`
	FileSearchReady bool   `json:"file_search_ready"`
	Time            string `json:"time"`
}

type IHealthController interface {
	RegisterRoutes(app fiber.Router)
}

type healthController struct {
	fileSearchReady bool
}

func NewHealthController(fileSearchReady bool) IHealthController {
	return &healthController{fileSearchReady: fileSearchReady}
}

func (c *healthController) RegisterRoutes(app fiber.Router) {
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(serverutils.SuccessResponse("OK", HealthStatus{
			Status:          "ok",
			FileSearchReady: c.fileSearchReady,
			Time:            time.Now().UTC().Format(time.RFC3339),
		}))
	})
}
