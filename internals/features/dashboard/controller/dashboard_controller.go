package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/features/dashboard/service"
	helper "collegeaccounts_backend/internals/helpers"
)

type DashboardController struct {
	Svc *service.DashboardService
}

func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{Svc: svc}
}

// GET /api/dashboard/summary
func (h *DashboardController) Summary(c *fiber.Ctx) error {
	out, hit, err := h.Svc.Summary(c.UserContext())
	if err != nil {
		h.Svc.Log.Error("dashboard summary failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load dashboard summary")
	}
	if hit {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")
	}
	return helper.JsonOK(c, "ok", out)
}
