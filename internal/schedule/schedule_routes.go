package schedule

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("/:id/payment-schedules", handler.GetByPayroll)
	}

	schedules := r.Group("/payment-schedules")
	{
		schedules.PATCH("/:id/status", handler.UpdateStatus)
	}
}
