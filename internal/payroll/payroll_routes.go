package payroll

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("", handler.GetAll)
		payrolls.GET("/:id", handler.GetByID)
		payrolls.POST("", handler.Create)
		payrolls.PUT("/:id", handler.Update)
		payrolls.DELETE("/:id", handler.Delete)

		payrolls.POST("/:id/transition", handler.Transition)
		payrolls.POST("/:id/process", handler.Process)

		payrolls.GET("/:id/items", handler.GetItems)
	}

	items := r.Group("/payroll-items")
	{
		items.GET("/:itemId", handler.GetItem)
		items.GET("/:itemId/adjustments", handler.GetAdjustments)
		items.POST("/:itemId/adjustments", handler.AddAdjustment)
	}
}
