package employee

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:id", handler.GetById)
		employees.GET("/:id/compensation-history", handler.GetHistory)
		employees.POST("", handler.Create)
		employees.PUT("/:id", handler.Update)
		employees.DELETE("/:id", handler.Delete)
	}
}
