package salaryconfig

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	configs := r.Group("/salary-configurations")
	{
		configs.GET("", handler.GetAll)
		configs.GET("/active", handler.GetActive)
		configs.POST("", handler.Create)
		configs.PUT("/:id", handler.Update)
		configs.POST("/:id/activate", handler.Activate)
		configs.DELETE("/:id", handler.Delete)
	}
}
