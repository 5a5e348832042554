package taxbracket

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	brackets := r.Group("/tax-brackets")
	{
		brackets.GET("", handler.GetAll)
		brackets.POST("", handler.Create)
		brackets.PUT("/:id", handler.Update)
		brackets.DELETE("/:id", handler.Delete)
	}
}
