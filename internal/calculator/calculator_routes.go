package calculator

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	calc := r.Group("/calculator")
	{
		calc.POST("/statutory", handler.Statutory)
		calc.POST("/proration", handler.Proration)
	}
}
