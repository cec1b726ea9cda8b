package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", handler.GetAll)
		leaves.GET("/:id", handler.GetById)
		leaves.POST("", handler.Submit)
		leaves.POST("/:id/decision", handler.Decide)
	}

	// Balance reads hang off the employee resource.
	r.GET("/employees/:id/leave-balance", handler.Balance)
}
