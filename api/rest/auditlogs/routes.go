package auditlogs

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/algopatterns/envelope/internal/audit"
	"codeberg.org/algopatterns/envelope/internal/auth"
)

// registers the admin-only audit log endpoints
func RegisterRoutes(router *gin.RouterGroup, store audit.Store) {
	logs := router.Group("/audit-logs", auth.RequireAuth(), auth.RequireAdmin())
	{
		logs.GET("", ListHandler(store))
		logs.GET("/:id", GetHandler(store))
	}
}
