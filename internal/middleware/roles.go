package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VitalCareServices/clinic-scheduler/internal/authz"
	"github.com/VitalCareServices/clinic-scheduler/internal/domain/role"
)

// Require guards a route with the (operation, role) permission table.
// Runs after AuthMiddleware.
func Require(op authz.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleName, _ := c.MustGet(ContextUserRole).(string)

		r, err := role.Parse(roleName)
		if err != nil || !authz.Allowed(op, r) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden_role"})
			return
		}

		c.Next()
	}
}
