// Package v1 contains the handlers of the v1 API.
package v1

import (
	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/config"
	"github.com/finance-tracker/backend/internal/plaid"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller holds the dependencies of the handlers.
type Controller struct {
	DB     *gorm.DB
	Tokens auth.Tokens
	Config config.Config

	// Plaid is nil when bank synchronization is not configured
	Plaid plaid.Service
}

// db returns a session bound to the context of the request.
func (co Controller) db(c *gin.Context) *gorm.DB {
	return co.DB.WithContext(c.Request.Context())
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
// Everything except sign up, log in and the Plaid webhook requires a valid
// bearer token.
func (co Controller) RegisterRoutes(v1 *gin.RouterGroup) {
	{
		v1.GET("", co.GetRoot)
		v1.OPTIONS("", OptionsRoot)
	}

	co.RegisterAuthRoutes(v1.Group("/auth"))
	co.RegisterPlaidWebhookRoutes(v1.Group("/plaid/webhook"))

	authenticated := v1.Group("", auth.Middleware(co.Tokens))
	co.RegisterCategoryRoutes(authenticated.Group("/categories"))
	co.RegisterTransactionRoutes(authenticated.Group("/transactions"))
	co.RegisterBudgetRoutes(authenticated.Group("/budgets"))
	co.RegisterRecurringRoutes(authenticated.Group("/recurring"))
	co.RegisterDashboardRoutes(authenticated.Group("/dashboard"))
	co.RegisterMatchRuleRoutes(authenticated.Group("/match-rules"))
	co.RegisterImportRoutes(authenticated.Group("/import"))
	co.RegisterExportRoutes(authenticated.Group("/export"))
	co.RegisterPlaidRoutes(authenticated.Group("/plaid"))
}
