// Package version serves the version of the running binary.
package version

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Data Object `json:"data"`
}

type Object struct {
	Version string `json:"version" example:"1.4.0"` // Release the server was built from, 0.0.0 for development builds
}

// RegisterRoutes serves v under r.
func RegisterRoutes(r *gin.RouterGroup, v string) {
	r.OPTIONS("", Options)
	r.GET("", Get(v))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get version
// @Description	Returns the version of the finance tracker server
// @Tags			General
// @Produce		json
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(v string) gin.HandlerFunc {
	body := Response{Data: Object{Version: v}}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, body)
	}
}
