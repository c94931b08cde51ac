package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

type userResource interface {
	models.Category | models.Transaction | models.Budget | models.RecurringTransaction | models.MatchRule | models.PlaidItem
}

// getResource loads the resource with the ID from the URI. Resources of other
// users are reported as not found.
func getResource[R userResource](co Controller, c *gin.Context) (R, error) {
	var resource R

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return resource, err
	}

	err = co.db(c).Where("id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).First(&resource).Error
	return resource, err
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R userResource](co Controller, c *gin.Context) {
	_, err := getResource[R](co, c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// deleteResource deletes the resource with the ID from the URI.
func deleteResource[R userResource](co Controller, c *gin.Context) {
	resource, err := getResource[R](co, c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.db(c).Delete(&resource).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// limit returns the limit from the query string or the default of 50.
func limit(setFields []string, value int) int {
	if slices.Contains(setFields, "Limit") {
		return value
	}
	return 50
}

func ptr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
