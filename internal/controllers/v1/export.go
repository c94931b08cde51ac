package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/export"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RegisterExportRoutes registers the routes for exports with
// the RouterGroup that is passed.
func (co Controller) RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/transactions", OptionsGet)
	r.GET("/transactions", co.ExportTransactions)
}

// @Summary		Export transactions
// @Description	Returns an XLSX workbook with the transactions and a summary
// @Tags			Export
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			fromDate	query		string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			untilDate	query		string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Router			/v1/export/transactions [get]
func (co Controller) ExportTransactions(c *gin.Context) {
	var query ExportQuery
	if err := c.BindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidQueryString.Error()})
		return
	}

	if !query.FromDate.IsZero() && !query.UntilDate.IsZero() && query.FromDate.After(query.UntilDate) {
		c.JSON(http.StatusBadRequest, httpError{Error: models.ErrInvalidDateRange.Error()})
		return
	}

	q := co.db(c).
		Preload("Category").
		Where("user_id = ?", auth.UserID(c)).
		Order("date ASC, created_at ASC")

	if !query.FromDate.IsZero() {
		q = q.Where("date >= ?", query.FromDate)
	}

	if !query.UntilDate.IsZero() {
		q = q.Where("date < ?", query.UntilDate.AddDate(0, 0, 1))
	}

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	f, err := export.Workbook(models.Records(transactions), co.Config.Currency())
	if err != nil {
		log.Error().Err(err).Msg("export")
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().In(time.UTC).Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("export")
	}
}
