package v1

import (
	"fmt"
	"net/http"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm/clause"
)

// RegisterMatchRuleRoutes registers the routes for match rules with
// the RouterGroup that is passed.
func (co Controller) RegisterMatchRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMatchRuleList)
		r.GET("", co.GetMatchRules)
		r.POST("", co.CreateMatchRules)
	}

	// Match Rule with ID
	{
		r.OPTIONS("/:id", co.OptionsMatchRuleDetail)
		r.GET("/:id", co.GetMatchRule)
		r.PATCH("/:id", co.UpdateMatchRule)
		r.DELETE("/:id", co.DeleteMatchRule)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Match Rules
// @Success		204
// @Router			/v1/match-rules [options]
func OptionsMatchRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Match Rules
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/match-rules/{id} [options]
func (co Controller) OptionsMatchRuleDetail(c *gin.Context) {
	resourceOptionsDetail[models.MatchRule](co, c)
}

// @Summary		Create match rules
// @Description	Creates match rules from the list of submitted match rule data. The response code is the highest response code number that a single match rule creation would have caused. If it is not equal to 201, at least one match rule has an error.
// @Tags			Match Rules
// @Accept			json
// @Produce		json
// @Success		201			{object}	MatchRuleCreateResponse
// @Failure		400			{object}	MatchRuleCreateResponse
// @Failure		404			{object}	MatchRuleCreateResponse
// @Failure		500			{object}	MatchRuleCreateResponse
// @Param			matchRules	body		[]MatchRuleEditable	true	"MatchRules"
// @Router			/v1/match-rules [post]
func (co Controller) CreateMatchRules(c *gin.Context) {
	var editables []MatchRuleEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchRuleCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MatchRuleCreateResponse{}

	for _, editable := range editables {
		matchRule := editable.model(c)

		err = co.db(c).Create(&matchRule).Error
		if err == nil {
			matchRule, err = co.loadMatchRule(c, matchRule.ID)
		}

		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newMatchRule(c, matchRule)
		r.Data = append(r.Data, MatchRuleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get all match rules
// @Description	Returns a list of all match rules
// @Tags			Match Rules
// @Produce		json
// @Success		200			{object}	MatchRuleListResponse
// @Failure		400			{object}	MatchRuleListResponse
// @Failure		500			{object}	MatchRuleListResponse
// @Param			priority	query		uint	false	"Filter by priority"
// @Param			match		query		string	false	"Filter by match"
// @Param			category	query		string	false	"Filter by category ID"
// @Param			offset		query		uint	false	"The offset of the first Match Rule returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of Match Rules to return. Defaults to 50."
// @Router			/v1/match-rules [get]
func (co Controller) GetMatchRules(c *gin.Context) {
	var filter MatchRuleQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, MatchRuleListResponse{
			Error: &s,
		})
		return
	}

	// Get the parameters set in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model(c)
	q := co.db(c).
		Preload("Category").
		Order("priority ASC, match ASC").
		Where(&filterModel, append(queryFields, "UserID")...)

	if filter.Match != "" {
		q = q.Where("match LIKE ?", fmt.Sprintf("%%%s%%", filter.Match))
	} else if slices.Contains(setFields, "Match") {
		q = q.Where("match = ''")
	}

	limit := limit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var matchRules []models.MatchRule
	err := q.Find(&matchRules).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MatchRuleListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MatchRuleListResponse{
			Error: &s,
		})
		return
	}

	data := make([]MatchRule, 0)
	for _, matchRule := range matchRules {
		data = append(data, newMatchRule(c, matchRule))
	}

	c.JSON(http.StatusOK, MatchRuleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get match rule
// @Description	Returns a specific match rule
// @Tags			Match Rules
// @Produce		json
// @Success		200	{object}	MatchRuleResponse
// @Failure		400	{object}	MatchRuleResponse
// @Failure		404	{object}	MatchRuleResponse
// @Failure		500	{object}	MatchRuleResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/match-rules/{id} [get]
func (co Controller) GetMatchRule(c *gin.Context) {
	matchRule, err := getResource[models.MatchRule](co, c)
	if err == nil {
		matchRule, err = co.loadMatchRule(c, matchRule.ID)
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), MatchRuleResponse{Error: &s})
		return
	}

	data := newMatchRule(c, matchRule)
	c.JSON(http.StatusOK, MatchRuleResponse{Data: &data})
}

// @Summary		Update match rule
// @Description	Update a match rule. Only values to be updated need to be specified.
// @Tags			Match Rules
// @Accept			json
// @Produce		json
// @Success		200			{object}	MatchRuleResponse
// @Failure		400			{object}	MatchRuleResponse
// @Failure		404			{object}	MatchRuleResponse
// @Failure		500			{object}	MatchRuleResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			matchRule	body		MatchRuleEditable	true	"MatchRule"
// @Router			/v1/match-rules/{id} [patch]
func (co Controller) UpdateMatchRule(c *gin.Context) {
	matchRule, err := getResource[models.MatchRule](co, c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MatchRuleResponse{Error: &s})
		return
	}

	data := newMatchRule(c, matchRule).MatchRuleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MatchRuleResponse{Error: &s})
		return
	}

	updated := data.model(c)
	updated.DefaultModel = matchRule.DefaultModel

	err = co.db(c).Omit(clause.Associations).Save(&updated).Error
	if err == nil {
		updated, err = co.loadMatchRule(c, updated.ID)
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), MatchRuleResponse{Error: &s})
		return
	}

	r := newMatchRule(c, updated)
	c.JSON(http.StatusOK, MatchRuleResponse{Data: &r})
}

// @Summary		Delete match rule
// @Description	Deletes a match rule
// @Tags			Match Rules
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/match-rules/{id} [delete]
func (co Controller) DeleteMatchRule(c *gin.Context) {
	deleteResource[models.MatchRule](co, c)
}

func (co Controller) loadMatchRule(c *gin.Context, id uuid.UUID) (models.MatchRule, error) {
	var matchRule models.MatchRule
	err := co.db(c).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, auth.UserID(c)).
		First(&matchRule).Error

	return matchRule, err
}
