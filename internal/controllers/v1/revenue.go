package v1

import (
	"fmt"
	"net/http"

	"github.com/agencydesk/backend/internal/httputil"
	"github.com/agencydesk/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterMonthlyRevenueRoutes registers the routes for monthly revenue
// entries with the RouterGroup that is passed.
func RegisterMonthlyRevenueRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMonthlyRevenueList)
		r.GET("", GetMonthlyRevenues)
		r.POST("", CreateMonthlyRevenues)
	}

	// Entry with ID
	{
		r.OPTIONS("/:id", OptionsMonthlyRevenueDetail)
		r.GET("/:id", GetMonthlyRevenue)
		r.PATCH("/:id", UpdateMonthlyRevenue)
		r.DELETE("/:id", DeleteMonthlyRevenue)
	}
}

// OptionsMonthlyRevenueList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			MonthlyRevenues
//	@Success		204
//	@Router			/v1/revenues [options]
func OptionsMonthlyRevenueList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsMonthlyRevenueDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			MonthlyRevenues
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/revenues/{id} [options]
func OptionsMonthlyRevenueDetail(c *gin.Context) {
	resourceOptionsDetail(c, httputil.OptionsGetPatchDelete, models.MonthlyRevenue{})
}

// CreateMonthlyRevenues creates new revenue entries
//
//	@Summary		Create revenue entries
//	@Description	Creates new monthly revenue entries
//	@Tags			MonthlyRevenues
//	@Produce		json
//	@Success		201	{object}	MonthlyRevenueCreateResponse
//	@Failure		400	{object}	MonthlyRevenueCreateResponse
//	@Failure		404	{object}	MonthlyRevenueCreateResponse
//	@Failure		500	{object}	MonthlyRevenueCreateResponse
//	@Param			monthlyRevenues	body		[]MonthlyRevenueEditable	true	"MonthlyRevenues"
//	@Router			/v1/revenues [post]
func CreateMonthlyRevenues(c *gin.Context) {
	var editables []MonthlyRevenueEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyRevenueCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	responseStatus := http.StatusCreated
	r := MonthlyRevenueCreateResponse{}

	for _, editable := range editables {
		entry := editable.model()

		err = models.DB.Create(&entry).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		data := newMonthlyRevenue(c, entry)
		r.Data = append(r.Data, MonthlyRevenueResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// GetMonthlyRevenues returns a list of revenue entries filtered by the query parameters
//
//	@Summary		Get revenue entries
//	@Description	Returns a list of monthly revenue entries
//	@Tags			MonthlyRevenues
//	@Produce		json
//	@Success		200	{object}	MonthlyRevenueListResponse
//	@Failure		400	{object}	MonthlyRevenueListResponse
//	@Failure		500	{object}	MonthlyRevenueListResponse
//	@Router			/v1/revenues [get]
//	@Param			company		query	string	false	"Filter by company ID"
//	@Param			client		query	string	false	"Filter by client ID"
//	@Param			project		query	string	false	"Filter by project ID"
//	@Param			year		query	int		false	"Filter by calendar year"
//	@Param			month		query	int		false	"Filter by calendar month"
//	@Param			revenueType	query	string	false	"Filter by revenue type"
//	@Param			note		query	string	false	"Filter by note"
//	@Param			offset		query	uint	false	"The offset of the first entry returned. Defaults to 0."
//	@Param			limit		query	int		false	"Maximum number of entries to return. Defaults to 50."
func GetMonthlyRevenues(c *gin.Context) {
	var filter MonthlyRevenueQueryFilter

	// The filters contain only strings and ints, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyRevenueListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("year ASC, month ASC").
		Where(&model, queryFields...)

	if filter.Note != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Note))
	} else if slices.Contains(setFields, "Note") {
		q = q.Where("note = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 entries and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var entries []models.MonthlyRevenue
	err = q.Find(&entries).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyRevenueListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyRevenueListResponse{
			Error: &s,
		})
		return
	}

	data := make([]MonthlyRevenue, 0)
	for _, entry := range entries {
		data = append(data, newMonthlyRevenue(c, entry))
	}

	c.JSON(http.StatusOK, MonthlyRevenueListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetMonthlyRevenue returns a specific revenue entry
//
//	@Summary		Get revenue entry
//	@Description	Returns a specific monthly revenue entry
//	@Tags			MonthlyRevenues
//	@Produce		json
//	@Success		200	{object}	MonthlyRevenueResponse
//	@Failure		400	{object}	MonthlyRevenueResponse
//	@Failure		404	{object}	MonthlyRevenueResponse
//	@Failure		500	{object}	MonthlyRevenueResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/revenues/{id} [get]
func GetMonthlyRevenue(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, MonthlyRevenueResponse{
			Error: &s,
		})
		return
	}

	var entry models.MonthlyRevenue
	err := models.DB.First(&entry, &models.MonthlyRevenue{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyRevenueResponse{
			Error: &s,
		})
		return
	}

	data := newMonthlyRevenue(c, entry)
	c.JSON(http.StatusOK, MonthlyRevenueResponse{Data: &data})
}

// UpdateMonthlyRevenue updates a specific revenue entry
//
//	@Summary		Update revenue entry
//	@Description	Updates an existing monthly revenue entry. Only values to be updated need to be specified.
//	@Tags			MonthlyRevenues
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	MonthlyRevenueResponse
//	@Failure		400	{object}	MonthlyRevenueResponse
//	@Failure		404	{object}	MonthlyRevenueResponse
//	@Failure		500	{object}	MonthlyRevenueResponse
//	@Param			id				path		URIID					true	"ID formatted as string"
//	@Param			monthlyRevenue	body		MonthlyRevenueEditable	true	"MonthlyRevenue"
//	@Router			/v1/revenues/{id} [patch]
func UpdateMonthlyRevenue(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, MonthlyRevenueResponse{
			Error: &s,
		})
		return
	}

	var entry models.MonthlyRevenue
	err := models.DB.First(&entry, &models.MonthlyRevenue{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyRevenueResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MonthlyRevenueEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyRevenueResponse{
			Error: &s,
		})
		return
	}

	var data MonthlyRevenueEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyRevenueResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&entry).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyRevenueResponse{
			Error: &s,
		})
		return
	}

	apiResource := newMonthlyRevenue(c, entry)
	c.JSON(http.StatusOK, MonthlyRevenueResponse{Data: &apiResource})
}

// DeleteMonthlyRevenue deletes a specific revenue entry
//
//	@Summary		Delete revenue entry
//	@Description	Deletes a monthly revenue entry
//	@Tags			MonthlyRevenues
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/revenues/{id} [delete]
func DeleteMonthlyRevenue(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var entry models.MonthlyRevenue
	err := models.DB.First(&entry, &models.MonthlyRevenue{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&entry).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
