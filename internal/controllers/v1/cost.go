package v1

import (
	"fmt"
	"net/http"

	"github.com/agencydesk/backend/internal/httputil"
	"github.com/agencydesk/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterCostRoutes registers the routes for costs with
// the RouterGroup that is passed.
func RegisterCostRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCostList)
		r.GET("", GetCosts)
		r.POST("", CreateCosts)
	}

	// Cost with ID
	{
		r.OPTIONS("/:id", OptionsCostDetail)
		r.GET("/:id", GetCost)
		r.PATCH("/:id", UpdateCost)
		r.DELETE("/:id", DeleteCost)
	}
}

// OptionsCostList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Costs
//	@Success		204
//	@Router			/v1/costs [options]
func OptionsCostList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsCostDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Costs
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/costs/{id} [options]
func OptionsCostDetail(c *gin.Context) {
	resourceOptionsDetail(c, httputil.OptionsGetPatchDelete, models.Cost{})
}

// CreateCosts creates new costs
//
//	@Summary		Create costs
//	@Description	Creates new costs
//	@Tags			Costs
//	@Produce		json
//	@Success		201	{object}	CostCreateResponse
//	@Failure		400	{object}	CostCreateResponse
//	@Failure		404	{object}	CostCreateResponse
//	@Failure		500	{object}	CostCreateResponse
//	@Param			costs	body		[]CostEditable	true	"Costs"
//	@Router			/v1/costs [post]
func CreateCosts(c *gin.Context) {
	var editables []CostEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CostCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	responseStatus := http.StatusCreated
	r := CostCreateResponse{}

	for _, editable := range editables {
		cost := editable.model()

		err = models.DB.Create(&cost).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		data := newCost(c, cost)
		r.Data = append(r.Data, CostResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// GetCosts returns a list of costs filtered by the query parameters
//
//	@Summary		Get costs
//	@Description	Returns a list of costs
//	@Tags			Costs
//	@Produce		json
//	@Success		200	{object}	CostListResponse
//	@Failure		400	{object}	CostListResponse
//	@Failure		500	{object}	CostListResponse
//	@Router			/v1/costs [get]
//	@Param			company			query	string	false	"Filter by company ID"
//	@Param			name			query	string	false	"Filter by name"
//	@Param			costType		query	string	false	"Filter by cost type"
//	@Param			frequency		query	string	false	"Filter by frequency"
//	@Param			isContractor	query	bool	false	"Is the cost paid to a contractor?"
//	@Param			isActive		query	bool	false	"Is the cost active?"
//	@Param			offset			query	uint	false	"The offset of the first Cost returned. Defaults to 0."
//	@Param			limit			query	int		false	"Maximum number of Costs to return. Defaults to 50."
func GetCosts(c *gin.Context) {
	var filter CostQueryFilter

	// The filters contain only strings and booleans, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CostListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&model, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Costs and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var costs []models.Cost
	err = q.Find(&costs).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CostListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CostListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Cost, 0)
	for _, cost := range costs {
		data = append(data, newCost(c, cost))
	}

	c.JSON(http.StatusOK, CostListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetCost returns a specific cost
//
//	@Summary		Get cost
//	@Description	Returns a specific cost
//	@Tags			Costs
//	@Produce		json
//	@Success		200	{object}	CostResponse
//	@Failure		400	{object}	CostResponse
//	@Failure		404	{object}	CostResponse
//	@Failure		500	{object}	CostResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/costs/{id} [get]
func GetCost(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, CostResponse{
			Error: &s,
		})
		return
	}

	var cost models.Cost
	err := models.DB.First(&cost, &models.Cost{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CostResponse{
			Error: &s,
		})
		return
	}

	data := newCost(c, cost)
	c.JSON(http.StatusOK, CostResponse{Data: &data})
}

// UpdateCost updates a specific cost
//
//	@Summary		Update cost
//	@Description	Updates an existing cost. Only values to be updated need to be specified.
//	@Tags			Costs
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	CostResponse
//	@Failure		400	{object}	CostResponse
//	@Failure		404	{object}	CostResponse
//	@Failure		500	{object}	CostResponse
//	@Param			id		path		URIID			true	"ID formatted as string"
//	@Param			cost	body		CostEditable	true	"Cost"
//	@Router			/v1/costs/{id} [patch]
func UpdateCost(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, CostResponse{
			Error: &s,
		})
		return
	}

	var cost models.Cost
	err := models.DB.First(&cost, &models.Cost{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CostResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CostEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CostResponse{
			Error: &s,
		})
		return
	}

	var data CostEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CostResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&cost).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CostResponse{
			Error: &s,
		})
		return
	}

	apiResource := newCost(c, cost)
	c.JSON(http.StatusOK, CostResponse{Data: &apiResource})
}

// DeleteCost deletes a specific cost
//
//	@Summary		Delete cost
//	@Description	Deletes a cost
//	@Tags			Costs
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/costs/{id} [delete]
func DeleteCost(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var cost models.Cost
	err := models.DB.First(&cost, &models.Cost{
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

	err = models.DB.Delete(&cost).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
