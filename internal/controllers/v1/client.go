package v1

import (
	"net/http"

	"github.com/agencydesk/backend/internal/httputil"
	"github.com/agencydesk/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterClientRoutes registers the routes for clients with
// the RouterGroup that is passed.
func RegisterClientRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsClientList)
		r.GET("", GetClients)
		r.POST("", CreateClients)
	}

	// Client with ID
	{
		r.OPTIONS("/:id", OptionsClientDetail)
		r.GET("/:id", GetClient)
		r.PATCH("/:id", UpdateClient)
		r.DELETE("/:id", DeleteClient)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Router			/v1/clients [options]
func OptionsClientList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id} [options]
func OptionsClientDetail(c *gin.Context) {
	resourceOptionsDetail(c, httputil.OptionsGetPatchDelete, models.Client{})
}

// @Summary		Create clients
// @Description	Creates new clients
// @Tags			Clients
// @Produce		json
// @Success		201		{object}	ClientCreateResponse
// @Failure		400		{object}	ClientCreateResponse
// @Failure		404		{object}	ClientCreateResponse
// @Failure		500		{object}	ClientCreateResponse
// @Param			clients	body		[]ClientEditable	true	"Clients"
// @Router			/v1/clients [post]
func CreateClients(c *gin.Context) {
	var editables []ClientEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ClientCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ClientCreateResponse{}

	for _, editable := range editables {
		client := editable.model()

		err = models.DB.Create(&client).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newClient(c, client)
		r.Data = append(r.Data, ClientResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get clients
// @Description	Returns a list of clients
// @Tags			Clients
// @Produce		json
// @Success		200	{object}	ClientListResponse
// @Failure		400	{object}	ClientListResponse
// @Failure		500	{object}	ClientListResponse
// @Router			/v1/clients [get]
// @Param			company	query	string	false	"Filter by company ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			status	query	string	false	"Filter by status"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first Client returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Clients to return. Defaults to 50."
func GetClients(c *gin.Context) {
	var filter ClientQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Clients and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var clients []models.Client
	err = q.Find(&clients).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ClientListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Client, 0)
	for _, client := range clients {
		data = append(data, newClient(c, client))
	}

	c.JSON(http.StatusOK, ClientListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get client
// @Description	Returns a specific client
// @Tags			Clients
// @Produce		json
// @Success		200	{object}	ClientResponse
// @Failure		400	{object}	ClientResponse
// @Failure		404	{object}	ClientResponse
// @Failure		500	{object}	ClientResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id} [get]
func GetClient(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	var client models.Client
	err = models.DB.First(&client, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	data := newClient(c, client)
	c.JSON(http.StatusOK, ClientResponse{Data: &data})
}

// @Summary		Update client
// @Description	Update an existing client. Only values to be updated need to be specified.
// @Tags			Clients
// @Accept			json
// @Produce		json
// @Success		200		{object}	ClientResponse
// @Failure		400		{object}	ClientResponse
// @Failure		404		{object}	ClientResponse
// @Failure		500		{object}	ClientResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			client	body		ClientEditable	true	"Client"
// @Router			/v1/clients/{id} [patch]
func UpdateClient(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	var client models.Client
	err = models.DB.First(&client, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ClientEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	var data ClientEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&client).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	apiResource := newClient(c, client)
	c.JSON(http.StatusOK, ClientResponse{Data: &apiResource})
}

// @Summary		Delete client
// @Description	Deletes a client
// @Tags			Clients
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id} [delete]
func DeleteClient(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var client models.Client
	err = models.DB.First(&client, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&client).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
