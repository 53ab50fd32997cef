package v1

import (
	"fmt"

	"github.com/agencydesk/backend/internal/models"
	ad_uuid "github.com/agencydesk/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientEditable represents all user configurable parameters
type ClientEditable struct {
	CompanyID        uuid.UUID  `json:"companyId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`        // ID of the company the client belongs to
	Name             string     `json:"name" example:"Initech" default:""`                               // Name of the client
	Status           string     `json:"status" example:"active" default:"active"`                        // "active" or "inactive"
	AccountManagerID *uuid.UUID `json:"accountManagerId" example:"a3d0038a-69f0-4b77-9eb6-365200d2a23c"` // Member responsible for the client
	Note             string     `json:"note" example:"Prefers invoices in the first week" default:""`    // Notes about the client
}

func (editable ClientEditable) model() models.Client {
	return models.Client{
		CompanyID:        editable.CompanyID,
		Name:             editable.Name,
		Status:           editable.Status,
		AccountManagerID: editable.AccountManagerID,
		Note:             editable.Note,
	}
}

type ClientLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/clients/3b1ea324-d438-4419-882a-2fc91d71772f"`               // The client itself
	Projects string `json:"projects" example:"https://example.com/api/v1/projects?client=3b1ea324-d438-4419-882a-2fc91d71772f"` // Projects for this client
}

type Client struct {
	models.DefaultModel
	ClientEditable
	Links ClientLinks `json:"links"`
}

func newClient(c *gin.Context, model models.Client) Client {
	url := c.GetString(string(models.DBContextURL))

	return Client{
		DefaultModel: model.DefaultModel,
		ClientEditable: ClientEditable{
			CompanyID:        model.CompanyID,
			Name:             model.Name,
			Status:           model.Status,
			AccountManagerID: model.AccountManagerID,
			Note:             model.Note,
		},
		Links: ClientLinks{
			Self:     fmt.Sprintf("%s/v1/clients/%s", url, model.ID),
			Projects: fmt.Sprintf("%s/v1/projects?client=%s", url, model.ID),
		},
	}
}

type ClientListResponse struct {
	Data       []Client    `json:"data"`                                                          // List of Clients
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ClientCreateResponse struct {
	Data  []ClientResponse `json:"data"`                                                          // List of the created Clients or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *ClientCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, ClientResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ClientResponse struct {
	Data  *Client `json:"data"`                                                          // Data for the Client
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ClientQueryFilter struct {
	CompanyID ad_uuid.UUID `form:"company"`                    // By ID of the Company
	Name      string       `form:"name" filterField:"false"`   // By name
	Status    string       `form:"status"`                     // By status
	Note      string       `form:"note" filterField:"false"`   // By note
	Search    string       `form:"search" filterField:"false"` // By string in name or note
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first Client returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of Clients to return. Defaults to 50.
}

func (f ClientQueryFilter) model() (models.Client, error) {
	return models.Client{
		CompanyID: f.CompanyID.UUID,
		Status:    f.Status,
	}, nil
}
