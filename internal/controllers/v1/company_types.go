package v1

import (
	"fmt"
	"strings"

	"github.com/agencydesk/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// CompanyEditable represents all user configurable parameters
type CompanyEditable struct {
	Name string `json:"name" example:"North Studio" default:""`               // Name of the company
	Code string `json:"code" example:"NORTH" default:""`                      // Unique short code, stored uppercase
	Note string `json:"note" example:"The Berlin branch of the group" default:""` // Notes about the company
}

func (editable CompanyEditable) model() models.Company {
	return models.Company{
		Name: editable.Name,
		Code: editable.Code,
		Note: editable.Note,
	}
}

type CompanyLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/companies/d3c4b5a6-1234-4b04-9ba7-772e5ab9d0ce"`              // The company itself
	Clients      string `json:"clients" example:"https://example.com/api/v1/clients?company=d3c4b5a6-1234-4b04-9ba7-772e5ab9d0ce"`     // Clients of this company
	Members      string `json:"members" example:"https://example.com/api/v1/members?company=d3c4b5a6-1234-4b04-9ba7-772e5ab9d0ce"`     // Members of this company
	Projects     string `json:"projects" example:"https://example.com/api/v1/projects?company=d3c4b5a6-1234-4b04-9ba7-772e5ab9d0ce"`   // Projects of this company
	MonthlyCosts string `json:"monthlyCosts" example:"https://example.com/api/v1/companies/d3c4b5a6-1234-4b04-9ba7-772e5ab9d0ce/costs/monthly?month=2024-03"` // Monthly operating costs
	Revenue      string `json:"revenue" example:"https://example.com/api/v1/companies/d3c4b5a6-1234-4b04-9ba7-772e5ab9d0ce/revenue?year=2024"`                // Monthly revenue for a year
}

type Company struct {
	models.DefaultModel
	CompanyEditable
	Links CompanyLinks `json:"links"`
}

func newCompany(c *gin.Context, model models.Company) Company {
	url := c.GetString(string(models.DBContextURL))

	return Company{
		DefaultModel: model.DefaultModel,
		CompanyEditable: CompanyEditable{
			Name: model.Name,
			Code: model.Code,
			Note: model.Note,
		},
		Links: CompanyLinks{
			Self:         fmt.Sprintf("%s/v1/companies/%s", url, model.ID),
			Clients:      fmt.Sprintf("%s/v1/clients?company=%s", url, model.ID),
			Members:      fmt.Sprintf("%s/v1/members?company=%s", url, model.ID),
			Projects:     fmt.Sprintf("%s/v1/projects?company=%s", url, model.ID),
			MonthlyCosts: fmt.Sprintf("%s/v1/companies/%s/costs/monthly", url, model.ID),
			Revenue:      fmt.Sprintf("%s/v1/companies/%s/revenue", url, model.ID),
		},
	}
}

type CompanyListResponse struct {
	Data       []Company   `json:"data"`                                                          // List of Companies
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CompanyCreateResponse struct {
	Data  []CompanyResponse `json:"data"`                                                          // List of the created Companies or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CompanyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CompanyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CompanyResponse struct {
	Data  *Company `json:"data"`                                                          // Data for the Company
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CompanyQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Code   string `form:"code"`                       // By code
	Note   string `form:"note" filterField:"false"`   // By note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Company returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Companies to return. Defaults to 50.
}

func (f CompanyQueryFilter) model() (models.Company, error) {
	// Codes are stored uppercase, so the filter is normalized the same way
	return models.Company{
		Code: strings.TrimSpace(strings.ToUpper(f.Code)),
	}, nil
}
