package v1

import (
	"fmt"
	"time"

	"github.com/agencydesk/backend/internal/models"
	ad_uuid "github.com/agencydesk/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostEditable represents all user configurable parameters
type CostEditable struct {
	CompanyID    uuid.UUID       `json:"companyId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the company the cost belongs to
	Name         string          `json:"name" example:"Office rent" default:""`                    // Name of the cost
	CostType     string          `json:"costType" example:"office" default:"other"`                // "payroll", "office", "software", "marketing" or "other"
	Amount       decimal.Decimal `json:"amount" example:"1500"`                                    // The amount per billing interval
	Frequency    string          `json:"frequency" example:"monthly" default:"monthly"`            // "monthly", "one_time" or "spread"
	StartDate    time.Time       `json:"startDate" example:"2024-01-01T00:00:00Z"`                 // First day the cost applies
	EndDate      *time.Time      `json:"endDate" example:"2024-12-31T00:00:00Z"`                   // Last day the cost applies. Unset means open ended.
	IsContractor bool            `json:"isContractor" example:"false" default:"false"`             // Whether the cost pays an external contractor
	IsActive     bool            `json:"isActive" example:"true" default:"false"`                  // Inactive costs are ignored by all aggregations
}

func (editable CostEditable) model() models.Cost {
	return models.Cost{
		CompanyID:    editable.CompanyID,
		Name:         editable.Name,
		CostType:     editable.CostType,
		Amount:       editable.Amount,
		Frequency:    editable.Frequency,
		StartDate:    editable.StartDate,
		EndDate:      editable.EndDate,
		IsContractor: editable.IsContractor,
		IsActive:     editable.IsActive,
	}
}

type CostLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/costs/af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"` // The cost itself
}

type Cost struct {
	models.DefaultModel
	CostEditable
	Links CostLinks `json:"links"`
}

func newCost(c *gin.Context, model models.Cost) Cost {
	url := c.GetString(string(models.DBContextURL))

	return Cost{
		DefaultModel: model.DefaultModel,
		CostEditable: CostEditable{
			CompanyID:    model.CompanyID,
			Name:         model.Name,
			CostType:     model.CostType,
			Amount:       model.Amount,
			Frequency:    model.Frequency,
			StartDate:    model.StartDate,
			EndDate:      model.EndDate,
			IsContractor: model.IsContractor,
			IsActive:     model.IsActive,
		},
		Links: CostLinks{
			Self: fmt.Sprintf("%s/v1/costs/%s", url, model.ID),
		},
	}
}

type CostListResponse struct {
	Data       []Cost      `json:"data"`                                                          // List of Costs
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CostCreateResponse struct {
	Data  []CostResponse `json:"data"`                                                          // List of the created Costs or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CostCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CostResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CostResponse struct {
	Data  *Cost   `json:"data"`                                                          // Data for the Cost
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CostQueryFilter struct {
	CompanyID    ad_uuid.UUID `form:"company"`                    // By ID of the Company
	Name         string       `form:"name" filterField:"false"`   // By name
	CostType     string       `form:"costType"`                   // By cost type
	Frequency    string       `form:"frequency"`                  // By frequency
	IsContractor bool         `form:"isContractor"`               // Is the cost paid to a contractor?
	IsActive     bool         `form:"isActive"`                   // Is the cost active?
	Offset       uint         `form:"offset" filterField:"false"` // The offset of the first Cost returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`  // Maximum number of Costs to return. Defaults to 50.
}

func (f CostQueryFilter) model() (models.Cost, error) {
	return models.Cost{
		CompanyID:    f.CompanyID.UUID,
		CostType:     f.CostType,
		Frequency:    f.Frequency,
		IsContractor: f.IsContractor,
		IsActive:     f.IsActive,
	}, nil
}
