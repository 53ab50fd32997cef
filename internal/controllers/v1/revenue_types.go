package v1

import (
	"fmt"

	"github.com/agencydesk/backend/internal/models"
	ad_uuid "github.com/agencydesk/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyRevenueEditable represents all user configurable parameters
type MonthlyRevenueEditable struct {
	CompanyID   uuid.UUID       `json:"companyId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the company the revenue belongs to
	ClientID    *uuid.UUID      `json:"clientId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`  // ID of the client the revenue is attributed to
	ProjectID   *uuid.UUID      `json:"projectId" example:"6b5ea324-d438-4419-882a-2fc91d71772f"` // ID of the project the revenue is attributed to
	Year        int             `json:"year" example:"2024"`                                      // Calendar year of the entry
	Month       int             `json:"month" example:"3"`                                        // Calendar month of the entry, 1 to 12
	RevenueType string          `json:"revenueType" example:"booked" default:"booked"`            // "booked" or "forecast"
	Revenue     decimal.Decimal `json:"revenue" example:"10000"`                                  // The revenue amount for the month
	Note        string          `json:"note" example:"Retainer invoice" default:""`               // Notes about the entry
}

func (editable MonthlyRevenueEditable) model() models.MonthlyRevenue {
	return models.MonthlyRevenue{
		CompanyID:   editable.CompanyID,
		ClientID:    editable.ClientID,
		ProjectID:   editable.ProjectID,
		Year:        editable.Year,
		Month:       editable.Month,
		RevenueType: editable.RevenueType,
		Revenue:     editable.Revenue,
		Note:        editable.Note,
	}
}

type MonthlyRevenueLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/revenues/501eb98d-b7a7-42ef-8d49-a6cc5d8a8f34"` // The revenue entry itself
}

type MonthlyRevenue struct {
	models.DefaultModel
	MonthlyRevenueEditable
	Links MonthlyRevenueLinks `json:"links"`
}

func newMonthlyRevenue(c *gin.Context, model models.MonthlyRevenue) MonthlyRevenue {
	url := c.GetString(string(models.DBContextURL))

	return MonthlyRevenue{
		DefaultModel: model.DefaultModel,
		MonthlyRevenueEditable: MonthlyRevenueEditable{
			CompanyID:   model.CompanyID,
			ClientID:    model.ClientID,
			ProjectID:   model.ProjectID,
			Year:        model.Year,
			Month:       model.Month,
			RevenueType: model.RevenueType,
			Revenue:     model.Revenue,
			Note:        model.Note,
		},
		Links: MonthlyRevenueLinks{
			Self: fmt.Sprintf("%s/v1/revenues/%s", url, model.ID),
		},
	}
}

type MonthlyRevenueListResponse struct {
	Data       []MonthlyRevenue `json:"data"`                                                          // List of revenue entries
	Error      *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type MonthlyRevenueCreateResponse struct {
	Data  []MonthlyRevenueResponse `json:"data"`                                                          // List of the created entries or their respective error
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MonthlyRevenueCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MonthlyRevenueResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MonthlyRevenueResponse struct {
	Data  *MonthlyRevenue `json:"data"`                                                          // Data for the revenue entry
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MonthlyRevenueQueryFilter struct {
	CompanyID   ad_uuid.UUID `form:"company"`                    // By ID of the Company
	ClientID    ad_uuid.UUID `form:"client"`                     // By ID of the Client
	ProjectID   ad_uuid.UUID `form:"project"`                    // By ID of the Project
	Year        int          `form:"year"`                       // By calendar year
	Month       int          `form:"month"`                      // By calendar month
	RevenueType string       `form:"revenueType"`                // By revenue type
	Note        string       `form:"note" filterField:"false"`   // By note
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first entry returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of entries to return. Defaults to 50.
}

func (f MonthlyRevenueQueryFilter) model() (models.MonthlyRevenue, error) {
	var clientID, projectID *uuid.UUID
	if f.ClientID.UUID != uuid.Nil {
		clientID = &f.ClientID.UUID
	}
	if f.ProjectID.UUID != uuid.Nil {
		projectID = &f.ProjectID.UUID
	}

	return models.MonthlyRevenue{
		CompanyID:   f.CompanyID.UUID,
		ClientID:    clientID,
		ProjectID:   projectID,
		Year:        f.Year,
		Month:       f.Month,
		RevenueType: f.RevenueType,
	}, nil
}
