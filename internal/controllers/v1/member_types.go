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

// MemberEditable represents all user configurable parameters
type MemberEditable struct {
	CompanyID           uuid.UUID       `json:"companyId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the company the member belongs to
	FirstName           string          `json:"firstName" example:"Alice" default:""`                     // First name
	LastName            string          `json:"lastName" example:"Yu" default:""`                         // Last name
	Email               string          `json:"email" example:"alice@example.com" default:""`             // Email address, unique across all members
	Role                string          `json:"role" example:"Backend Engineer" default:""`               // Free text role description
	Status              string          `json:"status" example:"full_time" default:"full_time"`           // "full_time", "part_time", "contractor" or "inactive"
	WeeklyCapacityHours decimal.Decimal `json:"weeklyCapacityHours" example:"40"`                         // Hours the member can work per week
	HourlyRate          decimal.Decimal `json:"hourlyRate" example:"90"`                                  // Billable rate
	MonthlySalaryCost   decimal.Decimal `json:"monthlySalaryCost" example:"6000"`                         // What the member costs per month
	IsProjectManager    bool            `json:"isProjectManager" example:"false" default:"false"`         // Can the member manage projects?
	StartDate           *time.Time      `json:"startDate" example:"2023-02-01T00:00:00Z"`                 // Employment start, omit for an open start
	EndDate             *time.Time      `json:"endDate" example:"2025-06-30T00:00:00Z"`                   // Employment end, omit for an open end
}

func (editable MemberEditable) model() models.UserProfile {
	return models.UserProfile{
		CompanyID:           editable.CompanyID,
		FirstName:           editable.FirstName,
		LastName:            editable.LastName,
		Email:               editable.Email,
		Role:                editable.Role,
		Status:              editable.Status,
		WeeklyCapacityHours: editable.WeeklyCapacityHours,
		HourlyRate:          editable.HourlyRate,
		MonthlySalaryCost:   editable.MonthlySalaryCost,
		IsProjectManager:    editable.IsProjectManager,
		StartDate:           editable.StartDate,
		EndDate:             editable.EndDate,
	}
}

type MemberLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/members/3b1ea324-d438-4419-882a-2fc91d71772f"`                // The member itself
	Dashboard string `json:"dashboard" example:"https://example.com/api/v1/dashboard/employee?member=3b1ea324-d438-4419-882a-2fc91d71772f"` // The member's workload dashboard
}

type Member struct {
	models.DefaultModel
	MemberEditable
	Links MemberLinks `json:"links"`
}

func newMember(c *gin.Context, model models.UserProfile) Member {
	url := c.GetString(string(models.DBContextURL))

	return Member{
		DefaultModel: model.DefaultModel,
		MemberEditable: MemberEditable{
			CompanyID:           model.CompanyID,
			FirstName:           model.FirstName,
			LastName:            model.LastName,
			Email:               model.Email,
			Role:                model.Role,
			Status:              model.Status,
			WeeklyCapacityHours: model.WeeklyCapacityHours,
			HourlyRate:          model.HourlyRate,
			MonthlySalaryCost:   model.MonthlySalaryCost,
			IsProjectManager:    model.IsProjectManager,
			StartDate:           model.StartDate,
			EndDate:             model.EndDate,
		},
		Links: MemberLinks{
			Self:      fmt.Sprintf("%s/v1/members/%s", url, model.ID),
			Dashboard: fmt.Sprintf("%s/v1/dashboard/employee?member=%s", url, model.ID),
		},
	}
}

type MemberListResponse struct {
	Data       []Member    `json:"data"`                                                          // List of Members
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MemberCreateResponse struct {
	Data  []MemberResponse `json:"data"`                                                          // List of the created Members or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MemberCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MemberResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MemberResponse struct {
	Data  *Member `json:"data"`                                                          // Data for the Member
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MemberQueryFilter struct {
	CompanyID        ad_uuid.UUID `form:"company"`                    // By ID of the Company
	Email            string       `form:"email"`                      // By email address
	Role             string       `form:"role"`                       // By role
	Status           string       `form:"status"`                     // By status
	IsProjectManager bool         `form:"isProjectManager"`           // Only project managers?
	Search           string       `form:"search" filterField:"false"` // By string in first or last name
	Offset           uint         `form:"offset" filterField:"false"` // The offset of the first Member returned. Defaults to 0.
	Limit            int          `form:"limit" filterField:"false"`  // Maximum number of Members to return. Defaults to 50.
}

func (f MemberQueryFilter) model() (models.UserProfile, error) {
	return models.UserProfile{
		CompanyID:        f.CompanyID.UUID,
		Email:            f.Email,
		Role:             f.Role,
		Status:           f.Status,
		IsProjectManager: f.IsProjectManager,
	}, nil
}
