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

// ProjectEditable represents all user configurable parameters
type ProjectEditable struct {
	CompanyID   uuid.UUID       `json:"companyId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the company the project belongs to
	ClientID    uuid.UUID       `json:"clientId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`  // ID of the client the project is for
	Name        string          `json:"name" example:"Website relaunch" default:""`               // Name of the project
	Status      string          `json:"status" example:"active" default:"active"`                 // "planning", "active", "completed" or "cancelled"
	RevenueType string          `json:"revenueType" example:"booked" default:"booked"`            // "booked" or "forecast"
	Revenue     decimal.Decimal `json:"revenue" example:"120000"`                                 // Total contract value over the project lifetime
	BudgetHours decimal.Decimal `json:"budgetHours" example:"400"`                                // The project's hour budget
	StartDate   time.Time       `json:"startDate" example:"2024-01-01T00:00:00Z"`                 // First day of the project
	EndDate     time.Time       `json:"endDate" example:"2024-06-30T00:00:00Z"`                   // Last day of the project, inclusive
	ManagerID   *uuid.UUID      `json:"managerId" example:"a3d0038a-69f0-4b77-9eb6-365200d2a23c"` // Member managing the project
	Note        string          `json:"note" example:"Fixed price engagement" default:""`         // Notes about the project
}

func (editable ProjectEditable) model() models.Project {
	return models.Project{
		CompanyID:   editable.CompanyID,
		ClientID:    editable.ClientID,
		Name:        editable.Name,
		Status:      editable.Status,
		RevenueType: editable.RevenueType,
		Revenue:     editable.Revenue,
		BudgetHours: editable.BudgetHours,
		StartDate:   editable.StartDate,
		EndDate:     editable.EndDate,
		ManagerID:   editable.ManagerID,
		Note:        editable.Note,
	}
}

type ProjectLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/projects/6b5ea324-d438-4419-882a-2fc91d71772f"`                    // The project itself
	Utilization string `json:"utilization" example:"https://example.com/api/v1/projects/6b5ea324-d438-4419-882a-2fc91d71772f/utilization"` // Utilization against the hour budget
	Allocations string `json:"allocations" example:"https://example.com/api/v1/projects/6b5ea324-d438-4419-882a-2fc91d71772f/allocations"` // The project's allocations
	Members     string `json:"members" example:"https://example.com/api/v1/projects/6b5ea324-d438-4419-882a-2fc91d71772f/members"`         // The project's team
}

type Project struct {
	models.DefaultModel
	ProjectEditable
	Links ProjectLinks `json:"links"`
}

func newProject(c *gin.Context, model models.Project) Project {
	url := c.GetString(string(models.DBContextURL))

	return Project{
		DefaultModel: model.DefaultModel,
		ProjectEditable: ProjectEditable{
			CompanyID:   model.CompanyID,
			ClientID:    model.ClientID,
			Name:        model.Name,
			Status:      model.Status,
			RevenueType: model.EffectiveRevenueType(),
			Revenue:     model.Revenue,
			BudgetHours: model.BudgetHours,
			StartDate:   model.StartDate,
			EndDate:     model.EndDate,
			ManagerID:   model.ManagerID,
			Note:        model.Note,
		},
		Links: ProjectLinks{
			Self:        fmt.Sprintf("%s/v1/projects/%s", url, model.ID),
			Utilization: fmt.Sprintf("%s/v1/projects/%s/utilization", url, model.ID),
			Allocations: fmt.Sprintf("%s/v1/projects/%s/allocations", url, model.ID),
			Members:     fmt.Sprintf("%s/v1/projects/%s/members", url, model.ID),
		},
	}
}

type ProjectListResponse struct {
	Data       []Project   `json:"data"`                                                          // List of Projects
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ProjectCreateResponse struct {
	Data  []ProjectResponse `json:"data"`                                                          // List of the created Projects or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *ProjectCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, ProjectResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ProjectResponse struct {
	Data  *Project `json:"data"`                                                          // Data for the Project
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ProjectQueryFilter struct {
	CompanyID   ad_uuid.UUID `form:"company"`                    // By ID of the Company
	ClientID    ad_uuid.UUID `form:"client"`                     // By ID of the Client
	Name        string       `form:"name" filterField:"false"`   // By name
	Status      string       `form:"status"`                     // By status
	RevenueType string       `form:"revenueType"`                // By revenue type
	Note        string       `form:"note" filterField:"false"`   // By note
	Search      string       `form:"search" filterField:"false"` // By string in name or note
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first Project returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of Projects to return. Defaults to 50.
}

func (f ProjectQueryFilter) model() (models.Project, error) {
	return models.Project{
		CompanyID:   f.CompanyID.UUID,
		ClientID:    f.ClientID.UUID,
		Status:      f.Status,
		RevenueType: f.RevenueType,
	}, nil
}

type UtilizationResponse struct {
	Data  *models.UtilizationReport `json:"data"`                                                          // Utilization of the project
	Error *string                   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AllocationListResponse struct {
	Data  []Allocation `json:"data"`                                                          // List of allocations on the project
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type Allocation struct {
	models.DefaultModel
	ProjectID        uuid.UUID       `json:"projectId" example:"6b5ea324-d438-4419-882a-2fc91d71772f"` // The project the hours are allocated on
	MemberID         uuid.UUID       `json:"memberId" example:"a3d0038a-69f0-4b77-9eb6-365200d2a23c"`  // The member the hours are allocated to
	Year             int             `json:"year" example:"2024"`
	Month            int             `json:"month" example:"3"`
	Week             int             `json:"week" example:"0"` // 0 for whole-month allocations
	AllocatedHours   decimal.Decimal `json:"allocatedHours" example:"40"`
	HourlyRate       decimal.Decimal `json:"hourlyRate" example:"90"` // The member's rate when the allocation was saved
	IsProjectManager bool            `json:"isProjectManager" example:"false"`
}

func newAllocation(model models.ProjectAllocation) Allocation {
	return Allocation{
		DefaultModel:     model.DefaultModel,
		ProjectID:        model.ProjectID,
		MemberID:         model.UserProfileID,
		Year:             model.Year,
		Month:            model.Month,
		Week:             model.Week,
		AllocatedHours:   model.AllocatedHours,
		HourlyRate:       model.HourlyRate,
		IsProjectManager: model.IsProjectManager,
	}
}

type ReplaceAllocationsResponse struct {
	Data  *models.ReplaceResult `json:"data"`                                                          // Outcome of the replace-all save
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TeamListResponse struct {
	Data  []Member `json:"data"`                                                          // Members on the project team
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TeamEditable struct {
	MemberID uuid.UUID `json:"memberId" binding:"required" example:"a3d0038a-69f0-4b77-9eb6-365200d2a23c"` // The member to add to or remove from the team
}
