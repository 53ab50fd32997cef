package v1

import (
	"net/http"
	"time"

	"github.com/agencydesk/backend/internal/httputil"
	"github.com/agencydesk/backend/internal/models"
	"github.com/agencydesk/backend/internal/types"
	ad_uuid "github.com/agencydesk/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterDashboardRoutes registers the routes for the dashboards with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)

	r.OPTIONS("/capacity", OptionsDashboard)
	r.GET("/capacity", GetCapacityDashboard)

	r.OPTIONS("/pm", OptionsDashboard)
	r.GET("/pm", GetManagerDashboard)

	r.OPTIONS("/employee", OptionsDashboard)
	r.GET("/employee", GetEmployeeDashboard)
}

// OptionsDashboard returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Dashboards
//	@Success		204
//	@Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

type DashboardQuery struct {
	CompanyID ad_uuid.UUID `form:"company"`                                // ID of the company to summarize
	Month     time.Time    `form:"month" time_format:"2006-01" example:"2024-03"` // Year and month in YYYY-MM format, defaults to the current month
}

// month returns the queried month, defaulting to the current one.
func (q DashboardQuery) month() types.Month {
	if q.Month.IsZero() {
		return types.MonthOf(time.Now())
	}

	return types.MonthOf(q.Month)
}

type DashboardResponse struct {
	Data  *models.MonthSummary `json:"data"`                                             // The month's profit and utilization summary
	Error *string              `json:"error" example:"the company query parameter must be set"` // The error, if any occurred
}

type CapacityDashboardQuery struct {
	DashboardQuery
	Snapshot bool `form:"snapshot"` // Save the result as a capacity snapshot
}

type CapacityDashboardResponse struct {
	Data  *models.CapacityReport `json:"data"`                                             // The month's capacity view
	Error *string                `json:"error" example:"the company query parameter must be set"` // The error, if any occurred
}

type MemberDashboardQuery struct {
	MemberID ad_uuid.UUID `form:"member"`                                 // ID of the member
	Month    time.Time    `form:"month" time_format:"2006-01" example:"2024-03"` // Year and month in YYYY-MM format, defaults to the current month
}

func (q MemberDashboardQuery) month() types.Month {
	if q.Month.IsZero() {
		return types.MonthOf(time.Now())
	}

	return types.MonthOf(q.Month)
}

// ManagedProject is a project with its utilization, as shown to the manager.
type ManagedProject struct {
	Project     Project                  `json:"project"`
	Utilization models.UtilizationReport `json:"utilization"`
}

type ManagerDashboardResponse struct {
	Data  []ManagedProject `json:"data"`                                            // The projects managed by the member
	Error *string          `json:"error" example:"the member query parameter must be set"` // The error, if any occurred
}

// EmployeeDashboard is the workload view of a single member.
type EmployeeDashboard struct {
	Member  Member              `json:"member"`
	Current models.MemberLoad   `json:"current"` // The queried month
	History []models.MemberLoad `json:"history"` // The six months up to and including the queried one, oldest first
}

type EmployeeDashboardResponse struct {
	Data  *EmployeeDashboard `json:"data"`                                            // The member's workload view
	Error *string            `json:"error" example:"the member query parameter must be set"` // The error, if any occurred
}

// GetDashboard returns the admin summary for one month
//
//	@Summary		Admin dashboard
//	@Description	Returns revenue, operating cost, profit and utilization of a company for one month
//	@Tags			Dashboards
//	@Produce		json
//	@Success		200	{object}	DashboardResponse
//	@Failure		400	{object}	DashboardResponse
//	@Failure		404	{object}	DashboardResponse
//	@Failure		500	{object}	DashboardResponse
//	@Param			company	query	string	true	"ID of the company"
//	@Param			month	query	string	false	"The month in YYYY-MM format. Defaults to the current month."
//	@Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	var query DashboardQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DashboardResponse{
			Error: &s,
		})
		return
	}

	company, err := dashboardCompany(query.CompanyID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	// Computation errors never fail the dashboard, they are reported
	// next to a zeroed payload
	summary, err := company.SummarizeMonth(models.DB, query.month())
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusOK, DashboardResponse{
			Data:  &models.MonthSummary{Month: query.month()},
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &summary})
}

// GetCapacityDashboard returns the capacity view for one month
//
//	@Summary		Capacity dashboard
//	@Description	Returns capacity and allocated hours of a company for one month. With persist set, the result is saved as a snapshot.
//	@Tags			Dashboards
//	@Produce		json
//	@Success		200	{object}	CapacityDashboardResponse
//	@Failure		400	{object}	CapacityDashboardResponse
//	@Failure		404	{object}	CapacityDashboardResponse
//	@Failure		500	{object}	CapacityDashboardResponse
//	@Param			company	query	string	true	"ID of the company"
//	@Param			month	query	string	false	"The month in YYYY-MM format. Defaults to the current month."
//	@Param			snapshot	query	bool	false	"Save the result as a capacity snapshot"
//	@Router			/v1/dashboard/capacity [get]
func GetCapacityDashboard(c *gin.Context) {
	var query CapacityDashboardQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CapacityDashboardResponse{
			Error: &s,
		})
		return
	}

	company, err := dashboardCompany(query.CompanyID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CapacityDashboardResponse{
			Error: &s,
		})
		return
	}

	// Computation errors never fail the dashboard, they are reported
	// next to a zeroed payload
	report, err := company.Capacity(models.DB, query.month(), query.Snapshot)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusOK, CapacityDashboardResponse{
			Data:  &models.CapacityReport{},
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CapacityDashboardResponse{Data: &report})
}

// GetManagerDashboard returns the projects managed by a member
//
//	@Summary		Project manager dashboard
//	@Description	Returns the projects managed by the member, each with its utilization
//	@Tags			Dashboards
//	@Produce		json
//	@Success		200	{object}	ManagerDashboardResponse
//	@Failure		400	{object}	ManagerDashboardResponse
//	@Failure		404	{object}	ManagerDashboardResponse
//	@Failure		500	{object}	ManagerDashboardResponse
//	@Param			member	query	string	true	"ID of the member"
//	@Router			/v1/dashboard/pm [get]
func GetManagerDashboard(c *gin.Context) {
	var query MemberDashboardQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ManagerDashboardResponse{
			Error: &s,
		})
		return
	}

	member, err := dashboardMember(query.MemberID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ManagerDashboardResponse{
			Error: &s,
		})
		return
	}

	var projects []models.Project
	err = models.DB.
		Order("name ASC").
		Where(&models.Project{ManagerID: &member.ID}).
		Find(&projects).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ManagerDashboardResponse{
			Error: &s,
		})
		return
	}

	data := make([]ManagedProject, 0)
	for _, project := range projects {
		// Computation errors never fail the dashboard, they are reported
		// next to a zeroed payload
		utilization, err := project.Utilization(models.DB)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusOK, ManagerDashboardResponse{
				Data:  make([]ManagedProject, 0),
				Error: &s,
			})
			return
		}

		data = append(data, ManagedProject{
			Project:     newProject(c, project),
			Utilization: utilization,
		})
	}

	c.JSON(http.StatusOK, ManagerDashboardResponse{Data: data})
}

// GetEmployeeDashboard returns the workload view of a member
//
//	@Summary		Employee dashboard
//	@Description	Returns the member's allocated hours, capacity and utilization for the month, with a six month history
//	@Tags			Dashboards
//	@Produce		json
//	@Success		200	{object}	EmployeeDashboardResponse
//	@Failure		400	{object}	EmployeeDashboardResponse
//	@Failure		404	{object}	EmployeeDashboardResponse
//	@Failure		500	{object}	EmployeeDashboardResponse
//	@Param			member	query	string	true	"ID of the member"
//	@Param			month	query	string	false	"The month in YYYY-MM format. Defaults to the current month."
//	@Router			/v1/dashboard/employee [get]
func GetEmployeeDashboard(c *gin.Context) {
	var query MemberDashboardQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, EmployeeDashboardResponse{
			Error: &s,
		})
		return
	}

	member, err := dashboardMember(query.MemberID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EmployeeDashboardResponse{
			Error: &s,
		})
		return
	}

	month := query.month()

	// Computation errors never fail the dashboard, they are reported
	// next to a zeroed payload
	current, err := member.MonthlyLoad(models.DB, month)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusOK, EmployeeDashboardResponse{
			Data:  &EmployeeDashboard{Member: newMember(c, member), History: make([]models.MemberLoad, 0)},
			Error: &s,
		})
		return
	}

	history, err := member.LoadHistory(models.DB, month, 6)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusOK, EmployeeDashboardResponse{
			Data:  &EmployeeDashboard{Member: newMember(c, member), Current: current, History: make([]models.MemberLoad, 0)},
			Error: &s,
		})
		return
	}

	data := EmployeeDashboard{
		Member:  newMember(c, member),
		Current: current,
		History: history,
	}

	c.JSON(http.StatusOK, EmployeeDashboardResponse{Data: &data})
}

// dashboardCompany resolves the company query parameter.
func dashboardCompany(id uuid.UUID) (models.Company, error) {
	if id == uuid.Nil {
		return models.Company{}, errCompanyIDParameter
	}

	var company models.Company
	err := models.DB.First(&company, id).Error
	if err != nil {
		return models.Company{}, err
	}

	return company, nil
}

// dashboardMember resolves the member query parameter.
func dashboardMember(id uuid.UUID) (models.UserProfile, error) {
	if id == uuid.Nil {
		return models.UserProfile{}, errMemberIDParameter
	}

	var member models.UserProfile
	err := models.DB.First(&member, id).Error
	if err != nil {
		return models.UserProfile{}, err
	}

	return member, nil
}
