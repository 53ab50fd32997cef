package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/agencydesk/backend/internal/controllers/v1"
	"github.com/agencydesk/backend/internal/models"
	"github.com/agencydesk/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDashboardOptions verifies that OPTIONS requests are handled correctly
// for all dashboards.
func (suite *TestSuiteStandard) TestDashboardOptions() {
	paths := []string{
		"http://example.com/v1/dashboard",
		"http://example.com/v1/dashboard/capacity",
		"http://example.com/v1/dashboard/pm",
		"http://example.com/v1/dashboard/employee",
	}

	for _, path := range paths {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, "GET", r.Header().Get("allow"))
		})
	}
}

// TestDashboardParameterErrors verifies the resolution errors of all
// dashboards.
func (suite *TestSuiteStandard) TestDashboardParameterErrors() {
	tests := []struct {
		name   string
		path   string
		status int
		err    string
	}{
		{"No company", "/v1/dashboard", http.StatusBadRequest, "the company query parameter must be set"},
		{"Unknown company", fmt.Sprintf("/v1/dashboard?company=%s", uuid.New()), http.StatusNotFound, "there is no company matching your query"},
		{"Capacity without company", "/v1/dashboard/capacity", http.StatusBadRequest, "the company query parameter must be set"},
		{"PM without member", "/v1/dashboard/pm", http.StatusBadRequest, "the member query parameter must be set"},
		{"Employee without member", "/v1/dashboard/employee", http.StatusBadRequest, "the member query parameter must be set"},
		{"Employee with unknown member", fmt.Sprintf("/v1/dashboard/employee?member=%s", uuid.New()), http.StatusNotFound, "there is no user profile matching your query"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com%s", tt.path), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response struct {
				Error *string `json:"error"`
			}
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.err, *response.Error)
		})
	}
}

// TestDashboardAdmin verifies the month summary for a company with revenue,
// costs and allocations.
func (suite *TestSuiteStandard) TestDashboardAdmin() {
	company := createTestCompany(suite.T(), v1.CompanyEditable{})

	member := createTestMember(suite.T(), v1.MemberEditable{
		CompanyID:           company.Data.ID,
		WeeklyCapacityHours: decimal.NewFromInt(40),
		MonthlySalaryCost:   decimal.NewFromInt(6000),
	})

	_ = createTestRevenue(suite.T(), v1.MonthlyRevenueEditable{
		CompanyID: company.Data.ID,
		Year:      2024,
		Month:     3,
		Revenue:   decimal.NewFromInt(10000),
	})

	project := createTestProject(suite.T(), v1.ProjectEditable{CompanyID: company.Data.ID})
	r := test.Request(suite.T(), http.MethodPost, project.Data.Links.Allocations, []models.AllocationEntry{
		{MemberID: member.Data.ID, Year: 2024, Month: 3, AllocatedHours: decimal.NewFromInt(120)},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard?company=%s&month=2024-03", company.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Nil(suite.T(), response.Error)

	assert.Equal(suite.T(), "2024-03", response.Data.Month.String())
	assert.True(suite.T(), response.Data.Revenue.Equal(decimal.NewFromInt(10000)), "Revenue is %s", response.Data.Revenue)
	assert.True(suite.T(), response.Data.OperatingCost.Equal(decimal.NewFromInt(6000)), "OperatingCost is %s", response.Data.OperatingCost)
	assert.True(suite.T(), response.Data.Profit.Equal(decimal.NewFromInt(4000)), "Profit is %s", response.Data.Profit)
	assert.True(suite.T(), response.Data.MarginPct.Equal(decimal.NewFromInt(40)), "MarginPct is %s", response.Data.MarginPct)
	assert.True(suite.T(), response.Data.AllocatedHours.Equal(decimal.NewFromInt(120)), "AllocatedHours is %s", response.Data.AllocatedHours)
	assert.True(suite.T(), response.Data.CapacityHours.Equal(decimal.NewFromFloat(173.2)), "CapacityHours is %s", response.Data.CapacityHours)
}

// TestDashboardAdminEmptyCompany verifies that a company without any data
// reports a zeroed summary instead of an error.
func (suite *TestSuiteStandard) TestDashboardAdminEmptyCompany() {
	company := createTestCompany(suite.T(), v1.CompanyEditable{})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard?company=%s&month=2024-03", company.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Nil(suite.T(), response.Error)

	assert.True(suite.T(), response.Data.Revenue.IsZero())
	assert.True(suite.T(), response.Data.Profit.IsZero())
	assert.True(suite.T(), response.Data.UtilizationPct.IsZero())
}

// TestDashboardCapacity verifies the capacity dashboard and its snapshot
// persistence.
func (suite *TestSuiteStandard) TestDashboardCapacity() {
	company := createTestCompany(suite.T(), v1.CompanyEditable{})

	member := createTestMember(suite.T(), v1.MemberEditable{
		CompanyID:           company.Data.ID,
		WeeklyCapacityHours: decimal.NewFromInt(40),
	})

	project := createTestProject(suite.T(), v1.ProjectEditable{CompanyID: company.Data.ID})
	r := test.Request(suite.T(), http.MethodPost, project.Data.Links.Allocations, []models.AllocationEntry{
		{MemberID: member.Data.ID, Year: 2024, Month: 3, AllocatedHours: decimal.NewFromInt(100)},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// Reading the dashboard does not persist anything
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard/capacity?company=%s&month=2024-03", company.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CapacityDashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Nil(suite.T(), response.Error)

	assert.True(suite.T(), response.Data.CapacityHours.Equal(decimal.NewFromFloat(173.2)), "CapacityHours is %s", response.Data.CapacityHours)
	assert.True(suite.T(), response.Data.AllocatedHours.Equal(decimal.NewFromInt(100)), "AllocatedHours is %s", response.Data.AllocatedHours)

	var count int64
	require.NoError(suite.T(), models.DB.Model(&models.CapacitySnapshot{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)

	// With snapshot set, the result is saved exactly once per month
	for range 2 {
		r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard/capacity?company=%s&month=2024-03&snapshot=true", company.Data.ID), "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	}

	require.NoError(suite.T(), models.DB.Model(&models.CapacitySnapshot{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)

	var snapshot models.CapacitySnapshot
	require.NoError(suite.T(), models.DB.First(&snapshot).Error)
	assert.Equal(suite.T(), 2024, snapshot.Year)
	assert.Equal(suite.T(), 3, snapshot.Month)
	assert.True(suite.T(), snapshot.AllocatedHours.Equal(decimal.NewFromInt(100)), "AllocatedHours is %s", snapshot.AllocatedHours)
}

// TestDashboardManager verifies the project manager dashboard.
func (suite *TestSuiteStandard) TestDashboardManager() {
	company := createTestCompany(suite.T(), v1.CompanyEditable{})
	manager := createTestMember(suite.T(), v1.MemberEditable{
		CompanyID:        company.Data.ID,
		IsProjectManager: true,
	})

	_ = createTestProject(suite.T(), v1.ProjectEditable{
		CompanyID:   company.Data.ID,
		Name:        "Managed project",
		ManagerID:   &manager.Data.ID,
		BudgetHours: decimal.NewFromInt(100),
	})

	_ = createTestProject(suite.T(), v1.ProjectEditable{
		CompanyID: company.Data.ID,
		Name:      "Somebody else's project",
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard/pm?member=%s", manager.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ManagerDashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Nil(suite.T(), response.Error)

	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Managed project", response.Data[0].Project.Name)
	assert.Equal(suite.T(), "critical", response.Data[0].Utilization.Health)
}

// TestDashboardEmployee verifies the employee workload view.
func (suite *TestSuiteStandard) TestDashboardEmployee() {
	company := createTestCompany(suite.T(), v1.CompanyEditable{})
	member := createTestMember(suite.T(), v1.MemberEditable{
		CompanyID:           company.Data.ID,
		WeeklyCapacityHours: decimal.NewFromInt(40),
	})

	project := createTestProject(suite.T(), v1.ProjectEditable{CompanyID: company.Data.ID})
	r := test.Request(suite.T(), http.MethodPost, project.Data.Links.Allocations, []models.AllocationEntry{
		{MemberID: member.Data.ID, Year: 2024, Month: 3, AllocatedHours: decimal.NewFromInt(120)},
		{MemberID: member.Data.ID, Year: 2024, Month: 2, AllocatedHours: decimal.NewFromInt(80)},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard/employee?member=%s&month=2024-03", member.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.EmployeeDashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Nil(suite.T(), response.Error)

	assert.Equal(suite.T(), member.Data.ID, response.Data.Member.ID)
	assert.True(suite.T(), response.Data.Current.Hours.Equal(decimal.NewFromInt(120)), "Hours is %s", response.Data.Current.Hours)
	assert.True(suite.T(), response.Data.Current.CapacityHours.Equal(decimal.NewFromFloat(173.2)), "CapacityHours is %s", response.Data.Current.CapacityHours)

	// Six months of history, oldest first, ending with the queried month
	require.Len(suite.T(), response.Data.History, 6)
	assert.Equal(suite.T(), "2023-10", response.Data.History[0].Month.String())
	assert.Equal(suite.T(), "2024-03", response.Data.History[5].Month.String())
	assert.True(suite.T(), response.Data.History[4].Hours.Equal(decimal.NewFromInt(80)), "February hours are %s", response.Data.History[4].Hours)
}
