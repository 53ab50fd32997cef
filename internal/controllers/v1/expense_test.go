package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/agencydesk/backend/internal/controllers/v1"
	"github.com/agencydesk/backend/internal/models"
	"github.com/agencydesk/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExpensesOptions verifies that the legacy endpoints are read-only.
func (suite *TestSuiteStandard) TestExpensesOptions() {
	paths := []string{
		"http://example.com/v1/expenses",
		"http://example.com/v1/contractor-expenses",
	}

	for _, path := range paths {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, "GET", r.Header().Get("allow"))

			r = test.Request(t, http.MethodPost, path, "")
			test.AssertHTTPStatus(t, &r, http.StatusMethodNotAllowed)
		})
	}
}

// TestExpensesGet verifies reading legacy expense rows.
func (suite *TestSuiteStandard) TestExpensesGet() {
	c1 := createTestCompany(suite.T(), v1.CompanyEditable{})
	c2 := createTestCompany(suite.T(), v1.CompanyEditable{})

	require.NoError(suite.T(), models.DB.Create(&models.Expense{
		CompanyID:     c1.Data.ID,
		Name:          "Office rent",
		Category:      "office",
		MonthlyAmount: decimal.NewFromInt(1500),
		IsActive:      true,
	}).Error)

	require.NoError(suite.T(), models.DB.Create(&models.Expense{
		CompanyID:     c2.Data.ID,
		Name:          "Accounting",
		Category:      "services",
		MonthlyAmount: decimal.NewFromInt(300),
		IsActive:      true,
	}).Error)

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 2},
		{"Company 1", fmt.Sprintf("company=%s", c1.Data.ID), 1},
		{"Company Not Existing", "company=c9e4ee7a-e702-4f92-b168-11a95b22c7aa", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.ExpenseListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data))
		})
	}
}

// TestContractorExpensesGet verifies reading legacy contractor expense rows,
// sorted by year and month.
func (suite *TestSuiteStandard) TestContractorExpensesGet() {
	company := createTestCompany(suite.T(), v1.CompanyEditable{})

	require.NoError(suite.T(), models.DB.Create(&models.ContractorExpense{
		CompanyID: company.Data.ID,
		Name:      "Freelance designer",
		Year:      2024,
		Month:     3,
		Amount:    decimal.NewFromInt(2000),
	}).Error)

	require.NoError(suite.T(), models.DB.Create(&models.ContractorExpense{
		CompanyID: company.Data.ID,
		Name:      "Freelance copywriter",
		Year:      2023,
		Month:     11,
		Amount:    decimal.NewFromInt(800),
	}).Error)

	var re v1.ContractorExpenseListResponse
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/contractor-expenses", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &re)

	require.Len(suite.T(), re.Data, 2)
	assert.Equal(suite.T(), 2023, re.Data[0].Year)
	assert.Equal(suite.T(), 2024, re.Data[1].Year)
}

// TestExpensesEmptyList verifies that empty lists are returned as empty
// arrays, not null.
func (suite *TestSuiteStandard) TestExpensesEmptyList() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenses", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Contains(suite.T(), r.Body.String(), `"data":[]`)
}
