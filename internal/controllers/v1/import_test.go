package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "github.com/agencydesk/backend/internal/controllers/v1"
	"github.com/agencydesk/backend/internal/models"
	"github.com/agencydesk/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createImportFixtures sets up a company with the clients and the project
// that the CSV files in testdata/importer reference by name.
func createImportFixtures(t *testing.T) v1.CompanyResponse {
	company := createTestCompany(t, v1.CompanyEditable{Name: "Import Co"})

	initech := createTestClient(t, v1.ClientEditable{CompanyID: company.Data.ID, Name: "Initech"})
	createTestClient(t, v1.ClientEditable{CompanyID: company.Data.ID, Name: "Initrode"})

	createTestProject(t, v1.ProjectEditable{
		CompanyID: company.Data.ID,
		ClientID:  initech.Data.ID,
		Name:      "Website relaunch",
	})

	return company
}

func importRevenues(t *testing.T, companyID string, file string) httptest.ResponseRecorder {
	url := "http://example.com/v1/import/revenues"
	if companyID != "" {
		url = fmt.Sprintf("%s?companyId=%s", url, companyID)
	}

	body, headers := test.LoadTestFile(t, fmt.Sprintf("importer/%s", file))
	return test.Request(t, http.MethodPost, url, body, headers)
}

func (suite *TestSuiteStandard) TestImportOptions() {
	paths := []string{
		"http://example.com/v1/import",
		"http://example.com/v1/import/revenues",
	}

	for _, path := range paths {
		suite.T().Run(path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)
			assert.Equal(t, "POST", recorder.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestImportRevenuesSuccess() {
	company := createImportFixtures(suite.T())

	recorder := importRevenues(suite.T(), company.Data.ID.String(), "revenues.csv")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 3, response.Data.Created)
	assert.Len(suite.T(), response.Data.Previews, 3)
	assert.Empty(suite.T(), response.Data.Errors)

	first := response.Data.Previews[0]
	assert.Equal(suite.T(), "Initech", first.ClientName)
	assert.Equal(suite.T(), "Website relaunch", first.ProjectName)
	assert.NotNil(suite.T(), first.Entry.ClientID)
	assert.NotNil(suite.T(), first.Entry.ProjectID)
	assert.Equal(suite.T(), 2024, first.Entry.Year)
	assert.Equal(suite.T(), 1, first.Entry.Month)
	assert.True(suite.T(), first.Entry.Revenue.Equal(decimal.NewFromInt(12000)), "Revenue is %s, expected 12000", first.Entry.Revenue)
	assert.Equal(suite.T(), "January retainer", first.Entry.Note)

	// The row without a type falls back to booked revenue
	assert.Equal(suite.T(), models.RevenueBooked, response.Data.Previews[2].Entry.RevenueType)

	// All rows are persisted as ledger entries
	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/revenues?company=%s", company.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var entries v1.MonthlyRevenueListResponse
	test.DecodeResponse(suite.T(), &recorder, &entries)
	assert.Len(suite.T(), entries.Data, 3)
}

func (suite *TestSuiteStandard) TestImportRevenuesRowErrors() {
	company := createImportFixtures(suite.T())

	recorder := importRevenues(suite.T(), company.Data.ID.String(), "revenues-errors.csv")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 1, response.Data.Created)
	require.Len(suite.T(), response.Data.Errors, 2)
	assert.Equal(suite.T(), `row 1: "Init*" matches 2 clients, it must match exactly one`, response.Data.Errors[0])
	assert.Equal(suite.T(), `row 2: "Globex" matches 0 clients, it must match exactly one`, response.Data.Errors[1])
}

func (suite *TestSuiteStandard) TestImportRevenuesTwice() {
	company := createImportFixtures(suite.T())

	recorder := importRevenues(suite.T(), company.Data.ID.String(), "revenues.csv")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// The same file again duplicates every ledger entry
	recorder = importRevenues(suite.T(), company.Data.ID.String(), "revenues.csv")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 0, response.Data.Created)
	require.Len(suite.T(), response.Data.Errors, 3)
	for _, e := range response.Data.Errors {
		assert.Contains(suite.T(), e, models.ErrMonthlyRevenueNotUnique.Error())
	}
}

func (suite *TestSuiteStandard) TestImportRevenuesHeaderOnly() {
	company := createTestCompany(suite.T(), v1.CompanyEditable{})

	recorder := importRevenues(suite.T(), company.Data.ID.String(), "revenues-header-only.csv")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 0, response.Data.Created)
	assert.Empty(suite.T(), response.Data.Previews)
	assert.Empty(suite.T(), response.Data.Errors)
}

func (suite *TestSuiteStandard) TestImportRevenuesByteOrderMark() {
	company := createTestCompany(suite.T(), v1.CompanyEditable{})

	recorder := importRevenues(suite.T(), company.Data.ID.String(), "revenues-bom.csv")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.NotNil(suite.T(), response.Data)
	require.Equal(suite.T(), 1, response.Data.Created)
	assert.Equal(suite.T(), 2024, response.Data.Previews[0].Entry.Year)
	assert.Equal(suite.T(), 5, response.Data.Previews[0].Entry.Month)
	assert.Equal(suite.T(), "Exported from Excel", response.Data.Previews[0].Entry.Note)
}

func (suite *TestSuiteStandard) TestImportRevenuesFails() {
	company := createTestCompany(suite.T(), v1.CompanyEditable{})

	tests := []struct {
		name          string
		companyID     string
		file          string
		status        int
		expectedError string
	}{
		{"No companyId", "", "revenues.csv", http.StatusBadRequest, "the company query parameter must be set"},
		{"Broken companyId", "notaUUID", "revenues.csv", http.StatusBadRequest, "the company query parameter must be set"},
		{"Non-existing company", uuid.NewString(), "revenues.csv", http.StatusNotFound, "there is no company matching your query"},
		{"No file sent", company.Data.ID.String(), "", http.StatusBadRequest, "you must send a file to this endpoint"},
		{"Wrong file suffix", company.Data.ID.String(), "revenues.txt", http.StatusBadRequest, "this endpoint only supports files of the following types: .csv"},
		{"Broken month", company.Data.ID.String(), "revenues-broken.csv", http.StatusBadRequest, "error in line 2 of the CSV: could not parse the month"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.file == "" {
				recorder = test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/import/revenues?companyId=%s", tt.companyID), "")
			} else {
				recorder = importRevenues(t, tt.companyID, tt.file)
			}

			test.AssertHTTPStatus(t, &recorder, tt.status)

			var response v1.ImportResponse
			test.DecodeResponse(t, &recorder, &response)

			require.NotNil(t, response.Error)
			assert.Contains(t, *response.Error, tt.expectedError)
		})
	}
}

func (suite *TestSuiteStandard) TestImportDBClosed() {
	suite.CloseDB()

	recorder := importRevenues(suite.T(), uuid.NewString(), "revenues.csv")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}
