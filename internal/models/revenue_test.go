package models_test

import (
	"github.com/agencydesk/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestRevenueByMonthFromProjects() {
	company := suite.createTestCompany(models.Company{})
	client := suite.createTestClient(models.Client{CompanyID: company.ID})

	// 3000 over January to March lands as 1000 in each month
	_ = suite.createTestProject(models.Project{
		CompanyID: company.ID,
		ClientID:  client.ID,
		Revenue:   decimal.NewFromInt(3000),
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 3, 31),
	})

	report, err := company.RevenueByMonth(models.DB, 2024)
	suite.Require().Nil(err)

	suite.Assert().Equal(models.RevenueSourceProjects, report.Source)
	suite.Assert().False(report.Synthetic)

	for m := 0; m < 3; m++ {
		suite.Assert().True(decimal.NewFromInt(1000).Equal(report.Months[m].Booked), "Month %d booked is %s, should be 1000", m+1, report.Months[m].Booked)
		suite.Assert().True(report.Months[m].Forecast.IsZero())
	}

	for m := 3; m < 12; m++ {
		suite.Assert().True(report.Months[m].Booked.IsZero(), "Month %d booked is %s, should be 0", m+1, report.Months[m].Booked)
	}
}

func (suite *TestSuiteStandard) TestRevenueByMonthPartialMonths() {
	company := suite.createTestCompany(models.Company{})
	client := suite.createTestClient(models.Client{CompanyID: company.ID})

	// A project touching two calendar months splits evenly no matter how
	// many days it covers in each
	_ = suite.createTestProject(models.Project{
		CompanyID: company.ID,
		ClientID:  client.ID,
		Revenue:   decimal.NewFromInt(1000),
		StartDate: date(2024, 1, 20),
		EndDate:   date(2024, 2, 5),
	})

	report, err := company.RevenueByMonth(models.DB, 2024)
	suite.Require().Nil(err)

	suite.Assert().True(decimal.NewFromInt(500).Equal(report.Months[0].Booked), "January booked is %s, should be 500", report.Months[0].Booked)
	suite.Assert().True(decimal.NewFromInt(500).Equal(report.Months[1].Booked), "February booked is %s, should be 500", report.Months[1].Booked)
}

func (suite *TestSuiteStandard) TestRevenueByMonthSingleDayProject() {
	company := suite.createTestCompany(models.Company{})
	client := suite.createTestClient(models.Client{CompanyID: company.ID})

	start := date(2024, 6, 15)
	_ = suite.createTestProject(models.Project{
		CompanyID: company.ID,
		ClientID:  client.ID,
		Revenue:   decimal.NewFromInt(7500),
		StartDate: start,
		EndDate:   start,
	})

	report, err := company.RevenueByMonth(models.DB, 2024)
	suite.Require().Nil(err)

	suite.Assert().True(decimal.NewFromInt(7500).Equal(report.Months[5].Booked), "June booked is %s, should be 7500", report.Months[5].Booked)
}

func (suite *TestSuiteStandard) TestRevenueByMonthForecastBucket() {
	company := suite.createTestCompany(models.Company{})
	client := suite.createTestClient(models.Client{CompanyID: company.ID})

	_ = suite.createTestProject(models.Project{
		CompanyID:   company.ID,
		ClientID:    client.ID,
		RevenueType: models.RevenueForecast,
		Revenue:     decimal.NewFromInt(2000),
		StartDate:   date(2024, 4, 1),
		EndDate:     date(2024, 5, 31),
	})

	report, err := company.RevenueByMonth(models.DB, 2024)
	suite.Require().Nil(err)

	suite.Assert().True(report.Months[3].Booked.IsZero())
	suite.Assert().True(decimal.NewFromInt(1000).Equal(report.Months[3].Forecast), "April forecast is %s, should be 1000", report.Months[3].Forecast)
	suite.Assert().True(decimal.NewFromInt(1000).Equal(report.Months[4].Forecast), "May forecast is %s, should be 1000", report.Months[4].Forecast)
}

func (suite *TestSuiteStandard) TestRevenueByMonthYearBoundary() {
	company := suite.createTestCompany(models.Company{})
	client := suite.createTestClient(models.Client{CompanyID: company.ID})

	// November 2023 to February 2024, only the 2024 share shows up
	_ = suite.createTestProject(models.Project{
		CompanyID: company.ID,
		ClientID:  client.ID,
		Revenue:   decimal.NewFromInt(4000),
		StartDate: date(2023, 11, 1),
		EndDate:   date(2024, 2, 29),
	})

	report, err := company.RevenueByMonth(models.DB, 2024)
	suite.Require().Nil(err)

	suite.Assert().True(decimal.NewFromInt(1000).Equal(report.Months[0].Booked))
	suite.Assert().True(decimal.NewFromInt(1000).Equal(report.Months[1].Booked))
	suite.Assert().True(report.Months[2].Booked.IsZero())
	suite.Assert().True(decimal.NewFromInt(2000).Equal(report.Annual()))
}

func (suite *TestSuiteStandard) TestRevenueByMonthLedgerWins() {
	company := suite.createTestCompany(models.Company{})
	client := suite.createTestClient(models.Client{CompanyID: company.ID})

	_ = suite.createTestProject(models.Project{
		CompanyID: company.ID,
		ClientID:  client.ID,
		Revenue:   decimal.NewFromInt(99999),
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 12, 31),
	})

	_ = suite.createTestRevenue(models.MonthlyRevenue{
		CompanyID: company.ID,
		Year:      2024,
		Month:     3,
		Revenue:   decimal.NewFromInt(1234),
	})

	report, err := company.RevenueByMonth(models.DB, 2024)
	suite.Require().Nil(err)

	// A single ledger row makes the ledger authoritative for the year
	suite.Assert().Equal(models.RevenueSourceLedger, report.Source)
	suite.Assert().True(decimal.NewFromInt(1234).Equal(report.Months[2].Booked))
	suite.Assert().True(report.Months[0].Booked.IsZero(), "January booked is %s, projects must not leak into a ledgered year", report.Months[0].Booked)
}

func (suite *TestSuiteStandard) TestRevenueByMonthLedgerForecast() {
	company := suite.createTestCompany(models.Company{})

	_ = suite.createTestRevenue(models.MonthlyRevenue{
		CompanyID:   company.ID,
		Year:        2024,
		Month:       7,
		RevenueType: models.RevenueForecast,
		Revenue:     decimal.NewFromInt(500),
	})

	report, err := company.RevenueByMonth(models.DB, 2024)
	suite.Require().Nil(err)

	suite.Assert().True(report.Months[6].Booked.IsZero())
	suite.Assert().True(decimal.NewFromInt(500).Equal(report.Months[6].Forecast))
}

func (suite *TestSuiteStandard) TestRevenueByMonthDemoSamples() {
	company := suite.createTestCompany(models.Company{})

	report, err := company.RevenueByMonth(models.DB, 2024, models.WithDemoSamples())
	suite.Require().Nil(err)

	suite.Assert().True(report.Synthetic)
	suite.Assert().True(decimal.NewFromInt(10000).Equal(report.Months[0].Booked))
	suite.Assert().True(decimal.NewFromInt(5000).Equal(report.Months[0].Forecast))
	suite.Assert().True(decimal.NewFromInt(12000).Equal(report.Months[1].Booked))
	suite.Assert().True(decimal.NewFromInt(8000).Equal(report.Months[1].Forecast))
	suite.Assert().True(decimal.NewFromInt(15000).Equal(report.Months[2].Forecast))
}

func (suite *TestSuiteStandard) TestRevenueByMonthNoImplicitDemoSamples() {
	company := suite.createTestCompany(models.Company{})

	report, err := company.RevenueByMonth(models.DB, 2024)
	suite.Require().Nil(err)

	suite.Assert().False(report.Synthetic)

	for m := 0; m < 12; m++ {
		suite.Assert().True(report.Months[m].Booked.IsZero())
		suite.Assert().True(report.Months[m].Forecast.IsZero())
	}
}

func (suite *TestSuiteStandard) TestRevenueByMonthDemoSamplesWithData() {
	company := suite.createTestCompany(models.Company{})

	_ = suite.createTestRevenue(models.MonthlyRevenue{
		CompanyID: company.ID,
		Year:      2024,
		Month:     1,
		Revenue:   decimal.NewFromInt(100),
	})

	report, err := company.RevenueByMonth(models.DB, 2024, models.WithDemoSamples())
	suite.Require().Nil(err)

	// Real data suppresses the sample fill
	suite.Assert().False(report.Synthetic)
	suite.Assert().True(decimal.NewFromInt(100).Equal(report.Months[0].Booked))
}

func (suite *TestSuiteStandard) TestMonthlyRevenueMonthOutOfRange() {
	company := suite.createTestCompany(models.Company{})

	err := models.DB.Create(&models.MonthlyRevenue{
		CompanyID: company.ID,
		Year:      2024,
		Month:     13,
		Revenue:   decimal.NewFromInt(100),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrMonthOutOfRange)
}

func (suite *TestSuiteStandard) TestMonthlyRevenueNegative() {
	company := suite.createTestCompany(models.Company{})

	err := models.DB.Create(&models.MonthlyRevenue{
		CompanyID: company.ID,
		Year:      2024,
		Month:     1,
		Revenue:   decimal.NewFromInt(-1),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrAmountNegative)
}

func (suite *TestSuiteStandard) TestRevenueByMonthDBError() {
	company := suite.createTestCompany(models.Company{})
	suite.CloseDB()

	_, err := company.RevenueByMonth(models.DB, 2024)
	suite.Assert().NotNil(err)
}
