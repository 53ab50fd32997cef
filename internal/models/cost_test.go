package models_test

import (
	"github.com/agencydesk/backend/internal/models"
	"github.com/agencydesk/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestOperatingCostPayroll() {
	company := suite.createTestCompany(models.Company{})

	_ = suite.createTestMember(models.UserProfile{
		CompanyID:         company.ID,
		Status:            models.StatusFullTime,
		MonthlySalaryCost: decimal.NewFromInt(5000),
	})
	_ = suite.createTestMember(models.UserProfile{
		CompanyID:         company.ID,
		Status:            models.StatusPartTime,
		MonthlySalaryCost: decimal.NewFromInt(2000),
	})

	// Inactive members never contribute
	_ = suite.createTestMember(models.UserProfile{
		CompanyID:         company.ID,
		Status:            models.StatusInactive,
		MonthlySalaryCost: decimal.NewFromInt(9999),
	})

	// Contractors are not payroll
	_ = suite.createTestMember(models.UserProfile{
		CompanyID:         company.ID,
		Status:            models.StatusContractor,
		MonthlySalaryCost: decimal.NewFromInt(9999),
	})

	breakdown, err := company.OperatingCost(models.DB, types.NewMonth(2024, 3))
	suite.Require().Nil(err)

	suite.Assert().True(decimal.NewFromInt(7000).Equal(breakdown.Payroll), "Payroll is %s, should be 7000", breakdown.Payroll)
}

func (suite *TestSuiteStandard) TestOperatingCostEmploymentWindow() {
	company := suite.createTestCompany(models.Company{})

	// Starts after the month begins
	_ = suite.createTestMember(models.UserProfile{
		CompanyID:         company.ID,
		Status:            models.StatusFullTime,
		MonthlySalaryCost: decimal.NewFromInt(5000),
		StartDate:         datePtr(2024, 3, 15),
	})

	// Already gone
	_ = suite.createTestMember(models.UserProfile{
		CompanyID:         company.ID,
		Status:            models.StatusFullTime,
		MonthlySalaryCost: decimal.NewFromInt(4000),
		EndDate:           datePtr(2024, 2, 29),
	})

	// Covers the first of the month
	_ = suite.createTestMember(models.UserProfile{
		CompanyID:         company.ID,
		Status:            models.StatusFullTime,
		MonthlySalaryCost: decimal.NewFromInt(3000),
		StartDate:         datePtr(2024, 1, 1),
	})

	breakdown, err := company.OperatingCost(models.DB, types.NewMonth(2024, 3))
	suite.Require().Nil(err)

	suite.Assert().True(decimal.NewFromInt(3000).Equal(breakdown.Payroll), "Payroll is %s, should be 3000", breakdown.Payroll)
}

func (suite *TestSuiteStandard) TestOperatingCostStructured() {
	company := suite.createTestCompany(models.Company{})

	_ = suite.createTestCost(models.Cost{
		CompanyID: company.ID,
		CostType:  models.CostTypeOffice,
		Amount:    decimal.NewFromInt(1500),
		Frequency: models.FrequencyMonthly,
		StartDate: date(2024, 1, 1),
		IsActive:  true,
	})

	_ = suite.createTestCost(models.Cost{
		CompanyID:    company.ID,
		CostType:     models.CostTypeOther,
		Amount:       decimal.NewFromInt(800),
		Frequency:    models.FrequencyMonthly,
		StartDate:    date(2024, 1, 1),
		IsContractor: true,
		IsActive:     true,
	})

	// Payroll typed costs are excluded, salaries already cover them
	_ = suite.createTestCost(models.Cost{
		CompanyID: company.ID,
		CostType:  models.CostTypePayroll,
		Amount:    decimal.NewFromInt(5000),
		Frequency: models.FrequencyMonthly,
		StartDate: date(2024, 1, 1),
		IsActive:  true,
	})

	// Inactive costs are ignored
	_ = suite.createTestCost(models.Cost{
		CompanyID: company.ID,
		CostType:  models.CostTypeSoftware,
		Amount:    decimal.NewFromInt(300),
		Frequency: models.FrequencyMonthly,
		StartDate: date(2024, 1, 1),
	})

	breakdown, err := company.OperatingCost(models.DB, types.NewMonth(2024, 3))
	suite.Require().Nil(err)

	suite.Assert().True(breakdown.Payroll.IsZero())
	suite.Assert().True(decimal.NewFromInt(800).Equal(breakdown.Contractor), "Contractor is %s, should be 800", breakdown.Contractor)
	suite.Assert().True(decimal.NewFromInt(1500).Equal(breakdown.Other), "Other is %s, should be 1500", breakdown.Other)
	suite.Assert().True(decimal.NewFromInt(2300).Equal(breakdown.Total()))
}

func (suite *TestSuiteStandard) TestOperatingCostFrequencies() {
	company := suite.createTestCompany(models.Company{})

	// One-time cost only lands in its start month
	_ = suite.createTestCost(models.Cost{
		CompanyID: company.ID,
		Amount:    decimal.NewFromInt(1200),
		Frequency: models.FrequencyOneTime,
		StartDate: date(2024, 2, 10),
		EndDate:   datePtr(2024, 6, 30),
		IsActive:  true,
	})

	// Spread cost is divided over its own range, here 4 months
	_ = suite.createTestCost(models.Cost{
		CompanyID: company.ID,
		Amount:    decimal.NewFromInt(4000),
		Frequency: models.FrequencySpread,
		StartDate: date(2024, 1, 1),
		EndDate:   datePtr(2024, 4, 30),
		IsActive:  true,
	})

	february, err := company.OperatingCost(models.DB, types.NewMonth(2024, 2))
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(2200).Equal(february.Other), "February other is %s, should be 2200", february.Other)

	march, err := company.OperatingCost(models.DB, types.NewMonth(2024, 3))
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(1000).Equal(march.Other), "March other is %s, should be 1000", march.Other)

	july, err := company.OperatingCost(models.DB, types.NewMonth(2024, 7))
	suite.Require().Nil(err)
	suite.Assert().True(july.Other.IsZero(), "July other is %s, should be 0", july.Other)
}

func (suite *TestSuiteStandard) TestOperatingCostLegacyFallback() {
	company := suite.createTestCompany(models.Company{})

	_ = suite.createTestExpense(models.Expense{
		CompanyID:     company.ID,
		MonthlyAmount: decimal.NewFromInt(600),
		IsActive:      true,
	})

	_ = suite.createTestContractorExpense(models.ContractorExpense{
		CompanyID: company.ID,
		Year:      2024,
		Month:     3,
		Amount:    decimal.NewFromInt(2500),
	})

	// Dropping the structured table switches the aggregator to the legacy
	// path
	err := models.DB.Migrator().DropTable(&models.Cost{})
	suite.Require().Nil(err)
	models.RefreshSchemaCapabilities()

	suite.Require().False(models.Schema.StructuredCosts)

	breakdown, err := company.OperatingCost(models.DB, types.NewMonth(2024, 3))
	suite.Require().Nil(err)

	suite.Assert().True(decimal.NewFromInt(600).Equal(breakdown.Other), "Other is %s, should be 600", breakdown.Other)
	suite.Assert().True(decimal.NewFromInt(2500).Equal(breakdown.Contractor), "Contractor is %s, should be 2500", breakdown.Contractor)

	// Contractor expenses of other months never bleed in
	april, err := company.OperatingCost(models.DB, types.NewMonth(2024, 4))
	suite.Require().Nil(err)
	suite.Assert().True(april.Contractor.IsZero())
}

func (suite *TestSuiteStandard) TestOperatingCostNeverMixesPaths() {
	company := suite.createTestCompany(models.Company{})

	_ = suite.createTestCost(models.Cost{
		CompanyID: company.ID,
		Amount:    decimal.NewFromInt(1000),
		Frequency: models.FrequencyMonthly,
		StartDate: date(2024, 1, 1),
		IsActive:  true,
	})

	// The same cost entered in the legacy table must not double the number
	_ = suite.createTestExpense(models.Expense{
		CompanyID:     company.ID,
		MonthlyAmount: decimal.NewFromInt(1000),
		IsActive:      true,
	})

	breakdown, err := company.OperatingCost(models.DB, types.NewMonth(2024, 3))
	suite.Require().Nil(err)

	suite.Assert().True(decimal.NewFromInt(1000).Equal(breakdown.Total()), "Total is %s, should be 1000", breakdown.Total())
}

func (suite *TestSuiteStandard) TestCostDatesInverted() {
	company := suite.createTestCompany(models.Company{})

	err := models.DB.Create(&models.Cost{
		CompanyID: company.ID,
		Name:      "Backwards",
		Amount:    decimal.NewFromInt(100),
		StartDate: date(2024, 5, 1),
		EndDate:   datePtr(2024, 4, 1),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrCostDatesInverted)
}

func (suite *TestSuiteStandard) TestCostAmountNegative() {
	company := suite.createTestCompany(models.Company{})

	err := models.DB.Create(&models.Cost{
		CompanyID: company.ID,
		Name:      "Negative",
		Amount:    decimal.NewFromInt(-100),
		StartDate: date(2024, 1, 1),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrAmountNegative)
}

func (suite *TestSuiteStandard) TestOperatingCostDBError() {
	company := suite.createTestCompany(models.Company{})
	suite.CloseDB()

	_, err := company.OperatingCost(models.DB, types.NewMonth(2024, 1))
	suite.Assert().NotNil(err)
}
