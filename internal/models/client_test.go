package models_test

import (
	"github.com/agencydesk/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestClientStatusDefault() {
	company := suite.createTestCompany(models.Company{})
	client := suite.createTestClient(models.Client{CompanyID: company.ID})

	suite.Assert().Equal(models.ClientActive, client.Status)
}

func (suite *TestSuiteStandard) TestClientUnknownCompany() {
	err := models.DB.Create(&models.Client{
		CompanyID: uuid.New(),
		Name:      "Orphan",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestClientNameUniquePerCompany() {
	company := suite.createTestCompany(models.Company{})
	other := suite.createTestCompany(models.Company{})

	_ = suite.createTestClient(models.Client{CompanyID: company.ID, Name: "Initech"})

	// The same name under another company is fine
	_ = suite.createTestClient(models.Client{CompanyID: other.ID, Name: "Initech"})

	err := models.DB.Create(&models.Client{CompanyID: company.ID, Name: "Initech"}).Error
	suite.Assert().NotNil(err)
}
