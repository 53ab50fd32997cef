package models_test

import (
	"github.com/agencydesk/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) projectWithTeam() (models.Project, models.UserProfile, models.UserProfile) {
	company := suite.createTestCompany(models.Company{})
	client := suite.createTestClient(models.Client{CompanyID: company.ID})

	project := suite.createTestProject(models.Project{
		CompanyID:   company.ID,
		ClientID:    client.ID,
		BudgetHours: decimal.NewFromInt(400),
		StartDate:   date(2024, 1, 1),
		EndDate:     date(2024, 6, 30),
	})

	alice := suite.createTestMember(models.UserProfile{
		CompanyID:  company.ID,
		FirstName:  "Alice",
		HourlyRate: decimal.NewFromInt(90),
	})

	bob := suite.createTestMember(models.UserProfile{
		CompanyID:  company.ID,
		FirstName:  "Bob",
		HourlyRate: decimal.NewFromInt(75),
	})

	return project, alice, bob
}

func (suite *TestSuiteStandard) TestReplaceAllocations() {
	project, alice, bob := suite.projectWithTeam()

	result, err := project.ReplaceAllocations(models.DB, []models.AllocationEntry{
		{MemberID: alice.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(80)},
		{MemberID: alice.ID, Year: 2024, Month: 2, AllocatedHours: decimal.NewFromInt(60)},
		{MemberID: bob.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(40)},
	})
	suite.Require().Nil(err)

	suite.Assert().Equal(3, result.Created)
	suite.Assert().Empty(result.Errors)

	hours, err := project.AllocatedHours(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(180).Equal(hours), "Allocated hours are %s, should be 180", hours)

	// The member's rate is snapshotted on the row
	var allocation models.ProjectAllocation
	err = models.DB.Where("user_profile_id = ? AND month = ?", alice.ID, 1).First(&allocation).Error
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(90).Equal(allocation.HourlyRate))
}

func (suite *TestSuiteStandard) TestReplaceAllocationsIdempotent() {
	project, alice, _ := suite.projectWithTeam()

	entries := []models.AllocationEntry{
		{MemberID: alice.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(80)},
	}

	for i := 0; i < 3; i++ {
		result, err := project.ReplaceAllocations(models.DB, entries)
		suite.Require().Nil(err)
		suite.Assert().Equal(1, result.Created)
	}

	hours, err := project.AllocatedHours(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(80).Equal(hours), "Allocated hours are %s after three identical saves, should be 80", hours)
}

func (suite *TestSuiteStandard) TestReplaceAllocationsSumsDuplicates() {
	project, alice, _ := suite.projectWithTeam()

	result, err := project.ReplaceAllocations(models.DB, []models.AllocationEntry{
		{MemberID: alice.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(30)},
		{MemberID: alice.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(20)},
	})
	suite.Require().Nil(err)

	suite.Assert().Equal(1, result.Created)

	hours, err := project.AllocatedHours(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(50).Equal(hours), "Allocated hours are %s, should be 50", hours)
}

func (suite *TestSuiteStandard) TestReplaceAllocationsSkipsNonPositive() {
	project, alice, _ := suite.projectWithTeam()

	result, err := project.ReplaceAllocations(models.DB, []models.AllocationEntry{
		{MemberID: alice.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(0)},
		{MemberID: alice.ID, Year: 2024, Month: 2, AllocatedHours: decimal.NewFromInt(-5)},
		{MemberID: alice.ID, Year: 2024, Month: 3, AllocatedHours: decimal.NewFromInt(10)},
	})
	suite.Require().Nil(err)

	suite.Assert().Equal(1, result.Created)
	suite.Assert().Empty(result.Errors)
}

func (suite *TestSuiteStandard) TestReplaceAllocationsPartialSuccess() {
	project, alice, _ := suite.projectWithTeam()

	result, err := project.ReplaceAllocations(models.DB, []models.AllocationEntry{
		{MemberID: alice.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(40)},
		{MemberID: uuid.New(), Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(40)},
		{MemberID: alice.ID, Year: 2024, Month: 13, AllocatedHours: decimal.NewFromInt(40)},
	})
	suite.Require().Nil(err)

	suite.Assert().Equal(1, result.Created)
	suite.Assert().Len(result.Errors, 2)
}

func (suite *TestSuiteStandard) TestReplaceAllocationsManagerStamp() {
	project, alice, bob := suite.projectWithTeam()

	result, err := project.ReplaceAllocations(models.DB, []models.AllocationEntry{
		{MemberID: alice.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(40), IsProjectManager: true},
		{MemberID: alice.ID, Year: 2024, Month: 2, AllocatedHours: decimal.NewFromInt(40)},
		{MemberID: bob.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(40)},
	})
	suite.Require().Nil(err)
	suite.Require().Equal(3, result.Created)

	// The first entry per member decides, and the stamp covers all of the
	// member's rows
	var allocations []models.ProjectAllocation
	err = models.DB.Where("user_profile_id = ?", alice.ID).Find(&allocations).Error
	suite.Require().Nil(err)
	suite.Require().Len(allocations, 2)

	for _, allocation := range allocations {
		suite.Assert().True(allocation.IsProjectManager)
	}

	var bobAllocation models.ProjectAllocation
	err = models.DB.Where("user_profile_id = ?", bob.ID).First(&bobAllocation).Error
	suite.Require().Nil(err)
	suite.Assert().False(bobAllocation.IsProjectManager)
}

func (suite *TestSuiteStandard) TestReplaceAllocationsEmptyClears() {
	project, alice, _ := suite.projectWithTeam()

	_, err := project.ReplaceAllocations(models.DB, []models.AllocationEntry{
		{MemberID: alice.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(40)},
	})
	suite.Require().Nil(err)

	result, err := project.ReplaceAllocations(models.DB, nil)
	suite.Require().Nil(err)

	suite.Assert().Equal(0, result.Created)

	hours, err := project.AllocatedHours(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(hours.IsZero())
}

func (suite *TestSuiteStandard) TestRemoveMemberDeletesAllocations() {
	project, alice, bob := suite.projectWithTeam()

	suite.Require().Nil(project.AddMember(models.DB, alice.ID))
	suite.Require().Nil(project.AddMember(models.DB, bob.ID))

	_, err := project.ReplaceAllocations(models.DB, []models.AllocationEntry{
		{MemberID: alice.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(40)},
		{MemberID: bob.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(40)},
	})
	suite.Require().Nil(err)

	suite.Require().Nil(project.RemoveMember(models.DB, alice.ID))

	size, err := project.TeamSize(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(1), size)

	hours, err := project.AllocatedHours(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(40).Equal(hours), "Allocated hours are %s after removing a member, should be 40", hours)
}

func (suite *TestSuiteStandard) TestAddMemberUnknown() {
	project, _, _ := suite.projectWithTeam()

	err := project.AddMember(models.DB, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestReplaceAllocationsDBError() {
	project, alice, _ := suite.projectWithTeam()
	suite.CloseDB()

	_, err := project.ReplaceAllocations(models.DB, []models.AllocationEntry{
		{MemberID: alice.ID, Year: 2024, Month: 1, AllocatedHours: decimal.NewFromInt(40)},
	})
	suite.Assert().NotNil(err)
}
