package models

import (
	"strings"
	"time"

	"github.com/agencydesk/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project statuses.
const (
	ProjectPlanning  = "planning"
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectCancelled = "cancelled"
)

// Revenue recognition types for a project.
const (
	RevenueBooked   = "booked"
	RevenueForecast = "forecast"
)

// Health tiers for utilization.
const (
	HealthGood     = "good"
	HealthWarning  = "warning"
	HealthCritical = "critical"
)

// Project is an engagement with a client.
type Project struct {
	DefaultModel
	CompanyID   uuid.UUID `gorm:"uniqueIndex:project_name_company"`
	Company     Company   `json:"-"`
	ClientID    uuid.UUID
	Client      Client `json:"-"`
	Name        string `gorm:"uniqueIndex:project_name_company"`
	Status      string
	RevenueType string          // "booked" or "forecast", empty treated as booked
	Revenue     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Total contract value over the project lifetime
	BudgetHours decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	StartDate   time.Time
	EndDate     time.Time
	ManagerID   *uuid.UUID
	Note        string
	// The m2m table survives the members' soft delete on purpose, membership
	// follows the junction rows, not the profile lifecycle.
	TeamMembers []UserProfile `gorm:"many2many:project_team_members" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Project)
	return p.checkIntegrity(tx, *toSave)
}

func (p *Project) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(Project)

	if tx.Statement.Changed("CompanyID") || tx.Statement.Changed("ClientID") {
		err := p.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (p *Project) checkIntegrity(tx *gorm.DB, toSave Project) error {
	err := tx.First(&Company{}, toSave.CompanyID).Error
	if err != nil {
		return err
	}

	return tx.First(&Client{}, toSave.ClientID).Error
}

func (p *Project) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)

	if p.Status == "" {
		p.Status = ProjectActive
	}

	if !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return ErrProjectDatesInverted
	}

	if p.Revenue.IsNegative() {
		return ErrProjectRevenueNegative
	}

	if p.BudgetHours.IsNegative() {
		return ErrProjectHoursNegative
	}

	return nil
}

// EffectiveRevenueType returns the revenue recognition type, defaulting
// legacy rows with an empty type to booked.
func (p Project) EffectiveRevenueType() string {
	if p.RevenueType == RevenueForecast {
		return RevenueForecast
	}

	return RevenueBooked
}

// Lifetime returns the project's span as an inclusive period. Projects with
// no end date are treated as ending in their start month.
func (p Project) Lifetime() (types.Period, error) {
	end := p.EndDate
	if end.IsZero() {
		end = p.StartDate
	}

	return types.NewPeriod(p.StartDate, end)
}

// AllocatedHours returns the total hours allocated to the project across all
// members and months.
func (p Project) AllocatedHours(db *gorm.DB) (decimal.Decimal, error) {
	var hours decimal.NullDecimal

	err := db.Table("project_allocations").
		Where("project_id = ? AND deleted_at IS NULL", p.ID).
		Select("SUM(allocated_hours)").
		Row().
		Scan(&hours)
	if err != nil {
		return decimal.Zero, err
	}

	return hours.Decimal, nil
}

// TeamSize returns the number of members on the project team. Projects that
// never had their membership relation filled fall back to the distinct
// members found across allocations.
func (p Project) TeamSize(db *gorm.DB) (int64, error) {
	var count int64

	err := db.Table("project_team_members").
		Where("project_id = ?", p.ID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	if count > 0 {
		return count, nil
	}

	err = db.Table("project_allocations").
		Where("project_id = ? AND deleted_at IS NULL", p.ID).
		Distinct("user_profile_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UtilizationReport describes how much of a project's hour budget has been
// allocated.
type UtilizationReport struct {
	AllocatedHours decimal.Decimal `json:"allocatedHours" example:"250"`  // Sum of all allocations on the project
	BudgetHours    decimal.Decimal `json:"budgetHours" example:"400"`     // The project's hour budget
	UtilizationPct decimal.Decimal `json:"utilizationPct" example:"62.5"` // Allocated hours as a percentage of the budget, 0 when there is no budget
	Health         string          `json:"health" example:"warning"`      // "good" from 80%, "warning" from 50%, "critical" below
	TeamSize       int64           `json:"teamSize" example:"4"`          // Number of members on the team
}

// Utilization computes the project's utilization against its hour budget.
// A project without a budget reports 0% and critical health.
func (p Project) Utilization(db *gorm.DB) (UtilizationReport, error) {
	allocated, err := p.AllocatedHours(db)
	if err != nil {
		return UtilizationReport{}, err
	}

	teamSize, err := p.TeamSize(db)
	if err != nil {
		return UtilizationReport{}, err
	}

	report := UtilizationReport{
		AllocatedHours: allocated,
		BudgetHours:    p.BudgetHours,
		Health:         HealthCritical,
		TeamSize:       teamSize,
	}

	if p.BudgetHours.IsPositive() {
		report.UtilizationPct = allocated.Div(p.BudgetHours).Mul(decimal.NewFromInt(100))
	}

	switch {
	case report.UtilizationPct.GreaterThanOrEqual(decimal.NewFromInt(80)):
		report.Health = HealthGood
	case report.UtilizationPct.GreaterThanOrEqual(decimal.NewFromInt(50)):
		report.Health = HealthWarning
	}

	return report, nil
}
