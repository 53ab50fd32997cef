package models

import (
	"strings"
	"time"

	"github.com/agencydesk/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employment statuses for a UserProfile.
const (
	StatusFullTime   = "full_time"
	StatusPartTime   = "part_time"
	StatusContractor = "contractor"
	StatusInactive   = "inactive"
)

// weeksPerMonth converts a weekly capacity into a monthly one.
var weeksPerMonth = decimal.NewFromFloat(4.33)

// UserProfile is a team member of a company.
type UserProfile struct {
	DefaultModel
	CompanyID           uuid.UUID
	Company             Company `json:"-"`
	FirstName           string
	LastName            string
	Email               string `gorm:"uniqueIndex"`
	Role                string
	Status              string
	WeeklyCapacityHours decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	HourlyRate          decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	MonthlySalaryCost   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	IsProjectManager    bool
	StartDate           *time.Time // Employment start, nil means the profile was always active
	EndDate             *time.Time // Employment end, nil means the profile is open ended
}

func (u *UserProfile) BeforeCreate(tx *gorm.DB) error {
	_ = u.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*UserProfile)
	return u.checkIntegrity(tx, *toSave)
}

func (u *UserProfile) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(UserProfile)

	if tx.Statement.Changed("CompanyID") {
		err := u.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (u *UserProfile) checkIntegrity(tx *gorm.DB, toSave UserProfile) error {
	return tx.First(&Company{}, toSave.CompanyID).Error
}

func (u *UserProfile) BeforeSave(_ *gorm.DB) error {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))

	if u.Status == "" {
		u.Status = StatusFullTime
	}

	if u.StartDate != nil && u.EndDate != nil && u.EndDate.Before(*u.StartDate) {
		return ErrEmploymentDatesInverted
	}

	if u.WeeklyCapacityHours.IsNegative() || u.HourlyRate.IsNegative() || u.MonthlySalaryCost.IsNegative() {
		return ErrRateNegative
	}

	return nil
}

// Name returns the full name of the member.
func (u UserProfile) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ActiveIn reports whether the member is employed on the first day of the
// month. Absent bounds mean the profile is always active.
func (u UserProfile) ActiveIn(month types.Month) bool {
	first := month.First()

	if u.StartDate != nil && u.StartDate.After(first) {
		return false
	}

	if u.EndDate != nil && u.EndDate.Before(first) {
		return false
	}

	return true
}

// MonthlyCapacity returns the hours the member can work in one month.
func (u UserProfile) MonthlyCapacity() decimal.Decimal {
	return u.WeeklyCapacityHours.Mul(weeksPerMonth)
}

// MemberLoad is the workload of a member for one month.
type MemberLoad struct {
	Month          types.Month     `json:"month" example:"2024-03"` // The month
	Hours          decimal.Decimal `json:"hours" example:"120"`                         // Allocated hours across all projects
	CapacityHours  decimal.Decimal `json:"capacityHours" example:"173.2"`               // The member's monthly capacity
	UtilizationPct decimal.Decimal `json:"utilizationPct" example:"69.28"`              // Hours as a percentage of capacity, 0 if there is no capacity
}

// MonthlyLoad returns the hours allocated to the member across all projects
// for one month, together with capacity and utilization.
func (u UserProfile) MonthlyLoad(db *gorm.DB, month types.Month) (MemberLoad, error) {
	var hours decimal.NullDecimal

	err := db.Table("project_allocations").
		Where("user_profile_id = ? AND year = ? AND month = ? AND deleted_at IS NULL", u.ID, month.Year(), int(month.Month())).
		Select("SUM(allocated_hours)").
		Row().
		Scan(&hours)
	if err != nil {
		return MemberLoad{}, err
	}

	load := MemberLoad{
		Month:         month,
		Hours:         hours.Decimal,
		CapacityHours: u.MonthlyCapacity(),
	}

	if load.CapacityHours.IsPositive() {
		load.UtilizationPct = load.Hours.Div(load.CapacityHours).Mul(decimal.NewFromInt(100))
	}

	return load, nil
}

// LoadHistory returns the member's workload for the n months up to and
// including the month passed, oldest first.
func (u UserProfile) LoadHistory(db *gorm.DB, month types.Month, n int) ([]MemberLoad, error) {
	history := make([]MemberLoad, 0, n)

	for i := n - 1; i >= 0; i-- {
		load, err := u.MonthlyLoad(db, month.AddDate(0, -i))
		if err != nil {
			return nil, err
		}

		history = append(history, load)
	}

	return history, nil
}
