package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sources of a RevenueReport.
const (
	RevenueSourceLedger   = "ledger"
	RevenueSourceProjects = "projects"
)

// MonthlyRevenue is a hand-entered revenue figure for one month. When any
// row exists for a (company, year), the ledger is authoritative for that
// whole year and project derivation is skipped.
type MonthlyRevenue struct {
	DefaultModel
	CompanyID   uuid.UUID       `gorm:"uniqueIndex:revenue_company_month"`
	Company     Company         `json:"-"`
	ClientID    *uuid.UUID      `gorm:"uniqueIndex:revenue_company_month"`
	ProjectID   *uuid.UUID      `gorm:"uniqueIndex:revenue_company_month"`
	Year        int             `gorm:"uniqueIndex:revenue_company_month"`
	Month       int             `gorm:"uniqueIndex:revenue_company_month"`
	RevenueType string          `gorm:"uniqueIndex:revenue_company_month"` // "booked" or "forecast", empty treated as booked
	Revenue     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note        string
}

func (m *MonthlyRevenue) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*MonthlyRevenue)
	return m.checkIntegrity(tx, *toSave)
}

func (m *MonthlyRevenue) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(MonthlyRevenue)

	if tx.Statement.Changed("CompanyID") {
		err := m.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies references to other resources and enforces one
// row per (company, client, project, month, type). The unique index does
// not catch rows with NULL client or project references, so the check
// happens here.
func (m *MonthlyRevenue) checkIntegrity(tx *gorm.DB, toSave MonthlyRevenue) error {
	err := tx.First(&Company{}, toSave.CompanyID).Error
	if err != nil {
		return err
	}

	q := tx.Model(&MonthlyRevenue{}).
		Where("company_id = ? AND year = ? AND month = ?", toSave.CompanyID, toSave.Year, toSave.Month).
		Where("revenue_type = ?", toSave.effectiveType())

	if toSave.ClientID != nil {
		q = q.Where("client_id = ?", *toSave.ClientID)
	} else {
		q = q.Where("client_id IS NULL")
	}

	if toSave.ProjectID != nil {
		q = q.Where("project_id = ?", *toSave.ProjectID)
	} else {
		q = q.Where("project_id IS NULL")
	}

	var count int64
	err = q.Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrMonthlyRevenueNotUnique
	}

	return nil
}

// effectiveType returns the revenue type the row will be stored with.
func (m MonthlyRevenue) effectiveType() string {
	if m.RevenueType == "" {
		return RevenueBooked
	}

	return m.RevenueType
}

func (m *MonthlyRevenue) BeforeSave(_ *gorm.DB) error {
	if m.Month < 1 || m.Month > 12 {
		return ErrMonthOutOfRange
	}

	if m.Revenue.IsNegative() {
		return ErrAmountNegative
	}

	if m.RevenueType == "" {
		m.RevenueType = RevenueBooked
	}

	return nil
}

// RevenueBucket is the booked and forecast revenue of one month.
type RevenueBucket struct {
	Booked   decimal.Decimal `json:"booked" example:"10000"`
	Forecast decimal.Decimal `json:"forecast" example:"5000"`
}

// Total returns booked and forecast revenue combined.
func (b RevenueBucket) Total() decimal.Decimal {
	return b.Booked.Add(b.Forecast)
}

// RevenueReport is the monthly revenue of a company for one year.
type RevenueReport struct {
	Year      int               `json:"year" example:"2024"`
	Months    [12]RevenueBucket `json:"months"`
	Source    string            `json:"source" example:"ledger"`  // "ledger" when hand-entered rows exist for the year, "projects" otherwise
	Synthetic bool              `json:"synthetic" example:"false"` // True when the report was filled with sample values
}

// Annual returns the booked plus forecast total over all twelve months.
func (r RevenueReport) Annual() decimal.Decimal {
	total := decimal.Zero
	for _, bucket := range r.Months {
		total = total.Add(bucket.Total())
	}

	return total
}

func (r RevenueReport) empty() bool {
	for _, bucket := range r.Months {
		if !bucket.Booked.IsZero() || !bucket.Forecast.IsZero() {
			return false
		}
	}

	return true
}

// RevenueOption tweaks RevenueByMonth.
type RevenueOption func(*revenueOptions)

type revenueOptions struct {
	demoSamples bool
}

// WithDemoSamples fills an all-zero report with sample values and marks it
// synthetic. Meant for demo installations only.
func WithDemoSamples() RevenueOption {
	return func(o *revenueOptions) {
		o.demoSamples = true
	}
}

// RevenueByMonth returns the company's revenue for one year, split into a
// booked and a forecast bucket per month.
//
// If the ledger has rows for the year they are authoritative and projects
// are not consulted. Otherwise revenue is derived from projects: the total
// revenue of every project overlapping the year is spread evenly across the
// calendar months of the project's lifetime, and the overlapping months'
// shares land in the bucket named by the project's revenue type.
func (c Company) RevenueByMonth(db *gorm.DB, year int, options ...RevenueOption) (RevenueReport, error) {
	var opts revenueOptions
	for _, option := range options {
		option(&opts)
	}

	report := RevenueReport{Year: year, Source: RevenueSourceLedger}

	var rows []MonthlyRevenue
	if Schema.RevenueLedger {
		err := db.Where(&MonthlyRevenue{CompanyID: c.ID}).Where("year = ?", year).Find(&rows).Error
		if err != nil {
			return RevenueReport{}, err
		}
	}

	if len(rows) != 0 {
		for _, row := range rows {
			bucket := &report.Months[row.Month-1]
			if row.RevenueType == RevenueForecast {
				bucket.Forecast = bucket.Forecast.Add(row.Revenue)
			} else {
				bucket.Booked = bucket.Booked.Add(row.Revenue)
			}
		}

		return report, nil
	}

	report.Source = RevenueSourceProjects

	err := c.deriveRevenue(db, &report)
	if err != nil {
		return RevenueReport{}, err
	}

	if opts.demoSamples && report.empty() {
		fillDemoSamples(&report)
	}

	return report, nil
}

func (c Company) deriveRevenue(db *gorm.DB, report *RevenueReport) error {
	var projects []Project
	err := db.Where(&Project{CompanyID: c.ID}).Find(&projects).Error
	if err != nil {
		return err
	}

	for _, project := range projects {
		if project.Revenue.IsZero() {
			continue
		}

		lifetime, err := project.Lifetime()
		if err != nil {
			continue
		}

		monthly := project.Revenue.Div(decimal.NewFromInt(int64(lifetime.MonthSpan())))

		for _, month := range lifetime.Months() {
			if month.Year() != report.Year {
				continue
			}

			bucket := &report.Months[int(month.Month())-1]
			if project.EffectiveRevenueType() == RevenueForecast {
				bucket.Forecast = bucket.Forecast.Add(monthly)
			} else {
				bucket.Booked = bucket.Booked.Add(monthly)
			}
		}
	}

	return nil
}

// Sample values shown on empty demo installations.
func fillDemoSamples(report *RevenueReport) {
	report.Months[0].Booked = decimal.NewFromInt(10000)
	report.Months[0].Forecast = decimal.NewFromInt(5000)
	report.Months[1].Booked = decimal.NewFromInt(12000)
	report.Months[1].Forecast = decimal.NewFromInt(8000)
	report.Months[2].Forecast = decimal.NewFromInt(15000)
	report.Synthetic = true
}
