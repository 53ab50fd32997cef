package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectAllocation is the hours one member works on one project in one
// month. Rows are only ever written by Project.ReplaceAllocations.
type ProjectAllocation struct {
	DefaultModel
	ProjectID        uuid.UUID       `gorm:"uniqueIndex:allocation_project_member_month"`
	Project          Project         `json:"-"`
	UserProfileID    uuid.UUID       `gorm:"uniqueIndex:allocation_project_member_month"`
	UserProfile      UserProfile     `json:"-"`
	Year             int             `gorm:"uniqueIndex:allocation_project_member_month"`
	Month            int             `gorm:"uniqueIndex:allocation_project_member_month"`
	Week             int             `gorm:"uniqueIndex:allocation_project_member_month"` // 0 for whole-month entries
	AllocatedHours   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	HourlyRate       decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Snapshot of the member's rate at save time
	IsProjectManager bool            // Stamped from the save, not from the profile
}

func (a *ProjectAllocation) BeforeSave(_ *gorm.DB) error {
	if a.Month < 1 || a.Month > 12 {
		return ErrMonthOutOfRange
	}

	if a.AllocatedHours.IsNegative() {
		return ErrProjectHoursNegative
	}

	return nil
}

// AllocationEntry is one row of a replace-all save.
type AllocationEntry struct {
	MemberID         uuid.UUID       `json:"memberId" example:"a3d0038a-69f0-4b77-9eb6-365200d2a23c"`
	Year             int             `json:"year" example:"2024"`
	Month            int             `json:"month" example:"3"`
	Week             int             `json:"week" example:"0"` // Optional weekly granularity, 0 means the whole month
	AllocatedHours   decimal.Decimal `json:"allocatedHours" example:"40"`
	IsProjectManager bool            `json:"isProjectManager" example:"false"`
}

// ReplaceResult reports the outcome of a replace-all save.
type ReplaceResult struct {
	Created int      `json:"created" example:"4"`          // Number of allocation rows written
	Errors  []string `json:"errors" example:"row 2: ..."`  // Per-row failures, the batch itself still commits
}

type allocationKey struct {
	memberID uuid.UUID
	year     int
	month    int
	week     int
}

// ReplaceAllocations replaces every allocation on the project with the
// entries passed, in a single transaction. Duplicate (member, year, month,
// week) keys are summed. Entries with non-positive hours are skipped
// silently. Entries referencing unknown members are reported in the result
// without failing the rest of the batch. The first entry for a member
// decides their project manager stamp, which is then written on all of that
// member's rows.
func (p Project) ReplaceAllocations(db *gorm.DB, entries []AllocationEntry) (ReplaceResult, error) {
	var result ReplaceResult

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().
			Where("project_id = ?", p.ID).
			Delete(&ProjectAllocation{}).Error
		if err != nil {
			return err
		}

		// Collapse duplicates before writing so the unique index never
		// trips on user input. The first entry per member decides the
		// project manager stamp.
		merged := make(map[allocationKey]*ProjectAllocation)
		order := make([]allocationKey, 0, len(entries))
		isManager := make(map[uuid.UUID]bool)

		for i, entry := range entries {
			if entry.Month < 1 || entry.Month > 12 {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i, ErrMonthOutOfRange))
				continue
			}

			if !entry.AllocatedHours.IsPositive() {
				continue
			}

			if _, seen := isManager[entry.MemberID]; !seen {
				isManager[entry.MemberID] = entry.IsProjectManager
			}

			key := allocationKey{entry.MemberID, entry.Year, entry.Month, entry.Week}

			if existing, ok := merged[key]; ok {
				existing.AllocatedHours = existing.AllocatedHours.Add(entry.AllocatedHours)
				continue
			}

			merged[key] = &ProjectAllocation{
				ProjectID:      p.ID,
				UserProfileID:  entry.MemberID,
				Year:           entry.Year,
				Month:          entry.Month,
				Week:           entry.Week,
				AllocatedHours: entry.AllocatedHours,
			}
			order = append(order, key)
		}

		for i, key := range order {
			allocation := merged[key]

			var member UserProfile
			err := tx.First(&member, allocation.UserProfileID).Error
			if err != nil {
				if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
					result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i, err))
					continue
				}
				return err
			}

			allocation.HourlyRate = member.HourlyRate
			allocation.IsProjectManager = isManager[member.ID]

			err = tx.Create(allocation).Error
			if err != nil {
				return err
			}

			result.Created++
		}

		return nil
	})
	if err != nil {
		return ReplaceResult{}, err
	}

	if result.Errors == nil {
		result.Errors = []string{}
	}

	return result, nil
}

// AddMember puts the member on the project team. Adding a member twice is
// not an error.
func (p *Project) AddMember(db *gorm.DB, memberID uuid.UUID) error {
	var member UserProfile
	err := db.First(&member, memberID).Error
	if err != nil {
		return err
	}

	return db.Model(p).Association("TeamMembers").Append(&member)
}

// RemoveMember takes the member off the project team and deletes their
// allocations on the project.
func (p *Project) RemoveMember(db *gorm.DB, memberID uuid.UUID) error {
	var member UserProfile
	err := db.First(&member, memberID).Error
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(p).Association("TeamMembers").Delete(&member)
		if err != nil {
			return err
		}

		return tx.Unscoped().
			Where("project_id = ? AND user_profile_id = ?", p.ID, memberID).
			Delete(&ProjectAllocation{}).Error
	})
}
