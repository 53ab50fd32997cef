package models

import (
	"strings"

	"gorm.io/gorm"
)

// Company is the tenant boundary.
//
// Every aggregation in the engine is scoped to exactly one company, all
// other resources reference it directly or transitively.
type Company struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
	Code string `gorm:"uniqueIndex"`
	Note string
}

func (c *Company) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Code = strings.TrimSpace(strings.ToUpper(c.Code))
	c.Note = strings.TrimSpace(c.Note)

	return nil
}
