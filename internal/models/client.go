package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client statuses.
const (
	ClientActive   = "active"
	ClientInactive = "inactive"
)

// Client is a customer of a company.
type Client struct {
	DefaultModel
	CompanyID        uuid.UUID `gorm:"uniqueIndex:client_name_company"`
	Company          Company   `json:"-"`
	Name             string    `gorm:"uniqueIndex:client_name_company"`
	Status           string
	AccountManagerID *uuid.UUID
	AccountManager   *UserProfile `json:"-"`
	Note             string
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Client)
	return c.checkIntegrity(tx, *toSave)
}

func (c *Client) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(Client)

	if tx.Statement.Changed("CompanyID") {
		err := c.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (c *Client) checkIntegrity(tx *gorm.DB, toSave Client) error {
	return tx.First(&Company{}, toSave.CompanyID).Error
}

func (c *Client) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	if c.Status == "" {
		c.Status = ClientActive
	}

	return nil
}
