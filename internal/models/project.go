package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProjectStatusDraft     = "draft"
	ProjectStatusPublished = "published"
	ProjectStatusClosed    = "closed"
)

// ITProject is a customer-owned project posting. Offers attached to it request
// experts with specific skills on a platform.
type ITProject struct {
	ID            uint   `gorm:"primaryKey"`
	CustomerID    uint   `gorm:"not null;index"`
	Title         string `gorm:"not null"`
	Description   string `gorm:"not null;default:''"`
	Status        string `gorm:"not null;default:draft"`
	CategoryID    *uint
	SubcategoryID *uint
	Budget        int `gorm:"not null;default:0"`
	Deadline      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Offers []ProjectOffer `gorm:"foreignKey:ProjectID"`
}

type ProjectOffer struct {
	ID             uint `gorm:"primaryKey"`
	ProjectID      uint `gorm:"not null;index"`
	PlatformID     *uint
	Headline       string                        `gorm:"not null"`
	Description    string                        `gorm:"not null;default:''"`
	RequiredSkills datatypes.JSONSlice[string]   `gorm:"not null"`
	ExpertCount    int                           `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories"`
}

type Subcategory struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CategoryID uint   `gorm:"not null;index" json:"category_id"`
	Name       string `gorm:"not null" json:"name"`
}
