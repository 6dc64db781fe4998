package models

import "time"

// CustomerProfile holds the role-specific row for customer users, keyed by the
// user id. Selected solutions live in a child table replaced as a set on every
// profile submission.
type CustomerProfile struct {
	UserID          uint   `gorm:"primaryKey"`
	CompanyName     string `gorm:"not null;default:''"`
	JobTitle        string `gorm:"not null;default:''"`
	Description     string `gorm:"not null;default:''"`
	AcceptedTerms   bool   `gorm:"not null;default:false"`
	AcceptedPrivacy bool   `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Solutions []CustomerSolution `gorm:"foreignKey:UserID;references:UserID"`
}

type CustomerSolution struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;index"`
	SolutionID uint `gorm:"not null"`
}

type Solution struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
