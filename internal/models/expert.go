package models

import "time"

// ExpertProfile holds the role-specific row for expert users, keyed by the
// user id. Skills, tools and platform expertise live in child tables that are
// replaced as a set on every profile submission.
type ExpertProfile struct {
	UserID       uint   `gorm:"primaryKey"`
	Bio          string `gorm:"not null;default:''"`
	ProfessionID *uint
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Skills    []ExpertSkill     `gorm:"foreignKey:UserID;references:UserID"`
	Tools     []ExpertTool      `gorm:"foreignKey:UserID;references:UserID"`
	Expertise []ExpertExpertise `gorm:"foreignKey:UserID;references:UserID"`
}

type ExpertSkill struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index"`
	Name   string `gorm:"not null"`
}

type ExpertTool struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index"`
	Name   string `gorm:"not null"`
}

// ExpertExpertise rates an expert on a platform. Rating is 1..5.
type ExpertExpertise struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;index"`
	PlatformID     uint   `gorm:"not null"`
	Rating         int    `gorm:"not null;default:0"`
	ExperienceTime string `gorm:"not null;default:''"`
}

type Profession struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type Platform struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
