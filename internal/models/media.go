package models

import "time"

const (
	MediaKindAvatar = "avatar"
)

// UserMedia records an uploaded image reference (public URL) per user and kind.
type UserMedia struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:uidx_media_user_kind"`
	Kind      string `gorm:"not null;uniqueIndex:uidx_media_user_kind"`
	URL       string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserDocument records an uploaded document reference, such as a CV.
type UserDocument struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Name      string `gorm:"not null;default:''"`
	URL       string `gorm:"not null"`
	CreatedAt time.Time
}
