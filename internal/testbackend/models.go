package testbackend

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// User is a registered account. IDs are ULIDs.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = ulid.Make().String()
	}
	return nil
}

// Recipe belongs to one user. Names are unique per user.
type Recipe struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       string `json:"-" gorm:"uniqueIndex:idx_recipe_owner_name;not null"`
	Name         string `json:"name" gorm:"uniqueIndex:idx_recipe_owner_name;not null"`
	Instructions string `json:"instructions" gorm:"type:text;not null"`
}

// RevokedToken is a token that was logged out
type RevokedToken struct {
	Token     string    `gorm:"primaryKey"`
	RevokedAt time.Time `gorm:"autoCreateTime"`
}

// autoMigrate creates the schema
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Recipe{}, &RevokedToken{})
}
