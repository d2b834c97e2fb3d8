package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string       `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"uniqueIndex;not null" json:"username"`
	ProfileImage string       `json:"profile_image"`
	Groups       []Group      `gorm:"many2many:user_groups" json:"groups,omitempty"`
	Permissions  []Permission `gorm:"many2many:user_permissions" json:"permissions,omitempty"`
	Products     []Product    `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	Cart         *Cart        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) String() string {
	return u.Username
}

type Group struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

type Permission struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code string `gorm:"unique;not null" json:"code"`
	Name string `json:"name"`
}
