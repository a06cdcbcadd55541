package models

import (
	"time"
)

type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	FirebaseUID string    `json:"firebaseUid" gorm:"type:text;not null;uniqueIndex"`
	Email       string    `json:"email" gorm:"type:text;not null"`
	DisplayName string    `json:"displayName" gorm:"type:text"`
	Role        string    `json:"role" gorm:"type:text;not null"`
	ClientID    *string   `json:"clientId" gorm:"type:text;index"`
	Client      *Client   `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:SET NULL;"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate       time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

type Campaign struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	UserID      string    `json:"userId" gorm:"type:text;not null;index"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	ContentType string    `json:"contentType" gorm:"type:text"`
	Topic       string    `json:"topic" gorm:"type:text"`
	Content     string    `json:"content" gorm:"type:text"`
	Status      string    `json:"status" gorm:"type:text;not null;default:'draft'"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate       time.Time `json:"mdate" gorm:"autoUpdateTime"`
}
