package models

import (
	"time"
)

// UserWarrior is one user's instance of a warrior type. Cost/time/stat fields
// are copied from the catalog at registration and diverge from it as the
// instance levels up (each upgrade rescales the copied values in place).
type UserWarrior struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        uint   `gorm:"not null;uniqueIndex:idx_user_warrior" json:"user_id"`
	WarriorTypeID uint   `gorm:"not null;uniqueIndex:idx_user_warrior" json:"warrior_type_id"`
	Name          string `gorm:"size:100;not null" json:"name"`

	Count int `gorm:"default:0" json:"count"`
	Level int `gorm:"default:1" json:"level"`

	TrainingCost  ResourceCost `gorm:"type:jsonb" json:"trainingCost"`
	ResourceCost  ResourceCost `gorm:"type:jsonb" json:"resourceCost"`
	TrainingTime  int          `json:"trainingTime"`
	UpgradingTime int          `json:"upgradingTime"`
	Attack        int          `json:"attack"`
	Defense       int          `json:"defense"`
	Speed         int          `json:"speed"`

	Timestamps
}

// WarriorTraining is a pending training batch. FinishTime is fixed at enqueue
// and the row is deleted the moment it is applied; no update path exists.
// Queue rows are hard-deleted, so no soft-delete column here.
type WarriorTraining struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	WarriorTypeID uint      `gorm:"not null" json:"warrior_type_id"`
	Count         int       `gorm:"not null" json:"count"`
	FinishTime    time.Time `gorm:"index;not null" json:"finish_time"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// WarriorUpgrade is a pending level-up for one warrior instance.
type WarriorUpgrade struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	WarriorTypeID uint      `gorm:"not null" json:"warrior_type_id"`
	UpgradingTime int       `gorm:"not null" json:"upgrading_time"`
	FinishTime    time.Time `gorm:"index;not null" json:"finish_time"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}
