package models

import (
	"time"
)

// UserSteps is the pedometer session state for one user.
// StepsAtSessionStart is the device counter captured on start; the delta against
// it is consumed into StepsGained/TotalSteps on stop.
type UserSteps struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	IsTracking          bool       `json:"is_tracking" gorm:"default:false"`
	TrackingStartTime   *time.Time `json:"tracking_start_time,omitempty"`
	StepsAtSessionStart int        `json:"steps_at_session_start" gorm:"default:0"`
	StepsGained         int        `json:"steps_gained" gorm:"default:0"`
	TotalSteps          int        `json:"total_steps" gorm:"default:0"`

	Timestamps
}
