package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"stepwars-server/models"

	"gorm.io/gorm"
)

// StepsService runs the pedometer session state machine: Idle → Tracking
// (start captures the device counter as baseline) → Idle (stop consumes the
// delta into the cumulative counters).
type StepsService struct {
	DB *gorm.DB
}

func NewStepsService(db *gorm.DB) *StepsService {
	return &StepsService{DB: db}
}

func (s *StepsService) Get(userID uint) (*models.UserSteps, error) {
	var row models.UserSteps
	if err := s.DB.Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user steps", ErrNotFound)
		}
		return nil, err
	}
	return &row, nil
}

// Start begins a tracking session, capturing the current device counter as the
// session baseline. Starting again simply re-captures the baseline.
func (s *StepsService) Start(userID uint, currentStepCount int) (*models.UserSteps, error) {
	row, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.DB.Model(row).Updates(map[string]interface{}{
		"is_tracking":            true,
		"tracking_start_time":    now,
		"steps_at_session_start": currentStepCount,
	}).Error; err != nil {
		return nil, err
	}

	row.IsTracking = true
	row.TrackingStartTime = &now
	row.StepsAtSessionStart = currentStepCount
	return row, nil
}

// Stop ends the session. The gain is clamped at zero so a regressed device
// counter never subtracts from the cumulative totals.
func (s *StepsService) Stop(userID uint, currentStepCount int) (*models.UserSteps, error) {
	row, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	gained := currentStepCount - row.StepsAtSessionStart
	if gained < 0 {
		gained = 0
	}

	if err := s.DB.Model(row).Updates(map[string]interface{}{
		"is_tracking":  false,
		"steps_gained": gorm.Expr("steps_gained + ?", gained),
		"total_steps":  gorm.Expr("total_steps + ?", gained),
	}).Error; err != nil {
		return nil, err
	}

	row.IsTracking = false
	row.StepsGained += gained
	row.TotalSteps += gained

	log.Printf("👟 Step session stopped: user=%d gained=%d total=%d", userID, gained, row.TotalSteps)
	return row, nil
}

// Reset zeroes all counters and clears tracking state unconditionally.
func (s *StepsService) Reset(userID uint) (*models.UserSteps, error) {
	res := s.DB.Model(&models.UserSteps{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"is_tracking":            false,
		"steps_gained":           0,
		"total_steps":            0,
		"steps_at_session_start": 0,
		"tracking_start_time":    nil,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: user steps", ErrNotFound)
	}
	return s.Get(userID)
}
