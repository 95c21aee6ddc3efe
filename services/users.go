package services

import (
	"errors"
	"fmt"

	"stepwars-server/models"

	"gorm.io/gorm"
)

// UserService covers the plain single-row stat/resource reads and writes.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) Stats(userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	if err := s.DB.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user stats", ErrNotFound)
		}
		return nil, err
	}
	return &stats, nil
}

type StatsInput struct {
	Level         int `json:"level"`
	Experience    int `json:"experience"`
	MaxExperience int `json:"max_experience"`
	Health        int `json:"health"`
	MaxHealth     int `json:"max_health"`
	Strength      int `json:"strength"`
	Defense       int `json:"defense"`
	Credits       int `json:"credits"`
}

func (s *UserService) UpdateStats(userID uint, in StatsInput) (*models.UserStats, error) {
	res := s.DB.Model(&models.UserStats{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"level":          in.Level,
		"experience":     in.Experience,
		"max_experience": in.MaxExperience,
		"health":         in.Health,
		"max_health":     in.MaxHealth,
		"strength":       in.Strength,
		"defense":        in.Defense,
		"credits":        in.Credits,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: user stats", ErrNotFound)
	}
	return s.Stats(userID)
}

func (s *UserService) Resources(userID uint) (*models.UserResources, error) {
	var resources models.UserResources
	if err := s.DB.Where("user_id = ?", userID).First(&resources).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user resources", ErrNotFound)
		}
		return nil, err
	}
	return &resources, nil
}

type ResourcesInput struct {
	Wood  int `json:"wood"`
	Clay  int `json:"clay"`
	Iron  int `json:"iron"`
	Crops int `json:"crops"`
}

func (s *UserService) UpdateResources(userID uint, in ResourcesInput) (*models.UserResources, error) {
	res := s.DB.Model(&models.UserResources{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"wood":  in.Wood,
		"clay":  in.Clay,
		"iron":  in.Iron,
		"crops": in.Crops,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: user resources", ErrNotFound)
	}
	return s.Resources(userID)
}
