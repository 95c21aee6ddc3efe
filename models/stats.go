package models

// UserStats tracks the mutable per-user counters (one row per user).
type UserStats struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Level         int `json:"level" gorm:"default:1"`
	Experience    int `json:"experience" gorm:"default:0"`
	MaxExperience int `json:"max_experience" gorm:"default:100"`
	Health        int `json:"health" gorm:"default:100"`
	MaxHealth     int `json:"max_health" gorm:"default:100"`
	Strength      int `json:"strength" gorm:"default:10"`
	Defense       int `json:"defense" gorm:"default:10"`
	Credits       int `json:"credits" gorm:"default:0"`

	Timestamps
}

// UserResources holds the four raw resource pools (one row per user).
type UserResources struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Wood  int `json:"wood" gorm:"default:0"`
	Clay  int `json:"clay" gorm:"default:0"`
	Iron  int `json:"iron" gorm:"default:0"`
	Crops int `json:"crops" gorm:"default:0"`

	Timestamps
}
