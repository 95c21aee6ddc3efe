package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ResourceCost is a structured cost map keyed by resource name
// (e.g. {"crops": 40, "iron": 60}), stored as a single jsonb column so each
// catalog entry can carry a different cost shape.
type ResourceCost map[string]int

func (rc ResourceCost) Value() (driver.Value, error) {
	if rc == nil {
		return nil, nil
	}
	return json.Marshal(rc)
}

func (rc *ResourceCost) Scan(value interface{}) error {
	if value == nil {
		*rc = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported resource cost column type %T", value)
	}
	return json.Unmarshal(raw, rc)
}

// IntList is an ordered threshold sequence stored as a jsonb array.
type IntList []int

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *IntList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported threshold column type %T", value)
	}
	return json.Unmarshal(raw, l)
}

// BuildingType is an immutable catalog template, seeded once and cached in
// memory. Durations are seconds.
type BuildingType struct {
	ID                    uint         `gorm:"primaryKey" json:"id"`
	Name                  string       `gorm:"size:100;uniqueIndex;not null" json:"name"`
	RequiredTownHallLevel int          `json:"requiredTownHallLevel"`
	ResourceCost          ResourceCost `gorm:"type:jsonb" json:"resourceCost"`
	BuildTime             int          `json:"buildTime"`
	UpgradeRequirement    IntList      `gorm:"type:jsonb" json:"upgradeRequirement"`
	StepCountingDuration  int          `json:"stepCountingDuration"`
	TroopsStorage         int          `json:"troopsStorage"`
	ProductionRate        int          `json:"productionRate"`
	BaseStorage           int          `json:"baseStorage"`
}

// WarriorType is an immutable catalog template for one unit kind.
// TrainingTime/UpgradingTime are seconds per unit at base level.
type WarriorType struct {
	ID                   uint         `gorm:"primaryKey" json:"id"`
	Name                 string       `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Level                int          `gorm:"default:1" json:"level"`
	ResourceCost         ResourceCost `gorm:"type:jsonb" json:"resourceCost"`
	TrainingCost         ResourceCost `gorm:"type:jsonb" json:"trainingCost"`
	TrainingTime         int          `json:"trainingTime"`
	UpgradingTime        int          `json:"upgradingTime"`
	Attack               int          `json:"attack"`
	Defense              int          `json:"defense"`
	Speed                int          `json:"speed"`
	RequiredAcademyLevel int          `json:"requiredAcademyLevel"`
	UpgradeRequirements  IntList      `gorm:"type:jsonb" json:"upgradeRequirements"`
}
