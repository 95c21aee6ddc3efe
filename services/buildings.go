package services

import (
	"errors"
	"fmt"
	"log"

	"stepwars-server/models"

	"gorm.io/gorm"
)

// BuildingService covers the synchronous building lifecycle. Unlike warriors,
// a build or upgrade takes effect immediately on request; buildings have no
// queue.
type BuildingService struct {
	DB      *gorm.DB
	Catalog *CatalogService
}

func NewBuildingService(db *gorm.DB, catalog *CatalogService) *BuildingService {
	return &BuildingService{DB: db, Catalog: catalog}
}

// BuildingView is the client-facing shape: the instance row merged with its
// catalog template, renamed to the wire field names.
type BuildingView struct {
	ID                    uint                `json:"id"`
	BuildingTypeID        uint                `json:"buildingTypeId"`
	Name                  string              `json:"name"`
	Level                 int                 `json:"level"`
	Built                 bool                `json:"built"`
	Location              string              `json:"location"`
	RequiredTownHallLevel int                 `json:"requiredTownHallLevel"`
	ResourceCost          models.ResourceCost `json:"resourceCost"`
	BuildTime             int                 `json:"buildTime"`
	UpgradeRequirement    models.IntList      `json:"upgradeRequirement"`
	StepCountingDuration  int                 `json:"stepCountingDuration"`
	TroopsStorage         int                 `json:"troopsStorage"`
	ProductionRate        int                 `json:"productionRate"`
	BaseStorage           int                 `json:"baseStorage"`
}

// UserBuildings returns every building instance for the user joined with its
// catalog entry. The join happens against the in-memory catalog, not the store.
func (s *BuildingService) UserBuildings(userID uint) ([]BuildingView, error) {
	var rows []models.UserBuilding
	if err := s.DB.Where("user_id = ?", userID).Order("building_type_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]BuildingView, 0, len(rows))
	for _, row := range rows {
		bt, ok := s.Catalog.BuildingType(row.BuildingTypeID)
		if !ok {
			continue
		}
		views = append(views, BuildingView{
			ID:                    row.ID,
			BuildingTypeID:        row.BuildingTypeID,
			Name:                  bt.Name,
			Level:                 row.Level,
			Built:                 row.Built,
			Location:              row.Location,
			RequiredTownHallLevel: bt.RequiredTownHallLevel,
			ResourceCost:          bt.ResourceCost,
			BuildTime:             bt.BuildTime,
			UpgradeRequirement:    bt.UpgradeRequirement,
			StepCountingDuration:  bt.StepCountingDuration,
			TroopsStorage:         bt.TroopsStorage,
			ProductionRate:        bt.ProductionRate,
			BaseStorage:           bt.BaseStorage,
		})
	}
	return views, nil
}

// Build marks a building as constructed at the given level and location.
// Upsert semantics: the registration-created row is updated when present,
// otherwise a fresh row is inserted.
func (s *BuildingService) Build(userID, buildingTypeID uint, level int, location string) error {
	if userID == 0 || buildingTypeID == 0 {
		return fmt.Errorf("%w: userId and buildingTypeId are required", ErrInvalidArgument)
	}
	if _, ok := s.Catalog.BuildingType(buildingTypeID); !ok {
		return fmt.Errorf("%w: building type", ErrNotFound)
	}

	var existing models.UserBuilding
	err := s.DB.Where("user_id = ? AND building_type_id = ?", userID, buildingTypeID).First(&existing).Error
	switch {
	case err == nil:
		return s.DB.Model(&existing).Updates(map[string]interface{}{
			"built":    true,
			"level":    level,
			"location": location,
		}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.UserBuilding{
			UserID:         userID,
			BuildingTypeID: buildingTypeID,
			Level:          level,
			Built:          true,
			Location:       location,
		}
		return s.DB.Create(&row).Error
	default:
		return err
	}
}

// UpgradeLevel sets an existing building to the given level.
func (s *BuildingService) UpgradeLevel(userID, buildingTypeID uint, level int) error {
	if level <= 0 {
		return fmt.Errorf("%w: level is required", ErrInvalidArgument)
	}

	res := s.DB.Model(&models.UserBuilding{}).
		Where("user_id = ? AND building_type_id = ?", userID, buildingTypeID).
		Update("level", level)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: building", ErrNotFound)
	}

	log.Printf("🏗️ Building upgraded: user=%d type=%d level=%d", userID, buildingTypeID, level)
	return nil
}
