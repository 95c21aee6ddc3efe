package services

import (
	"fmt"
	"log"

	"stepwars-server/models"

	"gorm.io/gorm"
)

// CatalogService serves the immutable building/warrior type catalogs from
// memory. Load reads both tables once at startup; nothing mutates the maps
// afterwards, so accessors need no locking. A redeploy is the refresh path.
type CatalogService struct {
	DB *gorm.DB

	warriors      map[uint]models.WarriorType
	buildings     map[uint]models.BuildingType
	warriorOrder  []models.WarriorType
	buildingOrder []models.BuildingType
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// Load fills the in-memory catalogs, seeding defaults first if a table is empty.
func (s *CatalogService) Load() error {
	if err := s.seed(); err != nil {
		return fmt.Errorf("seed catalogs: %w", err)
	}

	var warriorTypes []models.WarriorType
	if err := s.DB.Order("id ASC").Find(&warriorTypes).Error; err != nil {
		return fmt.Errorf("load warrior types: %w", err)
	}
	var buildingTypes []models.BuildingType
	if err := s.DB.Order("id ASC").Find(&buildingTypes).Error; err != nil {
		return fmt.Errorf("load building types: %w", err)
	}

	s.warriors = make(map[uint]models.WarriorType, len(warriorTypes))
	for _, wt := range warriorTypes {
		s.warriors[wt.ID] = wt
	}
	s.buildings = make(map[uint]models.BuildingType, len(buildingTypes))
	for _, bt := range buildingTypes {
		s.buildings[bt.ID] = bt
	}
	s.warriorOrder = warriorTypes
	s.buildingOrder = buildingTypes

	log.Printf("✅ Catalogs loaded: %d warrior types, %d building types", len(warriorTypes), len(buildingTypes))
	return nil
}

// WarriorType returns one catalog entry by id.
func (s *CatalogService) WarriorType(id uint) (models.WarriorType, bool) {
	wt, ok := s.warriors[id]
	return wt, ok
}

// BuildingType returns one catalog entry by id.
func (s *CatalogService) BuildingType(id uint) (models.BuildingType, bool) {
	bt, ok := s.buildings[id]
	return bt, ok
}

// WarriorTypes returns all entries ordered by id. Callers must not mutate.
func (s *CatalogService) WarriorTypes() []models.WarriorType {
	return s.warriorOrder
}

// BuildingTypes returns all entries ordered by id. Callers must not mutate.
func (s *CatalogService) BuildingTypes() []models.BuildingType {
	return s.buildingOrder
}

func (s *CatalogService) seed() error {
	var warriorCount int64
	if err := s.DB.Model(&models.WarriorType{}).Count(&warriorCount).Error; err != nil {
		return err
	}
	if warriorCount == 0 {
		seedRows := defaultWarriorTypes()
		if err := s.DB.Create(&seedRows).Error; err != nil {
			return err
		}
		log.Println("✅ Seeded default warrior types")
	}

	var buildingCount int64
	if err := s.DB.Model(&models.BuildingType{}).Count(&buildingCount).Error; err != nil {
		return err
	}
	if buildingCount == 0 {
		seedRows := defaultBuildingTypes()
		if err := s.DB.Create(&seedRows).Error; err != nil {
			return err
		}
		log.Println("✅ Seeded default building types")
	}
	return nil
}

func defaultWarriorTypes() []models.WarriorType {
	return []models.WarriorType{
		{
			Name:         "Clubman",
			Level:        1,
			ResourceCost: models.ResourceCost{"crops": 30, "iron": 20},
			TrainingCost: models.ResourceCost{"crops": 30, "iron": 20},
			TrainingTime: 60, UpgradingTime: 120,
			Attack: 10, Defense: 8, Speed: 6,
			RequiredAcademyLevel: 0,
			UpgradeRequirements:  models.IntList{2, 4, 6, 8},
		},
		{
			Name:         "Spearman",
			Level:        1,
			ResourceCost: models.ResourceCost{"crops": 40, "iron": 35},
			TrainingCost: models.ResourceCost{"crops": 40, "iron": 35},
			TrainingTime: 90, UpgradingTime: 180,
			Attack: 8, Defense: 14, Speed: 5,
			RequiredAcademyLevel: 1,
			UpgradeRequirements:  models.IntList{2, 4, 6, 8},
		},
		{
			Name:         "Axeman",
			Level:        1,
			ResourceCost: models.ResourceCost{"crops": 50, "iron": 60},
			TrainingCost: models.ResourceCost{"crops": 50, "iron": 60},
			TrainingTime: 120, UpgradingTime: 240,
			Attack: 16, Defense: 9, Speed: 6,
			RequiredAcademyLevel: 2,
			UpgradeRequirements:  models.IntList{3, 5, 7, 9},
		},
		{
			Name:         "Scout",
			Level:        1,
			ResourceCost: models.ResourceCost{"crops": 25, "iron": 15},
			TrainingCost: models.ResourceCost{"crops": 25, "iron": 15},
			TrainingTime: 45, UpgradingTime: 90,
			Attack: 2, Defense: 4, Speed: 14,
			RequiredAcademyLevel: 1,
			UpgradeRequirements:  models.IntList{2, 3, 5, 7},
		},
	}
}

func defaultBuildingTypes() []models.BuildingType {
	return []models.BuildingType{
		{
			Name:                  "Town Hall",
			RequiredTownHallLevel: 0,
			ResourceCost:          models.ResourceCost{"wood": 200, "clay": 180, "iron": 120},
			BuildTime:             300,
			UpgradeRequirement:    models.IntList{1, 3, 5, 8, 12},
		},
		{
			Name:                  "Barracks",
			RequiredTownHallLevel: 1,
			ResourceCost:          models.ResourceCost{"wood": 160, "clay": 120, "iron": 140},
			BuildTime:             240,
			UpgradeRequirement:    models.IntList{1, 2, 4, 6, 9},
			TroopsStorage:         40,
		},
		{
			Name:                  "Academy",
			RequiredTownHallLevel: 3,
			ResourceCost:          models.ResourceCost{"wood": 220, "clay": 160, "iron": 200},
			BuildTime:             420,
			UpgradeRequirement:    models.IntList{2, 4, 6, 8, 10},
		},
		{
			Name:                  "Farm",
			RequiredTownHallLevel: 0,
			ResourceCost:          models.ResourceCost{"wood": 80, "clay": 100, "iron": 40},
			BuildTime:             120,
			UpgradeRequirement:    models.IntList{1, 2, 3, 5, 8},
			ProductionRate:        30,
			BaseStorage:           800,
		},
		{
			Name:                  "Iron Mine",
			RequiredTownHallLevel: 1,
			ResourceCost:          models.ResourceCost{"wood": 100, "clay": 80, "iron": 30},
			BuildTime:             180,
			UpgradeRequirement:    models.IntList{1, 2, 4, 6, 9},
			ProductionRate:        20,
			BaseStorage:           600,
		},
		{
			Name:                  "Step Shrine",
			RequiredTownHallLevel: 2,
			ResourceCost:          models.ResourceCost{"wood": 140, "clay": 140, "iron": 100},
			BuildTime:             360,
			UpgradeRequirement:    models.IntList{2, 3, 5, 7, 10},
			StepCountingDuration:  3600,
		},
	}
}
