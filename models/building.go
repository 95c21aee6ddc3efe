package models

// UserBuilding is one user's instance of a building type. Created zeroed at
// registration (one row per catalog type); build/upgrade mutate it in place —
// buildings have no deferred completion.
type UserBuilding struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserID         uint   `gorm:"not null;uniqueIndex:idx_user_building" json:"user_id"`
	BuildingTypeID uint   `gorm:"not null;uniqueIndex:idx_user_building" json:"building_type_id"`
	Level          int    `gorm:"default:0" json:"level"`
	Built          bool   `gorm:"default:false" json:"built"`
	Location       string `gorm:"size:50" json:"location"`

	Timestamps
}
