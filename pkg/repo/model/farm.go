package model

import (
	"gorm.io/datatypes"

	"github.com/scienceol/osfarm/pkg/common/uuid"
)

type Farm struct {
	BaseModel
	Name     string         `gorm:"type:varchar(200);not null" json:"name"`
	Location *string        `gorm:"type:varchar(255)" json:"location,omitempty"`
	Settings datatypes.JSON `json:"settings,omitempty"`
}

func (*Farm) TableName() string {
	return "farms"
}

type Field struct {
	BaseModel
	FarmID uuid.UUID `gorm:"type:uuid;not null;index" json:"farm_id"`
	Farm   *Farm     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"farm,omitempty"`
	Name   string    `gorm:"type:varchar(200);not null" json:"name"`
	Notes  *string   `gorm:"type:text" json:"notes,omitempty"`
}

func (*Field) TableName() string {
	return "fields"
}

type Crop struct {
	BaseModel
	Name    string  `gorm:"type:varchar(200);not null" json:"name"`
	Variety *string `gorm:"type:varchar(200)" json:"variety,omitempty"`
}

func (*Crop) TableName() string {
	return "crops"
}

// Activity is work logged on a farm, optionally against one asset.
type Activity struct {
	BaseModel
	FarmID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"farm_id"`
	Farm             *Farm           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"farm,omitempty"`
	InfrastructureID *uuid.UUID      `gorm:"type:uuid;index" json:"infrastructure_id"`
	Infrastructure   *Infrastructure `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"infrastructure,omitempty"`
	Title            string          `gorm:"type:varchar(200);not null" json:"title"`
	ActivityType     string          `gorm:"type:varchar(100);not null" json:"activity_type"`
	PerformedOn      Date            `gorm:"not null" json:"performed_on"`
	Notes            *string         `gorm:"type:text" json:"notes,omitempty"`
	Details          datatypes.JSON  `json:"details,omitempty"`
}

func (*Activity) TableName() string {
	return "activities"
}
