package model

import (
	"github.com/shopspring/decimal"

	"github.com/scienceol/osfarm/pkg/common/uuid"
)

type InfrastructureStatus string

const (
	InfraOperational       InfrastructureStatus = "operational"
	InfraUnderConstruction InfrastructureStatus = "under_construction"
	InfraMaintenance       InfrastructureStatus = "maintenance"
	InfraRetired           InfrastructureStatus = "retired"
)

var InfrastructureStatuses = []InfrastructureStatus{
	InfraOperational, InfraUnderConstruction, InfraMaintenance, InfraRetired,
}

var infraTransitions = map[InfrastructureStatus][]InfrastructureStatus{
	InfraOperational:       {InfraMaintenance, InfraRetired},
	InfraMaintenance:       {InfraOperational, InfraRetired},
	InfraUnderConstruction: {InfraOperational, InfraRetired},
}

func (s InfrastructureStatus) CanTransition(next InfrastructureStatus) bool {
	if s == next {
		return true
	}
	for _, to := range infraTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// Initial reports whether a new asset may start in s.
func (s InfrastructureStatus) Initial() bool {
	return s == InfraOperational || s == InfraUnderConstruction
}

func (s InfrastructureStatus) Closed() bool {
	return s == InfraRetired
}

const (
	CostPrecision    = 15
	MeasurePrecision = 10

	NameLen    = 200
	TypeLen    = 100
	SubTypeLen = 100
)

type Infrastructure struct {
	BaseModel
	FarmID           uuid.UUID            `gorm:"type:uuid;not null;index" json:"farm_id"`
	Farm             *Farm                `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"farm,omitempty"`
	FieldID          *uuid.UUID           `gorm:"type:uuid;index" json:"field_id"`
	Field            *Field               `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"field,omitempty"`
	Name             string               `gorm:"type:varchar(200);not null" json:"name"`
	Type             string               `gorm:"type:varchar(100);not null;index" json:"type"`
	SubType          *string              `gorm:"type:varchar(100)" json:"sub_type"`
	Status           InfrastructureStatus `gorm:"type:varchar(30);not null;default:operational;index" json:"status"`
	ConstructionDate *Date                `json:"construction_date"`
	Cost             *decimal.Decimal     `gorm:"type:numeric(15,2)" json:"cost"`
	AreaSqm          *decimal.Decimal     `gorm:"type:numeric(10,2)" json:"area_sqm"`
	Perimeter        *decimal.Decimal     `gorm:"type:numeric(10,2)" json:"perimeter"`
	BoundaryManual   *string              `gorm:"type:text" json:"boundary_manual"`
	Boundary         *Polygon             `json:"boundary"`
	Notes            *string              `gorm:"type:text" json:"notes"`
	Activities       []*Activity          `gorm:"foreignKey:InfrastructureID" json:"activities,omitempty"`
}

func (*Infrastructure) TableName() string {
	return "infrastructures"
}
