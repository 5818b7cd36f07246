package infrastructure

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

// CreateReq takes the boundary either as a GeoJSON geometry or as (E)WKT
// text, never both.
type CreateReq struct {
	FarmID           uuid.UUID                  `json:"farm_id"`
	FieldID          *uuid.UUID                 `json:"field_id"`
	Name             string                     `json:"name"`
	Type             string                     `json:"type"`
	SubType          *string                    `json:"sub_type"`
	Status           model.InfrastructureStatus `json:"status"`
	ConstructionDate *model.Date                `json:"construction_date" swaggertype:"string"`
	Cost             *decimal.Decimal           `json:"cost" swaggertype:"string"`
	AreaSqm          *decimal.Decimal           `json:"area_sqm" swaggertype:"string"`
	Perimeter        *decimal.Decimal           `json:"perimeter" swaggertype:"string"`
	BoundaryManual   *string                    `json:"boundary_manual"`
	Boundary         json.RawMessage            `json:"boundary" swaggertype:"object"`
	BoundaryWKT      *string                    `json:"boundary_wkt"`
	Notes            *string                    `json:"notes"`
}

const (
	ClearFieldID          = "field_id"
	ClearSubType          = "sub_type"
	ClearConstructionDate = "construction_date"
	ClearCost             = "cost"
	ClearAreaSqm          = "area_sqm"
	ClearPerimeter        = "perimeter"
	ClearBoundaryManual   = "boundary_manual"
	ClearBoundary         = "boundary"
	ClearNotes            = "notes"
)

type UpdateReq struct {
	FarmID           *uuid.UUID       `json:"farm_id"`
	FieldID          *uuid.UUID       `json:"field_id"`
	Name             *string          `json:"name"`
	Type             *string          `json:"type"`
	SubType          *string          `json:"sub_type"`
	ConstructionDate *model.Date      `json:"construction_date" swaggertype:"string"`
	Cost             *decimal.Decimal `json:"cost" swaggertype:"string"`
	AreaSqm          *decimal.Decimal `json:"area_sqm" swaggertype:"string"`
	Perimeter        *decimal.Decimal `json:"perimeter" swaggertype:"string"`
	BoundaryManual   *string          `json:"boundary_manual"`
	Boundary         json.RawMessage  `json:"boundary" swaggertype:"object"`
	BoundaryWKT      *string          `json:"boundary_wkt"`
	Notes            *string          `json:"notes"`
	Clear            []string         `json:"clear"`
}

type ChangeStatusReq struct {
	Status model.InfrastructureStatus `json:"status"`
}

type DeleteReq struct {
	// Detach nulls infrastructure_id on the asset's activities instead of
	// refusing the delete.
	Detach bool `form:"detach"`
}

type QueryReq struct {
	common.PageReq
	FarmID  string `form:"farm_id"`
	FieldID string `form:"field_id"`
	Type    string `form:"type"`
	Status  string `form:"status"`
}

type GeoJSONReq struct {
	FarmID string `form:"farm_id"`
	Status string `form:"status"`
}

type CreateActivityReq struct {
	Title        string         `json:"title"`
	ActivityType string         `json:"activity_type"`
	PerformedOn  *model.Date    `json:"performed_on" swaggertype:"string"`
	Notes        *string        `json:"notes"`
	Details      map[string]any `json:"details"`
}

type ActivityQueryReq struct {
	common.PageReq
}

type CatalogEntry struct {
	Type     string   `json:"type"`
	SubTypes []string `json:"sub_types"`
}
