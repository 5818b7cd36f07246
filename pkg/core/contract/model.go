package contract

import (
	"github.com/shopspring/decimal"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

// CreateReq leaves presence checks to Validate so every missing field is
// reported at once.
type CreateReq struct {
	FarmID        uuid.UUID            `json:"farm_id"`
	ContractType  model.ContractType   `json:"contract_type"`
	PartnerName   string               `json:"partner_name"`
	CropID        *uuid.UUID           `json:"crop_id"`
	Quantity      *decimal.Decimal     `json:"quantity" swaggertype:"string"`
	Unit          string               `json:"unit"`
	PricePerUnit  *decimal.Decimal     `json:"price_per_unit" swaggertype:"string"`
	TotalValue    *decimal.Decimal     `json:"total_value" swaggertype:"string"`
	StartDate     *model.Date          `json:"start_date" swaggertype:"string"`
	EndDate       *model.Date          `json:"end_date" swaggertype:"string"`
	Status        model.ContractStatus `json:"status"`
	DeliveryTerms *string              `json:"delivery_terms"`
	PaymentTerms  *string              `json:"payment_terms"`
	Notes         *string              `json:"notes"`
}

// Nullable columns UpdateReq.Clear may name.
const (
	ClearCropID        = "crop_id"
	ClearEndDate       = "end_date"
	ClearDeliveryTerms = "delivery_terms"
	ClearPaymentTerms  = "payment_terms"
	ClearNotes         = "notes"
)

// UpdateReq changes only the fields that are set. Clear lists nullable
// columns to reset. Status moves through ChangeStatus.
type UpdateReq struct {
	FarmID        *uuid.UUID          `json:"farm_id"`
	ContractType  *model.ContractType `json:"contract_type"`
	PartnerName   *string             `json:"partner_name"`
	CropID        *uuid.UUID          `json:"crop_id"`
	Quantity      *decimal.Decimal    `json:"quantity" swaggertype:"string"`
	Unit          *string             `json:"unit"`
	PricePerUnit  *decimal.Decimal    `json:"price_per_unit" swaggertype:"string"`
	TotalValue    *decimal.Decimal    `json:"total_value" swaggertype:"string"`
	StartDate     *model.Date         `json:"start_date" swaggertype:"string"`
	EndDate       *model.Date         `json:"end_date" swaggertype:"string"`
	DeliveryTerms *string             `json:"delivery_terms"`
	PaymentTerms  *string             `json:"payment_terms"`
	Notes         *string             `json:"notes"`
	Clear         []string            `json:"clear"`
}

type ChangeStatusReq struct {
	Status model.ContractStatus `json:"status"`
}

type QueryReq struct {
	common.PageReq
	FarmID       string `form:"farm_id"`
	CropID       string `form:"crop_id"`
	Status       string `form:"status"`
	ContractType string `form:"contract_type"`
	Partner      string `form:"partner"`
	ActiveOn     string `form:"active_on"`
}
