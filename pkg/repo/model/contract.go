package model

import (
	"github.com/shopspring/decimal"

	"github.com/scienceol/osfarm/pkg/common/uuid"
)

type ContractType string

const (
	ContractSales    ContractType = "sales"
	ContractPurchase ContractType = "purchase"
)

var ContractTypes = []ContractType{ContractSales, ContractPurchase}

type ContractStatus string

const (
	ContractDraft     ContractStatus = "draft"
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"
)

var ContractStatuses = []ContractStatus{ContractDraft, ContractActive, ContractCompleted, ContractCancelled}

var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractDraft:  {ContractActive, ContractCancelled},
	ContractActive: {ContractCompleted, ContractCancelled},
}

// CanTransition reports whether a contract may move from s to next.
// Writing the current status again is always allowed.
func (s ContractStatus) CanTransition(next ContractStatus) bool {
	if s == next {
		return true
	}
	for _, to := range contractTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// Closed contracts no longer accept edits.
func (s ContractStatus) Closed() bool {
	return s == ContractCompleted || s == ContractCancelled
}

// Column bounds, numeric(precision, scale) and varchar sizes.
const (
	QuantityPrecision   = 10
	PricePrecision      = 10
	TotalValuePrecision = 12
	MoneyScale          = 2

	PartnerNameLen = 200
	UnitLen        = 50
)

type Contract struct {
	BaseModel
	FarmID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"farm_id"`
	Farm          *Farm           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"farm,omitempty"`
	ContractType  ContractType    `gorm:"type:varchar(20);not null" json:"contract_type"`
	PartnerName   string          `gorm:"type:varchar(200);not null" json:"partner_name"`
	CropID        *uuid.UUID      `gorm:"type:uuid;index" json:"crop_id"`
	Crop          *Crop           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"crop,omitempty"`
	Quantity      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"quantity"`
	Unit          string          `gorm:"type:varchar(50);not null" json:"unit"`
	PricePerUnit  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_per_unit"`
	TotalValue    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_value"`
	StartDate     Date            `gorm:"not null" json:"start_date"`
	EndDate       *Date           `json:"end_date"`
	Status        ContractStatus  `gorm:"type:varchar(20);not null;default:draft;index" json:"status"`
	DeliveryTerms *string         `gorm:"type:text" json:"delivery_terms"`
	PaymentTerms  *string         `gorm:"type:text" json:"payment_terms"`
	Notes         *string         `gorm:"type:text" json:"notes"`
}

func (*Contract) TableName() string {
	return "contracts"
}

// ExpectedTotal is quantity times price, rounded to the column scale.
func (c *Contract) ExpectedTotal() decimal.Decimal {
	return c.Quantity.Mul(c.PricePerUnit).Round(MoneyScale)
}
