package repo

import (
	"context"

	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type ContractQuery struct {
	Page
	FarmID       *uuid.UUID
	CropID       *uuid.UUID
	Status       *model.ContractStatus
	ContractType *model.ContractType
	PartnerLike  string
	// ActiveOn keeps contracts whose [start_date, end_date] covers the day.
	ActiveOn *model.Date
}

type ContractRepo interface {
	Transactor

	CreateContract(ctx context.Context, c *model.Contract) error
	// GetContract returns code.RecordNotFound when id is unknown. preload
	// resolves the Farm and Crop relations.
	GetContract(ctx context.Context, id uuid.UUID, preload bool) (*model.Contract, error)
	UpdateContract(ctx context.Context, c *model.Contract) error
	DeleteContract(ctx context.Context, id uuid.UUID) error
	ListContracts(ctx context.Context, q ContractQuery) ([]*model.Contract, int64, error)
}
