package repo

import (
	"context"

	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type FarmQuery struct {
	Page
	NameLike string
}

type FarmRepo interface {
	Transactor

	CreateFarm(ctx context.Context, farm *model.Farm) error
	GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error)
	ListFarms(ctx context.Context, q FarmQuery) ([]*model.Farm, int64, error)
	// LockFarm checks the farm exists and, where supported, locks its row
	// until the surrounding transaction ends.
	LockFarm(ctx context.Context, id uuid.UUID) error

	CreateField(ctx context.Context, field *model.Field) error
	GetField(ctx context.Context, id uuid.UUID) (*model.Field, error)
	ListFields(ctx context.Context, farmID uuid.UUID) ([]*model.Field, error)

	CreateCrop(ctx context.Context, crop *model.Crop) error
	GetCrop(ctx context.Context, id uuid.UUID) (*model.Crop, error)
	ListCrops(ctx context.Context) ([]*model.Crop, error)
}
