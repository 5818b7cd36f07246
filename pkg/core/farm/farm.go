package farm

import (
	"context"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

// Service manages the farms, fields and crops that contracts and
// infrastructure point at.
type Service interface {
	CreateFarm(ctx context.Context, req *CreateFarmReq) (*model.Farm, error)
	GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error)
	ListFarms(ctx context.Context, req *ListFarmReq) (*common.PageResp[[]*model.Farm], error)

	CreateField(ctx context.Context, farmID uuid.UUID, req *CreateFieldReq) (*model.Field, error)
	ListFields(ctx context.Context, farmID uuid.UUID) ([]*model.Field, error)

	CreateCrop(ctx context.Context, req *CreateCropReq) (*model.Crop, error)
	ListCrops(ctx context.Context) ([]*model.Crop, error)
}
