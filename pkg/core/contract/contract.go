package contract

import (
	"context"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type Service interface {
	Create(ctx context.Context, req *CreateReq) (*model.Contract, error)
	// Get preloads the farm and crop.
	Get(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateReq) (*model.Contract, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, req *ChangeStatusReq) (*model.Contract, error)
	// Delete removes drafts only. Other contracts end by cancellation.
	Delete(ctx context.Context, id uuid.UUID) error
	Query(ctx context.Context, req *QueryReq) (*common.PageResp[[]*model.Contract], error)
}
