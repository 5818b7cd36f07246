package farm

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/common/validate"
	core "github.com/scienceol/osfarm/pkg/core/farm"
	"github.com/scienceol/osfarm/pkg/core/notify"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
	"github.com/scienceol/osfarm/pkg/repo"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type farmImpl struct {
	store  repo.FarmRepo
	center notify.MsgCenter
}

func New(store repo.FarmRepo, center notify.MsgCenter) core.Service {
	return &farmImpl{store: store, center: center}
}

func (f *farmImpl) CreateFarm(ctx context.Context, req *core.CreateFarmReq) (*model.Farm, error) {
	v := validate.New()
	validate.RequiredString("name", req.Name, v)
	validate.MaxLen("name", req.Name, 200, v)
	if req.Location != nil {
		validate.MaxLen("location", *req.Location, 255, v)
	}
	if len(req.Settings) > 0 && !json.Valid(req.Settings) {
		v.Add("settings", validate.InvalidValue)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	data := &model.Farm{Name: req.Name, Location: req.Location}
	if len(req.Settings) > 0 {
		data.Settings = datatypes.JSON(req.Settings)
	}
	if err := f.store.CreateFarm(ctx, data); err != nil {
		logger.Errorf(ctx, "create farm err: %+v", err)
		return nil, err
	}

	notify.Publish(ctx, f.center, &notify.SendMsg{
		FarmID: data.ID, Entity: notify.EntityFarm, EntityID: data.ID, Op: notify.OpCreate, Data: data,
	})
	return data, nil
}

func (f *farmImpl) GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error) {
	return f.store.GetFarm(ctx, id)
}

func (f *farmImpl) ListFarms(ctx context.Context, req *core.ListFarmReq) (*common.PageResp[[]*model.Farm], error) {
	req.Normalize()
	list, total, err := f.store.ListFarms(ctx, repo.FarmQuery{
		Page:     repo.Page{Offset: req.Offset(), Limit: req.PageSize},
		NameLike: req.Name,
	})
	if err != nil {
		return nil, err
	}
	return &common.PageResp[[]*model.Farm]{
		Data:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (f *farmImpl) CreateField(ctx context.Context, farmID uuid.UUID, req *core.CreateFieldReq) (*model.Field, error) {
	v := validate.New()
	validate.RequiredID("farm_id", farmID, v)
	validate.RequiredString("name", req.Name, v)
	validate.MaxLen("name", req.Name, 200, v)
	if err := v.Err(); err != nil {
		return nil, err
	}

	data := &model.Field{FarmID: farmID, Name: req.Name, Notes: req.Notes}
	err := f.store.ExecTx(ctx, func(txCtx context.Context) error {
		if err := f.store.LockFarm(txCtx, farmID); err != nil {
			if errors.Is(err, code.RecordNotFound) {
				return code.FarmNotFound.WithMsgf("farm %s not found", farmID)
			}
			return err
		}
		return f.store.CreateField(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	notify.Publish(ctx, f.center, &notify.SendMsg{
		FarmID: farmID, Entity: notify.EntityField, EntityID: data.ID, Op: notify.OpCreate, Data: data,
	})
	return data, nil
}

func (f *farmImpl) ListFields(ctx context.Context, farmID uuid.UUID) ([]*model.Field, error) {
	if _, err := f.store.GetFarm(ctx, farmID); err != nil {
		return nil, err
	}
	return f.store.ListFields(ctx, farmID)
}

func (f *farmImpl) CreateCrop(ctx context.Context, req *core.CreateCropReq) (*model.Crop, error) {
	v := validate.New()
	validate.RequiredString("name", req.Name, v)
	validate.MaxLen("name", req.Name, 200, v)
	if req.Variety != nil {
		validate.MaxLen("variety", *req.Variety, 200, v)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	data := &model.Crop{Name: req.Name, Variety: req.Variety}
	if err := f.store.CreateCrop(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *farmImpl) ListCrops(ctx context.Context) ([]*model.Crop, error) {
	return f.store.ListCrops(ctx)
}
