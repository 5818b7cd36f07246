package farm

import (
	"context"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/middleware/db"
	"github.com/scienceol/osfarm/pkg/repo"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type farmImpl struct {
	*db.Datastore
}

func NewFarmRepo(ds *db.Datastore) repo.FarmRepo {
	return &farmImpl{Datastore: ds}
}

func (f *farmImpl) CreateFarm(ctx context.Context, farm *model.Farm) error {
	return repo.TranslateErr(f.DBWithContext(ctx).Create(farm).Error, code.CreateDataErr)
}

func (f *farmImpl) GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error) {
	farm := &model.Farm{}
	if err := f.DBWithContext(ctx).Where("id = ?", id).Take(farm).Error; err != nil {
		return nil, repo.TranslateErr(err, code.QueryRecordErr)
	}
	return farm, nil
}

func (f *farmImpl) ListFarms(ctx context.Context, q repo.FarmQuery) ([]*model.Farm, int64, error) {
	query := f.DBWithContext(ctx).Model(&model.Farm{})
	if q.NameLike != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+q.NameLike+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	farms := make([]*model.Farm, 0)
	if err := query.Order("name asc, id asc").Scopes(q.Paginate).Find(&farms).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return farms, total, nil
}

func (f *farmImpl) LockFarm(ctx context.Context, id uuid.UUID) error {
	var found []uuid.UUID
	err := f.ForUpdate(f.DBWithContext(ctx).Model(&model.Farm{})).
		Where("id = ?", id).
		Limit(1).
		Pluck("id", &found).Error
	if err != nil {
		return code.QueryRecordErr.WithErr(err)
	}
	if len(found) == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (f *farmImpl) CreateField(ctx context.Context, field *model.Field) error {
	return repo.TranslateErr(f.DBWithContext(ctx).Create(field).Error, code.CreateDataErr)
}

func (f *farmImpl) GetField(ctx context.Context, id uuid.UUID) (*model.Field, error) {
	field := &model.Field{}
	if err := f.DBWithContext(ctx).Where("id = ?", id).Take(field).Error; err != nil {
		return nil, repo.TranslateErr(err, code.QueryRecordErr)
	}
	return field, nil
}

func (f *farmImpl) ListFields(ctx context.Context, farmID uuid.UUID) ([]*model.Field, error) {
	fields := make([]*model.Field, 0)
	if err := f.DBWithContext(ctx).Where("farm_id = ?", farmID).Order("name asc").Find(&fields).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return fields, nil
}

func (f *farmImpl) CreateCrop(ctx context.Context, crop *model.Crop) error {
	return repo.TranslateErr(f.DBWithContext(ctx).Create(crop).Error, code.CreateDataErr)
}

func (f *farmImpl) GetCrop(ctx context.Context, id uuid.UUID) (*model.Crop, error) {
	crop := &model.Crop{}
	if err := f.DBWithContext(ctx).Where("id = ?", id).Take(crop).Error; err != nil {
		return nil, repo.TranslateErr(err, code.QueryRecordErr)
	}
	return crop, nil
}

func (f *farmImpl) ListCrops(ctx context.Context) ([]*model.Crop, error) {
	crops := make([]*model.Crop, 0)
	if err := f.DBWithContext(ctx).Order("name asc").Find(&crops).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return crops, nil
}
