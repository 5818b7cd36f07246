package infrastructure

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/middleware/db"
	"github.com/scienceol/osfarm/pkg/repo"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type infraImpl struct {
	*db.Datastore
}

func NewInfrastructureRepo(ds *db.Datastore) repo.InfrastructureRepo {
	return &infraImpl{Datastore: ds}
}

func (i *infraImpl) CreateInfrastructure(ctx context.Context, data *model.Infrastructure) error {
	err := i.DBWithContext(ctx).Omit(clause.Associations).Create(data).Error
	return repo.TranslateErr(err, code.CreateDataErr)
}

func (i *infraImpl) GetInfrastructure(ctx context.Context, id uuid.UUID, preload bool) (*model.Infrastructure, error) {
	query := i.DBWithContext(ctx)
	if preload {
		query = query.Preload("Farm").Preload("Field")
	}
	data := &model.Infrastructure{}
	if err := query.Where("id = ?", id).Take(data).Error; err != nil {
		return nil, repo.TranslateErr(err, code.QueryRecordErr)
	}
	return data, nil
}

func (i *infraImpl) UpdateInfrastructure(ctx context.Context, data *model.Infrastructure) error {
	res := i.DBWithContext(ctx).Model(data).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(data)
	if res.Error != nil {
		return repo.TranslateErr(res.Error, code.UpdateDataErr)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}

// DeleteInfrastructure relies on the activities foreign key to refuse
// deleting an asset that still has activities.
func (i *infraImpl) DeleteInfrastructure(ctx context.Context, id uuid.UUID) error {
	res := i.DBWithContext(ctx).Where("id = ?", id).Delete(&model.Infrastructure{})
	if res.Error != nil {
		if db.IsForeignKeyViolation(res.Error) {
			return code.DeleteRestrictedErr.WithErr(res.Error)
		}
		return repo.TranslateErr(res.Error, code.DeleteDataErr)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (i *infraImpl) ListInfrastructures(ctx context.Context, q repo.InfrastructureQuery) ([]*model.Infrastructure, int64, error) {
	query := i.DBWithContext(ctx).Model(&model.Infrastructure{})
	if q.FarmID != nil {
		query = query.Where("farm_id = ?", *q.FarmID)
	}
	if q.FieldID != nil {
		query = query.Where("field_id = ?", *q.FieldID)
	}
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}
	if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}
	if q.WithBoundary {
		query = query.Where("boundary IS NOT NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	list := make([]*model.Infrastructure, 0)
	if err := query.Order("name asc, id asc").Scopes(q.Paginate).Find(&list).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}
