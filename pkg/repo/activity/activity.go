package activity

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/middleware/db"
	"github.com/scienceol/osfarm/pkg/repo"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type activityImpl struct {
	*db.Datastore
}

func NewActivityRepo(ds *db.Datastore) repo.ActivityRepo {
	return &activityImpl{Datastore: ds}
}

func (a *activityImpl) CreateActivity(ctx context.Context, data *model.Activity) error {
	err := a.DBWithContext(ctx).Omit(clause.Associations).Create(data).Error
	return repo.TranslateErr(err, code.CreateDataErr)
}

func (a *activityImpl) ListByInfrastructure(ctx context.Context, infraID uuid.UUID, page repo.Page) ([]*model.Activity, int64, error) {
	query := a.DBWithContext(ctx).Model(&model.Activity{}).Where("infrastructure_id = ?", infraID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	list := make([]*model.Activity, 0)
	if err := query.Order("performed_on desc, id desc").Scopes(page.Paginate).Find(&list).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}

func (a *activityImpl) CountByInfrastructure(ctx context.Context, infraID uuid.UUID) (int64, error) {
	var n int64
	err := a.DBWithContext(ctx).Model(&model.Activity{}).Where("infrastructure_id = ?", infraID).Count(&n).Error
	if err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return n, nil
}

func (a *activityImpl) DetachInfrastructure(ctx context.Context, infraID uuid.UUID) (int64, error) {
	res := a.DBWithContext(ctx).Model(&model.Activity{}).
		Where("infrastructure_id = ?", infraID).
		Update("infrastructure_id", nil)
	if res.Error != nil {
		return 0, code.UpdateDataErr.WithErr(res.Error)
	}
	return res.RowsAffected, nil
}
