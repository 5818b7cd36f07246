package contract

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/middleware/db"
	"github.com/scienceol/osfarm/pkg/repo"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type contractImpl struct {
	*db.Datastore
}

func NewContractRepo(ds *db.Datastore) repo.ContractRepo {
	return &contractImpl{Datastore: ds}
}

func (c *contractImpl) CreateContract(ctx context.Context, data *model.Contract) error {
	err := c.DBWithContext(ctx).Omit(clause.Associations).Create(data).Error
	return repo.TranslateErr(err, code.CreateDataErr)
}

func (c *contractImpl) GetContract(ctx context.Context, id uuid.UUID, preload bool) (*model.Contract, error) {
	query := c.DBWithContext(ctx)
	if preload {
		query = query.Preload("Farm").Preload("Crop")
	}
	data := &model.Contract{}
	if err := query.Where("id = ?", id).Take(data).Error; err != nil {
		return nil, repo.TranslateErr(err, code.QueryRecordErr)
	}
	return data, nil
}

// UpdateContract writes every column except id and created_at, so nil
// pointers clear their column.
func (c *contractImpl) UpdateContract(ctx context.Context, data *model.Contract) error {
	res := c.DBWithContext(ctx).Model(data).
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

func (c *contractImpl) DeleteContract(ctx context.Context, id uuid.UUID) error {
	res := c.DBWithContext(ctx).Where("id = ?", id).Delete(&model.Contract{})
	if res.Error != nil {
		return repo.TranslateErr(res.Error, code.DeleteDataErr)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (c *contractImpl) ListContracts(ctx context.Context, q repo.ContractQuery) ([]*model.Contract, int64, error) {
	query := c.DBWithContext(ctx).Model(&model.Contract{})
	if q.FarmID != nil {
		query = query.Where("farm_id = ?", *q.FarmID)
	}
	if q.CropID != nil {
		query = query.Where("crop_id = ?", *q.CropID)
	}
	if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}
	if q.ContractType != nil {
		query = query.Where("contract_type = ?", *q.ContractType)
	}
	if q.PartnerLike != "" {
		query = query.Where("LOWER(partner_name) LIKE LOWER(?)", "%"+q.PartnerLike+"%")
	}
	if q.ActiveOn != nil {
		query = query.Where("start_date <= ? AND (end_date IS NULL OR end_date >= ?)", *q.ActiveOn, *q.ActiveOn)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	list := make([]*model.Contract, 0)
	if err := query.Order("start_date desc, id desc").Scopes(q.Paginate).Find(&list).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}
