package infrastructure

import (
	"context"
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/common/validate"
	core "github.com/scienceol/osfarm/pkg/core/infrastructure"
	"github.com/scienceol/osfarm/pkg/core/notify"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
	"github.com/scienceol/osfarm/pkg/middleware/trace"
	"github.com/scienceol/osfarm/pkg/repo"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

// geoJSONBatch is the page size used when walking a farm's footprints.
const geoJSONBatch = 200

type infraImpl struct {
	store      repo.InfrastructureRepo
	activities repo.ActivityRepo
	farms      repo.FarmRepo
	center     notify.MsgCenter
	writes     metric.Int64Counter
}

func New(store repo.InfrastructureRepo, activities repo.ActivityRepo, farms repo.FarmRepo, center notify.MsgCenter) core.Service {
	return &infraImpl{
		store:      store,
		activities: activities,
		farms:      farms,
		center:     center,
		writes:     trace.Counter("osfarm.infrastructure.writes", "committed infrastructure writes by operation"),
	}
}

func (i *infraImpl) Create(ctx context.Context, req *core.CreateReq) (data *model.Infrastructure, err error) {
	ctx, span := trace.Start(ctx, "infrastructure.Create", attribute.String("farm_id", req.FarmID.String()))
	defer func() { trace.End(span, err) }()

	data, err = core.ValidateCreate(req)
	if err != nil {
		return nil, err
	}

	err = i.store.ExecTx(ctx, func(txCtx context.Context) error {
		if err := i.checkRefs(txCtx, data); err != nil {
			return err
		}
		return i.store.CreateInfrastructure(txCtx, data)
	})
	if err != nil {
		logger.Warnf(ctx, "create infrastructure for farm %s err: %+v", req.FarmID, err)
		return nil, err
	}

	i.committed(ctx, notify.EntityInfrastructure, data.FarmID, data.ID, data, notify.OpCreate)
	return data, nil
}

// checkRefs locks the farm and makes sure the field, when set, is one of
// its fields.
func (i *infraImpl) checkRefs(ctx context.Context, data *model.Infrastructure) error {
	if err := i.farms.LockFarm(ctx, data.FarmID); err != nil {
		if errors.Is(err, code.RecordNotFound) {
			return code.FarmNotFound.WithMsgf("farm %s not found", data.FarmID)
		}
		return err
	}
	if data.FieldID == nil {
		return nil
	}
	field, err := i.farms.GetField(ctx, *data.FieldID)
	if err != nil {
		if errors.Is(err, code.RecordNotFound) {
			return code.FieldNotFound.WithMsgf("field %s not found", *data.FieldID)
		}
		return err
	}
	if field.FarmID != data.FarmID {
		return code.FieldFarmErr.WithMsgf("field %s belongs to farm %s", field.ID, field.FarmID)
	}
	return nil
}

func (i *infraImpl) Get(ctx context.Context, id uuid.UUID) (*model.Infrastructure, error) {
	return i.store.GetInfrastructure(ctx, id, true)
}

func (i *infraImpl) Update(ctx context.Context, id uuid.UUID, req *core.UpdateReq) (data *model.Infrastructure, err error) {
	ctx, span := trace.Start(ctx, "infrastructure.Update", attribute.String("infrastructure_id", id.String()))
	defer func() { trace.End(span, err) }()

	err = i.store.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := i.store.GetInfrastructure(txCtx, id, false)
		if err != nil {
			return err
		}
		if current.Status.Closed() {
			return code.RecordClosedErr.WithMsgf("infrastructure is %s", current.Status)
		}
		next, err := core.ApplyUpdate(current, req)
		if err != nil {
			return err
		}
		if err := i.checkRefs(txCtx, next); err != nil {
			return err
		}
		if err := i.store.UpdateInfrastructure(txCtx, next); err != nil {
			return err
		}
		data = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	i.committed(ctx, notify.EntityInfrastructure, data.FarmID, data.ID, data, notify.OpUpdate)
	return data, nil
}

func (i *infraImpl) ChangeStatus(ctx context.Context, id uuid.UUID, req *core.ChangeStatusReq) (data *model.Infrastructure, err error) {
	ctx, span := trace.Start(ctx, "infrastructure.ChangeStatus",
		attribute.String("infrastructure_id", id.String()), attribute.String("status", string(req.Status)))
	defer func() { trace.End(span, err) }()

	v := validate.New()
	validate.OneOf("status", req.Status, model.InfrastructureStatuses, v)
	if err := v.Err(); err != nil {
		return nil, err
	}

	changed := false
	err = i.store.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := i.store.GetInfrastructure(txCtx, id, false)
		if err != nil {
			return err
		}
		data = current
		if current.Status == req.Status {
			return nil
		}
		if !current.Status.CanTransition(req.Status) {
			return code.StatusTransitionErr.WithMsgf("infrastructure cannot move from %s to %s", current.Status, req.Status)
		}
		current.Status = req.Status
		changed = true
		return i.store.UpdateInfrastructure(txCtx, current)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		i.committed(ctx, notify.EntityInfrastructure, data.FarmID, data.ID, data, notify.OpStatus)
	}
	return data, nil
}

func (i *infraImpl) Delete(ctx context.Context, id uuid.UUID, req *core.DeleteReq) (err error) {
	ctx, span := trace.Start(ctx, "infrastructure.Delete", attribute.String("infrastructure_id", id.String()))
	defer func() { trace.End(span, err) }()

	detach := req != nil && req.Detach
	var deleted *model.Infrastructure
	err = i.store.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := i.store.GetInfrastructure(txCtx, id, false)
		if err != nil {
			return err
		}
		count, err := i.activities.CountByInfrastructure(txCtx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			if !detach {
				return code.DeleteRestrictedErr.WithMsgf("infrastructure has %d activities, pass detach=true to keep them", count)
			}
			if _, err := i.activities.DetachInfrastructure(txCtx, id); err != nil {
				return err
			}
		}
		deleted = current
		return i.store.DeleteInfrastructure(txCtx, id)
	})
	if err != nil {
		return err
	}

	i.committed(ctx, notify.EntityInfrastructure, deleted.FarmID, deleted.ID, deleted, notify.OpDelete)
	return nil
}

func (i *infraImpl) Query(ctx context.Context, req *core.QueryReq) (*common.PageResp[[]*model.Infrastructure], error) {
	q, err := core.ParseQuery(req)
	if err != nil {
		return nil, err
	}

	list, total, err := i.store.ListInfrastructures(ctx, *q)
	if err != nil {
		return nil, err
	}
	return &common.PageResp[[]*model.Infrastructure]{
		Data:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (i *infraImpl) GeoJSON(ctx context.Context, req *core.GeoJSONReq) (*geojson.FeatureCollection, error) {
	v := validate.New()
	farmID, ok := uuid.Parse(req.FarmID)
	switch {
	case req.FarmID == "":
		v.Add("farm_id", validate.Required)
	case !ok:
		v.Add("farm_id", validate.InvalidValue)
	}
	q := repo.InfrastructureQuery{
		FarmID:       &farmID,
		WithBoundary: true,
		Page:         repo.Page{Limit: geoJSONBatch},
	}
	if req.Status != "" {
		s := model.InfrastructureStatus(req.Status)
		validate.OneOf("status", s, model.InfrastructureStatuses, v)
		q.Status = &s
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for {
		list, total, err := i.store.ListInfrastructures(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, item := range list {
			fc.Append(footprint(item))
		}
		q.Offset += len(list)
		if len(list) == 0 || int64(q.Offset) >= total {
			break
		}
	}
	return fc, nil
}

func footprint(item *model.Infrastructure) *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon(*item.Boundary))
	f.ID = item.ID.String()
	f.Properties["id"] = item.ID.String()
	f.Properties["name"] = item.Name
	f.Properties["type"] = item.Type
	f.Properties["status"] = string(item.Status)
	if item.SubType != nil {
		f.Properties["sub_type"] = *item.SubType
	}
	if item.FieldID != nil {
		f.Properties["field_id"] = item.FieldID.String()
	}
	if item.AreaSqm != nil {
		f.Properties["area_sqm"] = item.AreaSqm.String()
	}
	return f
}

func (i *infraImpl) Catalog(_ context.Context) []core.CatalogEntry {
	return core.Catalog()
}

func (i *infraImpl) CreateActivity(ctx context.Context, infraID uuid.UUID, req *core.CreateActivityReq) (data *model.Activity, err error) {
	ctx, span := trace.Start(ctx, "infrastructure.CreateActivity", attribute.String("infrastructure_id", infraID.String()))
	defer func() { trace.End(span, err) }()

	err = i.store.ExecTx(ctx, func(txCtx context.Context) error {
		asset, err := i.store.GetInfrastructure(txCtx, infraID, false)
		if err != nil {
			return err
		}
		data, err = core.ValidateActivity(asset, req)
		if err != nil {
			return err
		}
		return i.activities.CreateActivity(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	i.committed(ctx, notify.EntityActivity, data.FarmID, data.ID, data, notify.OpCreate)
	return data, nil
}

func (i *infraImpl) ListActivities(ctx context.Context, infraID uuid.UUID, req *core.ActivityQueryReq) (*common.PageResp[[]*model.Activity], error) {
	if _, err := i.store.GetInfrastructure(ctx, infraID, false); err != nil {
		return nil, err
	}
	req.Normalize()
	list, total, err := i.activities.ListByInfrastructure(ctx, infraID, repo.Page{Offset: req.Offset(), Limit: req.PageSize})
	if err != nil {
		return nil, err
	}
	return &common.PageResp[[]*model.Activity]{
		Data:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (i *infraImpl) committed(ctx context.Context, entity notify.Entity, farmID, id uuid.UUID, data any, op notify.Op) {
	i.writes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", string(entity)), attribute.String("op", string(op))))
	notify.Publish(ctx, i.center, &notify.SendMsg{
		FarmID:   farmID,
		Entity:   entity,
		EntityID: id,
		Op:       op,
		Data:     data,
	})
}
