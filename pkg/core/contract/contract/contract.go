package contract

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/common/validate"
	core "github.com/scienceol/osfarm/pkg/core/contract"
	"github.com/scienceol/osfarm/pkg/core/notify"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
	"github.com/scienceol/osfarm/pkg/middleware/trace"
	"github.com/scienceol/osfarm/pkg/repo"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type contractImpl struct {
	store  repo.ContractRepo
	farms  repo.FarmRepo
	center notify.MsgCenter
	writes metric.Int64Counter
}

func New(store repo.ContractRepo, farms repo.FarmRepo, center notify.MsgCenter) core.Service {
	return &contractImpl{
		store:  store,
		farms:  farms,
		center: center,
		writes: trace.Counter("osfarm.contract.writes", "committed contract writes by operation"),
	}
}

func (c *contractImpl) Create(ctx context.Context, req *core.CreateReq) (data *model.Contract, err error) {
	ctx, span := trace.Start(ctx, "contract.Create", attribute.String("farm_id", req.FarmID.String()))
	defer func() { trace.End(span, err) }()

	data, err = core.ValidateCreate(req)
	if err != nil {
		return nil, err
	}

	err = c.store.ExecTx(ctx, func(txCtx context.Context) error {
		if err := c.checkRefs(txCtx, data); err != nil {
			return err
		}
		return c.store.CreateContract(txCtx, data)
	})
	if err != nil {
		logger.Warnf(ctx, "create contract for farm %s err: %+v", req.FarmID, err)
		return nil, err
	}

	c.committed(ctx, data, notify.OpCreate)
	return data, nil
}

// checkRefs resolves the farm, locking it where the engine allows, and the
// crop. Foreign keys back both checks.
func (c *contractImpl) checkRefs(ctx context.Context, data *model.Contract) error {
	if err := c.farms.LockFarm(ctx, data.FarmID); err != nil {
		if errors.Is(err, code.RecordNotFound) {
			return code.FarmNotFound.WithMsgf("farm %s not found", data.FarmID)
		}
		return err
	}
	if data.CropID != nil {
		if _, err := c.farms.GetCrop(ctx, *data.CropID); err != nil {
			if errors.Is(err, code.RecordNotFound) {
				return code.CropNotFound.WithMsgf("crop %s not found", *data.CropID)
			}
			return err
		}
	}
	return nil
}

func (c *contractImpl) Get(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	return c.store.GetContract(ctx, id, true)
}

func (c *contractImpl) Update(ctx context.Context, id uuid.UUID, req *core.UpdateReq) (data *model.Contract, err error) {
	ctx, span := trace.Start(ctx, "contract.Update", attribute.String("contract_id", id.String()))
	defer func() { trace.End(span, err) }()

	err = c.store.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := c.store.GetContract(txCtx, id, false)
		if err != nil {
			return err
		}
		if current.Status.Closed() {
			return code.RecordClosedErr.WithMsgf("contract is %s", current.Status)
		}
		next, err := core.ApplyUpdate(current, req)
		if err != nil {
			return err
		}
		if err := c.checkRefs(txCtx, next); err != nil {
			return err
		}
		if err := c.store.UpdateContract(txCtx, next); err != nil {
			return err
		}
		data = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.committed(ctx, data, notify.OpUpdate)
	return data, nil
}

func (c *contractImpl) ChangeStatus(ctx context.Context, id uuid.UUID, req *core.ChangeStatusReq) (data *model.Contract, err error) {
	ctx, span := trace.Start(ctx, "contract.ChangeStatus",
		attribute.String("contract_id", id.String()), attribute.String("status", string(req.Status)))
	defer func() { trace.End(span, err) }()

	v := validate.New()
	validate.OneOf("status", req.Status, model.ContractStatuses, v)
	if err := v.Err(); err != nil {
		return nil, err
	}

	changed := false
	err = c.store.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := c.store.GetContract(txCtx, id, false)
		if err != nil {
			return err
		}
		data = current
		if current.Status == req.Status {
			return nil
		}
		if !current.Status.CanTransition(req.Status) {
			return code.StatusTransitionErr.WithMsgf("contract cannot move from %s to %s", current.Status, req.Status)
		}
		current.Status = req.Status
		changed = true
		return c.store.UpdateContract(txCtx, current)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		c.committed(ctx, data, notify.OpStatus)
	}
	return data, nil
}

func (c *contractImpl) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := trace.Start(ctx, "contract.Delete", attribute.String("contract_id", id.String()))
	defer func() { trace.End(span, err) }()

	var deleted *model.Contract
	err = c.store.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := c.store.GetContract(txCtx, id, false)
		if err != nil {
			return err
		}
		if current.Status != model.ContractDraft {
			return code.DeleteRestrictedErr.WithMsgf("contract is %s, cancel it instead", current.Status)
		}
		deleted = current
		return c.store.DeleteContract(txCtx, id)
	})
	if err != nil {
		return err
	}

	c.committed(ctx, deleted, notify.OpDelete)
	return nil
}

func (c *contractImpl) Query(ctx context.Context, req *core.QueryReq) (*common.PageResp[[]*model.Contract], error) {
	q, err := core.ParseQuery(req)
	if err != nil {
		return nil, err
	}

	list, total, err := c.store.ListContracts(ctx, *q)
	if err != nil {
		return nil, err
	}
	return &common.PageResp[[]*model.Contract]{
		Data:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (c *contractImpl) committed(ctx context.Context, data *model.Contract, op notify.Op) {
	c.writes.Add(ctx, 1, metric.WithAttributes(attribute.String("op", string(op))))
	notify.Publish(ctx, c.center, &notify.SendMsg{
		FarmID:   data.FarmID,
		Entity:   notify.EntityContract,
		EntityID: data.ID,
		Op:       op,
		Data:     data,
	})
}
