package contract

import (
	"github.com/gin-gonic/gin"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/core/contract"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

type Handle struct {
	svc contract.Service
}

func NewContractHandle(svc contract.Service) *Handle {
	return &Handle{svc: svc}
}

// Create godoc
// @Summary  create a contract
// @Description total_value is computed when omitted and must equal quantity * price_per_unit when given.
// @Tags     contract
// @Accept   json
// @Produce  json
// @Param    req body contract.CreateReq true "contract"
// @Success  201 {object} common.Resp{data=model.Contract}
// @Failure  400 {object} common.Resp
// @Failure  422 {object} common.Resp
// @Router   /v1/contracts [post]
func (h *Handle) Create(ctx *gin.Context) {
	req := &contract.CreateReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse CreateContract param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.Create(ctx, req)
	common.ReplyCreated(ctx, err, resp)
}

// Query godoc
// @Summary  list contracts
// @Tags     contract
// @Produce  json
// @Param    farm_id query string false "farm id"
// @Param    crop_id query string false "crop id"
// @Param    status query string false "draft, active, completed or cancelled"
// @Param    contract_type query string false "sales or purchase"
// @Param    partner query string false "partner name substring"
// @Param    active_on query string false "YYYY-MM-DD"
// @Param    page query int false "page"
// @Param    page_size query int false "page size"
// @Success  200 {object} common.Resp{data=common.PageResp[[]model.Contract]}
// @Router   /v1/contracts [get]
func (h *Handle) Query(ctx *gin.Context) {
	req := &contract.QueryReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.Query(ctx, req)
	common.Reply(ctx, err, resp)
}

// Get godoc
// @Summary  get a contract with its farm and crop
// @Tags     contract
// @Produce  json
// @Param    id path string true "contract id"
// @Success  200 {object} common.Resp{data=model.Contract}
// @Failure  404 {object} common.Resp
// @Router   /v1/contracts/{id} [get]
func (h *Handle) Get(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(ctx, id)
	common.Reply(ctx, err, resp)
}

// Update godoc
// @Summary  update a contract
// @Tags     contract
// @Accept   json
// @Produce  json
// @Param    id path string true "contract id"
// @Param    req body contract.UpdateReq true "changed fields"
// @Success  200 {object} common.Resp{data=model.Contract}
// @Failure  409 {object} common.Resp
// @Router   /v1/contracts/{id} [put]
func (h *Handle) Update(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "id")
	if !ok {
		return
	}
	req := &contract.UpdateReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse UpdateContract param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.Update(ctx, id, req)
	common.Reply(ctx, err, resp)
}

// ChangeStatus godoc
// @Summary  move a contract through its lifecycle
// @Tags     contract
// @Accept   json
// @Produce  json
// @Param    id path string true "contract id"
// @Param    req body contract.ChangeStatusReq true "status"
// @Success  200 {object} common.Resp{data=model.Contract}
// @Failure  409 {object} common.Resp
// @Router   /v1/contracts/{id}/status [patch]
func (h *Handle) ChangeStatus(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "id")
	if !ok {
		return
	}
	req := &contract.ChangeStatusReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.ChangeStatus(ctx, id, req)
	common.Reply(ctx, err, resp)
}

// Delete godoc
// @Summary  delete a draft contract
// @Tags     contract
// @Produce  json
// @Param    id path string true "contract id"
// @Success  200 {object} common.Resp
// @Failure  409 {object} common.Resp
// @Router   /v1/contracts/{id} [delete]
func (h *Handle) Delete(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "id")
	if !ok {
		return
	}
	common.Reply(ctx, h.svc.Delete(ctx, id))
}
