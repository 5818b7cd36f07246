package farm

import (
	"github.com/gin-gonic/gin"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/core/farm"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

type Handle struct {
	svc farm.Service
}

func NewFarmHandle(svc farm.Service) *Handle {
	return &Handle{svc: svc}
}

// CreateFarm godoc
// @Summary  create a farm
// @Tags     farm
// @Accept   json
// @Produce  json
// @Param    req body farm.CreateFarmReq true "farm"
// @Success  201 {object} common.Resp{data=model.Farm}
// @Router   /v1/farms [post]
func (h *Handle) CreateFarm(ctx *gin.Context) {
	req := &farm.CreateFarmReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse CreateFarm param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.CreateFarm(ctx, req)
	common.ReplyCreated(ctx, err, resp)
}

// ListFarms godoc
// @Summary  list farms
// @Tags     farm
// @Produce  json
// @Param    name query string false "name substring"
// @Param    page query int false "page"
// @Param    page_size query int false "page size"
// @Success  200 {object} common.Resp{data=common.PageResp[[]model.Farm]}
// @Router   /v1/farms [get]
func (h *Handle) ListFarms(ctx *gin.Context) {
	req := &farm.ListFarmReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.ListFarms(ctx, req)
	common.Reply(ctx, err, resp)
}

// GetFarm godoc
// @Summary  get a farm
// @Tags     farm
// @Produce  json
// @Param    farm_id path string true "farm id"
// @Success  200 {object} common.Resp{data=model.Farm}
// @Router   /v1/farms/{farm_id} [get]
func (h *Handle) GetFarm(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "farm_id")
	if !ok {
		return
	}
	resp, err := h.svc.GetFarm(ctx, id)
	common.Reply(ctx, err, resp)
}

// CreateField godoc
// @Summary  create a field on a farm
// @Tags     farm
// @Accept   json
// @Produce  json
// @Param    farm_id path string true "farm id"
// @Param    req body farm.CreateFieldReq true "field"
// @Success  201 {object} common.Resp{data=model.Field}
// @Router   /v1/farms/{farm_id}/fields [post]
func (h *Handle) CreateField(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "farm_id")
	if !ok {
		return
	}
	req := &farm.CreateFieldReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse CreateField param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.CreateField(ctx, id, req)
	common.ReplyCreated(ctx, err, resp)
}

// ListFields godoc
// @Summary  list the fields of a farm
// @Tags     farm
// @Produce  json
// @Param    farm_id path string true "farm id"
// @Success  200 {object} common.Resp{data=[]model.Field}
// @Router   /v1/farms/{farm_id}/fields [get]
func (h *Handle) ListFields(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "farm_id")
	if !ok {
		return
	}
	resp, err := h.svc.ListFields(ctx, id)
	common.Reply(ctx, err, resp)
}

// CreateCrop godoc
// @Summary  create a crop
// @Tags     farm
// @Accept   json
// @Produce  json
// @Param    req body farm.CreateCropReq true "crop"
// @Success  201 {object} common.Resp{data=model.Crop}
// @Router   /v1/crops [post]
func (h *Handle) CreateCrop(ctx *gin.Context) {
	req := &farm.CreateCropReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse CreateCrop param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.CreateCrop(ctx, req)
	common.ReplyCreated(ctx, err, resp)
}

// ListCrops godoc
// @Summary  list crops
// @Tags     farm
// @Produce  json
// @Success  200 {object} common.Resp{data=[]model.Crop}
// @Router   /v1/crops [get]
func (h *Handle) ListCrops(ctx *gin.Context) {
	resp, err := h.svc.ListCrops(ctx)
	common.Reply(ctx, err, resp)
}
