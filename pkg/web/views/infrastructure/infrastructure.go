package infrastructure

import (
	"github.com/gin-gonic/gin"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/core/infrastructure"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

type Handle struct {
	svc infrastructure.Service
}

func NewInfrastructureHandle(svc infrastructure.Service) *Handle {
	return &Handle{svc: svc}
}

// Create godoc
// @Summary  create an infrastructure asset
// @Description boundary takes a GeoJSON Polygon, boundary_wkt takes WKT or EWKT with SRID 4326. Send at most one.
// @Tags     infrastructure
// @Accept   json
// @Produce  json
// @Param    req body infrastructure.CreateReq true "asset"
// @Success  201 {object} common.Resp{data=model.Infrastructure}
// @Failure  400 {object} common.Resp
// @Failure  422 {object} common.Resp
// @Router   /v1/infrastructures [post]
func (h *Handle) Create(ctx *gin.Context) {
	req := &infrastructure.CreateReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse CreateInfrastructure param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.Create(ctx, req)
	common.ReplyCreated(ctx, err, resp)
}

// Query godoc
// @Summary  list infrastructure
// @Tags     infrastructure
// @Produce  json
// @Param    farm_id query string false "farm id"
// @Param    field_id query string false "field id"
// @Param    type query string false "type"
// @Param    status query string false "operational, under_construction, maintenance or retired"
// @Param    page query int false "page"
// @Param    page_size query int false "page size"
// @Success  200 {object} common.Resp{data=common.PageResp[[]model.Infrastructure]}
// @Router   /v1/infrastructures [get]
func (h *Handle) Query(ctx *gin.Context) {
	req := &infrastructure.QueryReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.Query(ctx, req)
	common.Reply(ctx, err, resp)
}

// Catalog godoc
// @Summary  suggested types and sub types
// @Tags     infrastructure
// @Produce  json
// @Success  200 {object} common.Resp{data=[]infrastructure.CatalogEntry}
// @Router   /v1/infrastructures/catalog [get]
func (h *Handle) Catalog(ctx *gin.Context) {
	common.ReplyOk(ctx, h.svc.Catalog(ctx))
}

// GeoJSON godoc
// @Summary  footprints of a farm as a FeatureCollection
// @Tags     infrastructure
// @Produce  json
// @Param    farm_id query string true "farm id"
// @Param    status query string false "status"
// @Success  200 {object} common.Resp
// @Router   /v1/infrastructures/geojson [get]
func (h *Handle) GeoJSON(ctx *gin.Context) {
	req := &infrastructure.GeoJSONReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.GeoJSON(ctx, req)
	common.Reply(ctx, err, resp)
}

// Get godoc
// @Summary  get an asset with its farm and field
// @Tags     infrastructure
// @Produce  json
// @Param    id path string true "infrastructure id"
// @Success  200 {object} common.Resp{data=model.Infrastructure}
// @Failure  404 {object} common.Resp
// @Router   /v1/infrastructures/{id} [get]
func (h *Handle) Get(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(ctx, id)
	common.Reply(ctx, err, resp)
}

// Update godoc
// @Summary  update an asset
// @Tags     infrastructure
// @Accept   json
// @Produce  json
// @Param    id path string true "infrastructure id"
// @Param    req body infrastructure.UpdateReq true "changed fields"
// @Success  200 {object} common.Resp{data=model.Infrastructure}
// @Router   /v1/infrastructures/{id} [put]
func (h *Handle) Update(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "id")
	if !ok {
		return
	}
	req := &infrastructure.UpdateReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse UpdateInfrastructure param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.Update(ctx, id, req)
	common.Reply(ctx, err, resp)
}

// ChangeStatus godoc
// @Summary  change the status of an asset
// @Tags     infrastructure
// @Accept   json
// @Produce  json
// @Param    id path string true "infrastructure id"
// @Param    req body infrastructure.ChangeStatusReq true "status"
// @Success  200 {object} common.Resp{data=model.Infrastructure}
// @Failure  409 {object} common.Resp
// @Router   /v1/infrastructures/{id}/status [patch]
func (h *Handle) ChangeStatus(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "id")
	if !ok {
		return
	}
	req := &infrastructure.ChangeStatusReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.ChangeStatus(ctx, id, req)
	common.Reply(ctx, err, resp)
}

// Delete godoc
// @Summary  delete an asset
// @Description Refused while activities reference the asset unless detach=true.
// @Tags     infrastructure
// @Produce  json
// @Param    id path string true "infrastructure id"
// @Param    detach query bool false "null activities.infrastructure_id first"
// @Success  200 {object} common.Resp
// @Failure  409 {object} common.Resp
// @Router   /v1/infrastructures/{id} [delete]
func (h *Handle) Delete(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "id")
	if !ok {
		return
	}
	req := &infrastructure.DeleteReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	common.Reply(ctx, h.svc.Delete(ctx, id, req))
}

// CreateActivity godoc
// @Summary  log an activity against an asset
// @Tags     infrastructure
// @Accept   json
// @Produce  json
// @Param    id path string true "infrastructure id"
// @Param    req body infrastructure.CreateActivityReq true "activity"
// @Success  201 {object} common.Resp{data=model.Activity}
// @Router   /v1/infrastructures/{id}/activities [post]
func (h *Handle) CreateActivity(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "id")
	if !ok {
		return
	}
	req := &infrastructure.CreateActivityReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse CreateActivity param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.CreateActivity(ctx, id, req)
	common.ReplyCreated(ctx, err, resp)
}

// ListActivities godoc
// @Summary  list the activities of an asset
// @Tags     infrastructure
// @Produce  json
// @Param    id path string true "infrastructure id"
// @Param    page query int false "page"
// @Param    page_size query int false "page size"
// @Success  200 {object} common.Resp{data=common.PageResp[[]model.Activity]}
// @Router   /v1/infrastructures/{id}/activities [get]
func (h *Handle) ListActivities(ctx *gin.Context) {
	id, ok := common.PathUUID(ctx, "id")
	if !ok {
		return
	}
	req := &infrastructure.ActivityQueryReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.ListActivities(ctx, id, req)
	common.Reply(ctx, err, resp)
}
