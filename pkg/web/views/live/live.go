package live

import (
	"github.com/gin-gonic/gin"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/core/farm"
	"github.com/scienceol/osfarm/pkg/core/live"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

type Handle struct {
	hub   *live.Hub
	farms farm.Service
}

func NewLiveHandle(hub *live.Hub, farms farm.Service) *Handle {
	return &Handle{hub: hub, farms: farms}
}

// Farm godoc
// @Summary  websocket feed of changes on one farm
// @Tags     live
// @Param    farm_id path string true "farm id"
// @Success  101
// @Failure  404 {object} common.Resp
// @Router   /v1/ws/farms/{farm_id} [get]
func (h *Handle) Farm(ctx *gin.Context) {
	farmID, ok := common.PathUUID(ctx, "farm_id")
	if !ok {
		return
	}
	if _, err := h.farms.GetFarm(ctx, farmID); err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	if err := h.hub.Connect(ctx, farmID); err != nil {
		logger.Errorf(ctx, "live HandleRequestWithKeys farm %s err: %+v", farmID, err)
	}
}
