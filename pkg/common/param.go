package common

import (
	"github.com/gin-gonic/gin"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
)

// PathUUID reads a uuid path parameter. On failure it has already replied
// with ParamErr and the handler should return.
func PathUUID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := uuid.Parse(ctx.Param(name))
	if !ok {
		ReplyErr(ctx, code.ParamErr.WithMsgf("%s is not a valid id", name))
		return uuid.Nil, false
	}
	return id, true
}
