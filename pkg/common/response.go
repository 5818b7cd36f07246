package common

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/osfarm/pkg/common/code"
)

type Resp struct {
	Code      int               `json:"code"`
	Kind      string            `json:"kind,omitempty"`
	Msg       string            `json:"msg,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Data      any               `json:"data,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

func ReplyOk(ctx *gin.Context, data ...any) {
	resp := &Resp{
		Code:      code.Success.Code(),
		Timestamp: time.Now().Unix(),
	}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(code.KindOK.HTTPStatus(), resp)
}

// ReplyErr writes err with the status of its kind. Extra msgs replace the
// code's default message.
func ReplyErr(ctx *gin.Context, err error, msgs ...string) {
	var c *code.ErrCode
	if !errors.As(err, &c) {
		c = code.UnknownErr.WithErr(err)
	}
	resp := &Resp{
		Code:      c.Code(),
		Kind:      c.Kind().String(),
		Msg:       c.Msg(),
		Fields:    c.Fields(),
		Timestamp: time.Now().Unix(),
	}
	if len(msgs) > 0 && msgs[0] != "" {
		resp.Msg = msgs[0]
	}
	ctx.AbortWithStatusJSON(c.Kind().HTTPStatus(), resp)
}

func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	ReplyOk(ctx, data...)
}

// ReplyCreated is ReplyOk with 201.
func ReplyCreated(ctx *gin.Context, err error, data any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	ctx.JSON(201, &Resp{
		Code:      code.Success.Code(),
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}
