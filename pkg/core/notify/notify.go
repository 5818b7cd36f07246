package notify

import (
	"context"

	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

type Action string

const (
	FarmChange Action = "farm-change"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpStatus Op = "status"
	OpDelete Op = "delete"
)

type Entity string

const (
	EntityFarm           Entity = "farm"
	EntityField          Entity = "field"
	EntityContract       Entity = "contract"
	EntityInfrastructure Entity = "infrastructure"
	EntityActivity       Entity = "activity"
)

type SendMsg struct {
	Channel   Action    `json:"action"`
	FarmID    uuid.UUID `json:"farm_id"`
	Entity    Entity    `json:"entity"`
	EntityID  uuid.UUID `json:"entity_id"`
	Op        Op        `json:"op"`
	Data      any       `json:"data,omitempty"`
	UUID      uuid.UUID `json:"uuid"`
	Timestamp int64     `json:"timestamp"`
}

type HandleFunc func(ctx context.Context, msg string) error

type MsgCenter interface {
	Registry(ctx context.Context, msgName Action, handleFunc HandleFunc) error
	Broadcast(ctx context.Context, msg *SendMsg) error
	Close(ctx context.Context) error
}

// Publish broadcasts msg and only logs a failure. Writes are already
// committed when it runs.
func Publish(ctx context.Context, center MsgCenter, msg *SendMsg) {
	if center == nil {
		return
	}
	if msg.Channel == "" {
		msg.Channel = FarmChange
	}
	if err := center.Broadcast(ctx, msg); err != nil {
		logger.Warnf(ctx, "publish %s %s %s err: %+v", msg.Entity, msg.EntityID, msg.Op, err)
	}
}
