package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/core/notify"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

// Local delivers messages to handlers in the calling goroutine. It serves
// single process deployments without redis.
type Local struct {
	mu      sync.RWMutex
	actions map[notify.Action]notify.HandleFunc
}

func NewLocal() *Local {
	return &Local{actions: make(map[notify.Action]notify.HandleFunc)}
}

func (l *Local) Registry(_ context.Context, msgName notify.Action, handleFunc notify.HandleFunc) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.actions[msgName]; ok {
		return code.NotifyActionAlreadyRegistryErr.WithMsg(string(msgName))
	}
	l.actions[msgName] = handleFunc
	return nil
}

func (l *Local) Broadcast(ctx context.Context, msg *notify.SendMsg) error {
	stamp(msg)
	data, err := json.Marshal(msg)
	if err != nil {
		return code.NotifySendMsgErr.WithErr(err)
	}

	l.mu.RLock()
	handle, ok := l.actions[msg.Channel]
	l.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := handle(ctx, string(data)); err != nil {
		logger.Errorf(ctx, "handle local msg fail name: %s, err: %+v", msg.Channel, err)
	}
	return nil
}

func (l *Local) Close(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.actions)
	return nil
}

// Discard drops every message.
type Discard struct{}

func (Discard) Registry(context.Context, notify.Action, notify.HandleFunc) error { return nil }

func (Discard) Broadcast(context.Context, *notify.SendMsg) error { return nil }

func (Discard) Close(context.Context) error { return nil }
