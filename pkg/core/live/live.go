// Package live pushes committed farm changes to websocket subscribers.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/olahol/melody"
	"github.com/panjf2000/ants/v2"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/core/notify"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

const (
	DefaultPoolSize = 200
	maxMessageSize  = 4 << 10
	pingPeriod      = 10 * time.Second

	keyCtx    = "ctx"
	keyFarmID = "farm_id"
)

// room is the set of sessions watching one farm.
type room struct {
	mu       sync.RWMutex
	sessions map[*melody.Session]struct{}
}

func (r *room) snapshot() []*melody.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*melody.Session, 0, len(r.sessions))
	for s := range r.sessions {
		out = append(out, s)
	}
	return out
}

type Hub struct {
	wsClient *melody.Melody
	rooms    *haxmap.Map[string, *room]
	pools    *ants.Pool
	mu       sync.Mutex
}

// New builds a hub and subscribes it to farm-change messages on center.
func New(ctx context.Context, center notify.MsgCenter, poolSize int) (*Hub, error) {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	pools, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	wsClient := melody.New()
	wsClient.Config.MaxMessageSize = maxMessageSize
	wsClient.Config.PingPeriod = pingPeriod

	h := &Hub{
		wsClient: wsClient,
		rooms:    haxmap.New[string, *room](),
		pools:    pools,
	}
	h.initWebSocket()

	if center != nil {
		if err := center.Registry(ctx, notify.FarmChange, h.OnFarmChange); err != nil {
			pools.Release()
			return nil, err
		}
	}
	return h, nil
}

// Connect upgrades the request into a session subscribed to farmID.
func (h *Hub) Connect(ctx *gin.Context, farmID uuid.UUID) error {
	return h.wsClient.HandleRequestWithKeys(ctx.Writer, ctx.Request, map[string]any{
		keyCtx:    ctx.Request.Context(),
		keyFarmID: farmID.String(),
	})
}

// Sessions counts the sessions watching farmID.
func (h *Hub) Sessions(farmID uuid.UUID) int {
	r, ok := h.rooms.Get(farmID.String())
	if !ok {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// OnFarmChange is the notify handler. Each session write runs on the pool
// so a slow client never blocks the publisher.
func (h *Hub) OnFarmChange(ctx context.Context, payload string) error {
	msg := &notify.SendMsg{}
	if err := json.Unmarshal([]byte(payload), msg); err != nil {
		return code.UnmarshalWSDataErr.WithErr(err)
	}
	r, ok := h.rooms.Get(msg.FarmID.String())
	if !ok {
		return nil
	}

	data := []byte(payload)
	for _, s := range r.snapshot() {
		if err := h.pools.Submit(func() {
			if err := s.Write(data); err != nil && !errors.Is(err, melody.ErrSessionClosed) {
				logger.Warnf(ctx, "live write farm %s err: %+v", msg.FarmID, err)
			}
		}); err != nil {
			logger.Errorf(ctx, "live submit farm %s err: %+v", msg.FarmID, err)
			return err
		}
	}
	return nil
}

func (h *Hub) Close() error {
	err := h.wsClient.Close()
	h.pools.Release()
	return err
}

func (h *Hub) join(s *melody.Session) {
	farmID := s.MustGet(keyFarmID).(string)
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms.Get(farmID)
	if !ok {
		r = &room{sessions: make(map[*melody.Session]struct{})}
		h.rooms.Set(farmID, r)
	}
	r.mu.Lock()
	r.sessions[s] = struct{}{}
	r.mu.Unlock()
}

func (h *Hub) leave(s *melody.Session) {
	v, ok := s.Get(keyFarmID)
	if !ok {
		return
	}
	farmID := v.(string)
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms.Get(farmID)
	if !ok {
		return
	}
	r.mu.Lock()
	delete(r.sessions, s)
	empty := len(r.sessions) == 0
	r.mu.Unlock()
	if empty {
		h.rooms.Del(farmID)
	}
}

func sessionCtx(s *melody.Session) context.Context {
	if v, ok := s.Get(keyCtx); ok {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return context.Background()
}

type pingMsg struct {
	Action string `json:"action"`
}

func (h *Hub) initWebSocket() {
	h.wsClient.HandleConnect(func(s *melody.Session) {
		h.join(s)
		logger.Infof(sessionCtx(s), "live connect farm: %v", s.Keys[keyFarmID])
	})

	h.wsClient.HandleDisconnect(func(s *melody.Session) {
		h.leave(s)
		logger.Infof(sessionCtx(s), "live disconnect farm: %v", s.Keys[keyFarmID])
	})

	h.wsClient.HandleError(func(s *melody.Session, err error) {
		if errors.Is(err, melody.ErrMessageBufferFull) {
			return
		}
		if closeErr, ok := err.(*websocket.CloseError); ok && closeErr.Code == websocket.CloseGoingAway {
			return
		}
		logger.Warnf(sessionCtx(s), "live ws error keys: %+v, err: %+v", s.Keys, err)
	})

	// Subscribers only listen. A ping action gets a pong so clients can
	// check the feed is alive.
	h.wsClient.HandleMessage(func(s *melody.Session, b []byte) {
		msg := &pingMsg{}
		if err := json.Unmarshal(b, msg); err != nil || msg.Action != "ping" {
			return
		}
		if err := s.Write([]byte(`{"action":"pong"}`)); err != nil {
			logger.Warnf(sessionCtx(s), "live pong err: %+v", err)
		}
	})
}
