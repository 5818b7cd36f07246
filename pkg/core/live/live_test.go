package live

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/core/notify"
	"github.com/scienceol/osfarm/pkg/core/notify/events"
)

func serve(t *testing.T) (*Hub, *events.Local, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	center := events.NewLocal()
	hub, err := New(context.Background(), center, 4)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/ws/farms/:farm_id", func(ctx *gin.Context) {
		if id, ok := uuid.Parse(ctx.Param("farm_id")); ok {
			_ = hub.Connect(ctx, id)
		}
	})
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		_ = hub.Close()
		srv.Close()
	})
	return hub, center, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, hub *Hub, base string, farmID uuid.UUID) *websocket.Conn {
	t.Helper()
	before := hub.Sessions(farmID)
	conn, _, err := websocket.DefaultDialer.Dial(base+"/ws/farms/"+farmID.String(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool { return hub.Sessions(farmID) == before+1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func TestFanOutByFarm(t *testing.T) {
	hub, center, base := serve(t)
	farmA, farmB := uuid.NewV7(), uuid.NewV7()

	a1 := dial(t, hub, base, farmA)
	a2 := dial(t, hub, base, farmA)
	b := dial(t, hub, base, farmB)

	entityID := uuid.NewV7()
	notify.Publish(context.Background(), center, &notify.SendMsg{
		FarmID:   farmA,
		Entity:   notify.EntityContract,
		EntityID: entityID,
		Op:       notify.OpCreate,
	})

	for _, conn := range []*websocket.Conn{a1, a2} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		msg := &notify.SendMsg{}
		require.NoError(t, json.Unmarshal(data, msg))
		assert.Equal(t, notify.FarmChange, msg.Channel)
		assert.Equal(t, entityID, msg.EntityID)
		assert.Equal(t, notify.OpCreate, msg.Op)
	}

	require.NoError(t, b.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := b.ReadMessage()
	assert.Error(t, err)
}

func TestPingPong(t *testing.T) {
	hub, _, base := serve(t)
	conn := dial(t, hub, base, uuid.NewV7())

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"ping"}`)))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"pong"}`, string(data))
}

func TestDisconnectLeavesRoom(t *testing.T) {
	hub, _, base := serve(t)
	farmID := uuid.NewV7()
	conn := dial(t, hub, base, farmID)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Sessions(farmID) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestOnFarmChangeRejectsGarbage(t *testing.T) {
	hub, err := New(context.Background(), nil, 1)
	require.NoError(t, err)
	defer hub.Close()

	assert.Error(t, hub.OnFarmChange(context.Background(), "not json"))
	assert.NoError(t, hub.OnFarmChange(context.Background(), `{"farm_id":"`+uuid.NewV7().String()+`"}`))
}
