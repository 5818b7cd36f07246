package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/core/notify"
)

func TestLocalBroadcast(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	var got []*notify.SendMsg
	require.NoError(t, l.Registry(ctx, notify.FarmChange, func(_ context.Context, payload string) error {
		msg := &notify.SendMsg{}
		if err := json.Unmarshal([]byte(payload), msg); err != nil {
			return err
		}
		got = append(got, msg)
		return nil
	}))

	farmID := uuid.NewV7()
	require.NoError(t, l.Broadcast(ctx, &notify.SendMsg{
		Channel: notify.FarmChange, FarmID: farmID, Entity: notify.EntityContract, Op: notify.OpCreate,
	}))

	require.Len(t, got, 1)
	assert.Equal(t, farmID, got[0].FarmID)
	assert.Equal(t, notify.OpCreate, got[0].Op)
	assert.False(t, got[0].UUID.IsNil())
	assert.NotZero(t, got[0].Timestamp)
}

func TestLocalRegistryTwice(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()
	noop := func(context.Context, string) error { return nil }

	require.NoError(t, l.Registry(ctx, notify.FarmChange, noop))
	err := l.Registry(ctx, notify.FarmChange, noop)
	assert.ErrorIs(t, err, code.NotifyActionAlreadyRegistryErr)

	require.NoError(t, l.Close(ctx))
	require.NoError(t, l.Registry(ctx, notify.FarmChange, noop))
}

func TestLocalHandlerErrorDoesNotFail(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()
	require.NoError(t, l.Registry(ctx, notify.FarmChange, func(context.Context, string) error {
		return errors.New("socket gone")
	}))
	assert.NoError(t, l.Broadcast(ctx, &notify.SendMsg{Channel: notify.FarmChange}))
	assert.NoError(t, l.Broadcast(ctx, &notify.SendMsg{Channel: "unregistered"}))
}
