package farm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	core "github.com/scienceol/osfarm/pkg/core/farm"
	"github.com/scienceol/osfarm/pkg/core/notify"
	"github.com/scienceol/osfarm/pkg/core/notify/events"
	farmRepo "github.com/scienceol/osfarm/pkg/repo/farm"
	"github.com/scienceol/osfarm/pkg/repo/repotest"
)

type fixture struct {
	svc  core.Service
	msgs []*notify.SendMsg
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ds := repotest.Open(t)
	f := &fixture{}

	center := events.NewLocal()
	require.NoError(t, center.Registry(context.Background(), notify.FarmChange, func(_ context.Context, payload string) error {
		msg := &notify.SendMsg{}
		if err := json.Unmarshal([]byte(payload), msg); err != nil {
			return err
		}
		f.msgs = append(f.msgs, msg)
		return nil
	}))
	f.svc = New(farmRepo.NewFarmRepo(ds), center)
	return f
}

func TestCreateFarm(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	loc := "Nakuru"

	farm, err := f.svc.CreateFarm(ctx, &core.CreateFarmReq{
		Name:     "Green Acres",
		Location: &loc,
		Settings: json.RawMessage(`{"units":"metric"}`),
	})
	require.NoError(t, err)
	assert.False(t, farm.ID.IsNil())

	got, err := f.svc.GetFarm(ctx, farm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Acres", got.Name)
	assert.JSONEq(t, `{"units":"metric"}`, string(got.Settings))

	require.Len(t, f.msgs, 1)
	assert.Equal(t, notify.EntityFarm, f.msgs[0].Entity)
	assert.Equal(t, farm.ID, f.msgs[0].FarmID)
}

func TestCreateFarmRejectsBadInput(t *testing.T) {
	f := setup(t)

	_, err := f.svc.CreateFarm(context.Background(), &core.CreateFarmReq{
		Settings: json.RawMessage(`{not json`),
	})
	require.ErrorIs(t, err, code.ValidationErr)
	assert.Empty(t, f.msgs)
}

func TestListFarmsFiltersByName(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, name := range []string{"Green Acres", "Green Valley", "Dry Ridge"} {
		_, err := f.svc.CreateFarm(ctx, &core.CreateFarmReq{Name: name})
		require.NoError(t, err)
	}

	all, err := f.svc.ListFarms(ctx, &core.ListFarmReq{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
	assert.Equal(t, 1, all.Page)

	green, err := f.svc.ListFarms(ctx, &core.ListFarmReq{Name: "Green"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, green.Total)
}

func TestFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	farm, err := f.svc.CreateFarm(ctx, &core.CreateFarmReq{Name: "F1"})
	require.NoError(t, err)

	field, err := f.svc.CreateField(ctx, farm.ID, &core.CreateFieldReq{Name: "North field"})
	require.NoError(t, err)
	assert.Equal(t, farm.ID, field.FarmID)

	list, err := f.svc.ListFields(ctx, farm.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, field.ID, list[0].ID)

	require.Len(t, f.msgs, 2)
	assert.Equal(t, notify.EntityField, f.msgs[1].Entity)

	t.Run("unknown farm", func(t *testing.T) {
		_, err := f.svc.CreateField(ctx, uuid.NewV4(), &core.CreateFieldReq{Name: "South"})
		require.ErrorIs(t, err, code.FarmNotFound)

		_, err = f.svc.ListFields(ctx, uuid.NewV4())
		require.ErrorIs(t, err, code.RecordNotFound)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := f.svc.CreateField(ctx, farm.ID, &core.CreateFieldReq{})
		require.ErrorIs(t, err, code.ValidationErr)
	})
}

func TestCrops(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	variety := "H614"

	crop, err := f.svc.CreateCrop(ctx, &core.CreateCropReq{Name: "Maize", Variety: &variety})
	require.NoError(t, err)

	list, err := f.svc.ListCrops(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, crop.ID, list[0].ID)
	require.NotNil(t, list[0].Variety)
	assert.Equal(t, "H614", *list[0].Variety)

	_, err = f.svc.CreateCrop(ctx, &core.CreateCropReq{})
	require.ErrorIs(t, err, code.ValidationErr)
}
