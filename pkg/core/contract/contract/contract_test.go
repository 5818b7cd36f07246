package contract

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	core "github.com/scienceol/osfarm/pkg/core/contract"
	"github.com/scienceol/osfarm/pkg/core/notify"
	"github.com/scienceol/osfarm/pkg/core/notify/events"
	contractRepo "github.com/scienceol/osfarm/pkg/repo/contract"
	farmRepo "github.com/scienceol/osfarm/pkg/repo/farm"
	"github.com/scienceol/osfarm/pkg/repo/model"
	"github.com/scienceol/osfarm/pkg/repo/repotest"
)

type fixture struct {
	svc  core.Service
	seed *repotest.Seed
	msgs []*notify.SendMsg
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ds := repotest.Open(t)
	f := &fixture{seed: repotest.SeedFarm(t, ds, "F1")}

	center := events.NewLocal()
	require.NoError(t, center.Registry(context.Background(), notify.FarmChange, func(_ context.Context, payload string) error {
		msg := &notify.SendMsg{}
		if err := json.Unmarshal([]byte(payload), msg); err != nil {
			return err
		}
		f.msgs = append(f.msgs, msg)
		return nil
	}))
	f.svc = New(contractRepo.NewContractRepo(ds), farmRepo.NewFarmRepo(ds), center)
	return f
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func date(s string) *model.Date {
	d := model.MustParseDate(s)
	return &d
}

func (f *fixture) agriCo() *core.CreateReq {
	return &core.CreateReq{
		FarmID:       f.seed.Farm.ID,
		ContractType: model.ContractSales,
		PartnerName:  "AgriCo",
		Quantity:     dec("100.00"),
		Unit:         "ton",
		PricePerUnit: dec("250.00"),
		TotalValue:   dec("25000.00"),
		StartDate:    date("2024-01-01"),
	}
}

func TestCreateAgriCoContract(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.agriCo())
	require.NoError(t, err)
	assert.Equal(t, model.ContractDraft, c.Status)

	got, err := f.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "AgriCo", got.PartnerName)
	assert.Equal(t, "25000.00", got.TotalValue.StringFixed(2))
	assert.Equal(t, "2024-01-01", got.StartDate.String())
	assert.Nil(t, got.EndDate)
	assert.Nil(t, got.CropID)
	require.NotNil(t, got.Farm)
	assert.Equal(t, "F1", got.Farm.Name)

	require.Len(t, f.msgs, 1)
	assert.Equal(t, notify.EntityContract, f.msgs[0].Entity)
	assert.Equal(t, notify.OpCreate, f.msgs[0].Op)
	assert.Equal(t, c.ID, f.msgs[0].EntityID)
	assert.Equal(t, f.seed.Farm.ID, f.msgs[0].FarmID)
}

func TestCreateReferentialErrors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	req := f.agriCo()
	req.FarmID = uuid.NewV7()
	_, err := f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, code.FarmNotFound)
	assert.Equal(t, code.KindReferential, code.KindOf(err))

	req = f.agriCo()
	missing := uuid.NewV7()
	req.CropID = &missing
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, code.CropNotFound)

	assert.Empty(t, f.msgs)
}

func TestCreateValidationBeforeStorage(t *testing.T) {
	f := setup(t)
	req := f.agriCo()
	req.FarmID = uuid.Nil
	req.Quantity = dec("123456789.00")

	_, err := f.svc.Create(context.Background(), req)
	assert.Equal(t, code.KindValidation, code.KindOf(err))

	page, err := f.svc.Query(context.Background(), &core.QueryReq{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestStatusLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.agriCo())
	require.NoError(t, err)

	_, err = f.svc.ChangeStatus(ctx, c.ID, &core.ChangeStatusReq{Status: model.ContractCompleted})
	assert.ErrorIs(t, err, code.StatusTransitionErr)

	c, err = f.svc.ChangeStatus(ctx, c.ID, &core.ChangeStatusReq{Status: model.ContractActive})
	require.NoError(t, err)
	assert.Equal(t, model.ContractActive, c.Status)

	sent := len(f.msgs)
	_, err = f.svc.ChangeStatus(ctx, c.ID, &core.ChangeStatusReq{Status: model.ContractActive})
	require.NoError(t, err)
	assert.Len(t, f.msgs, sent, "same status is a no-op")

	assert.ErrorIs(t, f.svc.Delete(ctx, c.ID), code.DeleteRestrictedErr)

	_, err = f.svc.ChangeStatus(ctx, c.ID, &core.ChangeStatusReq{Status: model.ContractCompleted})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, c.ID, &core.UpdateReq{Notes: new(string)})
	assert.ErrorIs(t, err, code.RecordClosedErr)

	_, err = f.svc.ChangeStatus(ctx, c.ID, &core.ChangeStatusReq{Status: model.ContractDraft})
	assert.ErrorIs(t, err, code.StatusTransitionErr)

	_, err = f.svc.ChangeStatus(ctx, c.ID, &core.ChangeStatusReq{Status: "archived"})
	assert.Equal(t, code.KindValidation, code.KindOf(err))
}

func TestUpdateContract(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.agriCo())
	require.NoError(t, err)
	id := created.ID

	_, err = f.svc.Update(ctx, id, &core.UpdateReq{Quantity: dec("80.00"), Unit: new(string)})
	assert.Equal(t, code.KindValidation, code.KindOf(err), "blank unit")

	c, err := f.svc.Update(ctx, id, &core.UpdateReq{
		CropID:   &f.seed.Crop.ID,
		Quantity: dec("80.00"),
		EndDate:  date("2024-06-30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "20000.00", c.TotalValue.StringFixed(2))

	got, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, f.seed.Crop.ID, *got.CropID)
	assert.Equal(t, "2024-06-30", got.EndDate.String())
	assert.True(t, decimal.RequireFromString("20000").Equal(got.TotalValue))
	assert.Equal(t, "AgriCo", got.PartnerName)

	_, err = f.svc.Update(ctx, id, &core.UpdateReq{EndDate: date("2023-01-01")})
	assert.Equal(t, code.KindValidation, code.KindOf(err))

	missing := uuid.NewV7()
	_, err = f.svc.Update(ctx, id, &core.UpdateReq{CropID: &missing})
	assert.ErrorIs(t, err, code.CropNotFound)

	_, err = f.svc.Update(ctx, uuid.NewV7(), &core.UpdateReq{})
	assert.ErrorIs(t, err, code.RecordNotFound)
}

func TestDeleteDraft(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.agriCo())
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, c.ID))

	_, err = f.svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, code.RecordNotFound)
	assert.Equal(t, notify.OpDelete, f.msgs[len(f.msgs)-1].Op)
}

func TestQueryContracts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, partner := range []string{"AgriCo", "Grain Traders", "AgriCo Export"} {
		req := f.agriCo()
		req.PartnerName = partner
		_, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
	}

	page, err := f.svc.Query(ctx, &core.QueryReq{FarmID: f.seed.Farm.ID.String(), Partner: "agrico"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.Page)

	_, err = f.svc.Query(ctx, &core.QueryReq{ContractType: "lease"})
	assert.Equal(t, code.KindValidation, code.KindOf(err))
}
