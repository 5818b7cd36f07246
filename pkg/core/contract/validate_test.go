package contract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/common/validate"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func date(s string) *model.Date {
	d := model.MustParseDate(s)
	return &d
}

func agriCo() *CreateReq {
	return &CreateReq{
		FarmID:       uuid.NewV7(),
		ContractType: model.ContractSales,
		PartnerName:  "AgriCo",
		Quantity:     dec("100.00"),
		Unit:         "ton",
		PricePerUnit: dec("250.00"),
		TotalValue:   dec("25000.00"),
		StartDate:    date("2024-01-01"),
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var c *code.ErrCode
	require.ErrorAs(t, err, &c)
	require.Equal(t, code.KindValidation, c.Kind())
	return c.Fields()
}

func TestValidateCreateDefaults(t *testing.T) {
	c, err := ValidateCreate(agriCo())
	require.NoError(t, err)
	assert.Equal(t, model.ContractDraft, c.Status)
	assert.Equal(t, "25000.00", c.TotalValue.StringFixed(2))
}

func TestValidateCreateComputesTotal(t *testing.T) {
	req := agriCo()
	req.TotalValue = nil
	req.Quantity = dec("12.5")
	req.PricePerUnit = dec("3.33")

	c, err := ValidateCreate(req)
	require.NoError(t, err)
	assert.Equal(t, "41.63", c.TotalValue.StringFixed(2))
}

func TestValidateCreateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateReq)
		field  string
		reason string
	}{
		{"missing farm", func(r *CreateReq) { r.FarmID = uuid.Nil }, "farm_id", validate.Required},
		{"unknown type", func(r *CreateReq) { r.ContractType = "lease" }, "contract_type", validate.NotAllowed},
		{"missing type", func(r *CreateReq) { r.ContractType = "" }, "contract_type", validate.Required},
		{"unknown status", func(r *CreateReq) { r.Status = "archived" }, "status", validate.NotAllowed},
		{"born completed", func(r *CreateReq) { r.Status = model.ContractCompleted }, "status", validate.NotAllowed},
		{"born cancelled", func(r *CreateReq) { r.Status = model.ContractCancelled }, "status", validate.NotAllowed},
		{"born active", func(r *CreateReq) { r.Status = model.ContractActive }, "status", validate.NotAllowed},
		{"blank partner", func(r *CreateReq) { r.PartnerName = "  " }, "partner_name", validate.Required},
		{"missing quantity", func(r *CreateReq) { r.Quantity = nil }, "quantity", validate.Required},
		{"quantity nine integer digits", func(r *CreateReq) {
			r.Quantity = dec("123456789.00")
			r.TotalValue = nil
		}, "quantity", validate.OutOfBounds},
		{"quantity three decimals", func(r *CreateReq) { r.Quantity = dec("100.001") }, "quantity", validate.TooPrecise},
		{"negative price", func(r *CreateReq) { r.PricePerUnit = dec("-1.00") }, "price_per_unit", validate.Negative},
		{"total mismatch", func(r *CreateReq) { r.TotalValue = dec("24999.99") }, "total_value", validate.Mismatch},
		{"missing start", func(r *CreateReq) { r.StartDate = nil }, "start_date", validate.Required},
		{"end before start", func(r *CreateReq) { r.EndDate = date("2023-12-31") }, "end_date", validate.BeforeStart},
		{"missing unit", func(r *CreateReq) { r.Unit = "" }, "unit", validate.Required},
		{"nil crop id", func(r *CreateReq) { r.CropID = &uuid.Nil }, "crop_id", validate.InvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := agriCo()
			tt.mutate(req)
			_, err := ValidateCreate(req)
			assert.Equal(t, tt.reason, fieldsOf(t, err)[tt.field])
		})
	}
}

func TestValidateCreateReportsAllFields(t *testing.T) {
	_, err := ValidateCreate(&CreateReq{})
	fields := fieldsOf(t, err)
	for _, f := range []string{"farm_id", "contract_type", "partner_name", "quantity", "unit", "price_per_unit", "start_date"} {
		assert.Contains(t, fields, f)
	}
}

func TestEndDateEqualToStart(t *testing.T) {
	req := agriCo()
	req.EndDate = date("2024-01-01")
	_, err := ValidateCreate(req)
	assert.NoError(t, err)
}

func TestApplyUpdate(t *testing.T) {
	current, err := ValidateCreate(agriCo())
	require.NoError(t, err)
	current.ID = uuid.NewV7()
	notes := "call before delivery"
	current.Notes = &notes

	next, err := ApplyUpdate(current, &UpdateReq{Quantity: dec("80.00"), Clear: []string{ClearNotes}})
	require.NoError(t, err)
	assert.Equal(t, "20000.00", next.TotalValue.StringFixed(2))
	assert.Nil(t, next.Notes)
	assert.Equal(t, "call before delivery", *current.Notes, "current is not modified")

	other := uuid.NewV7()
	_, err = ApplyUpdate(current, &UpdateReq{FarmID: &other})
	assert.Equal(t, validate.Immutable, fieldsOf(t, err)["farm_id"])

	_, err = ApplyUpdate(current, &UpdateReq{Clear: []string{"partner_name"}})
	assert.Equal(t, validate.NotAllowed, fieldsOf(t, err)["clear"])

	_, err = ApplyUpdate(current, &UpdateReq{TotalValue: dec("1.00")})
	assert.Equal(t, validate.Mismatch, fieldsOf(t, err)["total_value"])
}

func TestParseQuery(t *testing.T) {
	farmID := uuid.NewV7()
	q, err := ParseQuery(&QueryReq{FarmID: farmID.String(), Status: "active", ActiveOn: "2024-02-01"})
	require.NoError(t, err)
	assert.Equal(t, farmID, *q.FarmID)
	assert.Equal(t, model.ContractActive, *q.Status)
	assert.Equal(t, "2024-02-01", q.ActiveOn.String())
	assert.Equal(t, 20, q.Limit)

	_, err = ParseQuery(&QueryReq{FarmID: "nope", Status: "gone", ActiveOn: "02/01/2024"})
	fields := fieldsOf(t, err)
	assert.Len(t, fields, 3)
}
