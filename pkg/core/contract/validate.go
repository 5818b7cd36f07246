package contract

import (
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/common/validate"
	"github.com/scienceol/osfarm/pkg/repo"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

// Validate checks a complete contract record against its column rules. It
// does not touch storage.
func Validate(c *model.Contract, v validate.Violations) {
	validate.RequiredID("farm_id", c.FarmID, v)
	validate.OneOf("contract_type", c.ContractType, model.ContractTypes, v)
	validate.RequiredString("partner_name", c.PartnerName, v)
	validate.MaxLen("partner_name", c.PartnerName, model.PartnerNameLen, v)
	if c.CropID != nil && c.CropID.IsNil() {
		v.Add("crop_id", validate.InvalidValue)
	}
	validate.Amount("quantity", c.Quantity, model.QuantityPrecision, model.MoneyScale, v)
	validate.RequiredString("unit", c.Unit, v)
	validate.MaxLen("unit", c.Unit, model.UnitLen, v)
	validate.Amount("price_per_unit", c.PricePerUnit, model.PricePrecision, model.MoneyScale, v)
	validate.Amount("total_value", c.TotalValue, model.TotalValuePrecision, model.MoneyScale, v)
	if c.StartDate.IsZero() {
		v.Add("start_date", validate.Required)
	}
	if c.EndDate != nil && !c.StartDate.IsZero() && c.EndDate.Before(c.StartDate) {
		v.Add("end_date", validate.BeforeStart)
	}
	validate.OneOf("status", c.Status, model.ContractStatuses, v)
}

// ResolveTotal fills total_value from quantity and price when the caller
// left it out and checks it otherwise.
func ResolveTotal(c *model.Contract, given bool, v validate.Violations) {
	if v.Has("quantity") || v.Has("price_per_unit") {
		return
	}
	expected := c.ExpectedTotal()
	if !given {
		c.TotalValue = expected
		return
	}
	if !v.Has("total_value") && !c.TotalValue.Equal(expected) {
		v.Add("total_value", validate.Mismatch)
	}
}

// ValidateCreate builds the record a create request describes.
func ValidateCreate(req *CreateReq) (*model.Contract, error) {
	v := validate.New()
	if req.Quantity == nil {
		v.Add("quantity", validate.Required)
	}
	if req.PricePerUnit == nil {
		v.Add("price_per_unit", validate.Required)
	}
	if req.StartDate == nil || req.StartDate.IsZero() {
		v.Add("start_date", validate.Required)
	}
	if req.ContractType == "" {
		v.Add("contract_type", validate.Required)
	}

	c := &model.Contract{
		FarmID:        req.FarmID,
		ContractType:  req.ContractType,
		PartnerName:   req.PartnerName,
		CropID:        req.CropID,
		Unit:          req.Unit,
		EndDate:       req.EndDate,
		Status:        req.Status,
		DeliveryTerms: req.DeliveryTerms,
		PaymentTerms:  req.PaymentTerms,
		Notes:         req.Notes,
	}
	if c.Status == "" {
		c.Status = model.ContractDraft
	}
	if req.Quantity != nil {
		c.Quantity = *req.Quantity
	}
	if req.PricePerUnit != nil {
		c.PricePerUnit = *req.PricePerUnit
	}
	if req.TotalValue != nil {
		c.TotalValue = *req.TotalValue
	}
	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}

	Validate(c, v)
	if !v.Has("status") && c.Status != model.ContractDraft {
		v.Add("status", validate.NotAllowed)
	}
	ResolveTotal(c, req.TotalValue != nil, v)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyUpdate merges req into a copy of current and validates the result.
func ApplyUpdate(current *model.Contract, req *UpdateReq) (*model.Contract, error) {
	v := validate.New()
	next := *current
	next.Farm, next.Crop = nil, nil

	if req.FarmID != nil && *req.FarmID != current.FarmID {
		v.Add("farm_id", validate.Immutable)
	}
	if req.ContractType != nil {
		next.ContractType = *req.ContractType
	}
	if req.PartnerName != nil {
		next.PartnerName = *req.PartnerName
	}
	if req.CropID != nil {
		next.CropID = req.CropID
	}
	if req.Quantity != nil {
		next.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		next.Unit = *req.Unit
	}
	if req.PricePerUnit != nil {
		next.PricePerUnit = *req.PricePerUnit
	}
	if req.TotalValue != nil {
		next.TotalValue = *req.TotalValue
	}
	if req.StartDate != nil {
		next.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		next.EndDate = req.EndDate
	}
	if req.DeliveryTerms != nil {
		next.DeliveryTerms = req.DeliveryTerms
	}
	if req.PaymentTerms != nil {
		next.PaymentTerms = req.PaymentTerms
	}
	if req.Notes != nil {
		next.Notes = req.Notes
	}
	for _, col := range req.Clear {
		switch col {
		case ClearCropID:
			next.CropID = nil
		case ClearEndDate:
			next.EndDate = nil
		case ClearDeliveryTerms:
			next.DeliveryTerms = nil
		case ClearPaymentTerms:
			next.PaymentTerms = nil
		case ClearNotes:
			next.Notes = nil
		default:
			v.Add("clear", validate.NotAllowed)
		}
	}

	Validate(&next, v)
	// A new quantity or price without a new total recomputes it.
	recompute := req.TotalValue == nil && (req.Quantity != nil || req.PricePerUnit != nil)
	ResolveTotal(&next, !recompute, v)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return &next, nil
}

// ParseQuery turns the query string form into a repository query.
func ParseQuery(req *QueryReq) (*repo.ContractQuery, error) {
	req.Normalize()
	v := validate.New()
	q := &repo.ContractQuery{
		Page:        repo.Page{Offset: req.Offset(), Limit: req.PageSize},
		PartnerLike: req.Partner,
	}
	if req.FarmID != "" {
		if id, ok := uuid.Parse(req.FarmID); ok {
			q.FarmID = &id
		} else {
			v.Add("farm_id", validate.InvalidValue)
		}
	}
	if req.CropID != "" {
		if id, ok := uuid.Parse(req.CropID); ok {
			q.CropID = &id
		} else {
			v.Add("crop_id", validate.InvalidValue)
		}
	}
	if req.Status != "" {
		s := model.ContractStatus(req.Status)
		validate.OneOf("status", s, model.ContractStatuses, v)
		q.Status = &s
	}
	if req.ContractType != "" {
		t := model.ContractType(req.ContractType)
		validate.OneOf("contract_type", t, model.ContractTypes, v)
		q.ContractType = &t
	}
	if req.ActiveOn != "" {
		if d, err := model.ParseDate(req.ActiveOn); err == nil {
			q.ActiveOn = &d
		} else {
			v.Add("active_on", validate.InvalidValue)
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return q, nil
}
