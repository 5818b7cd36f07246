package infrastructure

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/common/validate"
	"github.com/scienceol/osfarm/pkg/repo"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

// Validate checks an infrastructure record against its column rules.
// Geometry is checked separately by resolveBoundary.
func Validate(i *model.Infrastructure, v validate.Violations) {
	validate.RequiredID("farm_id", i.FarmID, v)
	if i.FieldID != nil && i.FieldID.IsNil() {
		v.Add("field_id", validate.InvalidValue)
	}
	validate.RequiredString("name", i.Name, v)
	validate.MaxLen("name", i.Name, model.NameLen, v)
	validate.RequiredString("type", i.Type, v)
	validate.MaxLen("type", i.Type, model.TypeLen, v)
	if i.SubType != nil {
		validate.RequiredString("sub_type", *i.SubType, v)
		validate.MaxLen("sub_type", *i.SubType, model.SubTypeLen, v)
	}
	validate.OneOf("status", i.Status, model.InfrastructureStatuses, v)
	validate.OptionalAmount("cost", i.Cost, model.CostPrecision, model.MoneyScale, v)
	validate.OptionalAmount("area_sqm", i.AreaSqm, model.MeasurePrecision, model.MoneyScale, v)
	validate.OptionalAmount("perimeter", i.Perimeter, model.MeasurePrecision, model.MoneyScale, v)
}

// resolveBoundary picks the GeoJSON or text boundary and checks it. A nil
// result with a nil error means no boundary was given.
func resolveBoundary(geo json.RawMessage, text *string, v validate.Violations) (*model.Polygon, error) {
	hasGeo := len(geo) > 0 && string(geo) != "null"
	if hasGeo && text != nil {
		v.Add("boundary", validate.NotAllowed)
		return nil, nil
	}
	var (
		poly model.Polygon
		err  error
	)
	switch {
	case hasGeo:
		poly, err = model.ParsePolygonGeoJSON(geo)
	case text != nil:
		poly, err = model.ParsePolygonText(*text)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := poly.Validate(); err != nil {
		return nil, err
	}
	return &poly, nil
}

// DeriveMeasures fills area_sqm and perimeter from the boundary when they
// are unset and the geodesic value fits the column.
func DeriveMeasures(i *model.Infrastructure) {
	if i.Boundary == nil {
		return
	}
	if i.AreaSqm == nil {
		i.AreaSqm = fitMeasure(i.Boundary.AreaSqm())
	}
	if i.Perimeter == nil {
		i.Perimeter = fitMeasure(i.Boundary.PerimeterM())
	}
}

func fitMeasure(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f).Round(model.MoneyScale)
	v := validate.New()
	validate.Amount("m", d, model.MeasurePrecision, model.MoneyScale, v)
	if !v.Empty() {
		return nil
	}
	return &d
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// ValidateCreate builds the record a create request describes. Field
// violations are reported before geometry errors.
func ValidateCreate(req *CreateReq) (*model.Infrastructure, error) {
	i := &model.Infrastructure{
		FarmID:           req.FarmID,
		FieldID:          req.FieldID,
		Name:             strings.TrimSpace(req.Name),
		Type:             strings.TrimSpace(req.Type),
		SubType:          trimmed(req.SubType),
		Status:           req.Status,
		ConstructionDate: req.ConstructionDate,
		Cost:             req.Cost,
		AreaSqm:          req.AreaSqm,
		Perimeter:        req.Perimeter,
		BoundaryManual:   req.BoundaryManual,
		Notes:            req.Notes,
	}
	if i.Status == "" {
		i.Status = model.InfraOperational
	}

	v := validate.New()
	Validate(i, v)
	if !v.Has("status") && !i.Status.Initial() {
		v.Add("status", validate.NotAllowed)
	}
	boundary, geomErr := resolveBoundary(req.Boundary, req.BoundaryWKT, v)
	if err := v.Err(); err != nil {
		return nil, err
	}
	if geomErr != nil {
		return nil, geomErr
	}
	i.Boundary = boundary
	DeriveMeasures(i)
	return i, nil
}

// ApplyUpdate merges req into a copy of current. A new boundary without
// new measures re-derives them.
func ApplyUpdate(current *model.Infrastructure, req *UpdateReq) (*model.Infrastructure, error) {
	v := validate.New()
	next := *current
	next.Farm, next.Field, next.Activities = nil, nil, nil

	if req.FarmID != nil && *req.FarmID != current.FarmID {
		v.Add("farm_id", validate.Immutable)
	}
	if req.FieldID != nil {
		next.FieldID = req.FieldID
	}
	if req.Name != nil {
		next.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		next.Type = strings.TrimSpace(*req.Type)
	}
	if req.SubType != nil {
		next.SubType = trimmed(req.SubType)
	}
	if req.ConstructionDate != nil {
		next.ConstructionDate = req.ConstructionDate
	}
	if req.Cost != nil {
		next.Cost = req.Cost
	}
	if req.AreaSqm != nil {
		next.AreaSqm = req.AreaSqm
	}
	if req.Perimeter != nil {
		next.Perimeter = req.Perimeter
	}
	if req.BoundaryManual != nil {
		next.BoundaryManual = req.BoundaryManual
	}
	if req.Notes != nil {
		next.Notes = req.Notes
	}
	for _, col := range req.Clear {
		switch col {
		case ClearFieldID:
			next.FieldID = nil
		case ClearSubType:
			next.SubType = nil
		case ClearConstructionDate:
			next.ConstructionDate = nil
		case ClearCost:
			next.Cost = nil
		case ClearAreaSqm:
			next.AreaSqm = nil
		case ClearPerimeter:
			next.Perimeter = nil
		case ClearBoundaryManual:
			next.BoundaryManual = nil
		case ClearBoundary:
			next.Boundary = nil
			if req.AreaSqm == nil {
				next.AreaSqm = nil
			}
			if req.Perimeter == nil {
				next.Perimeter = nil
			}
		case ClearNotes:
			next.Notes = nil
		default:
			v.Add("clear", validate.NotAllowed)
		}
	}

	Validate(&next, v)
	boundary, geomErr := resolveBoundary(req.Boundary, req.BoundaryWKT, v)
	if err := v.Err(); err != nil {
		return nil, err
	}
	if geomErr != nil {
		return nil, geomErr
	}
	if boundary != nil {
		next.Boundary = boundary
		if req.AreaSqm == nil {
			next.AreaSqm = nil
		}
		if req.Perimeter == nil {
			next.Perimeter = nil
		}
		DeriveMeasures(&next)
	}
	return &next, nil
}

func ParseQuery(req *QueryReq) (*repo.InfrastructureQuery, error) {
	req.Normalize()
	v := validate.New()
	q := &repo.InfrastructureQuery{
		Page: repo.Page{Offset: req.Offset(), Limit: req.PageSize},
		Type: strings.TrimSpace(req.Type),
	}
	if req.FarmID != "" {
		if id, ok := uuid.Parse(req.FarmID); ok {
			q.FarmID = &id
		} else {
			v.Add("farm_id", validate.InvalidValue)
		}
	}
	if req.FieldID != "" {
		if id, ok := uuid.Parse(req.FieldID); ok {
			q.FieldID = &id
		} else {
			v.Add("field_id", validate.InvalidValue)
		}
	}
	if req.Status != "" {
		s := model.InfrastructureStatus(req.Status)
		validate.OneOf("status", s, model.InfrastructureStatuses, v)
		q.Status = &s
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return q, nil
}

// ValidateActivity builds an activity logged against asset.
func ValidateActivity(asset *model.Infrastructure, req *CreateActivityReq) (*model.Activity, error) {
	v := validate.New()
	validate.RequiredString("title", req.Title, v)
	validate.MaxLen("title", req.Title, 200, v)
	validate.RequiredString("activity_type", req.ActivityType, v)
	validate.MaxLen("activity_type", req.ActivityType, 100, v)
	if req.PerformedOn == nil || req.PerformedOn.IsZero() {
		v.Add("performed_on", validate.Required)
	}
	var details datatypes.JSON
	if req.Details != nil {
		b, err := json.Marshal(req.Details)
		if err != nil {
			v.Add("details", validate.InvalidValue)
		}
		details = b
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return &model.Activity{
		FarmID:           asset.FarmID,
		InfrastructureID: &asset.ID,
		Title:            strings.TrimSpace(req.Title),
		ActivityType:     strings.TrimSpace(req.ActivityType),
		PerformedOn:      *req.PerformedOn,
		Notes:            req.Notes,
		Details:          details,
	}, nil
}
