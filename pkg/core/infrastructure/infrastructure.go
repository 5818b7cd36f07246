package infrastructure

import (
	"context"

	"github.com/paulmach/orb/geojson"

	"github.com/scienceol/osfarm/pkg/common"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type Service interface {
	Create(ctx context.Context, req *CreateReq) (*model.Infrastructure, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Infrastructure, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateReq) (*model.Infrastructure, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, req *ChangeStatusReq) (*model.Infrastructure, error)
	Delete(ctx context.Context, id uuid.UUID, req *DeleteReq) error
	Query(ctx context.Context, req *QueryReq) (*common.PageResp[[]*model.Infrastructure], error)
	// GeoJSON returns the footprints of a farm as a FeatureCollection.
	GeoJSON(ctx context.Context, req *GeoJSONReq) (*geojson.FeatureCollection, error)
	Catalog(ctx context.Context) []CatalogEntry

	CreateActivity(ctx context.Context, infraID uuid.UUID, req *CreateActivityReq) (*model.Activity, error)
	ListActivities(ctx context.Context, infraID uuid.UUID, req *ActivityQueryReq) (*common.PageResp[[]*model.Activity], error)
}

// catalog suggests types and sub types. Other values are accepted.
var catalog = []CatalogEntry{
	{Type: "Farm House", SubTypes: []string{"Residence", "Office", "Worker Housing"}},
	{Type: "Storage", SubTypes: []string{"Silo", "Warehouse", "Cold Storage", "Barn"}},
	{Type: "Poultry", SubTypes: []string{"Broiler House", "Layer House", "Hatchery"}},
	{Type: "Livestock", SubTypes: []string{"Cattle Shed", "Dairy Parlor", "Pig Pen", "Stable"}},
	{Type: "Irrigation", SubTypes: []string{"Well", "Pump House", "Reservoir", "Canal", "Drip System", "Pivot"}},
	{Type: "Greenhouse", SubTypes: []string{"Glass", "Polytunnel", "Shade House"}},
	{Type: "Processing", SubTypes: []string{"Packhouse", "Mill", "Dryer"}},
	{Type: "Energy", SubTypes: []string{"Solar Array", "Generator", "Biogas"}},
	{Type: "Fencing", SubTypes: []string{"Perimeter Fence", "Paddock"}},
	{Type: "Road", SubTypes: []string{"Farm Road", "Track"}},
}

func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}
