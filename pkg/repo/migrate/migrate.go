package migrate

import (
	"context"

	"github.com/scienceol/osfarm/pkg/middleware/db"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

// Models lists every table in creation order.
func Models() []any {
	return []any{
		&model.Farm{},
		&model.Field{},
		&model.Crop{},
		&model.Contract{},
		&model.Infrastructure{},
		&model.Activity{},
	}
}

// Table creates or updates the schema. PostGIS is enabled first when
// geometry columns are spatial.
func Table(ctx context.Context, ds *db.Datastore) error {
	d := ds.DBWithContext(ctx)
	if ds.Spatial() {
		if err := d.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
			logger.Errorf(ctx, "enable postgis err: %+v", err)
			return err
		}
	}
	for _, m := range Models() {
		if err := d.AutoMigrate(m); err != nil {
			logger.Errorf(ctx, "migrate table err: %+v", err)
			return err
		}
	}
	logger.Infof(ctx, "migrated %d tables on %s", len(Models()), ds.Dialect())
	return nil
}
