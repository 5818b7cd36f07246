package migrate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scienceol/osfarm/pkg/middleware/db"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

func openFile(t *testing.T) *db.Datastore {
	t.Helper()
	dsn := db.SQLiteDSN(filepath.Join(t.TempDir(), "osfarm.db"))
	ds, err := db.Open(sqlite.Open(dsn), &db.Config{Driver: db.DriverSQLite, LogConf: db.LogConf{Level: "silent"}})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := ds.DBIns().DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return ds
}

func TestTableCreatesSchema(t *testing.T) {
	ds := openFile(t)
	ctx := context.Background()

	require.NoError(t, Table(ctx, ds))
	// a second run is a no-op
	require.NoError(t, Table(ctx, ds))

	m := ds.DBIns().Migrator()
	for _, tbl := range Models() {
		assert.True(t, m.HasTable(tbl), "%T", tbl)
	}
	assert.True(t, m.HasColumn(&model.Infrastructure{}, "boundary"))
	assert.True(t, m.HasColumn(&model.Activity{}, "infrastructure_id"))
}

func TestTableStoresBoundary(t *testing.T) {
	ds := openFile(t)
	ctx := context.Background()
	require.NoError(t, Table(ctx, ds))

	farm := &model.Farm{Name: "F1"}
	require.NoError(t, ds.DBWithContext(ctx).Create(farm).Error)

	footprint := model.Polygon{orb.Ring{{36.8, -1.3}, {36.81, -1.3}, {36.81, -1.29}, {36.8, -1.29}, {36.8, -1.3}}}
	asset := &model.Infrastructure{
		FarmID:   farm.ID,
		Name:     "Silo A",
		Type:     "Storage",
		Status:   model.InfraOperational,
		Boundary: &footprint,
	}
	require.NoError(t, ds.DBWithContext(ctx).Create(asset).Error)

	got := &model.Infrastructure{}
	require.NoError(t, ds.DBWithContext(ctx).First(got, "id = ?", asset.ID).Error)
	require.NotNil(t, got.Boundary)
	assert.Equal(t, footprint, *got.Boundary)
}
