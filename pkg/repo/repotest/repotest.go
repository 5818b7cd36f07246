// Package repotest opens migrated in-memory databases for tests.
package repotest

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"

	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/middleware/db"
	"github.com/scienceol/osfarm/pkg/repo/migrate"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

// Open returns a datastore over a private in-memory sqlite database that
// lives until the test ends.
func Open(t testing.TB) *db.Datastore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := db.SQLiteDSN("file:" + name + "_" + uuid.NewV4().String() + "?mode=memory&cache=shared")

	ds, err := db.Open(sqlite.Open(dsn), &db.Config{LogConf: db.LogConf{Level: "silent"}})
	require.NoError(t, err)
	require.NoError(t, migrate.Table(context.Background(), ds))

	t.Cleanup(func() {
		if sqlDB, err := ds.DBIns().DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return ds
}

// Seed holds one farm with a field and a crop.
type Seed struct {
	Farm  *model.Farm
	Field *model.Field
	Crop  *model.Crop
}

func SeedFarm(t testing.TB, ds *db.Datastore, name string) *Seed {
	t.Helper()
	ctx := context.Background()
	s := &Seed{
		Farm: &model.Farm{Name: name},
		Crop: &model.Crop{Name: "Maize"},
	}
	require.NoError(t, ds.DBWithContext(ctx).Create(s.Farm).Error)
	s.Field = &model.Field{FarmID: s.Farm.ID, Name: "North field"}
	require.NoError(t, ds.DBWithContext(ctx).Create(s.Field).Error)
	require.NoError(t, ds.DBWithContext(ctx).Create(s.Crop).Error)
	return s
}
