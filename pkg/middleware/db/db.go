package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// SpatialSetting is read by column types that need PostGIS.
	SpatialSetting = "osfarm:spatial"
)

type LogConf struct {
	Level         string
	SlowThreshold time.Duration
}

type Config struct {
	Driver     string
	Host       string
	Port       int
	User       string
	PW         string
	DBName     string
	SQLitePath string
	Spatial    bool
	MaxOpen    int
	MaxIdle    int
	LogConf    LogConf
}

type txKey struct{}

type Datastore struct {
	db      *gorm.DB
	spatial bool
}

var ds *Datastore

// DB returns the process wide datastore, nil before Init.
func DB() *Datastore {
	return ds
}

// Init opens the configured backend and installs it as the process wide
// datastore.
func Init(ctx context.Context, conf *Config) {
	var err error
	switch conf.Driver {
	case DriverSQLite:
		ds, err = Open(sqlite.Open(SQLiteDSN(conf.SQLitePath)), conf)
	default:
		ds, err = Open(postgres.Open(PostgresDSN(conf)), conf)
	}
	if err != nil {
		logger.Fatalf(ctx, "init %s fail err: %+v", conf.Driver, err)
	}
	logger.Infof(ctx, "database %s connected, spatial: %t", ds.Dialect(), ds.Spatial())
}

func Close(ctx context.Context) {
	if ds == nil {
		return
	}
	if sqlDB, err := ds.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Errorf(ctx, "close database err: %+v", err)
		}
	}
}

func PostgresDSN(conf *Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		conf.Host, conf.Port, conf.User, conf.PW, conf.DBName)
}

// SQLiteDSN enables foreign keys, which sqlite leaves off by default.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Open builds a datastore over any gorm dialector. Tests use it with an in
// memory sqlite database.
func Open(dialector gorm.Dialector, conf *Config) (*Datastore, error) {
	g, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(conf.LogConf),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	if err := g.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	sqlDB, err := g.DB()
	if err != nil {
		return nil, err
	}
	if conf.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(conf.MaxOpen)
	}
	if conf.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(conf.MaxIdle)
	}

	spatial := conf.Spatial && g.Dialector.Name() == DriverPostgres
	return &Datastore{db: g.Set(SpatialSetting, spatial).Session(&gorm.Session{}), spatial: spatial}, nil
}

func (d *Datastore) DBIns() *gorm.DB {
	return d.db
}

// DBWithContext returns the transaction carried by ctx, or a new session.
func (d *Datastore) DBWithContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// ExecTx runs fn inside one transaction. Nested calls join the outer one.
func (d *Datastore) ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (d *Datastore) Dialect() string {
	return d.db.Dialector.Name()
}

// Spatial reports whether geometry columns use PostGIS types.
func (d *Datastore) Spatial() bool {
	return d.spatial
}

// ForUpdate locks the selected rows on engines that support row locks.
func (d *Datastore) ForUpdate(tx *gorm.DB) *gorm.DB {
	if d.Dialect() == DriverPostgres {
		return tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	return tx
}

func (d *Datastore) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsForeignKeyViolation covers drivers that do not translate the error.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
