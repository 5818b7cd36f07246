package config

import "time"

type Database struct {
	// Driver is postgres or sqlite.
	Driver   string `mapstructure:"DATABASE_DRIVER" default:"postgres"`
	Host     string `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int    `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string `mapstructure:"DATABASE_NAME" default:"osfarm"`
	User     string `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string `mapstructure:"DATABASE_PASSWORD" default:"osfarm"`
	// SQLitePath is used when Driver is sqlite.
	SQLitePath string `mapstructure:"DATABASE_SQLITE_PATH" default:"./osfarm.db"`
	// Spatial stores boundaries as PostGIS geometry. Off keeps them as text.
	Spatial bool          `mapstructure:"DATABASE_SPATIAL" default:"true"`
	MaxOpen int           `mapstructure:"DATABASE_MAX_OPEN" default:"20"`
	MaxIdle int           `mapstructure:"DATABASE_MAX_IDLE" default:"5"`
	Slow    time.Duration `mapstructure:"DATABASE_SLOW_THRESHOLD" default:"200ms"`
}

type Redis struct {
	// Enable switches farm-change messages to redis pub/sub so several api
	// processes share them. Off delivers in process.
	Enable   bool   `mapstructure:"REDIS_ENABLE" default:"false"`
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"osfarm"`
	Service  string `mapstructure:"SERVICE" default:"api"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	GrpcPort int    `mapstructure:"GRPC_PORT" default:"9090"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

type Log struct {
	LogPath    string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel   string `mapstructure:"LOG_LEVEL" default:"info"`
	MaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB" default:"100"`
	MaxBackups int    `mapstructure:"LOG_MAX_BACKUPS" default:"5"`
	MaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS" default:"30"`
}

type Trace struct {
	Version        string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	TraceEndpoint  string `mapstructure:"TRACE_TRACEENDPOINT" default:""`
	MetricEndpoint string `mapstructure:"TRACE_METRICENDPOINT" default:""`
	Stdout         bool   `mapstructure:"TRACE_STDOUT" default:"false"`
}

type Live struct {
	PoolSize int `mapstructure:"LIVE_POOL_SIZE" default:"200"`
}
