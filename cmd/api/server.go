package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	_ "github.com/scienceol/osfarm/docs" // swagger docs

	"github.com/scienceol/osfarm/internal/config"
	contractImpl "github.com/scienceol/osfarm/pkg/core/contract/contract"
	farmImpl "github.com/scienceol/osfarm/pkg/core/farm/farm"
	infraImpl "github.com/scienceol/osfarm/pkg/core/infrastructure/infrastructure"
	"github.com/scienceol/osfarm/pkg/core/live"
	"github.com/scienceol/osfarm/pkg/core/notify"
	"github.com/scienceol/osfarm/pkg/core/notify/events"
	farmgrpc "github.com/scienceol/osfarm/pkg/grpc"
	"github.com/scienceol/osfarm/pkg/middleware/db"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
	"github.com/scienceol/osfarm/pkg/middleware/redis"
	"github.com/scienceol/osfarm/pkg/middleware/trace"
	activityRepo "github.com/scienceol/osfarm/pkg/repo/activity"
	contractRepo "github.com/scienceol/osfarm/pkg/repo/contract"
	farmRepo "github.com/scienceol/osfarm/pkg/repo/farm"
	infraRepo "github.com/scienceol/osfarm/pkg/repo/infrastructure"
	"github.com/scienceol/osfarm/pkg/repo/migrate"
	"github.com/scienceol/osfarm/pkg/utils"
	"github.com/scienceol/osfarm/pkg/web"
)

func NewWeb() *cobra.Command {
	return &cobra.Command{
		Use:          "apiserver",
		Long:         "Start the API server (HTTP + gRPC)",
		SilenceUsage: true,
		PreRunE:      initWeb,
		RunE:         newRouter,
		PostRunE:     cleanWebResource,
	}
}

func NewMigrate() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Long:         "Create or update the database tables",
		SilenceUsage: true,
		PreRunE:      initMigrate,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate.Table(cmd.Root().Context(), db.DB())
		},
		PostRunE: func(cmd *cobra.Command, _ []string) error {
			db.Close(cmd.Context())
			return nil
		},
	}
}

func dbConfig(conf *config.GlobalConfig) *db.Config {
	return &db.Config{
		Driver:     conf.Database.Driver,
		Host:       conf.Database.Host,
		Port:       conf.Database.Port,
		User:       conf.Database.User,
		PW:         conf.Database.Password,
		DBName:     conf.Database.Name,
		SQLitePath: conf.Database.SQLitePath,
		Spatial:    conf.Database.Spatial,
		MaxOpen:    conf.Database.MaxOpen,
		MaxIdle:    conf.Database.MaxIdle,
		LogConf:    db.LogConf{Level: conf.Log.LogLevel, SlowThreshold: conf.Database.Slow},
	}
}

func initMigrate(cmd *cobra.Command, _ []string) error {
	db.Init(cmd.Context(), dbConfig(config.Global()))
	return nil
}

func initWeb(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	trace.InitTrace(cmd.Context(), &trace.InitConfig{
		ServiceName:    web.ServiceName(conf.Server.Platform, conf.Server.Service),
		Version:        conf.Trace.Version,
		Env:            conf.Server.Env,
		TraceEndpoint:  conf.Trace.TraceEndpoint,
		MetricEndpoint: conf.Trace.MetricEndpoint,
		Stdout:         conf.Trace.Stdout,
	})
	db.Init(cmd.Context(), dbConfig(conf))
	if conf.Redis.Enable {
		redis.InitRedis(cmd.Context(), &redis.Redis{
			Host: conf.Redis.Host, Port: conf.Redis.Port,
			Password: conf.Redis.Password, DB: conf.Redis.DB,
		})
	}
	return nil
}

var center notify.MsgCenter

func msgCenter() notify.MsgCenter {
	if client := redis.GetClient(); client != nil {
		return events.NewEvents(client)
	}
	return events.NewLocal()
}

func newRouter(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Root().Context()
	conf := config.Global()
	ds := db.DB()
	center = msgCenter()

	hub, err := live.New(ctx, center, conf.Live.PoolSize)
	if err != nil {
		return err
	}
	defer hub.Close()

	farms := farmRepo.NewFarmRepo(ds)
	router := gin.New()
	router.Use(gin.Recovery())
	web.NewRouter(ctx, router, &web.Services{
		ServiceName: web.ServiceName(conf.Server.Platform, conf.Server.Service),
		Farm:        farmImpl.New(farms, center),
		Contract:    contractImpl.New(contractRepo.NewContractRepo(ds), farms, center),
		Infrastructure: infraImpl.New(infraRepo.NewInfrastructureRepo(ds),
			activityRepo.NewActivityRepo(ds), farms, center),
		Hub: hub,
	})

	port := conf.Server.Port
	httpServer := http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       30 * time.Second,
		TLSNextProto:      make(map[string]func(*http.Server, *tls.Conn, http.Handler)),
	}

	fmt.Printf("API Server starting on http://0.0.0.0:%d\n", port)

	utils.SafelyGo(func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf(cmd.Context(), "start server err: %v\n", err)
		}
	}, func(err error) {
		logger.Errorf(cmd.Context(), "run http server err: %+v", err)
		os.Exit(1)
	})

	grpcPort := conf.Server.GrpcPort
	grpcServer, err := farmgrpc.NewServer(ctx, grpcPort)
	if err != nil {
		logger.Errorf(cmd.Context(), "start gRPC server err: %+v", err)
	} else {
		fmt.Printf("gRPC Server starting on port %d\n", grpcPort)
	}

	fmt.Printf("Server started. Press Ctrl+C to shutdown.\n")
	<-cmd.Context().Done()

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("shut down server err: %+v", err)
	}
	return nil
}

func cleanWebResource(cmd *cobra.Command, _ []string) error {
	if center != nil {
		if err := center.Close(cmd.Context()); err != nil {
			logger.Errorf(cmd.Context(), "close msg center err: %+v", err)
		}
	}
	redis.CloseRedis(cmd.Context())
	db.Close(cmd.Context())
	trace.CloseTrace()
	return nil
}
