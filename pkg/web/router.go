package web

import (
	"context"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/scienceol/osfarm/pkg/core/contract"
	"github.com/scienceol/osfarm/pkg/core/farm"
	"github.com/scienceol/osfarm/pkg/core/infrastructure"
	"github.com/scienceol/osfarm/pkg/core/live"
	"github.com/scienceol/osfarm/pkg/middleware/logger"
	contractView "github.com/scienceol/osfarm/pkg/web/views/contract"
	farmView "github.com/scienceol/osfarm/pkg/web/views/farm"
	"github.com/scienceol/osfarm/pkg/web/views/health"
	infraView "github.com/scienceol/osfarm/pkg/web/views/infrastructure"
	liveView "github.com/scienceol/osfarm/pkg/web/views/live"
)

// Services are the handlers' dependencies. Hub may be nil, which leaves
// the websocket route out.
type Services struct {
	ServiceName    string
	Farm           farm.Service
	Contract       contract.Service
	Infrastructure infrastructure.Service
	Hub            *live.Hub
}

func NewRouter(ctx context.Context, g *gin.Engine, svcs *Services) {
	installMiddleware(g, svcs.ServiceName)
	installURL(ctx, g, svcs)
}

func installMiddleware(g *gin.Engine, serviceName string) {
	g.ContextWithFallback = true
	g.Use(cors.Default())
	if serviceName != "" {
		g.Use(otelgin.Middleware(serviceName))
	}
	g.Use(logger.LogWithWriter())
}

func installURL(_ context.Context, g *gin.Engine, svcs *Services) {
	api := g.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/health/live", health.Live)
	api.GET("/health/ready", health.Ready)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	v1 := api.Group("/v1")

	{
		h := farmView.NewFarmHandle(svcs.Farm)
		farmRouter := v1.Group("/farms")
		farmRouter.POST("", h.CreateFarm)
		farmRouter.GET("", h.ListFarms)
		farmRouter.GET("/:farm_id", h.GetFarm)
		farmRouter.POST("/:farm_id/fields", h.CreateField)
		farmRouter.GET("/:farm_id/fields", h.ListFields)

		cropRouter := v1.Group("/crops")
		cropRouter.POST("", h.CreateCrop)
		cropRouter.GET("", h.ListCrops)
	}

	{
		h := contractView.NewContractHandle(svcs.Contract)
		contractRouter := v1.Group("/contracts")
		contractRouter.POST("", h.Create)
		contractRouter.GET("", h.Query)
		contractRouter.GET("/:id", h.Get)
		contractRouter.PUT("/:id", h.Update)
		contractRouter.PATCH("/:id/status", h.ChangeStatus)
		contractRouter.DELETE("/:id", h.Delete)
	}

	{
		h := infraView.NewInfrastructureHandle(svcs.Infrastructure)
		infraRouter := v1.Group("/infrastructures")
		infraRouter.POST("", h.Create)
		infraRouter.GET("", h.Query)
		infraRouter.GET("/catalog", h.Catalog)
		infraRouter.GET("/geojson", h.GeoJSON)
		infraRouter.GET("/:id", h.Get)
		infraRouter.PUT("/:id", h.Update)
		infraRouter.PATCH("/:id/status", h.ChangeStatus)
		infraRouter.DELETE("/:id", h.Delete)
		infraRouter.POST("/:id/activities", h.CreateActivity)
		infraRouter.GET("/:id/activities", h.ListActivities)
	}

	if svcs.Hub != nil {
		h := liveView.NewLiveHandle(svcs.Hub, svcs.Farm)
		wsRouter := v1.Group("/ws")
		wsRouter.GET("/farms/:farm_id", h.Farm)
	}
}

// ServiceName joins platform and service the way traces and logs name the
// process.
func ServiceName(platform, service string) string {
	return fmt.Sprintf("%s-%s", platform, service)
}
