package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scienceol/osfarm/pkg/middleware/db"
	"github.com/scienceol/osfarm/pkg/middleware/redis"
)

func Health(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Live reports that the process is up.
func Live(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready pings the database, and redis when it is enabled.
func Ready(g *gin.Context) {
	checks := gin.H{}
	healthy := true

	if ds := db.DB(); ds != nil {
		if err := ds.Ping(g.Request.Context()); err != nil {
			checks["database"] = "unhealthy"
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not_initialized"
		healthy = false
	}

	if rc := redis.GetClient(); rc != nil {
		if err := rc.Ping(g.Request.Context()).Err(); err != nil {
			checks["redis"] = "unhealthy"
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "disabled"
	}

	status := http.StatusOK
	msg := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		msg = "not_ready"
	}
	g.JSON(status, gin.H{
		"status": msg,
		"checks": checks,
	})
}
