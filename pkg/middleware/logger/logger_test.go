package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osfarm.log")
	Init(&LogConfig{
		Path:       path,
		LogLevel:   "debug",
		ServiceEnv: ServiceEnv{Platform: "osfarm", Service: "api", Env: "test"},
	})
	t.Cleanup(Close)

	Infof(context.Background(), "created contract %s", "AgriCo")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "created contract AgriCo")
	assert.Contains(t, string(data), `"service":"api"`)
}

func TestLogWithWriter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LogWithWriter())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
