package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
	contractImpl "github.com/scienceol/osfarm/pkg/core/contract/contract"
	farmImpl "github.com/scienceol/osfarm/pkg/core/farm/farm"
	infraImpl "github.com/scienceol/osfarm/pkg/core/infrastructure/infrastructure"
	"github.com/scienceol/osfarm/pkg/core/notify/events"
	activityRepo "github.com/scienceol/osfarm/pkg/repo/activity"
	contractRepo "github.com/scienceol/osfarm/pkg/repo/contract"
	farmRepo "github.com/scienceol/osfarm/pkg/repo/farm"
	infraRepo "github.com/scienceol/osfarm/pkg/repo/infrastructure"
	"github.com/scienceol/osfarm/pkg/repo/repotest"
)

type envelope struct {
	Code   int               `json:"code"`
	Kind   string            `json:"kind"`
	Msg    string            `json:"msg"`
	Fields map[string]string `json:"fields"`
	Data   json.RawMessage   `json:"data"`
}

type api struct {
	t      *testing.T
	router *gin.Engine
	seed   *repotest.Seed
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ds := repotest.Open(t)
	seed := repotest.SeedFarm(t, ds, "F1")

	center := events.Discard{}
	farms := farmRepo.NewFarmRepo(ds)
	g := gin.New()
	NewRouter(context.Background(), g, &Services{
		Farm:     farmImpl.New(farms, center),
		Contract: contractImpl.New(contractRepo.NewContractRepo(ds), farms, center),
		Infrastructure: infraImpl.New(infraRepo.NewInfrastructureRepo(ds),
			activityRepo.NewActivityRepo(ds), farms, center),
	})
	return &api{t: t, router: g, seed: seed}
}

func (a *api) do(method, path string, body any) (int, *envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	resp := &envelope{}
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), resp), w.Body.String())
	}
	return w.Code, resp
}

func (a *api) data(resp *envelope, out any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(resp.Data, out))
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	for _, path := range []string{"/api/health", "/api/health/live"} {
		w := httptest.NewRecorder()
		a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestContractEndpoints(t *testing.T) {
	a := newAPI(t)
	agriCo := map[string]any{
		"farm_id":        a.seed.Farm.ID,
		"contract_type":  "sales",
		"partner_name":   "AgriCo",
		"quantity":       "100.00",
		"unit":           "ton",
		"price_per_unit": "250.00",
		"total_value":    "25000.00",
		"start_date":     "2024-01-01",
	}

	status, resp := a.do(http.MethodPost, "/api/v1/contracts", agriCo)
	require.Equal(t, http.StatusCreated, status, resp.Msg)
	created := struct {
		ID         uuid.UUID `json:"id"`
		Status     string    `json:"status"`
		StartDate  string    `json:"start_date"`
		TotalValue string    `json:"total_value"`
	}{}
	a.data(resp, &created)
	assert.Equal(t, "draft", created.Status)
	assert.Equal(t, "2024-01-01", created.StartDate)
	assert.Equal(t, "25000", created.TotalValue)

	closed := map[string]any{"status": "completed"}
	for k, v := range agriCo {
		closed[k] = v
	}
	status, resp = a.do(http.MethodPost, "/api/v1/contracts", closed)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "not_allowed", resp.Fields["status"])
	status, resp = a.do(http.MethodGet, "/api/v1/contracts?farm_id="+a.seed.Farm.ID.String(), nil)
	require.Equal(t, http.StatusOK, status)
	listed := struct {
		Total int64 `json:"total"`
	}{}
	a.data(resp, &listed)
	assert.EqualValues(t, 1, listed.Total)

	status, _ = a.do(http.MethodGet, "/api/v1/contracts/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusOK, status)

	status, resp = a.do(http.MethodGet, "/api/v1/contracts?partner=agri&farm_id="+a.seed.Farm.ID.String(), nil)
	require.Equal(t, http.StatusOK, status)
	page := struct {
		Total int64 `json:"total"`
	}{}
	a.data(resp, &page)
	assert.EqualValues(t, 1, page.Total)

	status, _ = a.do(http.MethodPatch, "/api/v1/contracts/"+created.ID.String()+"/status", map[string]string{"status": "active"})
	assert.Equal(t, http.StatusOK, status)

	status, resp = a.do(http.MethodPatch, "/api/v1/contracts/"+created.ID.String()+"/status", map[string]string{"status": "draft"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, code.StatusTransitionErr.Code(), resp.Code)

	status, _ = a.do(http.MethodDelete, "/api/v1/contracts/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestContractErrors(t *testing.T) {
	a := newAPI(t)

	status, resp := a.do(http.MethodPost, "/api/v1/contracts", map[string]any{
		"contract_type":  "lease",
		"partner_name":   "AgriCo",
		"quantity":       "1000000000.00",
		"unit":           "ton",
		"price_per_unit": "1",
		"start_date":     "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation", resp.Kind)
	assert.Equal(t, "required", resp.Fields["farm_id"])
	assert.Equal(t, "not_allowed", resp.Fields["contract_type"])
	assert.Equal(t, "out_of_bounds", resp.Fields["quantity"])

	status, resp = a.do(http.MethodPost, "/api/v1/contracts", map[string]any{
		"farm_id":        uuid.NewV7(),
		"contract_type":  "purchase",
		"partner_name":   "SeedCo",
		"quantity":       "1",
		"unit":           "bag",
		"price_per_unit": "1",
		"start_date":     "2024-01-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, code.FarmNotFound.Code(), resp.Code)

	status, _ = a.do(http.MethodPost, "/api/v1/contracts", `{"farm_id": 12`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(http.MethodGet, "/api/v1/contracts/"+uuid.NewV7().String(), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, resp = a.do(http.MethodGet, "/api/v1/contracts/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, code.ParamErr.Code(), resp.Code)
}

func TestInfrastructureEndpoints(t *testing.T) {
	a := newAPI(t)

	status, resp := a.do(http.MethodPost, "/api/v1/infrastructures", map[string]any{
		"farm_id":  a.seed.Farm.ID,
		"name":     "Silo A",
		"type":     "Storage",
		"sub_type": "Silo",
		"boundary": map[string]any{
			"type":        "Polygon",
			"coordinates": [][][]float64{{{36.8, -1.3}, {36.81, -1.3}, {36.81, -1.29}, {36.8, -1.29}, {36.8, -1.3}}},
		},
	})
	require.Equal(t, http.StatusCreated, status, resp.Msg)
	silo := struct {
		ID       uuid.UUID       `json:"id"`
		Status   string          `json:"status"`
		FieldID  *uuid.UUID      `json:"field_id"`
		Boundary json.RawMessage `json:"boundary"`
	}{}
	a.data(resp, &silo)
	assert.Equal(t, "operational", silo.Status)
	assert.Nil(t, silo.FieldID)
	assert.Contains(t, string(silo.Boundary), `"Polygon"`)

	status, resp = a.do(http.MethodPost, "/api/v1/infrastructures", map[string]any{
		"farm_id":      a.seed.Farm.ID,
		"name":         "Bad",
		"type":         "Storage",
		"boundary_wkt": "SRID=3857;POLYGON((0 0,1 0,1 1,0 0))",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "geometry", resp.Kind)

	for name, boundary := range map[string]any{
		"point":       map[string]any{"type": "Point", "coordinates": []float64{36.8, -1.3}},
		"flat coords": map[string]any{"type": "Polygon", "coordinates": [][]float64{{10, 50}, {11, 50}}},
	} {
		status, resp = a.do(http.MethodPost, "/api/v1/infrastructures", map[string]any{
			"farm_id":  a.seed.Farm.ID,
			"name":     "Bad",
			"type":     "Storage",
			"boundary": boundary,
		})
		assert.Equal(t, http.StatusBadRequest, status, name)
		assert.Equal(t, code.GeometryErr.Code(), resp.Code, name)
		assert.Equal(t, "geometry", resp.Kind, name)
	}

	status, resp = a.do(http.MethodPost, "/api/v1/infrastructures", map[string]any{
		"farm_id": a.seed.Farm.ID,
		"name":    "Old barn",
		"type":    "Farm House",
		"status":  "retired",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "not_allowed", resp.Fields["status"])

	status, resp = a.do(http.MethodGet, "/api/v1/infrastructures/geojson?farm_id="+a.seed.Farm.ID.String(), nil)
	require.Equal(t, http.StatusOK, status)
	fc := struct {
		Type     string `json:"type"`
		Features []struct {
			ID         string         `json:"id"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}{}
	a.data(resp, &fc)
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, silo.ID.String(), fc.Features[0].ID)

	status, _ = a.do(http.MethodGet, "/api/v1/infrastructures/catalog", nil)
	assert.Equal(t, http.StatusOK, status)

	id := silo.ID.String()
	status, _ = a.do(http.MethodPost, "/api/v1/infrastructures/"+id+"/activities", map[string]any{
		"title":         "Fumigation",
		"activity_type": "maintenance",
		"performed_on":  "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = a.do(http.MethodDelete, "/api/v1/infrastructures/"+id, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = a.do(http.MethodDelete, "/api/v1/infrastructures/"+id+"?detach=true", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = a.do(http.MethodGet, "/api/v1/infrastructures/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFarmEndpoints(t *testing.T) {
	a := newAPI(t)

	status, resp := a.do(http.MethodPost, "/api/v1/farms", map[string]any{
		"name":     "Green Acres",
		"settings": map[string]any{"center": []float64{36.8, -1.3}, "zoom": 14},
	})
	require.Equal(t, http.StatusCreated, status, resp.Msg)
	farm := struct {
		ID uuid.UUID `json:"id"`
	}{}
	a.data(resp, &farm)

	status, _ = a.do(http.MethodPost, "/api/v1/farms/"+farm.ID.String()+"/fields", map[string]any{"name": "East"})
	assert.Equal(t, http.StatusCreated, status)

	status, resp = a.do(http.MethodGet, "/api/v1/farms/"+farm.ID.String()+"/fields", nil)
	require.Equal(t, http.StatusOK, status)
	var fields []map[string]any
	a.data(resp, &fields)
	assert.Len(t, fields, 1)

	status, _ = a.do(http.MethodPost, "/api/v1/farms/"+uuid.NewV7().String()+"/fields", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = a.do(http.MethodPost, "/api/v1/crops", map[string]any{"name": "Wheat"})
	assert.Equal(t, http.StatusCreated, status)

	status, resp = a.do(http.MethodGet, "/api/v1/farms", nil)
	require.Equal(t, http.StatusOK, status)
	page := struct {
		Total int64 `json:"total"`
	}{}
	a.data(resp, &page)
	assert.EqualValues(t, 2, page.Total)
}
