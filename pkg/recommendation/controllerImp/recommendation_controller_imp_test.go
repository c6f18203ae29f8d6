package controllerImp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"cropadvisor/database"
	"cropadvisor/entities"
	"cropadvisor/pkg/catalog"
	"cropadvisor/pkg/metrics"
	"cropadvisor/pkg/middleware"
	"cropadvisor/pkg/recommendation/repositoryImp"
	"cropadvisor/pkg/recommendation/serviceImp"
	"cropadvisor/pkg/scoring"
)

const riceBody = `{"rainfall":1500,"humidity":70,"temperature":28,"phosphorus":50,"nitrogen":80}`

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "ctrl.db"))
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	svc := serviceImp.New(scoring.NewRanker(cat), cat, repositoryImp.New(db), log, metrics.New(prometheus.NewRegistry()), serviceImp.Options{})
	h := New(svc, log)

	e := echo.New()
	e.Use(middleware.ClientID())
	g := e.Group("/api/v1")
	g.POST("/recommendations", h.Analyze)
	g.GET("/recommendations/last", h.Last)
	g.GET("/recommendations/last/export", h.Export)
	g.DELETE("/recommendations/last", h.Reset)
	g.GET("/recommendations/sample", h.Sample)
	g.GET("/crops", h.Crops)
	g.GET("/crops/:key", h.Crop)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAnalyze_JSON(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/api/v1/recommendations?uid=u1", riceBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got resultResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Rice", got.Primary.Name)
	assert.Equal(t, "10.0/10", got.Primary.Score)
	require.Len(t, got.Alternatives, 3)
	assert.Equal(t, "Corn (Maize)", got.Alternatives[0].Name)
	assert.Len(t, got.Recommendations, 10)
	assert.Equal(t, 80.0, got.Params.Nitrogen)
	assert.True(t, strings.HasPrefix(got.Advice.SoilAdvice, "Based on your soil conditions: "))
	assert.NotEmpty(t, got.Timestamp)
}

func TestAnalyze_ValidationErrors(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/api/v1/recommendations?uid=u1", `{"rainfall":-1,"humidity":120,"temperature":25}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Rainfall must be between 0-5000mm", body.Errors["rainfall"])
	assert.Contains(t, body.Errors, "humidity")
	assert.NotContains(t, body.Errors, "temperature")

	// nothing was cached
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/v1/recommendations/last?uid=u1", "").Code)
}

func TestAnalyze_BadJSON(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodPost, "/api/v1/recommendations", `{"rainfall":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_HTMLFragment(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/api/v1/recommendations?format=html&uid=u1", riceBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "Rice", strings.TrimSpace(doc.Find(`[data-testid="text-primary-crop"]`).First().Text()))
}

func TestAnalyze_FallbackForHostileConditions(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/api/v1/recommendations?uid=u1", `{"rainfall":5000,"humidity":0,"temperature":-10}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got resultResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Barley", got.Primary.Name)
	assert.True(t, got.Primary.Fallback)
	assert.Empty(t, got.Alternatives)
}

func TestLast_IsScopedPerClient(t *testing.T) {
	e := newServer(t)

	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/v1/recommendations?uid=u1", riceBody).Code)

	rec := do(e, http.MethodGet, "/api/v1/recommendations/last?uid=u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got resultResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Rice", got.Primary.Name)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/v1/recommendations/last?uid=u2", "").Code)
}

func TestReset(t *testing.T) {
	e := newServer(t)
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/v1/recommendations?uid=u1", riceBody).Code)

	assert.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/api/v1/recommendations/last?uid=u1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/v1/recommendations/last?uid=u1", "").Code)
	// resetting twice is fine
	assert.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/api/v1/recommendations/last?uid=u1", "").Code)
}

func TestExport(t *testing.T) {
	e := newServer(t)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/v1/recommendations/last/export?uid=u1", "").Code)

	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/v1/recommendations?uid=u1", riceBody).Code)
	rec := do(e, http.MethodGet, "/api/v1/recommendations/last/export?uid=u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment;")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue("Recommendations", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Rice", name)
}

func TestSampleAndCrops(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodGet, "/api/v1/recommendations/sample", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p entities.ParameterSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, entities.ParameterSet{Rainfall: 1200, Humidity: 65, Temperature: 25, Phosphorus: 45, Nitrogen: 75}, p)

	rec = do(e, http.MethodGet, "/api/v1/crops", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var crops []entities.CropProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &crops))
	require.Len(t, crops, 10)
	assert.Equal(t, "Rice", crops[0].Name)
	assert.Equal(t, "Chickpea", crops[9].Name)
}

func TestCrop(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodGet, "/api/v1/crops/rice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var crop entities.CropProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &crop))
	assert.Equal(t, "Rice", crop.Name)
	assert.Equal(t, 3000.0, crop.Requirements.MaxRainfall)

	rec = do(e, http.MethodGet, "/api/v1/crops/quinoa", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown crop")
}
