package meta_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tripmates/itinerary-backend/internal/app/appconfig"
	"github.com/tripmates/itinerary-backend/internal/controller/meta"
	"github.com/tripmates/itinerary-backend/internal/pkg/bininfo"
	"github.com/tripmates/itinerary-backend/internal/pkg/testdb"
	"github.com/tripmates/itinerary-backend/internal/server/httpserver"
	"github.com/tripmates/itinerary-backend/internal/server/svr"
	"github.com/tripmates/itinerary-backend/internal/service"
)

func get(t *testing.T, health *service.Health, path string) (int, gjson.Result) {
	app := httpserver.Create(&appconfig.Config{})
	_, group := svr.CreateEndpointGroups(app)
	meta.RegisterMeta(group, meta.Meta{HealthService: health})
	meta.RegisterIndex(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, gjson.ParseBytes(body)
}

func TestHealth(t *testing.T) {
	db := testdb.New(t)

	status, body := get(t, service.NewHealth(db, nil, nil), "/api/_/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body.Get("status").String())

	require.NoError(t, db.Close())
	status, body = get(t, service.NewHealth(db, nil, nil), "/api/_/health")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "UNHEALTHY", body.Get("code").String())
}

func TestBinInfo(t *testing.T) {
	status, body := get(t, service.NewHealth(testdb.New(t), nil, nil), "/api/_/bininfo")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, bininfo.Version, body.Get("version").String())
	assert.Equal(t, bininfo.Commit, body.Get("commit").String())

	status, body = get(t, service.NewHealth(testdb.New(t), nil, nil), "/api")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, bininfo.Version, body.Get("version").String())
}
