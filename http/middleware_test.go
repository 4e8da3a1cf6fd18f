package http_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sagarc03/kvtodo"
	kvtodohttp "github.com/sagarc03/kvtodo/http"
)

func TestMetrics_Middleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := kvtodohttp.NewMetrics(registry)

	service := new(MockService)
	service.On("List", mock.Anything).Return([]kvtodo.TodoItem{}, nil)
	service.On("Delete", mock.Anything, mock.Anything).Return(nil)

	router := kvtodohttp.NewHandler(&kvtodohttp.HandlerConfig{Metrics: metrics}, service).Router()

	serve(router, http.MethodGet, "/todos", "")
	serve(router, http.MethodGet, "/v1/todos", "")
	serve(router, http.MethodDelete, "/todos/abc", "")
	serve(router, http.MethodDelete, "/todos/def", "")
	serve(router, http.MethodGet, "/nowhere", "")

	// Two list patterns, one delete pattern shared by both ids, one unmatched.
	assert.Equal(t, 4, testutil.CollectAndCount(metrics.RequestsTotal), "ids must not leak into route labels")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RequestsInFlight))

	count, err := testutil.GatherAndCount(registry, "kvtodo_http_request_duration_seconds")
	assert.NoError(t, err)
	assert.Positive(t, count)
}

func TestMetrics_CountsRecoveredPanics(t *testing.T) {
	metrics := kvtodohttp.NewMetrics(prometheus.NewRegistry())

	service := new(MockService)
	service.On("List", mock.Anything).Run(func(mock.Arguments) {
		panic("store exploded")
	}).Return(nil, nil)

	router := kvtodohttp.NewHandler(&kvtodohttp.HandlerConfig{Metrics: metrics}, service).Router()

	rec := serve(router, http.MethodGet, "/todos", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RequestsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/todos/", "500")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RequestsInFlight))
}

func TestMetrics_RegistersNames(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := kvtodohttp.NewMetrics(registry)
	metrics.RequestsTotal.WithLabelValues("GET", "/todos/", "200").Inc()

	families, err := registry.Gather()
	assert.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, strings.Join(names, ","), "kvtodo_http_requests_total")
}
