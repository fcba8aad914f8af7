package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"travelbook/pkg/config"
	"travelbook/pkg/logger"
	"travelbook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type echoHandler struct{}

func (echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/echo", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusAccepted)
	})
	router.GET("/panic", func(http.ResponseWriter, *http.Request, httprouter.Params) {
		panic("kaboom")
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		RequestTimeout:  time.Second,
		MaxRequestSize:  1024,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
		Log:             logger.Discard(),
	}
}

func do(h http.Handler, method, path, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestApplication_Routing(t *testing.T) {
	a := NewApplication(testConfig(), echoHandler{},
		WithReadiness("store", func(context.Context) error { return errors.New("down") }),
	)
	h := a.Handler()

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(h, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusAccepted, do(h, http.MethodPost, "/echo", middleware.ContentTypeJSON).Code)
	assert.Equal(t, http.StatusUnsupportedMediaType, do(h, http.MethodPost, "/echo", middleware.ContentTypeForm).Code)
	assert.Equal(t, http.StatusInternalServerError, do(h, http.MethodGet, "/panic", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/missing", "").Code)
}

func TestApplication_ContentTypes(t *testing.T) {
	a := NewApplication(testConfig(), echoHandler{},
		WithContentTypes(middleware.ContentTypeForm),
	)

	assert.Equal(t, http.StatusAccepted, do(a.Handler(), http.MethodPost, "/echo", middleware.ContentTypeForm).Code)
}

func TestApplication_ClosersRunInReverse(t *testing.T) {
	var order []string
	closeFn := func(name string, err error) func(context.Context) error {
		return func(context.Context) error {
			order = append(order, name)
			return err
		}
	}

	a := NewApplication(testConfig(), echoHandler{},
		WithCloser("store", closeFn("store", nil)),
		WithCloser("events", closeFn("events", errors.New("flush failed"))),
	)
	a.closeResources()

	assert.Equal(t, []string{"events", "store"}, order)
}
