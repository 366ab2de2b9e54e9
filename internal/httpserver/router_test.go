package httpserver

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testRouter() *gin.Engine {
	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, nil, Deps{})
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestMissingSellerID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/sellers//orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var body struct {
		Error errorBody `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "missing_seller" {
		t.Fatalf("expected missing_seller code, got %q", body.Error.Code)
	}
}
