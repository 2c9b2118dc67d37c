package ai_analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dinerozz/datahive-backend/internal/entity"
	service "github.com/dinerozz/datahive-backend/internal/service/ai_analytics"
	"github.com/dinerozz/datahive-backend/internal/shared"
	"github.com/gin-gonic/gin"
)

type fakeBuilder struct {
	views map[string]*entity.DashboardView
}

func (f fakeBuilder) Build(_ context.Context, sel entity.Selection) (*entity.DashboardView, error) {
	v, ok := f.views[sel.WebsiteID]
	if !ok {
		return nil, fmt.Errorf("website %s: %w", sel.WebsiteID, shared.ErrWebsiteNotFound)
	}
	return v, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	builder := fakeBuilder{views: map[string]*entity.DashboardView{
		"1": {Selection: entity.Selection{WebsiteID: "1"}},
	}}
	// no api key: the summary is always the fallback
	summarizer := service.NewAIAnalyticsService(service.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	NewAIAnalyticsHandler(builder, summarizer).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai-analytics/summary", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSummarizeHandler(t *testing.T) {
	r := newRouter()

	w := post(r, `{"websiteId": "1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body)
	}
	var body struct {
		Data entity.SummaryResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Method != service.MethodFallback || body.Data.WebsiteID != "1" {
		t.Errorf("got %+v", body.Data)
	}
	if body.Data.Summary != "Website 1 has no recorded interactions yet." {
		t.Errorf("got summary %q", body.Data.Summary)
	}
}

func TestSummarizeHandler_Errors(t *testing.T) {
	r := newRouter()

	if w := post(r, `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing website id: got %d", w.Code)
	}
	if w := post(r, `{"websiteId": "404"}`); w.Code != http.StatusNotFound {
		t.Errorf("unknown website: got %d", w.Code)
	}
}
