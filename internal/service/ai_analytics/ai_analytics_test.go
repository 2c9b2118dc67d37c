package ai_analytics

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dinerozz/datahive-backend/internal/entity"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func scenarioView() *entity.DashboardView {
	return &entity.DashboardView{
		Selection:    entity.Selection{WebsiteID: "1"},
		Sessions:     2,
		Interactions: 3,
		ClickSeries: entity.AggregatedSeries{
			{Key: "add-to-cart-p1", Label: "Shoes Cart", Count: 2},
			{Key: "checkout-button", Label: "checkout-button", Count: 1},
		},
		ProductSeries: entity.AggregatedSeries{
			{Key: "add-to-cart-p1", Label: "Shoes", Count: 2},
		},
		Funnel: entity.FunnelMetric{
			CheckoutSplit:        entity.CheckoutSplit{Converted: 1, NotConverted: 1},
			ClickToCheckoutRatio: 2,
			RatioDisplay:         "200.00%",
		},
	}
}

func TestSummarize_UsesModel(t *testing.T) {
	var got OpenAIRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(OpenAIResponse{Choices: []Choice{
			{Message: Message{Role: "assistant", Content: "**Shoes** lead the cart additions."}},
		}})
	}))
	defer server.Close()

	svc := NewAIAnalyticsService(Config{APIKey: "sk-test", BaseURL: server.URL}, discard)
	resp := svc.Summarize(context.Background(), scenarioView())

	if resp.Method != MethodAI || resp.Model != "gpt-4o-mini" {
		t.Errorf("got method %q model %q", resp.Method, resp.Model)
	}
	if resp.Summary != "Shoes lead the cart additions." {
		t.Errorf("markdown should be stripped, got %q", resp.Summary)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("got auth header %q", auth)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
	if !strings.Contains(got.Messages[1].Content, `"label":"Shoes Cart","count":2`) {
		t.Errorf("prompt should carry the click series: %s", got.Messages[1].Content)
	}
	if !strings.Contains(got.Messages[1].Content, `"clickToCheckoutRatio":"200.00%"`) {
		t.Errorf("prompt should carry the funnel: %s", got.Messages[1].Content)
	}
}

func TestSummarize_FallbackWithoutKey(t *testing.T) {
	svc := NewAIAnalyticsService(Config{BaseURL: "http://127.0.0.1:1"}, discard)
	resp := svc.Summarize(context.Background(), scenarioView())

	if resp.Method != MethodFallback || resp.Model != "" {
		t.Errorf("got method %q model %q", resp.Method, resp.Model)
	}
	if resp.Summary != FallbackSummary(scenarioView()) {
		t.Errorf("got %q", resp.Summary)
	}
}

func TestSummarize_FallbackOnError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"no choices", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		}},
		{"empty content", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "  "}}]}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := NewAIAnalyticsService(Config{APIKey: "sk-test", BaseURL: server.URL}, discard)
			if resp := svc.Summarize(context.Background(), scenarioView()); resp.Method != MethodFallback {
				t.Errorf("expected fallback, got %+v", resp)
			}
		})
	}
}

func TestFallbackSummary(t *testing.T) {
	got := FallbackSummary(scenarioView())
	want := "Website 1: 3 clicks across 2 sessions. Most clicked element: Shoes Cart (2). " +
		"Most added to cart: Shoes (2). 1 of 2 sessions reached checkout. " +
		"Converting sessions had 200.00% of the clicks of the others."
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}

	empty := &entity.DashboardView{Selection: entity.Selection{WebsiteID: "7"}}
	if got := FallbackSummary(empty); got != "Website 7 has no recorded interactions yet." {
		t.Errorf("got %q", got)
	}

	undefined := scenarioView()
	undefined.Funnel = entity.FunnelMetric{
		CheckoutSplit:        entity.CheckoutSplit{NotConverted: 2},
		ClickToCheckoutRatio: entity.UndefinedRatio(),
		RatioDisplay:         "N/A",
	}
	undefined.DecodeFailures = 1
	got = FallbackSummary(undefined)
	if strings.Contains(got, "Converting sessions") {
		t.Errorf("undefined ratio must not be described: %q", got)
	}
	if !strings.HasSuffix(got, "0 of 2 sessions reached checkout. 1 records could not be decoded.") {
		t.Errorf("got %q", got)
	}
}
