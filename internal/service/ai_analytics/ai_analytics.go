package ai_analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dinerozz/datahive-backend/internal/entity"
)

const (
	defaultBaseURL = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"

	MethodAI       = "ai"
	MethodFallback = "fallback"
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type AIAnalyticsService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

type OpenAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Message Message `json:"message"`
}

// summaryInput is what the model sees of a dashboard view.
type summaryInput struct {
	WebsiteID     string        `json:"websiteId"`
	Category      string        `json:"category,omitempty"`
	Sessions      int           `json:"sessions"`
	Clicks        []labelCount  `json:"clicks"`
	CartAdditions []labelCount  `json:"cartAdditions"`
	Checkout      checkoutInput `json:"checkout"`
}

type labelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type checkoutInput struct {
	Converted            int    `json:"convertedSessions"`
	NotConverted         int    `json:"notConvertedSessions"`
	ClickToCheckoutRatio string `json:"clickToCheckoutRatio"`
}

func NewAIAnalyticsService(cfg Config, logger *slog.Logger) *AIAnalyticsService {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &AIAnalyticsService{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With("component", "ai_analytics"),
		now:    time.Now,
	}
}

// Summarize never fails: without an API key or when the model call fails the
// summary is built locally from the view.
func (s *AIAnalyticsService) Summarize(ctx context.Context, view *entity.DashboardView) *entity.SummaryResponse {
	resp := &entity.SummaryResponse{
		WebsiteID: view.Selection.WebsiteID,
		Timestamp: s.now(),
	}

	if s.apiKey == "" {
		resp.Summary = FallbackSummary(view)
		resp.Method = MethodFallback
		return resp
	}

	text, err := s.summarizeWithModel(ctx, view)
	if err != nil {
		s.logger.Warn("model summary failed, using fallback",
			slog.String("website_id", view.Selection.WebsiteID),
			slog.Any("error", err))
		resp.Summary = FallbackSummary(view)
		resp.Method = MethodFallback
		return resp
	}

	resp.Summary = text
	resp.Method = MethodAI
	resp.Model = s.model
	return resp
}

func (s *AIAnalyticsService) summarizeWithModel(ctx context.Context, view *entity.DashboardView) (string, error) {
	data, err := json.Marshal(buildSummaryInput(view))
	if err != nil {
		return "", err
	}

	request := OpenAIRequest{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: systemPrompt,
			},
			{
				Role:    "user",
				Content: "Please summarize this data: " + string(data),
			},
		},
		Temperature: 0.2,
		MaxTokens:   400,
	}

	text, err := s.callOpenAI(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI: %w", err)
	}

	text = stripMarkdown(text)
	if text == "" {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return text, nil
}

const systemPrompt = `You are a helpful assistant who summarizes and analyzes user interactions with websites. ` +
	`You will be given data about mouse presses on an ecommerce website, and should output a short and succinct ` +
	`analysis of it in plain text. Do NOT use markdown formatting.`

func buildSummaryInput(view *entity.DashboardView) summaryInput {
	in := summaryInput{
		WebsiteID:     view.Selection.WebsiteID,
		Category:      view.Selection.Category,
		Sessions:      view.Sessions,
		Clicks:        toLabelCounts(view.ClickSeries),
		CartAdditions: toLabelCounts(view.ProductSeries),
		Checkout: checkoutInput{
			Converted:            view.Funnel.CheckoutSplit.Converted,
			NotConverted:         view.Funnel.CheckoutSplit.NotConverted,
			ClickToCheckoutRatio: view.Funnel.RatioDisplay,
		},
	}
	return in
}

func toLabelCounts(series entity.AggregatedSeries) []labelCount {
	out := make([]labelCount, 0, len(series))
	for _, e := range series {
		out = append(out, labelCount{Label: e.Label, Count: e.Count})
	}
	return out
}

// Модель иногда всё равно возвращает markdown
func stripMarkdown(text string) string {
	text = strings.ReplaceAll(text, "```", "")
	text = strings.ReplaceAll(text, "**", "")
	return strings.TrimSpace(text)
}

// FallbackSummary describes the view without a language model.
func FallbackSummary(view *entity.DashboardView) string {
	if view.Interactions == 0 {
		return fmt.Sprintf("Website %s has no recorded interactions yet.", view.Selection.WebsiteID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Website %s: %d clicks across %d sessions.", view.Selection.WebsiteID, view.Interactions, view.Sessions)

	if top, ok := topEntry(view.ClickSeries); ok {
		fmt.Fprintf(&b, " Most clicked element: %s (%d).", top.Label, top.Count)
	}

	if top, ok := topEntry(view.ProductSeries); ok {
		if view.Selection.Category != "" {
			fmt.Fprintf(&b, " Most added to cart in %s: %s (%d).", view.Selection.Category, top.Label, top.Count)
		} else {
			fmt.Fprintf(&b, " Most added to cart: %s (%d).", top.Label, top.Count)
		}
	}

	split := view.Funnel.CheckoutSplit
	fmt.Fprintf(&b, " %d of %d sessions reached checkout.", split.Converted, split.Converted+split.NotConverted)
	if view.Funnel.ClickToCheckoutRatio.Defined() {
		fmt.Fprintf(&b, " Converting sessions had %s of the clicks of the others.", view.Funnel.RatioDisplay)
	}

	if view.DecodeFailures > 0 {
		fmt.Fprintf(&b, " %d records could not be decoded.", view.DecodeFailures)
	}
	return b.String()
}

func topEntry(series entity.AggregatedSeries) (entity.SeriesEntry, bool) {
	if len(series) == 0 {
		return entity.SeriesEntry{}, false
	}
	top := series[0]
	for _, e := range series[1:] {
		if e.Count > top.Count {
			top = e
		}
	}
	return top, true
}

func (s *AIAnalyticsService) callOpenAI(ctx context.Context, request OpenAIRequest) (string, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API returned status %d", resp.StatusCode)
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}
