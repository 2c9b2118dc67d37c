package ai_analytics

import (
	"context"
	"net/http"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/handler/respond"
	"github.com/dinerozz/datahive-backend/internal/model/response/wrapper"
	"github.com/gin-gonic/gin"
)

type DashboardBuilder interface {
	Build(ctx context.Context, sel entity.Selection) (*entity.DashboardView, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, view *entity.DashboardView) *entity.SummaryResponse
}

type AIAnalyticsHandler struct {
	dashboard DashboardBuilder
	aiService Summarizer
}

func NewAIAnalyticsHandler(dashboard DashboardBuilder, aiService Summarizer) *AIAnalyticsHandler {
	return &AIAnalyticsHandler{dashboard: dashboard, aiService: aiService}
}

// Summarize godoc
// @Summary      Summarize website interactions
// @Description  Plain-text analysis of a website's clicks. Falls back to a generated summary when the language model is unavailable.
// @Tags         ai-analytics
// @Accept       json
// @Produce      json
// @Param        request  body      entity.SummaryRequest  true  "Website and optional category"
// @Success      200      {object}  wrapper.ResponseWrapper{data=entity.SummaryResponse}
// @Failure      400      {object}  wrapper.ErrorWrapper
// @Failure      404      {object}  wrapper.ErrorWrapper
// @Failure      429      {object}  wrapper.ErrorWrapper
// @Failure      502      {object}  wrapper.ErrorWrapper
// @Router       /ai-analytics/summary [post]
func (h *AIAnalyticsHandler) Summarize(c *gin.Context) {
	var req entity.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.dashboard.Build(c.Request.Context(), entity.Selection{
		WebsiteID: req.WebsiteID,
		Category:  req.Category,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    h.aiService.Summarize(c.Request.Context(), view),
		Success: true,
	})
}

func (h *AIAnalyticsHandler) RegisterRoutes(router *gin.RouterGroup, middlewares ...gin.HandlerFunc) {
	analytics := router.Group("/ai-analytics", middlewares...)
	{
		analytics.POST("/summary", h.Summarize)
	}
}
