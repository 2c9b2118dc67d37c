package dashboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/handler/respond"
	"github.com/dinerozz/datahive-backend/internal/model/response"
	"github.com/dinerozz/datahive-backend/internal/model/response/wrapper"
	"github.com/dinerozz/datahive-backend/middleware"
	"github.com/gin-gonic/gin"
)

const defaultPerPage = 50

type DashboardService interface {
	Websites(ctx context.Context) ([]string, error)
	Categories() []string
	Build(ctx context.Context, sel entity.Selection) (*entity.DashboardView, error)
	Select(ctx context.Context, userID string, sel entity.Selection) (*entity.DashboardView, error)
	Current(userID string) (*entity.DashboardView, error)
}

type DashboardHandler struct {
	srv DashboardService
}

func NewDashboardHandler(srv DashboardService) *DashboardHandler {
	return &DashboardHandler{srv: srv}
}

// GetWebsites godoc
// @Summary      List registered websites
// @Description  Website ids registered on the ledger node
// @Tags         dashboard
// @Produce      json
// @Param        page      query     int  false  "Page number"
// @Param        per_page  query     int  false  "Items per page"
// @Success      200  {object}  wrapper.PaginatedResponseWrapper{data=entity.WebsitesResponse}
// @Failure      401  {object}  wrapper.ErrorWrapper
// @Failure      502  {object}  wrapper.ErrorWrapper
// @Router       /dashboard/websites [get]
func (h *DashboardHandler) GetWebsites(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))

	websites, err := h.srv.Websites(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	meta := response.NewPaginationMeta(page, perPage, len(websites))
	start, end := meta.Bounds()

	c.JSON(http.StatusOK, wrapper.PaginatedResponseWrapper{
		Data:    entity.WebsitesResponse{Websites: websites[start:end]},
		Meta:    meta,
		Success: true,
	})
}

// GetCategories godoc
// @Summary      List product categories
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper{data=[]string}
// @Router       /dashboard/categories [get]
func (h *DashboardHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: h.srv.Categories(), Success: true})
}

// GetWebsiteDashboard godoc
// @Summary      Build the dashboard of a website
// @Description  Decodes the website's click records and returns chart series and funnel metrics
// @Tags         dashboard
// @Produce      json
// @Param        id        path      string  true   "Website id"
// @Param        category  query     string  false  "Product category filter"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.DashboardView}
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Failure      502  {object}  wrapper.ErrorWrapper
// @Router       /dashboard/websites/{id} [get]
func (h *DashboardHandler) GetWebsiteDashboard(c *gin.Context) {
	sel := entity.Selection{
		WebsiteID: c.Param("id"),
		Category:  c.Query("category"),
	}

	view, err := h.srv.Build(c.Request.Context(), sel)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: view, Success: true})
}

// PutSelection godoc
// @Summary      Select website and category
// @Description  Makes the selection current for the user and returns its view. A newer selection made meanwhile wins (409).
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        selection  body      entity.Selection  true  "Selection"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.DashboardView}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Failure      409  {object}  wrapper.ErrorWrapper
// @Failure      502  {object}  wrapper.ErrorWrapper
// @Router       /dashboard/selection [put]
func (h *DashboardHandler) PutSelection(c *gin.Context) {
	var sel entity.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		respond.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.srv.Select(c.Request.Context(), c.GetString(middleware.UserIDKey), sel)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: view, Success: true})
}

// GetSelection godoc
// @Summary      Current dashboard view
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.DashboardView}
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Router       /dashboard/selection [get]
func (h *DashboardHandler) GetSelection(c *gin.Context) {
	view, err := h.srv.Current(c.GetString(middleware.UserIDKey))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: view, Success: true})
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/websites", h.GetWebsites)
		dashboard.GET("/websites/:id", h.GetWebsiteDashboard)
		dashboard.GET("/categories", h.GetCategories)
		dashboard.PUT("/selection", h.PutSelection)
		dashboard.GET("/selection", h.GetSelection)
	}
}
