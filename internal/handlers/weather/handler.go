package weather

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nazarious-ucu/weather-now/internal/models"
	"github.com/Nazarious-ucu/weather-now/internal/view"
	"github.com/Nazarious-ucu/weather-now/internal/weathercode"
)

// defaultTimeout applies when NewHandler gets a non-positive timeout.
const defaultTimeout = 10 * time.Second

type weatherGetterService interface {
	GetWeather(ctx context.Context, rawInput string) (models.ResolvedWeather, error)
}

type cardRenderer interface {
	Render(w models.ResolvedWeather) view.Card
}

type searchController interface {
	Search(ctx context.Context, rawInput string) (view.State, bool)
	State() view.State
	Clear() view.State
}

type Handler struct {
	service weatherGetterService
	cards   cardRenderer
	view    searchController
	timeout time.Duration
}

// NewHandler bounds every lookup it serves by timeout.
func NewHandler(svc weatherGetterService, cards cardRenderer, ctrl searchController, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Handler{service: svc, cards: cards, view: ctrl, timeout: timeout}
}

// Register mounts the weather routes on r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/weather", h.GetWeather)
	api.GET("/weather/codes", h.GetCodes)
	api.POST("/search", h.Search)
	api.GET("/view", h.GetView)
	api.DELETE("/view", h.ClearView)
}

type weatherResponse struct {
	Weather models.ResolvedWeather `json:"weather"`
	Card    view.Card              `json:"card"`
}

type codeLabel struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

type codesResponse struct {
	Codes    []codeLabel `json:"codes"`
	Fallback string      `json:"fallback"`
}

type searchRequest struct {
	City string `json:"city"`
}

type supersededResponse struct {
	Error string     `json:"error"`
	State view.State `json:"state"`
}

// StatusFor maps a lookup outcome to its HTTP status code.
func StatusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindNone:
		return http.StatusOK
	case models.KindEmptyQuery:
		return http.StatusBadRequest
	case models.KindCityNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// GetWeather resolves ?city= and returns the record with its display card.
func (h *Handler) GetWeather(c *gin.Context) {
	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	data, err := h.service.GetWeather(ctxWithTimeout, c.Query("city"))
	if err != nil {
		kind := models.KindOf(err)
		c.JSON(StatusFor(kind), gin.H{"error": kind.Message()})
		return
	}

	c.JSON(http.StatusOK, weatherResponse{Weather: data, Card: h.cards.Render(data)})
}

func (h *Handler) GetCodes(c *gin.Context) {
	resp := codesResponse{Fallback: weathercode.Fallback}
	for _, code := range weathercode.Codes() {
		resp.Codes = append(resp.Codes, codeLabel{Code: code, Label: weathercode.Label(code)})
	}
	c.JSON(http.StatusOK, resp)
}

// Search drives the shared view state. A search overtaken by a newer one
// answers 409 with the state that is current instead.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	state, applied := h.view.Search(ctxWithTimeout, req.City)
	if !applied {
		c.JSON(http.StatusConflict, supersededResponse{Error: "superseded by a newer search", State: state})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *Handler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.State())
}

func (h *Handler) ClearView(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.Clear())
}
