package http

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/service"
	"github.com/weatherwidget/backend/internal/widget"
)

// SessionCookie carries the widget session id
const SessionCookie = "widget_session"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/widget.html"))

// Handler contains all HTTP handlers
type Handler struct {
	lookups  *service.LookupService
	sessions *widget.Sessions
	assets   widget.Assets
}

// NewHandler creates a new handler
func NewHandler(lookups *service.LookupService, sessions *widget.Sessions, assets widget.Assets) *Handler {
	return &Handler{
		lookups:  lookups,
		sessions: sessions,
		assets:   assets,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	if err := h.lookups.Health(c.Context()); err != nil {
		log.Printf("Health check: %v", err)
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":   status,
		"service":  "weather-widget",
		"sessions": h.sessions.Len(),
	})
}

// Index renders the widget for the caller's session
func (h *Handler) Index(c *fiber.Ctx) error {
	ctrl := h.session(c)
	return h.render(c, ctrl.State())
}

// Lookup handles the search form: the typed city becomes the query and
// is submitted in one step
func (h *Handler) Lookup(c *fiber.Ctx) error {
	ctrl := h.session(c)
	ctrl.SetQuery(c.FormValue("city"))
	return h.render(c, ctrl.Submit(c.Context()))
}

// GetWidget returns the current display state
func (h *Handler) GetWidget(c *fiber.Ctx) error {
	ctrl := h.session(c)
	return c.JSON(widget.View(ctrl.State(), h.assets))
}

type queryRequest struct {
	Query string `json:"query"`
}

// SetQuery records an edit to the search text
func (h *Handler) SetQuery(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	ctrl := h.session(c)
	return c.JSON(widget.View(ctrl.SetQuery(req.Query), h.assets))
}

// Submit looks up the session's current query
func (h *Handler) Submit(c *fiber.Ctx) error {
	ctrl := h.session(c)
	return c.JSON(widget.View(ctrl.Submit(c.Context()), h.assets))
}

// GetWeather is a stateless lookup by city name
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	res := h.lookups.Lookup(c.Context(), c.Query("q"))
	if res.Err != nil {
		return fiber.NewError(statusFor(res.Err), res.Err.Message)
	}

	return c.JSON(domain.WeatherResponse{
		Data:    *res.Record,
		Success: true,
	})
}

// GetHistory returns the most recent lookups
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	data, err := h.lookups.History(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		log.Printf("History query failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch lookup history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// NewConfig returns the fiber settings the handlers depend on. Immutable
// keeps form values, query args and cookies valid after the handler returns,
// since sessions and the lookup log hold on to them.
func NewConfig() fiber.Config {
	return fiber.Config{
		Immutable:    true,
		ErrorHandler: ErrorHandler,
	}
}

// ErrorHandler renders *fiber.Error values as JSON
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

func statusFor(err *domain.LookupError) int {
	switch err.Kind {
	case domain.EmptyQuery:
		return fiber.StatusBadRequest
	case domain.LocationNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}

func (h *Handler) session(c *fiber.Ctx) *widget.Controller {
	id, ctrl := h.sessions.Get(c.Cookies(SessionCookie))
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctrl
}

func (h *Handler) render(c *fiber.Ctx, s widget.State) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, widget.View(s, h.assets)); err != nil {
		log.Printf("Template error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render page")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
