package status

import (
	"errors"
	"net/url"

	"mod-manager/core/logger"
	"mod-manager/core/store"
	"mod-manager/feature/history"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the status API.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/mods", h.HandleListMods)
	app.Get("/mods/:name", h.HandleGetMod)
	app.Get("/search", h.HandleSearch)
	app.Get("/runs", h.HandleListRuns)
	app.Get("/runs/:id", h.HandleGetRun)
}

// HandleListMods lists manifest entries.
// @Summary List Mods
// @Description List manifest entries, optionally filtered by a fuzzy query.
// @Tags mods
// @Produce json
// @Param q query string false "Fuzzy filter"
// @Success 200 {array} Mod
// @Router /mods [get]
func (h *Handler) HandleListMods(c *fiber.Ctx) error {
	mods, err := h.service.ListMods(c.UserContext(), c.Query("q"))
	if err != nil {
		return h.fail(c, "List mods failed", err)
	}
	return c.JSON(mods)
}

// HandleGetMod returns one manifest entry.
// @Summary Get Mod
// @Description Get a manifest entry by exact name, falling back to the most similar name.
// @Tags mods
// @Produce json
// @Param name path string true "Mod name"
// @Success 200 {object} Mod
// @Failure 404 {object} map[string]string
// @Router /mods/{name} [get]
func (h *Handler) HandleGetMod(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid mod name"})
	}

	mod, score, err := h.service.GetMod(c.UserContext(), name)
	if err != nil {
		return h.fail(c, "Get mod failed", err)
	}
	return c.JSON(fiber.Map{
		"mod":   mod,
		"score": score,
	})
}

// HandleSearch searches the manifest and the cached catalog.
// @Summary Search
// @Tags mods
// @Produce json
// @Param q query string true "Query"
// @Success 200 {object} SearchResult
// @Router /search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing query parameter q"})
	}
	result, err := h.service.Search(c.UserContext(), q)
	if err != nil {
		return h.fail(c, "Search failed", err)
	}
	return c.JSON(result)
}

// HandleListRuns lists recent runs.
// @Summary List Runs
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum runs" default(10)
// @Success 200 {array} history.RunRecord
// @Failure 503 {object} map[string]string
// @Router /runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	runs, err := h.service.Runs(c.UserContext(), c.QueryInt("limit", 10))
	if err != nil {
		return h.fail(c, "List runs failed", err)
	}
	return c.JSON(runs)
}

// HandleGetRun returns one run.
// @Summary Get Run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} history.RunRecord
// @Router /runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	run, err := h.service.Run(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Get run failed", err)
	}
	return c.JSON(run)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, history.ErrNotFound), errors.Is(err, store.ErrNotExist):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrHistoryDisabled):
		status = fiber.StatusServiceUnavailable
	default:
		logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
