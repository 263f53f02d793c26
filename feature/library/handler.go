package library

import (
	"errors"

	"game-tracker/core/logger"
	"game-tracker/core/upstream"
	"game-tracker/feature/library/models"
	"game-tracker/feature/library/sync"
	"game-tracker/feature/sources"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for user libraries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/library/:user")
	group.Get("/", h.HandleListEntries)
	group.Post("/entries", h.HandleAddEntry)
	group.Post("/sync/:platform", h.HandleSync)
	group.Get("/snapshots/:platform/latest", h.HandleLatestSnapshot)
}

// SyncRequest is the body of a sync call.
type SyncRequest struct {
	AccountID   string `json:"account_id"`
	AccessToken string `json:"access_token"`
	Wishlist    bool   `json:"wishlist"`
}

// HandleListEntries returns the user's library.
// @Summary List Library
// @Description List every game tracked by a user, ordered by name.
// @Tags library
// @Produce json
// @Param user path string true "User ID"
// @Success 200 {array} models.LibraryEntry "Library entries"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/{user} [get]
func (h *Handler) HandleListEntries(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.Entries(c.Context(), c.Params("user"))
	if err != nil {
		l.Error("Failed to list library", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entries)
}

// HandleAddEntry adds a manual entry.
// @Summary Add Manual Entry
// @Description Add a game to the library by hand. The entry keeps source=manual when platforms later link to it.
// @Tags library
// @Accept json
// @Produce json
// @Param user path string true "User ID"
// @Param entry body ManualEntry true "Entry"
// @Success 201 {object} models.LibraryEntry "Created entry"
// @Failure 400 {object} map[string]string "Invalid entry"
// @Failure 409 {object} map[string]string "Already tracked"
// @Router /library/{user}/entries [post]
func (h *Handler) HandleAddEntry(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in ManualEntry
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	entry, err := h.service.AddManual(c.Context(), c.Params("user"), in)
	switch {
	case errors.Is(err, ErrInvalidEntry):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrDuplicateEntry):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to add entry", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleSync imports a platform library.
// @Summary Sync Platform Library
// @Description Fetch the user's library (or wishlist) from a platform, match it against the catalog and merge it. Only a failed fetch fails the call; per-game failures are counted.
// @Tags library
// @Accept json
// @Produce json
// @Param user path string true "User ID"
// @Param platform path string true "Platform (steam, psn, xbox)"
// @Param request body SyncRequest true "Credential"
// @Success 200 {object} models.SyncResult "Sync summary"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]interface{} "Platform fetch failed"
// @Router /library/{user}/sync/{platform} [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	userID := c.Params("user")

	platform, err := models.ParsePlatform(c.Params("platform"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	l.Info("Starting library sync", zap.String("user_id", userID), zap.String("platform", string(platform)), zap.Bool("wishlist", req.Wishlist))

	cred := sources.Credential{AccountID: req.AccountID, AccessToken: req.AccessToken}
	result, err := h.service.Sync(c.Context(), userID, platform, cred, req.Wishlist)
	if err != nil {
		var ue *upstream.Error
		switch {
		case errors.Is(err, sources.ErrNoCredential), errors.Is(err, sync.ErrWishlistUnsupported), errors.Is(err, models.ErrUnknownPlatform):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.As(err, &ue):
			l.Warn("Platform fetch failed", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":     err.Error(),
				"status":    ue.Status,
				"retryable": ue.Retryable,
			})
		default:
			l.Error("Library sync failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(result)
}

// HandleLatestSnapshot returns the last archived raw library.
// @Summary Latest Raw Library Snapshot
// @Description Return the raw platform library archived by the most recent sync.
// @Tags library
// @Produce json
// @Param user path string true "User ID"
// @Param platform path string true "Platform (steam, psn, xbox)"
// @Param wishlist query boolean false "Wishlist snapshot instead of library"
// @Success 200 {object} Snapshot "Snapshot"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /library/{user}/snapshots/{platform}/latest [get]
func (h *Handler) HandleLatestSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	platform, err := models.ParsePlatform(c.Params("platform"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	snap, err := h.service.LatestSnapshot(c.Context(), c.Params("user"), platform, c.Query("wishlist") == "true")
	switch {
	case errors.Is(err, ErrSnapshotNotFound), errors.Is(err, ErrSnapshotsDisabled):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to read snapshot", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(snap)
}
