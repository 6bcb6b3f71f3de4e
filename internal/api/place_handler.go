package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/roam-api/internal/api/shared"
	"github.com/phrazzld/roam-api/internal/domain"
	"github.com/phrazzld/roam-api/internal/platform/logger"
	"github.com/phrazzld/roam-api/internal/platform/storage"
	"github.com/phrazzld/roam-api/internal/service"
)

// PlaceHandler handles place-related API requests.
type PlaceHandler struct {
	placeService service.PlaceService
	images       storage.ImageStore
	logger       *slog.Logger
}

// NewPlaceHandler creates a new PlaceHandler with the given dependencies.
func NewPlaceHandler(
	placeService service.PlaceService,
	images storage.ImageStore,
	logger *slog.Logger,
) *PlaceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaceHandler{
		placeService: placeService,
		images:       images,
		logger:       logger.With(slog.String("component", "place_handler")),
	}
}

// CreatePlace handles POST /api/places. The body is multipart/form-data
// with title, description and address fields plus the place image.
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	if err := parseMultipart(r); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	req := CreatePlaceRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	file, contentType, err := formFile(r, "image")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid image upload")
		return
	}
	if file == nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "An image is required.")
		return
	}

	imagePath, err := h.images.Save(r.Context(), file, contentType)
	drainAndClose(file)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	place, err := h.placeService.CreatePlace(r.Context(), service.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		ImagePath:   imagePath,
		CreatorID:   userID,
	})
	if err != nil {
		// The image was stored before the place; clean it up so failed
		// creations leave nothing behind.
		h.removeOrphanedImage(r, imagePath)
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("place created",
		slog.String("place_id", place.ID.String()),
		slog.String("creator_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"place": NewPlaceResponse(place),
	})
}

// GetPlace handles GET /api/places/{placeID}.
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	placeID, err := getPathUUID(r, "placeID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	place, err := h.placeService.GetPlace(r.Context(), placeID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"place": NewPlaceResponse(place),
	})
}

// ListPlacesByUser handles GET /api/places/user/{userID}.
func (h *PlaceHandler) ListPlacesByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "userID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	places, err := h.placeService.ListPlacesByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"places": NewPlaceListResponse(places),
	})
}

// UpdatePlace handles PATCH /api/places/{placeID}.
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, placeID, ok := handleUserIDAndPathUUID(w, r, "placeID", log)
	if !ok {
		return
	}

	var req UpdatePlaceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	place, err := h.placeService.UpdatePlace(r.Context(), placeID, userID, service.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("place updated", slog.String("place_id", placeID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"place": NewPlaceResponse(place),
	})
}

// DeletePlace handles DELETE /api/places/{placeID}.
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, placeID, ok := handleUserIDAndPathUUID(w, r, "placeID", log)
	if !ok {
		return
	}

	if err := h.placeService.DeletePlace(r.Context(), placeID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("place deleted", slog.String("place_id", placeID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{Message: "Place deleted!"})
}

// removeOrphanedImage cleans up an uploaded image when place creation
// fails after the file was already stored.
func (h *PlaceHandler) removeOrphanedImage(r *http.Request, imagePath string) {
	if imagePath == "" {
		return
	}
	if err := h.images.Remove(r.Context(), imagePath); err != nil {
		h.logger.Warn("failed to remove orphaned place image",
			slog.String("error", err.Error()),
			slog.String("image_path", imagePath))
	}
}
