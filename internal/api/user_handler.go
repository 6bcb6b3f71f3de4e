package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/roam-api/internal/api/shared"
	"github.com/phrazzld/roam-api/internal/platform/logger"
	"github.com/phrazzld/roam-api/internal/platform/storage"
	"github.com/phrazzld/roam-api/internal/service"
)

// UserHandler handles signup, login and user listing.
type UserHandler struct {
	userService service.UserService
	images      storage.ImageStore
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userService service.UserService,
	images storage.ImageStore,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		images:      images,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// Signup handles POST /api/users/signup. The body is multipart/form-data
// with name, email and password fields plus an optional avatar image.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := parseMultipart(r); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	req := SignupRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	imagePath := ""
	file, contentType, err := formFile(r, "image")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid image upload")
		return
	}
	if file != nil {
		imagePath, err = h.images.Save(r.Context(), file, contentType)
		drainAndClose(file)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}

	result, err := h.userService.Signup(r.Context(), service.SignupInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		ImagePath: imagePath,
	})
	if err != nil {
		h.removeOrphanedImage(r, imagePath)
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("user signed up", slog.String("user_id", result.User.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID: result.User.ID,
		Email:  result.User.Email,
		Token:  result.Token,
	})
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	result, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("user logged in", slog.String("user_id", result.User.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID: result.User.ID,
		Email:  result.User.Email,
		Token:  result.Token,
	})
}

// ListUsers handles GET /api/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"users": NewUserListResponse(users),
	})
}

// removeOrphanedImage cleans up an uploaded avatar when signup fails
// after the file was already stored.
func (h *UserHandler) removeOrphanedImage(r *http.Request, imagePath string) {
	if imagePath == "" {
		return
	}
	if err := h.images.Remove(r.Context(), imagePath); err != nil {
		h.logger.Warn("failed to remove orphaned signup image",
			slog.String("error", err.Error()),
			slog.String("image_path", imagePath))
	}
}
