package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/roam-api/internal/api"
	apiMiddleware "github.com/phrazzld/roam-api/internal/api/middleware"
	"github.com/phrazzld/roam-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.CORSMiddleware)

	userHandler := api.NewUserHandler(app.userService, app.images, app.logger)
	placeHandler := api.NewPlaceHandler(app.placeService, app.images, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users/signup", userHandler.Signup)
		r.Post("/users/login", userHandler.Login)
		r.Get("/users", userHandler.ListUsers)

		r.Get("/places/{placeID}", placeHandler.GetPlace)
		r.Get("/places/user/{userID}", placeHandler.ListPlacesByUser)

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/places", placeHandler.CreatePlace)
			r.Patch("/places/{placeID}", placeHandler.UpdatePlace)
			r.Delete("/places/{placeID}", placeHandler.DeletePlace)
		})
	})

	// Uploaded images are served statically when the local backend is used.
	if app.config.Storage.Backend == "local" {
		fileServer := http.StripPrefix(
			"/uploads/images/",
			http.FileServer(http.Dir(app.config.Storage.LocalDir)),
		)
		r.Get("/uploads/images/*", func(w http.ResponseWriter, req *http.Request) {
			if strings.Contains(req.URL.Path, "..") {
				http.NotFound(w, req)
				return
			}
			fileServer.ServeHTTP(w, req)
		})
	}

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithError(w, req, http.StatusNotFound, "Could not find this route")
	})

	return r
}
