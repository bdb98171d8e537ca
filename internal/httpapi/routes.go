// Package httpapi serves the REST surface used by the existing web client.
package httpapi

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Routes mounts the waiting pool, room and health endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", h.ServeHealth)

	r.Route("/api", func(r chi.Router) {
		// WAITING POOL
		r.Post("/waitingUser/save", h.HandleSave)
		r.Delete("/waitingUser/matchings/{matchingId}", h.HandleCancel)
		r.Get("/waitingUser/{userId}", h.ServeEntryID)

		// ROOMS
		r.Get("/rooms/{roomId}", h.ServeRoom)
		r.Get("/users/{userId}/rooms", h.ServeUserRooms)
	})

	return r
}
