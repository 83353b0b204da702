package api

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the API endpoints under /api.
func RegisterRoutes(r chi.Router, practice *PracticeHandler, cards *CardHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/practice", practice.GetPractice)
		r.Post("/update", practice.Update)
		r.Get("/hint", practice.GetHint)
		r.Get("/progress", practice.GetProgress)
		r.Post("/day/next", practice.NextDay)
		r.Get("/history", practice.GetHistory)
		r.Delete("/history", practice.ClearHistory)

		r.Get("/cards", cards.ListCards)
		r.Post("/cards", cards.CreateCard)
		r.Post("/cards/import", cards.ImportCards)
		r.Put("/cards/{id}", cards.EditCard)
		r.Delete("/cards/{id}", cards.DeleteCard)
	})
}
