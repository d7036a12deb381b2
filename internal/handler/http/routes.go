package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/", h.root)
	router.Get("/api/version", h.getServerVersion)

	// identity provider
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/password/signup", h.passwordSignUp)
		r.Post("/password/login", h.passwordLogIn)
		r.Get("/redirect-result", h.redirectResult)
		r.Get("/{provider}/start", h.federatedStart)
		r.Get("/{provider}/callback", h.federatedCallback)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/owners", h.signUpOwner)
		r.Get("/api/owners/me", h.currentOwner)

		r.Route("/api/entries", func(r chi.Router) {
			r.Get("/", h.listEntries)
			r.Post("/", h.addEntry)
			r.Get("/{entryID}", h.getEntry)
			r.Put("/{entryID}", h.updateEntry)
			r.Delete("/{entryID}", h.deleteEntry)
		})
	})

	// legacy flat collection, no authorization
	router.Group(func(r chi.Router) {
		r.Post("/add", h.legacyAdd)
		r.Get("/userLists", h.legacyList)
		r.Get("/user/{id}", h.legacyGet)
		r.Put("/updateUser/{id}", h.legacyUpdate)
		r.Delete("/delete", h.legacyDelete)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
