package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every endpoint of the portfolio API
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(RequestLogger(consoleLogger()))

		// Project Handler endpoints
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.getAllProjects())
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/{projectID}", handlers.projectHandler.getProject())
			r.Put("/{projectID}", handlers.projectHandler.replaceProject())
			r.Patch("/{projectID}", handlers.projectHandler.patchProject())
			r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
		})

		// Skill Handler endpoints
		r.Get("/skills", handlers.skillHandler.getAllSkills())
		r.Post("/skills", handlers.skillHandler.createSkill())

		// Taxonomy Handler endpoints
		r.Get("/project-categories", handlers.taxonomyHandler.getCategories())
		r.Post("/project-categories", handlers.taxonomyHandler.createCategory())
		r.Get("/project-types", handlers.taxonomyHandler.getTypes())
		r.Post("/project-types", handlers.taxonomyHandler.createType())

		// Media Handler endpoints
		r.Post("/media/upload", handlers.mediaHandler.uploadMedia())
		r.Get("/media", handlers.mediaHandler.getAllMedia())
		r.Delete("/media/{mediaID}", handlers.mediaHandler.deleteMedia())

		// Contact Handler endpoints
		r.Post("/contact", handlers.contactHandler.submitContact())
		r.Get("/contacts", handlers.contactHandler.getAllContacts())
		r.Patch("/contacts/{contactID}", handlers.contactHandler.updateContact())
		r.Delete("/contacts/{contactID}", handlers.contactHandler.deleteContact())

		// Content Handler endpoints
		r.Get("/content/hero", handlers.contentHandler.getHero())
		r.Get("/content/about", handlers.contentHandler.getAbout())
		r.Get("/content/analytics", handlers.contentHandler.getAnalytics())
		r.Get("/health", handlers.contentHandler.health())
	})
}
