package api

import (
	"github.com/rpupo63/bsd-portfolio/config"
	"github.com/rpupo63/bsd-portfolio/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, r router) *routeHandlers {
	return &routeHandlers{
		projectHandler:  newProjectHandler(database.ProjectRepo(), database.SkillRepo()),
		skillHandler:    newSkillHandler(database.SkillRepo()),
		taxonomyHandler: newTaxonomyHandler(database.CategoryRepo(), database.TypeRepo()),
		mediaHandler:    newMediaHandler(database.MediaRepo(), r.mediaStore),
		contactHandler:  newContactHandler(database.ContactRepo(), r.mailer, config.GetList(r.config, "CONTACT_NOTIFY_EMAIL")),
		contentHandler:  newContentHandler(database, r.startupTime),
	}
}
