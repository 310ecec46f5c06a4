package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/bsd-portfolio/database"
	"github.com/rpupo63/bsd-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type taxonomyHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
	typeRepo     *database.TypeRepo
}

func newTaxonomyHandler(categoryRepo *database.CategoryRepo, typeRepo *database.TypeRepo) taxonomyHandler {
	logger := log.With().Str("handlerName", "taxonomyHandler").Logger()

	return taxonomyHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		typeRepo:     typeRepo,
	}
}

// NamePayload is the body of category and type create requests
type NamePayload struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h taxonomyHandler) readName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var payload NamePayload
	if err := readJSON(w, r, &payload); err != nil {
		h.responder.WriteError(w, err)
		return "", false
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if err := validateStruct(payload); err != nil {
		h.responder.WriteError(w, err)
		return "", false
	}
	return payload.Name, true
}

// getCategories lists declared categories together with those already used by projects
// @Summary Get project categories
// @Tags Taxonomy
// @Produce json
// @Success 200 {array} models.ProjectCategory
// @Router /project-categories [get]
func (h taxonomyHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "project categories", err))
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// createCategory declares a category; an existing name is returned as is
// @Summary Create project category
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param category body NamePayload true "Category name"
// @Success 201 {object} models.ProjectCategory
// @Router /project-categories [post]
func (h taxonomyHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := h.readName(w, r)
		if !ok {
			return
		}

		category := models.ProjectCategory{Name: name}
		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create category", "project category", err))
			return
		}
		h.responder.WriteStatus(w, http.StatusCreated, category)
	}
}

// getTypes lists project types with the number of projects of each
// @Summary Get project types
// @Tags Taxonomy
// @Produce json
// @Success 200 {array} models.ProjectTypeCount
// @Router /project-types [get]
func (h taxonomyHandler) getTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := h.typeRepo.FindAllWithCounts()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find types", "project types", err))
			return
		}
		if types == nil {
			types = []models.ProjectTypeCount{}
		}
		h.responder.WriteJSON(w, types)
	}
}

// createType declares a project type
// @Summary Create project type
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param type body NamePayload true "Type name"
// @Success 201 {object} NamePayload
// @Router /project-types [post]
func (h taxonomyHandler) createType() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := h.readName(w, r)
		if !ok {
			return
		}

		if err := h.typeRepo.Add(&models.ProjectType{Name: name}); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create type", "project type", err))
			return
		}
		h.logger.Info().Str("type", name).Msg("project type declared")
		h.responder.WriteStatus(w, http.StatusCreated, NamePayload{Name: name})
	}
}
