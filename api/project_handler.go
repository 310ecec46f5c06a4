package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/bsd-portfolio/database"
	"github.com/rpupo63/bsd-portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	skillRepo   *database.SkillRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo, skillRepo *database.SkillRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		skillRepo:   skillRepo,
	}
}

// getAllProjects retrieves all projects with their sections
// @Summary Get all projects
// @Tags Projects
// @Produce json
// @Success 200 {object} ProjectCollection "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		response := ProjectCollection{Projects: make([]ProjectResponse, 0, len(projects))}
		for _, project := range projects {
			response.Projects = append(response.Projects, newProjectResponse(project))
		}
		response.Total = len(response.Projects)

		h.responder.WriteJSON(w, response)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} ProjectResponse "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uintParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		h.responder.WriteJSON(w, newProjectResponse(project))
	}
}

// createProject creates a new project with all of its sections
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body ProjectPayload true "Project data"
// @Success 201 {object} ProjectResponse "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ProjectPayload
		if err := readJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.checkPayload(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := payload.model()
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapTransactionError("create project", "project", err))
			return
		}

		created, err := h.projectRepo.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created project", "project", err))
			return
		}

		h.logger.Info().Uint("projectID", created.ID).Str("title", created.Title).Msg("project created")
		h.responder.WriteStatus(w, http.StatusCreated, newProjectResponse(created))
	}
}

// replaceProject overwrites an existing project, including every section
// @Summary Replace project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Param project body ProjectPayload true "Full project data"
// @Success 200 {object} ProjectResponse "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [put]
func (h projectHandler) replaceProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uintParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload ProjectPayload
		if err := readJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.checkPayload(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.requireProject(projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := payload.model()
		project.ID = projectID
		if err := h.projectRepo.Replace(&project); err != nil {
			h.responder.WriteError(w, wrapTransactionError("update project", "project", err))
			return
		}

		h.writeProject(w, projectID)
	}
}

// patchProject applies a merge-patch: only top-level keys present in the body are written.
// A collection key replaces that whole collection.
// @Summary Patch project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} ProjectResponse "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [patch]
func (h projectHandler) patchProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uintParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var body map[string]json.RawMessage
		if err := readJSON(w, r, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		changes, err := decodeProjectChanges(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.checkSkills(changedSkillIDs(changes)); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.requireProject(projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !changes.Empty() {
			if err := h.projectRepo.Patch(projectID, changes); err != nil {
				h.responder.WriteError(w, wrapTransactionError("patch project", "project", err))
				return
			}
		}

		h.writeProject(w, projectID)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} Envelope "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uintParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.requireProject(projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteMessage(w, "project deleted successfully")
	}
}

func (h projectHandler) writeProject(w http.ResponseWriter, projectID uint) {
	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
		return
	}
	h.responder.WriteJSON(w, newProjectResponse(project))
}

func (h projectHandler) requireProject(projectID uint) error {
	exists, err := h.projectRepo.Exists(projectID)
	if err != nil {
		return wrapDatabaseError("find project", "project", err)
	}
	if !exists {
		return errs.NewNotFound("project")
	}
	return nil
}

func (h projectHandler) checkPayload(payload ProjectPayload) error {
	if err := validateStruct(payload); err != nil {
		return err
	}

	ids := make([]uint, 0, len(payload.Technologies)+len(payload.Skills))
	for _, t := range payload.Technologies {
		ids = append(ids, t.SkillID)
	}
	for _, s := range payload.Skills {
		ids = append(ids, s.SkillID)
	}
	return h.checkSkills(ids)
}

// checkSkills rejects references to skills that do not exist
func (h projectHandler) checkSkills(ids []uint) error {
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return nil
	}
	count, err := h.skillRepo.CountByIDs(unique)
	if err != nil {
		return wrapDatabaseError("find skills", "skills", err)
	}
	if count != int64(len(unique)) {
		return errs.NewInvalidFieldError("skill_id", "references an unknown skill")
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func changedSkillIDs(changes database.ProjectChanges) []uint {
	var ids []uint
	if changes.Technologies != nil {
		for _, t := range *changes.Technologies {
			ids = append(ids, t.SkillID)
		}
	}
	if changes.Skills != nil {
		for _, s := range *changes.Skills {
			ids = append(ids, s.SkillID)
		}
	}
	return ids
}

// decodeProjectChanges turns a merge-patch body into the columns and sections it touches
func decodeProjectChanges(body map[string]json.RawMessage) (database.ProjectChanges, error) {
	changes := database.ProjectChanges{Columns: map[string]any{}}

	for key, raw := range body {
		if col, ok := scalarColumns[key]; ok {
			var value *string
			if err := json.Unmarshal(raw, &value); err != nil {
				return changes, errs.NewInvalidFieldError(key, "must be a string")
			}
			text := ""
			if value != nil {
				text = *value
			}
			if col.required || col.url {
				text = strings.TrimSpace(text)
			}
			if col.required && text == "" {
				return changes, errs.NewMissingRequiredFieldError(key)
			}
			if col.url && text != "" {
				if err := requestValidator.Var(text, "http_url"); err != nil {
					return changes, errs.NewInvalidFieldError(key, "must be a valid http(s) URL")
				}
			}
			changes.Columns[col.column] = text
			continue
		}

		var err error
		switch key {
		case "id", "created_at", "updated_at":
			// read-only
		case "links":
			var links LinksPayload
			if err = decodeSection(key, raw, &links); err == nil {
				if err = validationError(requestValidator.Struct(links), "links_"); err == nil {
					changes.Columns["links"] = datatypes.NewJSONType(links.model())
				}
			}
		case "technologies":
			changes.Technologies, err = patchSection(key, raw, technologyModels)
		case "images":
			changes.Images, err = patchSection(key, raw, imageModels)
		case "features":
			changes.Features, err = patchSection(key, raw, featureModels)
		case "roadmap":
			changes.Roadmap, err = patchSection(key, raw, roadmapModels)
		case "stats":
			changes.Stats, err = patchSection(key, raw, statModels)
		case "metrics":
			changes.Metrics, err = patchSection(key, raw, metricModels)
		case "testimonials":
			changes.Testimonials, err = patchSection(key, raw, testimonialModels)
		case "skills":
			changes.Skills, err = patchSection(key, raw, projectSkillModels)
		default:
			err = errs.NewInvalidFieldError(key, "unknown project field")
		}
		if err != nil {
			return changes, err
		}
	}
	return changes, nil
}

// patchSection decodes and validates one collection of a patch body; null clears the collection
func patchSection[P any, M any](key string, raw json.RawMessage, convert func([]P) []M) (*[]M, error) {
	var rows []P
	if err := decodeSection(key, raw, &rows); err != nil {
		return nil, err
	}
	if err := validateRows(key, rows); err != nil {
		return nil, err
	}
	out := convert(rows)
	return &out, nil
}

func decodeSection(key string, raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewMalformedPayloadError(key, err)
	}
	return nil
}

// uintParam parses a numeric path parameter
func uintParam(r *http.Request, name string) (uint, error) {
	value := chi.URLParam(r, name)
	if value == "" {
		return 0, errs.NewMissingRequiredFieldError(name)
	}
	id, err := strconv.ParseUint(value, 10, 0)
	if err != nil || id == 0 {
		return 0, errs.NewBadRequestError("invalid " + name)
	}
	return uint(id), nil
}
