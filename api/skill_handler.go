package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/bsd-portfolio/database"
	"github.com/rpupo63/bsd-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

// SkillPayload is the body of a create-skill request
type SkillPayload struct {
	Name             string `json:"name" validate:"required,max=100"`
	Category         string `json:"category,omitempty" validate:"max=100"`
	ProficiencyLevel string `json:"proficiency_level,omitempty" validate:"max=50"`
}

// getAllSkills lists the skills that projects may reference
// @Summary Get all skills
// @Tags Skills
// @Produce json
// @Success 200 {array} models.Skill
// @Router /skills [get]
func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skills", "skills", err))
			return
		}
		h.responder.WriteJSON(w, skills)
	}
}

// createSkill adds a skill to the pool
// @Summary Create skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body SkillPayload true "Skill data"
// @Success 201 {object} models.Skill
// @Failure 409 {object} ErrorResponse "Conflict - Skill already exists"
// @Router /skills [post]
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload SkillPayload
		if err := readJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		payload.Name = strings.TrimSpace(payload.Name)
		if err := validateStruct(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill := models.Skill{
			Name:             payload.Name,
			Category:         strings.TrimSpace(payload.Category),
			ProficiencyLevel: payload.ProficiencyLevel,
		}
		if err := h.skillRepo.Add(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create skill", "skill", err))
			return
		}

		h.logger.Info().Uint("skillID", skill.ID).Str("name", skill.Name).Msg("skill created")
		h.responder.WriteStatus(w, http.StatusCreated, skill)
	}
}
