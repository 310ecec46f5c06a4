package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rpupo63/bsd-portfolio/client"
)

var ErrSkillNameRequired = errors.New("skill name is required")

// SkillBackend lists and creates skills
type SkillBackend interface {
	GetSkills(ctx context.Context) ([]client.Skill, error)
	CreateSkill(ctx context.Context, skill client.NewSkill) (client.Skill, error)
}

// SkillsEditor presents technologies and project skills as one list of rows
type SkillsEditor struct {
	store   *Store
	backend SkillBackend
	logger  zerolog.Logger

	mu        sync.RWMutex
	available []client.Skill
}

func NewSkillsEditor(store *Store, backend SkillBackend, logger zerolog.Logger) *SkillsEditor {
	return &SkillsEditor{
		store:   store,
		backend: backend,
		logger:  logger.With().Str("component", "skillsEditor").Logger(),
	}
}

// Load replaces the pool of selectable skills with the server's list
func (e *SkillsEditor) Load(ctx context.Context) error {
	skills, err := e.backend.GetSkills(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("Failed to load skills")
		return fmt.Errorf("failed to load skills: %w", err)
	}

	e.mu.Lock()
	e.available = skills
	e.mu.Unlock()
	return nil
}

// Available returns the selectable skills
func (e *SkillsEditor) Available() []client.Skill {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneSlice(e.available)
}

// Lookup finds a skill of the pool by id
func (e *SkillsEditor) Lookup(skillID uint) (client.Skill, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, s := range e.available {
		if s.ID == skillID {
			return s, true
		}
	}
	return client.Skill{}, false
}

func (e *SkillsEditor) Rows() []SkillRow {
	return e.store.SkillRows().Items()
}

// Index maps each selected skill id to the rows using it
func (e *SkillsEditor) Index() map[uint][]int {
	index := make(map[uint][]int)
	for i, row := range e.Rows() {
		if row.SkillID != 0 {
			index[row.SkillID] = append(index[row.SkillID], i)
		}
	}
	return index
}

// Add inserts a blank row at the top
func (e *SkillsEditor) Add() {
	// inserting at 0 cannot be out of range
	_ = e.store.SkillRows().Insert(0, SkillRow{})
}

// Remove deletes exactly the row at index i, even when other rows share its skill
func (e *SkillsEditor) Remove(i int) error {
	return e.store.SkillRows().Remove(i)
}

func (e *SkillsEditor) Update(i int, patch Patch[SkillRow]) error {
	return e.store.SkillRows().Update(i, patch)
}

// CreateSkill creates a skill on the server, adds it to the pool and selects it into row.
// Rows added or removed while the request is in flight do not redirect the selection;
// if row itself is removed the skill is still created and ErrRowGone is returned.
func (e *SkillsEditor) CreateSkill(ctx context.Context, row int, name, level string) (client.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return client.Skill{}, ErrSkillNameRequired
	}
	tag, err := e.store.tagRow(row)
	if err != nil {
		return client.Skill{}, err
	}

	skill, err := e.backend.CreateSkill(ctx, client.NewSkill{Name: name, ProficiencyLevel: level})
	if err != nil {
		e.logger.Error().Err(err).Str("name", name).Msg("Failed to create skill")
		_ = e.store.untagRow(tag)
		return client.Skill{}, err
	}

	e.mu.Lock()
	e.available = append(e.available, skill)
	e.mu.Unlock()

	patches := []Patch[SkillRow]{SkillRowSkill(skill.ID)}
	if level != "" {
		patches = append(patches, SkillRowLevel(level))
	}
	if err := e.store.untagRow(tag, patches...); err != nil {
		e.logger.Warn().Uint("skillID", skill.ID).Msg("Created skill but its row was removed")
		return skill, err
	}
	return skill, nil
}
