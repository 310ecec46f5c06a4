package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rpupo63/bsd-portfolio/client"
)

var (
	ErrUnknownField    = errors.New("unknown form field")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrRowBusy         = errors.New("row is already waiting on a new skill")
	ErrRowGone         = errors.New("row was removed")
)

// formState is everything the store guards. Technologies and Skills inside data are unused;
// rows is the single source for both.
type formState struct {
	data ProjectFormData
	rows []SkillRow
}

// Store is the in-memory form of one project. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	state   formState
	lastTag uint64
}

func NewStore() *Store {
	return &Store{state: formState{data: emptyForm(), rows: []SkillRow{}}}
}

// SetField sets one scalar field
func (s *Store) SetField(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := field.ptr(&s.state.data)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	*p = value
	return nil
}

// Field returns the current value of a scalar field
func (s *Store) Field(field Field) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := s.state.data
	p := field.ptr(&data)
	if p == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return *p, nil
}

// SetLink sets one entry of the links object
func (s *Store) SetLink(kind LinkKind, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := kind.ptr(&s.state.data.Links)
	if p == nil {
		return fmt.Errorf("%w: links.%s", ErrUnknownField, kind)
	}
	*p = value
	return nil
}

// Snapshot returns a deep copy of the form with the skill rows projected into
// technologies and skills
func (s *Store) Snapshot() ProjectFormData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state.data.clone()
	out.Technologies, out.Skills = projectRows(s.state.rows)
	return out
}

// ResetForm restores the empty form
func (s *Store) ResetForm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = formState{data: emptyForm(), rows: []SkillRow{}}
}

// LoadFormData shallow-merges the top-level keys of a JSON object over the form. Keys that are
// absent keep their value, unknown keys are ignored, and a null resets the key to its zero value.
// The merge is applied entirely or not at all.
func (s *Store) LoadFormData(partial []byte) error {
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(partial, &patch); err != nil {
		return fmt.Errorf("failed to parse form data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.state.data.clone()
	current.Technologies, current.Skills = projectRows(s.state.rows)

	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &merged); err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}

	for key, value := range patch {
		if _, known := merged[key]; known {
			merged[key] = value
		}
	}

	raw, err = json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to merge form data: %w", err)
	}
	var next ProjectFormData
	if err := json.Unmarshal(raw, &next); err != nil {
		return fmt.Errorf("failed to load form data: %w", err)
	}
	next = normalize(next)

	rows := s.state.rows
	_, hasTechnologies := patch["technologies"]
	_, hasSkills := patch["skills"]
	if hasTechnologies || hasSkills {
		rows = joinRows(next.Technologies, next.Skills)
	}

	next.Technologies, next.Skills = nil, nil
	s.state = formState{data: next, rows: rows}
	return nil
}

// Hydrate loads a project as the server returns it, remapping technology and skill ids to skill_id
func (s *Store) Hydrate(project *client.Project) error {
	if project == nil {
		return errors.New("no project to load")
	}

	data := ProjectFormData{
		Title:                    project.Title,
		Subtitle:                 project.Subtitle,
		Category:                 project.Category,
		Type:                     project.Type,
		Description:              project.Description,
		LongDescription:          project.LongDescription,
		Timeline:                 project.Timeline,
		Team:                     project.Team,
		Role:                     project.Role,
		Budget:                   project.Budget,
		Client:                   project.Client,
		CoverImageURL:            project.CoverImageURL,
		Highlight:                project.Highlight,
		HighlightBackgroundColor: project.HighlightBackgroundColor,
		Links:                    project.Links,
		Images:                   project.Images,
		Features:                 project.Features,
		Roadmap:                  project.Roadmap,
		Stats:                    project.Stats,
		Metrics:                  project.Metrics,
		Testimonials:             project.Testimonials,
	}
	for _, ref := range project.Technologies {
		data.Technologies = append(data.Technologies, client.Technology{SkillID: ref.ID, Level: ref.Level})
	}
	for _, ref := range project.Skills {
		data.Skills = append(data.Skills, client.ProjectSkill{SkillID: ref.ID, Contribution: ref.Contribution, Complexity: ref.Complexity})
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	return s.LoadFormData(raw)
}

func normalize(d ProjectFormData) ProjectFormData {
	empty := emptyForm()
	if d.Technologies == nil {
		d.Technologies = empty.Technologies
	}
	if d.Images == nil {
		d.Images = empty.Images
	}
	if d.Features == nil {
		d.Features = empty.Features
	}
	if d.Roadmap == nil {
		d.Roadmap = empty.Roadmap
	}
	if d.Stats == nil {
		d.Stats = empty.Stats
	}
	if d.Metrics == nil {
		d.Metrics = empty.Metrics
	}
	if d.Testimonials == nil {
		d.Testimonials = empty.Testimonials
	}
	if d.Skills == nil {
		d.Skills = empty.Skills
	}
	return d
}

// Collection is a typed view over one ordered collection of the store
type Collection[T any] struct {
	s    *Store
	slot func(*formState) *[]T
	copy func(T) T
}

func (c Collection[T]) dup(item T) T {
	if c.copy == nil {
		return item
	}
	return c.copy(item)
}

// Add appends item, keeping the existing order
func (c Collection[T]) Add(item T) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	items := c.slot(&c.s.state)
	*items = append(*items, c.dup(item))
}

// Insert places item at index i, shifting later items back
func (c Collection[T]) Insert(i int, item T) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	items := c.slot(&c.s.state)
	if i < 0 || i > len(*items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	next := make([]T, 0, len(*items)+1)
	next = append(next, (*items)[:i]...)
	next = append(next, c.dup(item))
	next = append(next, (*items)[i:]...)
	*items = next
	return nil
}

// Remove deletes the item at index i. The order values of the other items are left alone.
func (c Collection[T]) Remove(i int) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	items := c.slot(&c.s.state)
	if i < 0 || i >= len(*items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	next := make([]T, 0, len(*items)-1)
	next = append(next, (*items)[:i]...)
	next = append(next, (*items)[i+1:]...)
	*items = next
	return nil
}

// Update applies patch to the item at index i
func (c Collection[T]) Update(i int, patch Patch[T]) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	items := c.slot(&c.s.state)
	if i < 0 || i >= len(*items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	patch.Apply(&(*items)[i])
	return nil
}

// Items returns a copy of the collection
func (c Collection[T]) Items() []T {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	items := *c.slot(&c.s.state)
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = c.dup(item)
	}
	return out
}

func (c Collection[T]) Len() int {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	return len(*c.slot(&c.s.state))
}

func (s *Store) Images() Collection[client.Image] {
	return Collection[client.Image]{s: s, slot: func(f *formState) *[]client.Image { return &f.data.Images }}
}

func (s *Store) Features() Collection[client.Feature] {
	return Collection[client.Feature]{s: s, slot: func(f *formState) *[]client.Feature { return &f.data.Features }}
}

func (s *Store) Roadmap() Collection[client.RoadmapPhase] {
	return Collection[client.RoadmapPhase]{
		s:    s,
		slot: func(f *formState) *[]client.RoadmapPhase { return &f.data.Roadmap },
		copy: clonePhase,
	}
}

func (s *Store) Stats() Collection[client.Stat] {
	return Collection[client.Stat]{s: s, slot: func(f *formState) *[]client.Stat { return &f.data.Stats }}
}

func (s *Store) Metrics() Collection[client.Metric] {
	return Collection[client.Metric]{s: s, slot: func(f *formState) *[]client.Metric { return &f.data.Metrics }}
}

func (s *Store) Testimonials() Collection[client.Testimonial] {
	return Collection[client.Testimonial]{s: s, slot: func(f *formState) *[]client.Testimonial { return &f.data.Testimonials }}
}

// SkillRows is the unified technologies and skills collection
func (s *Store) SkillRows() Collection[SkillRow] {
	return Collection[SkillRow]{s: s, slot: func(f *formState) *[]SkillRow { return &f.rows }}
}

// tagRow marks the skill row at index i and returns the tag. The tag follows the row
// when rows are inserted or removed around it.
func (s *Store) tagRow(i int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.state.rows
	if i < 0 || i >= len(rows) {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	if rows[i].tag != 0 {
		return 0, fmt.Errorf("%w: %d", ErrRowBusy, i)
	}
	s.lastTag++
	rows[i].tag = s.lastTag
	return s.lastTag, nil
}

// untagRow applies patches to the row carrying tag and clears the tag
func (s *Store) untagRow(tag uint64, patches ...Patch[SkillRow]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.rows {
		row := &s.state.rows[i]
		if row.tag != tag {
			continue
		}
		for _, patch := range patches {
			patch.Apply(row)
		}
		row.tag = 0
		return nil
	}
	return ErrRowGone
}
