package editor

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rpupo63/bsd-portfolio/client"
)

// ProjectBackend is the part of the API the editor writes projects through
type ProjectBackend interface {
	GetProject(ctx context.Context, id uint64) (*client.Project, error)
	CreateProject(ctx context.Context, data any) (*client.Project, error)
	UpdateProject(ctx context.Context, id uint64, data any) (*client.Project, error)
	PatchProject(ctx context.Context, id uint64, partial map[string]any) (*client.Project, error)
}

// Section is a group of form keys saved together
type Section string

const (
	SectionBasic        Section = "basic"
	SectionDetails      Section = "details"
	SectionLinks        Section = "links"
	SectionTechnologies Section = "technologies"
	SectionImages       Section = "images"
	SectionFeatures     Section = "features"
	SectionRoadmap      Section = "roadmap"
	SectionStats        Section = "stats"
	SectionMetrics      Section = "metrics"
	SectionTestimonials Section = "testimonials"
)

var Sections = []Section{
	SectionBasic, SectionDetails, SectionLinks, SectionTechnologies, SectionImages,
	SectionFeatures, SectionRoadmap, SectionStats, SectionMetrics, SectionTestimonials,
}

var sectionLabels = map[Section]string{
	SectionBasic:        "Basic information",
	SectionDetails:      "Project details",
	SectionLinks:        "Links",
	SectionTechnologies: "Technologies",
	SectionImages:       "Images",
	SectionFeatures:     "Features",
	SectionRoadmap:      "Roadmap",
	SectionStats:        "Stats",
	SectionMetrics:      "Metrics",
	SectionTestimonials: "Testimonials",
}

func (s Section) Label() string {
	if label, ok := sectionLabels[s]; ok {
		return label
	}
	return string(s)
}

// payload picks the keys of cleaned data that belong to the section
func (s Section) payload(d ProjectFormData) (map[string]any, bool) {
	switch s {
	case SectionBasic:
		return map[string]any{
			"title":       d.Title,
			"subtitle":    d.Subtitle,
			"category":    d.Category,
			"type":        d.Type,
			"description": d.Description,
		}, true
	case SectionDetails:
		return map[string]any{
			"long_description":           d.LongDescription,
			"timeline":                   d.Timeline,
			"team":                       d.Team,
			"role":                       d.Role,
			"budget":                     d.Budget,
			"client":                     d.Client,
			"cover_image_url":            d.CoverImageURL,
			"highlight":                  d.Highlight,
			"highlight_background_color": d.HighlightBackgroundColor,
		}, true
	case SectionLinks:
		return map[string]any{"links": d.Links}, true
	case SectionTechnologies:
		return map[string]any{"technologies": d.Technologies, "skills": d.Skills}, true
	case SectionImages:
		return map[string]any{"images": d.Images}, true
	case SectionFeatures:
		return map[string]any{"features": d.Features}, true
	case SectionRoadmap:
		return map[string]any{"roadmap": d.Roadmap}, true
	case SectionStats:
		return map[string]any{"stats": d.Stats}, true
	case SectionMetrics:
		return map[string]any{"metrics": d.Metrics}, true
	case SectionTestimonials:
		return map[string]any{"testimonials": d.Testimonials}, true
	}
	return nil, false
}

// collections lists the collection keys a section sends
func (s Section) collections() []string {
	switch s {
	case SectionTechnologies:
		return []string{"technologies", "skills"}
	case SectionImages, SectionFeatures, SectionRoadmap, SectionStats, SectionMetrics, SectionTestimonials:
		return []string{string(s)}
	}
	return nil
}

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the transient message shown after an action
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

func success(message string) Notice { return Notice{Kind: NoticeSuccess, Message: message} }
func failure(message string) Notice { return Notice{Kind: NoticeError, Message: message} }

func (n Notice) OK() bool { return n.Kind == NoticeSuccess }

// SaveResult describes one partial save. Discarded is set when the editor was closed while
// the request was in flight.
type SaveResult struct {
	Section   Section        `json:"section"`
	Notice    Notice         `json:"notice"`
	Payload   map[string]any `json:"payload,omitempty"`
	Dropped   Dropped        `json:"dropped,omitempty"`
	Discarded bool           `json:"discarded,omitempty"`
}

// Editor drives partial saves and full submission of one store against the API
type Editor struct {
	store   *Store
	backend ProjectBackend
	logger  zerolog.Logger

	mu         sync.Mutex
	projectID  uint64
	busy       map[Section]bool
	submitting bool
	closed     bool
}

// NewEditor returns an editor for the project with the given id, or a create form when id is 0
func NewEditor(store *Store, backend ProjectBackend, projectID uint64, logger zerolog.Logger) *Editor {
	return &Editor{
		store:     store,
		backend:   backend,
		logger:    logger.With().Str("component", "editor").Uint64("projectID", projectID).Logger(),
		projectID: projectID,
		busy:      make(map[Section]bool),
	}
}

func (e *Editor) Store() *Store { return e.store }

func (e *Editor) ProjectID() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.projectID
}

// Load fetches the project and hydrates the store. It is a no-op for a create form.
func (e *Editor) Load(ctx context.Context) error {
	id := e.ProjectID()
	if id == 0 {
		return nil
	}
	project, err := e.backend.GetProject(ctx, id)
	if err != nil {
		return err
	}
	return e.store.Hydrate(project)
}

func (e *Editor) Busy(section Section) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy[section]
}

func (e *Editor) Submitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitting
}

// Close marks the editor as gone; results of requests still in flight are discarded
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

// SaveSection sends the complete rows of one section as a merge-patch. It never returns an
// error; failures are reported in the notice and the store is left untouched.
func (e *Editor) SaveSection(ctx context.Context, section Section) SaveResult {
	result := SaveResult{Section: section}
	label := section.Label()

	cleaned, dropped := Clean(e.store.Snapshot())
	payload, ok := section.payload(cleaned)
	if !ok {
		result.Notice = failure("Unknown section: " + string(section))
		return result
	}
	result.Payload = payload
	result.Dropped = Dropped{}
	for _, key := range section.collections() {
		if idx, found := dropped[key]; found {
			result.Dropped[key] = idx
		}
	}

	e.mu.Lock()
	switch {
	case e.closed:
		e.mu.Unlock()
		result.Discarded = true
		return result
	case e.projectID == 0:
		e.mu.Unlock()
		result.Notice = failure("Create the project before saving " + strings.ToLower(label))
		return result
	case e.busy[section]:
		e.mu.Unlock()
		result.Notice = failure(label + " is already being saved")
		return result
	}
	id := e.projectID
	e.busy[section] = true
	e.mu.Unlock()

	logger := e.logger.With().Str("section", string(section)).Logger()
	if len(result.Dropped) > 0 {
		logger.Debug().Interface("dropped", result.Dropped).Msg("Skipping incomplete rows")
	}

	_, err := e.backend.PatchProject(ctx, id, payload)

	e.mu.Lock()
	delete(e.busy, section)
	closed := e.closed
	e.mu.Unlock()

	if closed {
		logger.Debug().Msg("Editor closed before save finished")
		result.Discarded = true
		return result
	}

	if err != nil {
		logger.Error().Err(err).Msg("Failed to save section")
		result.Notice = failure(client.Message(err, "Failed to save "+strings.ToLower(label)))
		return result
	}

	logger.Info().Msg("Section saved")
	result.Notice = success(label + " saved successfully")
	return result
}
