package editor

import (
	"context"
	"time"

	"github.com/rpupo63/bsd-portfolio/client"
)

const (
	// ListingPath is where a successful edit sends the user
	ListingPath    = "/admin/projects"
	RedirectDelay  = 1500 * time.Millisecond
	msgFixErrors   = "Please fix the errors below"
	msgCreated     = "Project created successfully"
	msgUpdated     = "Project updated successfully"
	msgCreateError = "Failed to create project"
	msgUpdateError = "Failed to update project"
)

// SubmitResult describes one full submission
type SubmitResult struct {
	Notice        Notice            `json:"notice"`
	Errors        map[string]string `json:"errors,omitempty"`
	Project       *client.Project   `json:"project,omitempty"`
	Created       bool              `json:"created,omitempty"`
	Dropped       Dropped           `json:"dropped,omitempty"`
	RedirectTo    string            `json:"redirect_to,omitempty"`
	RedirectAfter time.Duration     `json:"redirect_after,omitempty"`
	Discarded     bool              `json:"discarded,omitempty"`
}

// Submit validates the whole form and, when it is valid, creates or replaces the project with
// every complete row. A failed submission leaves the store as it was.
func (e *Editor) Submit(ctx context.Context) SubmitResult {
	snapshot := e.store.Snapshot()

	validation := Validate(snapshot)
	if !validation.Valid {
		return SubmitResult{Notice: failure(msgFixErrors), Errors: validation.Errors}
	}

	cleaned, dropped := Clean(snapshot)
	result := SubmitResult{Dropped: dropped}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		result.Discarded = true
		return result
	}
	if e.submitting {
		e.mu.Unlock()
		result.Notice = failure("Project is already being saved")
		return result
	}
	id := e.projectID
	e.submitting = true
	e.mu.Unlock()

	var (
		project *client.Project
		err     error
	)
	if id == 0 {
		project, err = e.backend.CreateProject(ctx, cleaned)
	} else {
		project, err = e.backend.UpdateProject(ctx, id, cleaned)
	}

	e.mu.Lock()
	e.submitting = false
	closed := e.closed
	e.mu.Unlock()

	if closed {
		result.Discarded = true
		return result
	}

	if err != nil {
		fallback := msgUpdateError
		if id == 0 {
			fallback = msgCreateError
		}
		e.logger.Error().Err(err).Msg("Failed to submit project")
		result.Notice = failure(client.Message(err, fallback))
		return result
	}

	result.Project = project
	if id == 0 {
		e.store.ResetForm()
		e.logger.Info().Msg("Project created")
		result.Created = true
		result.Notice = success(msgCreated)
		return result
	}

	e.logger.Info().Msg("Project updated")
	result.Notice = success(msgUpdated)
	result.RedirectTo = ListingPath
	result.RedirectAfter = RedirectDelay
	return result
}
