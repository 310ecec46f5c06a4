package editor

import (
	"context"
	"sync"

	"github.com/rpupo63/bsd-portfolio/client"
)

type patchCall struct {
	id      uint64
	partial map[string]any
}

// fakeBackend records project writes. When started is set, PatchProject signals it and waits
// for release before answering.
type fakeBackend struct {
	mu       sync.Mutex
	patches  []patchCall
	creates  []any
	updates  []patchCall
	project  *client.Project
	getErr   error
	patchErr error
	writeErr error

	started chan struct{}
	release chan struct{}
}

func (f *fakeBackend) GetProject(_ context.Context, id uint64) (*client.Project, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.project, nil
}

func (f *fakeBackend) CreateProject(_ context.Context, data any) (*client.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, data)
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &client.Project{ID: 1}, nil
}

func (f *fakeBackend) UpdateProject(_ context.Context, id uint64, data any) (*client.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, patchCall{id: id, partial: map[string]any{"data": data}})
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &client.Project{ID: id}, nil
}

func (f *fakeBackend) PatchProject(_ context.Context, id uint64, partial map[string]any) (*client.Project, error) {
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patchCall{id: id, partial: partial})
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	return &client.Project{ID: id}, nil
}

func (f *fakeBackend) calls() (patches, creates, updates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.patches), len(f.creates), len(f.updates)
}
