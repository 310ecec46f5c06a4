package options

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/bsd-portfolio/client"
)

type fakeSource struct {
	mu         sync.Mutex
	categories []client.Category
	types      []client.TypeOption
	created    []string
	fetches    int
	createErr  error
	fetchErr   error

	// during is called while a create is in flight
	during func()
	// fetching is called while a type fetch is in flight
	fetching func()
}

func (f *fakeSource) GetProjectCategories(context.Context) ([]client.Category, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.categories, nil
}

func (f *fakeSource) CreateProjectCategory(_ context.Context, name string) (client.Category, error) {
	f.created = append(f.created, name)
	if f.createErr != nil {
		return client.Category{}, f.createErr
	}
	return client.Category{Name: name}, nil
}

func (f *fakeSource) GetProjectTypes(context.Context) ([]client.TypeOption, error) {
	f.mu.Lock()
	f.fetches++
	hook := f.fetching
	f.fetching = nil
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.types, nil
}

func (f *fakeSource) CreateProjectType(_ context.Context, name string) (client.TypeOption, error) {
	if f.during != nil {
		f.during()
	}
	f.created = append(f.created, name)
	if f.createErr != nil {
		return client.TypeOption{}, f.createErr
	}
	f.types = append(f.types, client.TypeOption{Name: name, Count: 0})
	return client.TypeOption{Name: name}, nil
}

func repositories(t *testing.T) map[string]Repository {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "cache", "options.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Repository{
		"memory": NewMemoryRepository(),
		"sqlite": sqlite,
	}
}

func TestRepository(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := repo.Load("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, repo.Save("categories", []string{"B", "A"}))
			values, ok, err := repo.Load("categories")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []string{"B", "A"}, values)

			require.NoError(t, repo.Save("categories", []string{"C"}))
			values, _, err = repo.Load("categories")
			require.NoError(t, err)
			assert.Equal(t, []string{"C"}, values)

			require.NoError(t, repo.Save("empty", nil))
			values, ok, err = repo.Load("empty")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, values)
		})
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.db")

	repo, err := OpenSQLite(path)
	require.NoError(t, err)
	types, err := NewImageTypes(repo)
	require.NoError(t, err)
	require.NoError(t, types.Add("wireframe"))
	require.NoError(t, repo.Close())

	repo, err = OpenSQLite(path)
	require.NoError(t, err)
	defer repo.Close()
	types, err = NewImageTypes(repo)
	require.NoError(t, err)
	assert.Contains(t, types.List(), "wireframe")
}

func TestImageTypes(t *testing.T) {
	repo := NewMemoryRepository()
	types, err := NewImageTypes(repo)
	require.NoError(t, err)
	assert.Equal(t, DefaultImageTypes, types.List())

	require.NoError(t, types.Add("wireframe"))
	require.NoError(t, types.Add("photo"))
	require.NoError(t, types.Add("  "))
	assert.Equal(t, append(append([]string{}, DefaultImageTypes...), "wireframe"), types.List())

	stored, ok, err := repo.Load(keyImageTypes)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.List(), stored)
}

func TestCategoriesMergeNeverShrinks(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.Save(keyCategories, []string{"mobile", "Web"}))
	source := &fakeSource{categories: []client.Category{{ID: 1, Name: "Web"}, {ID: 2, Name: "API"}, {ID: 3, Name: "web"}}}

	categories, err := NewCategories(repo, source, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"Web", "mobile"}, categories.List())

	require.NoError(t, categories.Refresh(context.Background()))
	assert.Equal(t, []string{"API", "Web", "mobile", "web"}, categories.List())

	source.categories = nil
	require.NoError(t, categories.Refresh(context.Background()))
	assert.Equal(t, []string{"API", "Web", "mobile", "web"}, categories.List())

	stored, _, err := repo.Load(keyCategories)
	require.NoError(t, err)
	assert.Equal(t, categories.List(), stored)
}

func TestCategoriesAdd(t *testing.T) {
	source := &fakeSource{}
	categories, err := NewCategories(NewMemoryRepository(), source, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, categories.Add(context.Background(), "Data"))
	assert.Equal(t, []string{"Data"}, categories.List())
	assert.Equal(t, []string{"Data"}, source.created)

	source.createErr = errors.New("server down")
	err = categories.Add(context.Background(), "Games")
	assert.ErrorIs(t, err, source.createErr)
	assert.Equal(t, []string{"Data", "Games"}, categories.List())
}

func TestCategoriesRefreshFailureKeepsList(t *testing.T) {
	source := &fakeSource{fetchErr: assert.AnError}
	repo := NewMemoryRepository()
	require.NoError(t, repo.Save(keyCategories, []string{"Web"}))
	categories, err := NewCategories(repo, source, zerolog.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, categories.Refresh(context.Background()), assert.AnError)
	assert.Equal(t, []string{"Web"}, categories.List())
}

func TestTypesServerAuthoritative(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.Save(keyProjectTypes, []string{"Stale"}))
	source := &fakeSource{types: []client.TypeOption{{Name: "Client", Count: 2}}}

	types, err := NewTypes(repo, source, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []client.TypeOption{{Name: "Stale"}}, types.List())

	require.NoError(t, types.Refresh(context.Background()))
	assert.Equal(t, []client.TypeOption{{Name: "Client", Count: 2}}, types.List())

	stored, _, err := repo.Load(keyProjectTypes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Client"}, stored)
}

func TestTypesCreateRefetches(t *testing.T) {
	source := &fakeSource{types: []client.TypeOption{{Name: "Client", Count: 2}}}
	types, err := NewTypes(NewMemoryRepository(), source, zerolog.Nop())
	require.NoError(t, err)

	var creating, refetching bool
	source.during = func() {
		creating = types.Creating()
		refetching = types.Refetching()
	}

	require.NoError(t, types.Create(context.Background(), "Personal"))

	assert.True(t, creating)
	assert.False(t, refetching)
	assert.False(t, types.Creating())
	assert.False(t, types.Refetching())
	assert.Equal(t, 1, source.fetches)
	assert.Equal(t, []client.TypeOption{{Name: "Client", Count: 2}, {Name: "Personal"}}, types.List())
}

func TestTypesOverlappingRefreshes(t *testing.T) {
	source := &fakeSource{types: []client.TypeOption{{Name: "Client"}}}
	types, err := NewTypes(NewMemoryRepository(), source, zerolog.Nop())
	require.NoError(t, err)

	var afterInner bool
	source.fetching = func() {
		require.NoError(t, types.Refresh(context.Background()))
		afterInner = types.Refetching()
	}

	require.NoError(t, types.Refresh(context.Background()))
	assert.True(t, afterInner, "outer refresh still in flight")
	assert.False(t, types.Refetching())
	assert.Equal(t, 2, source.fetches)
}

func TestTypesCreateFailure(t *testing.T) {
	source := &fakeSource{createErr: assert.AnError}
	types, err := NewTypes(NewMemoryRepository(), source, zerolog.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, types.Create(context.Background(), "Personal"), assert.AnError)
	assert.Zero(t, source.fetches)
	assert.False(t, types.Creating())
	assert.Empty(t, types.List())
}
