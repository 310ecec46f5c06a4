package editor

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/bsd-portfolio/client"
	"github.com/rpupo63/bsd-portfolio/options"
)

type fakeTaxonomy struct {
	categories []client.Category
	types      []client.TypeOption
	err        error
}

func (f *fakeTaxonomy) GetProjectCategories(context.Context) ([]client.Category, error) {
	return f.categories, f.err
}

func (f *fakeTaxonomy) CreateProjectCategory(_ context.Context, name string) (client.Category, error) {
	return client.Category{Name: name}, f.err
}

func (f *fakeTaxonomy) GetProjectTypes(context.Context) ([]client.TypeOption, error) {
	return f.types, f.err
}

func (f *fakeTaxonomy) CreateProjectType(_ context.Context, name string) (client.TypeOption, error) {
	return client.TypeOption{Name: name}, f.err
}

func TestLoadOptions(t *testing.T) {
	taxonomy := &fakeTaxonomy{
		categories: []client.Category{{ID: 1, Name: "Web"}},
		types:      []client.TypeOption{{Name: "Client", Count: 3}},
	}
	repo := options.NewMemoryRepository()
	categories, err := options.NewCategories(repo, taxonomy, zerolog.Nop())
	require.NoError(t, err)
	types, err := options.NewTypes(repo, taxonomy, zerolog.Nop())
	require.NoError(t, err)
	skills := NewSkillsEditor(NewStore(), &fakeSkills{pool: []client.Skill{{ID: 1, Name: "Go"}}}, zerolog.Nop())

	require.NoError(t, LoadOptions(context.Background(), skills, categories, types))

	assert.Equal(t, []string{"Web"}, categories.List())
	assert.Equal(t, []client.TypeOption{{Name: "Client", Count: 3}}, types.List())
	assert.Len(t, skills.Available(), 1)
}

func TestLoadOptionsReportsFailure(t *testing.T) {
	skills := NewSkillsEditor(NewStore(), &fakeSkills{err: assert.AnError}, zerolog.Nop())

	err := LoadOptions(context.Background(), skills, nil, nil)
	assert.ErrorIs(t, err, assert.AnError)
}
