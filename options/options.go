package options

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/rpupo63/bsd-portfolio/client"
)

const (
	keyImageTypes   = "imageTypes"
	keyCategories   = "categories"
	keyProjectTypes = "projectTypes"
)

// DefaultImageTypes seeds the image type list
var DefaultImageTypes = []string{"screenshot", "mockup", "diagram", "photo", "logo", "other"}

// ImageTypes is a purely local list of image types
type ImageTypes struct {
	repo Repository
	mu   sync.RWMutex
	list []string
}

// NewImageTypes loads the stored list, or the defaults when none was stored
func NewImageTypes(repo Repository) (*ImageTypes, error) {
	list, ok, err := repo.Load(keyImageTypes)
	if err != nil {
		return nil, err
	}
	if !ok {
		list = slices.Clone(DefaultImageTypes)
	}
	return &ImageTypes{repo: repo, list: list}, nil
}

func (t *ImageTypes) List() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.list)
}

// Add appends a new type; blanks and duplicates are ignored
func (t *ImageTypes) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if slices.Contains(t.list, name) {
		return nil
	}
	next := append(slices.Clone(t.list), name)
	if err := t.repo.Save(keyImageTypes, next); err != nil {
		return err
	}
	t.list = next
	return nil
}

// CategorySource is the server side of categories
type CategorySource interface {
	GetProjectCategories(ctx context.Context) ([]client.Category, error)
	CreateProjectCategory(ctx context.Context, name string) (client.Category, error)
}

// Categories merges local additions with the server's categories. The list is kept sorted and
// never loses a value.
type Categories struct {
	repo   Repository
	source CategorySource
	logger zerolog.Logger

	mu   sync.RWMutex
	list []string
}

func NewCategories(repo Repository, source CategorySource, logger zerolog.Logger) (*Categories, error) {
	list, _, err := repo.Load(keyCategories)
	if err != nil {
		return nil, err
	}
	return &Categories{
		repo:   repo,
		source: source,
		logger: logger.With().Str("component", "categories").Logger(),
		list:   union(list),
	}, nil
}

// union merges lists into a sorted set, case-sensitive
func union(lists ...[]string) []string {
	all := lo.Filter(lo.Flatten(lists), func(s string, _ int) bool { return s != "" })
	out := lo.Uniq(all)
	slices.Sort(out)
	return out
}

func (c *Categories) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.list)
}

func (c *Categories) merge(values ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := union(c.list, values)
	if slices.Equal(next, c.list) {
		return nil
	}
	if err := c.repo.Save(keyCategories, next); err != nil {
		return err
	}
	c.list = next
	return nil
}

// Refresh merges the server's categories into the local list
func (c *Categories) Refresh(ctx context.Context) error {
	remote, err := c.source.GetProjectCategories(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to fetch categories")
		return fmt.Errorf("failed to fetch categories: %w", err)
	}
	return c.merge(lo.Map(remote, func(cat client.Category, _ int) string { return cat.Name })...)
}

// Add shows name immediately and creates it on the server. If the server call fails the local
// value stays and the error is returned.
func (c *Categories) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if err := c.merge(name); err != nil {
		return err
	}
	if _, err := c.source.CreateProjectCategory(ctx, name); err != nil {
		c.logger.Warn().Err(err).Str("name", name).Msg("Category kept locally, server create failed")
		return fmt.Errorf("failed to create category %q: %w", name, err)
	}
	return nil
}

// TypeSource is the server side of project types
type TypeSource interface {
	GetProjectTypes(ctx context.Context) ([]client.TypeOption, error)
	CreateProjectType(ctx context.Context, name string) (client.TypeOption, error)
}

// Types caches the server's project types. The server is authoritative: every create is
// followed by a full refetch that replaces the list.
type Types struct {
	repo   Repository
	source TypeSource
	logger zerolog.Logger

	mu   sync.RWMutex
	list []client.TypeOption
	// in-flight request counts; overlapping calls each hold one
	creating   int
	refetching int
}

func NewTypes(repo Repository, source TypeSource, logger zerolog.Logger) (*Types, error) {
	names, _, err := repo.Load(keyProjectTypes)
	if err != nil {
		return nil, err
	}
	return &Types{
		repo:   repo,
		source: source,
		logger: logger.With().Str("component", "types").Logger(),
		list:   lo.Map(names, func(name string, _ int) client.TypeOption { return client.TypeOption{Name: name} }),
	}, nil
}

func (t *Types) List() []client.TypeOption {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.list)
}

func (t *Types) Creating() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.creating > 0
}

func (t *Types) Refetching() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.refetching > 0
}

func (t *Types) track(count *int, delta int) {
	t.mu.Lock()
	*count += delta
	t.mu.Unlock()
}

// Refresh replaces the list with the server's
func (t *Types) Refresh(ctx context.Context) error {
	t.track(&t.refetching, 1)
	defer t.track(&t.refetching, -1)

	remote, err := t.source.GetProjectTypes(ctx)
	if err != nil {
		t.logger.Error().Err(err).Msg("Failed to fetch project types")
		return fmt.Errorf("failed to fetch project types: %w", err)
	}

	names := lo.Map(remote, func(opt client.TypeOption, _ int) string { return opt.Name })
	if err := t.repo.Save(keyProjectTypes, names); err != nil {
		return err
	}

	t.mu.Lock()
	t.list = slices.Clone(remote)
	t.mu.Unlock()
	return nil
}

// Create makes a new type on the server and then refetches the list
func (t *Types) Create(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	t.track(&t.creating, 1)
	_, err := t.source.CreateProjectType(ctx, name)
	t.track(&t.creating, -1)
	if err != nil {
		t.logger.Error().Err(err).Str("name", name).Msg("Failed to create project type")
		return fmt.Errorf("failed to create project type %q: %w", name, err)
	}

	return t.Refresh(ctx)
}
