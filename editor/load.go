package editor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/bsd-portfolio/options"
)

// LoadOptions fetches the skill pool, categories and types concurrently. Nil arguments are skipped.
func LoadOptions(ctx context.Context, skills *SkillsEditor, categories *options.Categories, types *options.Types) error {
	g, ctx := errgroup.WithContext(ctx)

	if skills != nil {
		g.Go(func() error { return skills.Load(ctx) })
	}
	if categories != nil {
		g.Go(func() error { return categories.Refresh(ctx) })
	}
	if types != nil {
		g.Go(func() error { return types.Refresh(ctx) })
	}

	return g.Wait()
}
