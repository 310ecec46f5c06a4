package editor

import (
	"strings"

	"github.com/samber/lo"

	"github.com/rpupo63/bsd-portfolio/client"
)

// Dropped lists, per collection key, the indexes of rows left out because they were incomplete
type Dropped map[string][]int

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func CompleteImage(img client.Image) bool {
	return filled(img.URL, img.Caption, img.Type)
}

func CompleteFeature(f client.Feature) bool {
	return filled(f.Title, f.Description)
}

func CompletePhase(p client.RoadmapPhase) bool {
	return filled(p.Phase, p.Description, p.Duration, p.Status)
}

func CompleteStat(s client.Stat) bool {
	return filled(s.Key, s.Value)
}

func CompleteMetric(m client.Metric) bool {
	return filled(m.Key, m.Value)
}

func CompleteTestimonial(t client.Testimonial) bool {
	return filled(t.Name, t.Role, t.Company, t.Quote) && validRating(t.Rating)
}

func CompleteTechnology(t client.Technology) bool {
	return t.SkillID > 0
}

func CompleteProjectSkill(s client.ProjectSkill) bool {
	return s.SkillID > 0
}

// keep filters items by complete and records the indexes it dropped under key
func keep[T any](dropped Dropped, key string, items []T, complete func(T) bool) []T {
	kept := lo.Filter(items, func(item T, _ int) bool { return complete(item) })
	for i, item := range items {
		if !complete(item) {
			dropped[key] = append(dropped[key], i)
		}
	}
	return kept
}

// cleanPhase drops blank entries from the string lists of a phase
func cleanPhase(p client.RoadmapPhase) client.RoadmapPhase {
	nonBlank := func(s string, _ int) bool { return strings.TrimSpace(s) != "" }
	p.Deliverables = lo.Filter(p.Deliverables, nonBlank)
	p.Challenges = lo.Filter(p.Challenges, nonBlank)
	p.Solutions = lo.Filter(p.Solutions, nonBlank)
	return p
}

// Clean returns a copy of data holding only complete rows, and the rows it left out
func Clean(data ProjectFormData) (ProjectFormData, Dropped) {
	dropped := Dropped{}
	out := data.clone()

	out.Technologies = keep(dropped, "technologies", out.Technologies, CompleteTechnology)
	out.Skills = keep(dropped, "skills", out.Skills, CompleteProjectSkill)
	out.Images = keep(dropped, "images", out.Images, CompleteImage)
	out.Features = keep(dropped, "features", out.Features, CompleteFeature)
	out.Roadmap = lo.Map(keep(dropped, "roadmap", out.Roadmap, CompletePhase), func(p client.RoadmapPhase, _ int) client.RoadmapPhase {
		return cleanPhase(p)
	})
	out.Stats = keep(dropped, "stats", out.Stats, CompleteStat)
	out.Metrics = keep(dropped, "metrics", out.Metrics, CompleteMetric)
	out.Testimonials = keep(dropped, "testimonials", out.Testimonials, CompleteTestimonial)

	return out, dropped
}
