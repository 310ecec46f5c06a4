package editor

import "github.com/rpupo63/bsd-portfolio/client"

// Patch is one typed change to an item of a collection
type Patch[T any] interface {
	Apply(*T)
}

type (
	ImageURL     string
	ImageAltText string
	ImageCaption string
	ImageType    string
	ImageOrder   int
)

func (p ImageURL) Apply(img *client.Image)     { img.URL = string(p) }
func (p ImageAltText) Apply(img *client.Image) { img.AltText = string(p) }
func (p ImageCaption) Apply(img *client.Image) { img.Caption = string(p) }
func (p ImageType) Apply(img *client.Image)    { img.Type = string(p) }
func (p ImageOrder) Apply(img *client.Image)   { img.Order = int(p) }

// Feature statuses
const (
	FeatureCompleted  = "completed"
	FeatureInProgress = "in progress"
	FeaturePlanned    = "planned"
)

type (
	FeatureTitle       string
	FeatureDescription string
	FeatureIconKey     string
	FeatureStatus      string
	FeatureImpact      string
	FeatureOrder       int
)

func (p FeatureTitle) Apply(f *client.Feature)       { f.Title = string(p) }
func (p FeatureDescription) Apply(f *client.Feature) { f.Description = string(p) }
func (p FeatureIconKey) Apply(f *client.Feature)     { f.IconKey = string(p) }
func (p FeatureStatus) Apply(f *client.Feature)      { f.Status = string(p) }
func (p FeatureImpact) Apply(f *client.Feature)      { f.Impact = string(p) }
func (p FeatureOrder) Apply(f *client.Feature)       { f.Order = int(p) }

// Roadmap statuses
const (
	PhaseCompleted  = "completed"
	PhaseInProgress = "in progress"
	PhaseNotStarted = "not started"
)

type (
	RoadmapPhaseName    string
	RoadmapDescription  string
	RoadmapDuration     string
	RoadmapStatus       string
	RoadmapDeliverables []string
	RoadmapChallenges   []string
	RoadmapSolutions    []string
	RoadmapOrder        int
)

func (p RoadmapPhaseName) Apply(r *client.RoadmapPhase)   { r.Phase = string(p) }
func (p RoadmapDescription) Apply(r *client.RoadmapPhase) { r.Description = string(p) }
func (p RoadmapDuration) Apply(r *client.RoadmapPhase)    { r.Duration = string(p) }
func (p RoadmapStatus) Apply(r *client.RoadmapPhase)      { r.Status = string(p) }
func (p RoadmapOrder) Apply(r *client.RoadmapPhase)       { r.Order = int(p) }

func (p RoadmapDeliverables) Apply(r *client.RoadmapPhase) {
	r.Deliverables = cloneSlice([]string(p))
}

func (p RoadmapChallenges) Apply(r *client.RoadmapPhase) {
	r.Challenges = cloneSlice([]string(p))
}

func (p RoadmapSolutions) Apply(r *client.RoadmapPhase) {
	r.Solutions = cloneSlice([]string(p))
}

type (
	StatKey    string
	StatValue  string
	StatIsList bool
	StatOrder  int
)

func (p StatKey) Apply(s *client.Stat)    { s.Key = string(p) }
func (p StatValue) Apply(s *client.Stat)  { s.Value = string(p) }
func (p StatIsList) Apply(s *client.Stat) { s.IsListStat = bool(p) }
func (p StatOrder) Apply(s *client.Stat)  { s.Order = int(p) }

type (
	MetricKey   string
	MetricValue string
	MetricOrder int
)

func (p MetricKey) Apply(m *client.Metric)   { m.Key = string(p) }
func (p MetricValue) Apply(m *client.Metric) { m.Value = string(p) }
func (p MetricOrder) Apply(m *client.Metric) { m.Order = int(p) }

const (
	MinRating = 1
	MaxRating = 5
)

type (
	TestimonialName    string
	TestimonialRole    string
	TestimonialCompany string
	TestimonialQuote   string
	TestimonialRating  int
	TestimonialOrder   int
)

func (p TestimonialName) Apply(t *client.Testimonial)    { t.Name = string(p) }
func (p TestimonialRole) Apply(t *client.Testimonial)    { t.Role = string(p) }
func (p TestimonialCompany) Apply(t *client.Testimonial) { t.Company = string(p) }
func (p TestimonialQuote) Apply(t *client.Testimonial)   { t.Quote = string(p) }
func (p TestimonialOrder) Apply(t *client.Testimonial)   { t.Order = int(p) }

// Apply clamps the rating into [MinRating, MaxRating]
func (p TestimonialRating) Apply(t *client.Testimonial) {
	t.Rating = min(max(int(p), MinRating), MaxRating)
}

type (
	SkillRowSkill        uint
	SkillRowLevel        string
	SkillRowContribution string
	SkillRowComplexity   string
)

func (p SkillRowSkill) Apply(r *SkillRow)        { r.SkillID = uint(p) }
func (p SkillRowLevel) Apply(r *SkillRow)        { r.Level = string(p) }
func (p SkillRowContribution) Apply(r *SkillRow) { r.Contribution = string(p) }
func (p SkillRowComplexity) Apply(r *SkillRow)   { r.Complexity = string(p) }
