package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/bsd-portfolio/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// contentStats supplies the live numbers of the analytics page
type contentStats interface {
	Counts() (database.Counts, error)
}

type contentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	stats       contentStats
	startupTime time.Time
}

func newContentHandler(stats contentStats, startupTime time.Time) contentHandler {
	logger := log.With().Str("handlerName", "contentHandler").Logger()

	return contentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		stats:       stats,
		startupTime: startupTime,
	}
}

// HeroContent is the landing section of the site
type HeroContent struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	CTAs        []CTA    `json:"ctas"`
	Keywords    []string `json:"keywords"`
}

type CTA struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// AboutContent is the about section of the site
type AboutContent struct {
	Headline   string       `json:"headline"`
	Paragraphs []string     `json:"paragraphs"`
	Facts      []AboutFact  `json:"facts"`
	Timeline   []AboutEvent `json:"timeline"`
}

type AboutFact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type AboutEvent struct {
	Year  string `json:"year"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AnalyticsContent mixes mock traffic figures with live content counts
type AnalyticsContent struct {
	Visitors      []DailyVisits   `json:"visitors"`
	TopPages      []PageViews     `json:"top_pages"`
	Counts        database.Counts `json:"counts"`
	UptimeSeconds int64           `json:"uptime_seconds"`
}

type DailyVisits struct {
	Day    string `json:"day"`
	Visits int    `json:"visits"`
}

type PageViews struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

var heroContent = HeroContent{
	Name:        "The Agency",
	Title:       "Software Detective",
	Tagline:     "Every bug leaves a trail.",
	Description: "Full stack engineer who treats every system as a case file: gather evidence, follow the leads, close the case.",
	CTAs: []CTA{
		{Label: "Open the case files", Href: "#projects"},
		{Label: "File a report", Href: "#contact"},
	},
	Keywords: []string{"Go", "TypeScript", "Distributed systems", "Product engineering"},
}

var aboutContent = AboutContent{
	Headline: "Case history",
	Paragraphs: []string{
		"I build backends and the interfaces on top of them, and I like the moment a messy problem finally confesses its root cause.",
		"Most of my work sits where data, infrastructure and product meet: APIs, storage, and the tooling that keeps them honest.",
	},
	Facts: []AboutFact{
		{Label: "Cases closed", Value: "40+"},
		{Label: "Favorite tool", Value: "a good profiler"},
		{Label: "Based in", Value: "Yokohama"},
	},
	Timeline: []AboutEvent{
		{Year: "2019", Title: "First case", Body: "Shipped a first production service."},
		{Year: "2022", Title: "Made detective", Body: "Led backend work for a small product team."},
		{Year: "2024", Title: "Independent agency", Body: "Consulting on APIs and data platforms."},
	},
}

var mockVisitors = []DailyVisits{
	{Day: "Mon", Visits: 120},
	{Day: "Tue", Visits: 98},
	{Day: "Wed", Visits: 143},
	{Day: "Thu", Visits: 131},
	{Day: "Fri", Visits: 165},
	{Day: "Sat", Visits: 88},
	{Day: "Sun", Visits: 74},
}

var mockTopPages = []PageViews{
	{Path: "/", Views: 812},
	{Path: "/projects", Views: 455},
	{Path: "/about", Views: 203},
	{Path: "/contact", Views: 91},
}

// getHero returns the landing content
// @Summary Get hero content
// @Tags Content
// @Produce json
// @Success 200 {object} HeroContent
// @Router /content/hero [get]
func (h contentHandler) getHero() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, heroContent)
	}
}

// getAbout returns the about content
// @Summary Get about content
// @Tags Content
// @Produce json
// @Success 200 {object} AboutContent
// @Router /content/about [get]
func (h contentHandler) getAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, aboutContent)
	}
}

// getAnalytics returns dashboard figures
// @Summary Get analytics
// @Tags Content
// @Produce json
// @Success 200 {object} AnalyticsContent
// @Router /content/analytics [get]
func (h contentHandler) getAnalytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := h.stats.Counts()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "content", err))
			return
		}

		h.responder.WriteJSON(w, AnalyticsContent{
			Visitors:      mockVisitors,
			TopPages:      mockTopPages,
			Counts:        counts,
			UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
		})
	}
}

func (h contentHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{
			"status":  "ok",
			"started": h.startupTime.UTC().Format(time.RFC3339),
		})
	}
}
