package database

import (
	"path/filepath"
	"testing"

	"github.com/rpupo63/bsd-portfolio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "portfolio.db")
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Skill{},
		&models.Project{},
		&models.ProjectTechnology{},
		&models.ProjectSkill{},
		&models.ProjectImage{},
		&models.ProjectFeature{},
		&models.ProjectRoadmapPhase{},
		&models.ProjectStat{},
		&models.ProjectMetric{},
		&models.ProjectTestimonial{},
	))
	return db
}

func seedProject(t *testing.T, repo *ProjectRepo) uint {
	t.Helper()

	project := &models.Project{
		Title:       "Atlas",
		Subtitle:    "Fleet tracking",
		Category:    "Web",
		Type:        "Client",
		Description: "Real-time fleet dashboard",
		Links:       datatypes.NewJSONType(models.ProjectLinks{Github: "https://github.com/acme/atlas"}),
		Images: []models.ProjectImage{
			{URL: "https://cdn.example.com/a.png", Caption: "Map", Type: "screenshot", DisplayOrder: 0},
			{URL: "https://cdn.example.com/b.png", Caption: "Alerts", Type: "screenshot", DisplayOrder: 1},
		},
		Stats: []models.ProjectStat{
			{Key: "vehicles", Value: "1200", DisplayOrder: 0},
		},
		Testimonials: []models.ProjectTestimonial{
			{Name: "Ana", Role: "CTO", Company: "Acme", Quote: "Solid work", Rating: 5},
		},
	}
	require.NoError(t, repo.Add(project))
	require.NotZero(t, project.ID)
	return project.ID
}

func TestProjectRepoAdd(t *testing.T) {
	repo := NewProjectRepo(openTestDB(t))
	id := seedProject(t, repo)

	got, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Atlas", got.Title)
	assert.Equal(t, "https://github.com/acme/atlas", got.Links.Data().Github)
	require.Len(t, got.Images, 2)
	assert.Equal(t, id, got.Images[0].ProjectID)
	assert.Len(t, got.Stats, 1)
	assert.Len(t, got.Testimonials, 1)
}

func TestProjectRepoPatchSectionLeavesOthers(t *testing.T) {
	repo := NewProjectRepo(openTestDB(t))
	id := seedProject(t, repo)

	stats := []models.ProjectStat{
		{Key: "uptime", Value: "99.9%", DisplayOrder: 0},
		{Key: "regions", Value: "4", DisplayOrder: 1},
	}
	require.NoError(t, repo.Patch(id, ProjectChanges{Stats: &stats}))

	got, err := repo.FindByID(id)
	require.NoError(t, err)

	require.Len(t, got.Stats, 2)
	assert.ElementsMatch(t, []string{"uptime", "regions"}, []string{got.Stats[0].Key, got.Stats[1].Key})

	require.Len(t, got.Images, 2)
	assert.ElementsMatch(t,
		[]string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"},
		[]string{got.Images[0].URL, got.Images[1].URL})
	assert.Len(t, got.Testimonials, 1)
	assert.Equal(t, "Atlas", got.Title)
	assert.Equal(t, "Fleet tracking", got.Subtitle)
	assert.Equal(t, "https://github.com/acme/atlas", got.Links.Data().Github)
}

func TestProjectRepoPatchColumnsLeavesSections(t *testing.T) {
	repo := NewProjectRepo(openTestDB(t))
	id := seedProject(t, repo)

	require.NoError(t, repo.Patch(id, ProjectChanges{Columns: map[string]any{"title": "Atlas v2"}}))

	got, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Atlas v2", got.Title)
	assert.Equal(t, "Fleet tracking", got.Subtitle)
	assert.Equal(t, "Web", got.Category)
	assert.Len(t, got.Images, 2)
	assert.Len(t, got.Stats, 1)
	assert.Len(t, got.Testimonials, 1)
}

func TestProjectRepoPatchClearsSection(t *testing.T) {
	repo := NewProjectRepo(openTestDB(t))
	id := seedProject(t, repo)

	// a JSON null decodes to a non-nil pointer to an empty section
	var cleared []models.ProjectImage
	require.NoError(t, repo.Patch(id, ProjectChanges{Images: &cleared}))

	got, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Empty(t, got.Images)
	assert.Len(t, got.Stats, 1)

	var remaining int64
	require.NoError(t, repo.db.Model(&models.ProjectImage{}).Where("project_id = ?", id).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestProjectRepoPatchSectionOnlyScopedToProject(t *testing.T) {
	repo := NewProjectRepo(openTestDB(t))
	first := seedProject(t, repo)
	second := seedProject(t, repo)

	stats := []models.ProjectStat{{Key: "uptime", Value: "99.9%"}}
	require.NoError(t, repo.Patch(first, ProjectChanges{Stats: &stats}))

	other, err := repo.FindByID(second)
	require.NoError(t, err)
	require.Len(t, other.Stats, 1)
	assert.Equal(t, "vehicles", other.Stats[0].Key)
}

func TestProjectRepoReplace(t *testing.T) {
	repo := NewProjectRepo(openTestDB(t))
	id := seedProject(t, repo)

	stored, err := repo.FindByID(id)
	require.NoError(t, err)

	replacement := &models.Project{
		ID:          id,
		Title:       "Atlas",
		Category:    "Web",
		Type:        "Personal",
		Description: "Rewritten",
		CreatedAt:   stored.CreatedAt,
		Features: []models.ProjectFeature{
			{Title: "Live map", Description: "Streams positions", Status: "completed"},
		},
	}
	require.NoError(t, repo.Replace(replacement))

	got, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Personal", got.Type)
	assert.Empty(t, got.Subtitle)
	assert.Empty(t, got.Images)
	assert.Empty(t, got.Stats)
	assert.Empty(t, got.Testimonials)
	require.Len(t, got.Features, 1)
	assert.Equal(t, "Live map", got.Features[0].Title)
}

func TestProjectRepoExistsAndDelete(t *testing.T) {
	repo := NewProjectRepo(openTestDB(t))
	id := seedProject(t, repo)

	ok, err := repo.Exists(id)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(id))

	ok, err = repo.Exists(id)
	require.NoError(t, err)
	assert.False(t, ok)
}
