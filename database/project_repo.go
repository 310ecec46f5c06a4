package database

import (
	"github.com/rpupo63/bsd-portfolio/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ProjectChanges describes a merge-patch against a stored project.
// Columns maps column names to new values; a nil section pointer leaves that section untouched,
// a non-nil one replaces the whole section.
type ProjectChanges struct {
	Columns      map[string]any
	Technologies *[]models.ProjectTechnology
	Images       *[]models.ProjectImage
	Features     *[]models.ProjectFeature
	Roadmap      *[]models.ProjectRoadmapPhase
	Stats        *[]models.ProjectStat
	Metrics      *[]models.ProjectMetric
	Testimonials *[]models.ProjectTestimonial
	Skills       *[]models.ProjectSkill
}

// Empty reports whether applying the changes would touch nothing
func (c ProjectChanges) Empty() bool {
	return len(c.Columns) == 0 && c.Technologies == nil && c.Images == nil && c.Features == nil &&
		c.Roadmap == nil && c.Stats == nil && c.Metrics == nil && c.Testimonials == nil && c.Skills == nil
}

func (r *ProjectRepo) preloaded() *gorm.DB {
	tx := r.db
	for _, association := range models.Associations {
		tx = tx.Preload(association)
	}
	return tx
}

// FindAll returns all projects with their sections, newest first
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.preloaded().Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// Count returns the number of stored projects
func (r *ProjectRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.preloaded().First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Exists reports whether a project with the given ID is stored
func (r *ProjectRepo) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Add inserts a new project together with all of its sections
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		sections := detachSections(project)
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		return applySections(tx, project.ID, sections)
	})
}

// Replace overwrites every column and every section of an existing project
func (r *ProjectRepo) Replace(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		sections := detachSections(project)
		if err := tx.Omit("created_at", clause.Associations).Save(project).Error; err != nil {
			return err
		}
		return applySections(tx, project.ID, sections)
	})
}

// Patch applies a merge-patch: only the columns and sections named in changes are written
func (r *ProjectRepo) Patch(id uint, changes ProjectChanges) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(changes.Columns) > 0 {
			if err := tx.Model(&models.Project{ID: id}).Updates(changes.Columns).Error; err != nil {
				return err
			}
		} else {
			// still bump updated_at so listings reflect section edits
			if err := tx.Model(&models.Project{ID: id}).Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error; err != nil {
				return err
			}
		}
		return applySections(tx, id, changes)
	})
}

// Delete removes a project from the database by id; sections cascade
func (r *ProjectRepo) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}

// detachSections moves the has-many slices out of project so the parent row can be written alone.
// Every section of the result is non-nil, so applying it replaces all of them.
func detachSections(project *models.Project) ProjectChanges {
	detached := ProjectChanges{
		Technologies: sectionOf(project.Technologies),
		Images:       sectionOf(project.Images),
		Features:     sectionOf(project.Features),
		Roadmap:      sectionOf(project.Roadmap),
		Stats:        sectionOf(project.Stats),
		Metrics:      sectionOf(project.Metrics),
		Testimonials: sectionOf(project.Testimonials),
		Skills:       sectionOf(project.Skills),
	}
	project.Technologies, project.Images, project.Features, project.Roadmap = nil, nil, nil, nil
	project.Stats, project.Metrics, project.Testimonials, project.Skills = nil, nil, nil, nil
	return detached
}

func sectionOf[T any](rows []T) *[]T {
	return &rows
}

func applySections(tx *gorm.DB, projectID uint, changes ProjectChanges) error {
	steps := []func() error{
		func() error { return replaceSection(tx, projectID, changes.Technologies) },
		func() error { return replaceSection(tx, projectID, changes.Images) },
		func() error { return replaceSection(tx, projectID, changes.Features) },
		func() error { return replaceSection(tx, projectID, changes.Roadmap) },
		func() error { return replaceSection(tx, projectID, changes.Stats) },
		func() error { return replaceSection(tx, projectID, changes.Metrics) },
		func() error { return replaceSection(tx, projectID, changes.Testimonials) },
		func() error { return replaceSection(tx, projectID, changes.Skills) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// replaceSection swaps every stored row of one section for rows; nil rows means untouched
func replaceSection[T any, PT interface {
	*T
	models.Owned
}](tx *gorm.DB, projectID uint, rows *[]T) error {
	if rows == nil {
		return nil
	}

	if err := tx.Where("project_id = ?", projectID).Delete(new(T)).Error; err != nil {
		return err
	}
	if len(*rows) == 0 {
		return nil
	}

	for i := range *rows {
		PT(&(*rows)[i]).AttachTo(projectID)
	}
	return tx.Omit(clause.Associations).Create(rows).Error
}
