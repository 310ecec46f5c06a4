package database

import (
	"sort"

	"github.com/rpupo63/bsd-portfolio/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns every stored category plus any category already used by a project
func (r *CategoryRepo) FindAll() ([]*models.ProjectCategory, error) {
	var categories []*models.ProjectCategory
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	var used []string
	if err := r.db.Model(&models.Project{}).Distinct().Where("category <> ''").Pluck("category", &used).Error; err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(categories))
	for _, category := range categories {
		known[category.Name] = true
	}
	for _, name := range used {
		if !known[name] {
			categories = append(categories, &models.ProjectCategory{Name: name})
			known[name] = true
		}
	}

	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// Add inserts a category, returning the stored row if the name already exists
func (r *CategoryRepo) Add(category *models.ProjectCategory) error {
	return r.db.Where(models.ProjectCategory{Name: category.Name}).FirstOrCreate(category).Error
}

type TypeRepo struct {
	db *gorm.DB
}

func NewTypeRepo(db *gorm.DB) *TypeRepo {
	return &TypeRepo{db}
}

// FindAllWithCounts returns each known project type with the number of projects using it
func (r *TypeRepo) FindAllWithCounts() ([]models.ProjectTypeCount, error) {
	var counts []models.ProjectTypeCount
	err := r.db.Model(&models.Project{}).
		Select("type AS name, COUNT(*) AS count").
		Where("type <> ''").
		Group("type").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	var declared []string
	if err := r.db.Model(&models.ProjectType{}).Pluck("name", &declared).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(counts))
	for _, count := range counts {
		seen[count.Name] = true
	}
	for _, name := range declared {
		if !seen[name] {
			counts = append(counts, models.ProjectTypeCount{Name: name})
		}
	}

	sort.Slice(counts, func(i, j int) bool { return counts[i].Name < counts[j].Name })
	return counts, nil
}

// Add declares a project type; adding an existing name is a no-op
func (r *TypeRepo) Add(projectType *models.ProjectType) error {
	return r.db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(projectType).Error
}
