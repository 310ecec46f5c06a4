package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo  *ProjectRepo
	skillRepo    *SkillRepo
	categoryRepo *CategoryRepo
	typeRepo     *TypeRepo
	mediaRepo    *MediaRepo
	contactRepo  *ContactRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:  NewProjectRepo(db),
		skillRepo:    NewSkillRepo(db),
		categoryRepo: NewCategoryRepo(db),
		typeRepo:     NewTypeRepo(db),
		mediaRepo:    NewMediaRepo(db),
		contactRepo:  NewContactRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TypeRepo() *TypeRepo {
	return d.typeRepo
}

func (d Database) MediaRepo() *MediaRepo {
	return d.mediaRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

// Counts summarizes how much content is stored
type Counts struct {
	Projects       int64 `json:"projects"`
	Skills         int64 `json:"skills"`
	Media          int64 `json:"media"`
	Contacts       int64 `json:"contacts"`
	UnreadContacts int64 `json:"unread_contacts"`
}

// Counts gathers row counts from every repository
func (d Database) Counts() (Counts, error) {
	var counts Counts
	var err error
	if counts.Projects, err = d.projectRepo.Count(); err != nil {
		return counts, err
	}
	if counts.Skills, err = d.skillRepo.Count(); err != nil {
		return counts, err
	}
	if counts.Media, err = d.mediaRepo.Count(); err != nil {
		return counts, err
	}
	if counts.Contacts, err = d.contactRepo.Count(false); err != nil {
		return counts, err
	}
	counts.UnreadContacts, err = d.contactRepo.Count(true)
	return counts, err
}
