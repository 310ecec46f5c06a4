package models

// ProjectCategory is a soft taxonomy value for grouping projects
type ProjectCategory struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:text;not null;uniqueIndex"`
}

// ProjectType is the canonical type dimension used for filtering projects
type ProjectType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:text;not null;uniqueIndex"`
}

// ProjectTypeCount is a type name with the number of projects using it
type ProjectTypeCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
