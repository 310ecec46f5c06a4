package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report Usage:

Set GENERATE_COLUMN_REPORT=true and start the server. Every table backing a model
is compared against the struct fields and any column the model does not account for
is listed, e.g.

	--- Table: projects ---
	Found 1 columns not accounted for in model:
	  - legacy_slug
*/

// All returns every persisted model, in dependency order for migration
func All() []any {
	return []any{
		&Skill{},
		&ProjectCategory{},
		&ProjectType{},
		&Project{},
		&ProjectTechnology{},
		&ProjectSkill{},
		&ProjectImage{},
		&ProjectFeature{},
		&ProjectRoadmapPhase{},
		&ProjectStat{},
		&ProjectMetric{},
		&ProjectTestimonial{},
		&Media{},
		&ContactSubmission{},
	}
}

// Migrate creates or alters every table to match the models
func Migrate(db *gorm.DB) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	return migrateDB.AutoMigrate(All()...)
}

// GenerateModels migrates the schema, prints the column report and writes
// typed query helpers into ./generated
func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	db = db.Session(&gorm.Session{
		Logger:                 db.Logger.LogMode(logger.Info),
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)

	log.Info().Msg("Starting database migration...")
	if err := Migrate(db); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}
	log.Info().Msg("Database migration completed successfully!")

	GenerateColumnMismatchReport(db)

	g.Execute()
	log.Info().Msg("Model generation complete!")
	return nil
}

// GenerateColumnMismatchReport generates a report of database columns that aren't accounted for in Go models
func GenerateColumnMismatchReport(db *gorm.DB) int {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	naming := db.NamingStrategy
	if naming == nil {
		naming = schema.NamingStrategy{}
	}

	totalMismatches := 0
	for _, model := range All() {
		modelType := reflect.Indirect(reflect.ValueOf(model)).Type()
		tableName := naming.TableName(modelType.Name())
		fmt.Printf("\n--- Table: %s ---\n", tableName)

		dbColumns, err := getTableColumns(db, tableName)
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") {
				fmt.Printf("Table does not exist yet (will be created during migration)\n")
			} else {
				fmt.Printf("Error getting columns for table %s: %v\n", tableName, err)
			}
			continue
		}

		mismatches := findColumnMismatches(dbColumns, getModelColumns(modelType, naming))
		if len(mismatches) == 0 {
			fmt.Println("All columns are accounted for in the model.")
			continue
		}

		fmt.Printf("Found %d columns not accounted for in model:\n", len(mismatches))
		for _, col := range mismatches {
			fmt.Printf("  - %s\n", col)
		}
		totalMismatches += len(mismatches)
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", totalMismatches)
	return totalMismatches
}

// getTableColumns retrieves column names from a database table
func getTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}
	return columns, nil
}

// getModelColumns lists the column names gorm maps a struct's scalar fields to
func getModelColumns(t reflect.Type, naming schema.Namer) []string {
	var columns []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous || !field.IsExported() {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Slice:
			// has-many relations are not columns; JSON slices are
			if field.Type.Elem().Kind() == reflect.Struct {
				continue
			}
		case reflect.Struct:
			if strings.Contains(field.Tag.Get("gorm"), "foreignKey:") {
				continue
			}
		}

		if column := extractColumnNameFromGormTag(field.Tag.Get("gorm")); column != "" {
			columns = append(columns, column)
			continue
		}
		columns = append(columns, naming.ColumnName("", field.Name))
	}
	return columns
}

// extractColumnNameFromGormTag extracts the column name from a GORM tag
func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelColumns []string) []string {
	known := make(map[string]bool, len(modelColumns))
	for _, column := range modelColumns {
		known[column] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !known[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
