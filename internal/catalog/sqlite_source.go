package catalog

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/platewise/platewise-backend/internal/domain"
)

// IngredientRow is the SQLite representation of a catalog record. Tags are
// stored as a comma-separated list.
type IngredientRow struct {
	ID              string  `gorm:"column:id;primaryKey"`
	CaloriesPer100g float64 `gorm:"column:calories_per_100g"`
	ProteinG        float64 `gorm:"column:protein_g"`
	FatG            float64 `gorm:"column:fat_g"`
	CarbsG          float64 `gorm:"column:carbs_g"`
	FiberG          float64 `gorm:"column:fiber_g"`
	Tags            string  `gorm:"column:tags"`
	Category        string  `gorm:"column:category"`
}

func (IngredientRow) TableName() string { return "ingredients" }

// LoadSQLite reads the ingredients table from a SQLite database and
// validates it through the same path as the YAML source.
func LoadSQLite(path string) (*Catalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	var rows []IngredientRow
	if err := db.Order("rowid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read ingredients table: %w", err)
	}

	records := make([]domain.Ingredient, 0, len(rows))
	for _, r := range rows {
		records = append(records, domain.Ingredient{
			ID:              r.ID,
			CaloriesPer100g: r.CaloriesPer100g,
			ProteinG:        r.ProteinG,
			FatG:            r.FatG,
			CarbsG:          r.CarbsG,
			FiberG:          r.FiberG,
			Tags:            splitTags(r.Tags),
			Category:        r.Category,
		})
	}
	return New(records)
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
