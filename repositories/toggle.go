package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// toggle removes the row matching query when present and inserts row otherwise.
// It must run inside a transaction. Concurrent inserts of the same pair collapse
// on the unique index instead of failing.
func toggle(tx *gorm.DB, model interface{}, row interface{}, query string, args ...interface{}) (bool, error) {
	res := tx.Where(query, args...).Delete(model)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
		return false, err
	}
	return true, nil
}
