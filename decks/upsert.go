package decks

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertByKey loads the row selected by key, applies set to it and saves it.
// When key is nil or selects nothing, set is applied to a zero row which is
// then inserted. The bool result reports an insert.
func upsertByKey[T any](tx *gorm.DB, key func(*gorm.DB) *gorm.DB, set func(*T)) (T, bool, error) {
	var row T
	if key != nil {
		err := key(tx).First(&row).Error
		switch {
		case err == nil:
			set(&row)
			if err := tx.Omit(clause.Associations).Save(&row).Error; err != nil {
				return row, false, err
			}
			return row, false, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return row, false, err
		}
	}

	var zero T
	row = zero
	set(&row)
	if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
		return row, false, err
	}
	return row, true, nil
}

// existsWhere reports whether any row of model matches the condition.
func existsWhere(tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
