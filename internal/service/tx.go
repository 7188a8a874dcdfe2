package service

import (
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds a SELECT ... FOR UPDATE clause. Row locks are the only
// concurrency discipline in this module: every mutating operation re-reads the
// rows it conditionally updates under the lock of its enclosing transaction.
// The sqlite dialect used in tests has no FOR UPDATE; its transaction write
// lock already serializes writers, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// roundScore rounds a percentage to two decimal places.
func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
