package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every collection index the handlers rely on. Safe to
// call on every startup; CreateOne/CreateMany are no-ops for existing indexes.
func EnsureIndexes(db *mongo.Database) error {
	steps := []struct {
		name string
		fn   func(*mongo.Collection) error
	}{
		{"users", EnsureUserIndexes},
		{"authorities", EnsureAuthorityIndex},
		{"categories", EnsureCategoryIndex},
		{"departments", EnsureDepartmentIndex},
		{"notifications", EnsureNotificationIndexes},
		{"activities", EnsureActivityIndexes},
		{"votes", EnsureVoteIndex},
		{"resolutions", EnsureResolutionIndex},
		{"aianalyses", EnsureAIAnalysisIndex},
	}

	for _, s := range steps {
		if err := s.fn(db.Collection(s.name)); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", s.name, err)
		}
	}
	return nil
}
