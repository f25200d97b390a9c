package intake

import (
	"context"

	"tms-intake/internal/match"
	"tms-intake/internal/storage"
)

// SQLStore adapts *storage.DB to the Store interface consumed by the
// pipeline.
type SQLStore struct {
	DB *storage.DB
}

func (s SQLStore) Genders(ctx context.Context) ([]match.Entry, error) {
	return s.DB.Genders(ctx)
}

func (s SQLStore) States(ctx context.Context) ([]match.Entry, error) {
	return s.DB.States(ctx)
}

func (s SQLStore) TaskTypes(ctx context.Context) ([]match.Entry, error) {
	return s.DB.TaskTypes(ctx)
}

func (s SQLStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
