// ABOUTME: Source abstraction for rainfall observation providers
// ABOUTME: CSV files, Postgres tables and the built-in sample all implement it

package dataset

import (
	"context"

	"github.com/Eswari2225/DropSaviors/backend/models"
)

// Source produces a complete set of observations on each Load.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Observation, error)
}
