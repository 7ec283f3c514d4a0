package seeder

import (
	"context"

	"badge-sync/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
