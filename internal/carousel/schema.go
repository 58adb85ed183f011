package carousel

import (
	"context"

	"github.com/uptrace/bun"
)

// CreateSchema creates the carousel tables when missing.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*Item)(nil), (*settingsModel)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DropSchema removes the carousel tables.
func DropSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*Item)(nil), (*settingsModel)(nil)} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
