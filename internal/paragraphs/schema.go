package paragraphs

import (
	"context"

	"github.com/uptrace/bun"
)

// CreateSchema creates the paragraphs table when missing.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Paragraph)(nil)).IfNotExists().Exec(ctx)
	return err
}

// DropSchema removes the paragraphs table.
func DropSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewDropTable().Model((*Paragraph)(nil)).IfExists().Exec(ctx)
	return err
}
