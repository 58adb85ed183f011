package paragraphs

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunParagraphRepository implements ParagraphRepository with optional caching.
type BunParagraphRepository struct {
	repo repository.Repository[*Paragraph]
}

// NewBunParagraphRepository creates a paragraph repository without caching.
func NewBunParagraphRepository(db *bun.DB) *BunParagraphRepository {
	return NewBunParagraphRepositoryWithCache(db, nil, nil)
}

// NewBunParagraphRepositoryWithCache creates a paragraph repository with caching.
func NewBunParagraphRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunParagraphRepository {
	base := NewParagraphRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunParagraphRepository{repo: base}
}

func (r *BunParagraphRepository) Create(ctx context.Context, paragraph *Paragraph) (*Paragraph, error) {
	return r.repo.Create(ctx, paragraph)
}

func (r *BunParagraphRepository) GetByID(ctx context.Context, id uuid.UUID) (*Paragraph, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "paragraph", id.String())
	}
	return record, nil
}

func (r *BunParagraphRepository) ListByField(ctx context.Context, ref FieldRef) ([]*Paragraph, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("?TableAlias.parent_type = ?", ref.EntityType).
			Where("?TableAlias.parent_id = ?", ref.EntityID).
			Where("?TableAlias.field_name = ?", ref.Field).
			OrderExpr("?TableAlias.delta ASC").
			OrderExpr("?TableAlias.created_at ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("paragraph repository error: %w", err)
	}
	return records, nil
}

func (r *BunParagraphRepository) Update(ctx context.Context, paragraph *Paragraph) (*Paragraph, error) {
	updated, err := r.repo.Update(ctx, paragraph,
		repository.UpdateByID(paragraph.ID.String()),
		repository.UpdateColumns(
			"delta",
			"revision_id",
			"content",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "paragraph", paragraph.ID.String())
	}
	return updated, nil
}

func (r *BunParagraphRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.repo.Delete(ctx, &Paragraph{ID: id})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
