package carousel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunItemRepository implements ItemRepository with optional caching.
type BunItemRepository struct {
	repo repository.Repository[*Item]
}

// NewBunItemRepository creates an item repository without caching.
func NewBunItemRepository(db *bun.DB) *BunItemRepository {
	return NewBunItemRepositoryWithCache(db, nil, nil)
}

// NewBunItemRepositoryWithCache creates an item repository with caching.
func NewBunItemRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunItemRepository {
	base := NewItemRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunItemRepository{repo: base}
}

func (r *BunItemRepository) Create(ctx context.Context, item *Item) (*Item, error) {
	record, err := r.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "carousel_item", id.String())
	}
	return record, nil
}

func (r *BunItemRepository) ListAll(ctx context.Context) ([]*Item, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(orderByWeight))
	return records, err
}

func (r *BunItemRepository) ListActive(ctx context.Context) ([]*Item, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return orderByWeight(q.Where("?TableAlias.status = ?", StatusActive))
	}))
	return records, err
}

func orderByWeight(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.weight DESC").OrderExpr("?TableAlias.created_at ASC")
}

func (r *BunItemRepository) Update(ctx context.Context, item *Item) (*Item, error) {
	updated, err := r.repo.Update(ctx, item,
		repository.UpdateByID(item.ID.String()),
		repository.UpdateColumns(
			"image_id",
			"image_alt",
			"image_title",
			"image_link",
			"caption_title",
			"caption_text",
			"weight",
			"status",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "carousel_item", item.ID.String())
	}
	return updated, nil
}

func (r *BunItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.repo.Delete(ctx, &Item{ID: id})
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

// BunSettingsRepository persists carousel settings in a single row.
type BunSettingsRepository struct {
	db          *bun.DB
	broadcaster *settingsBroadcaster
}

// NewBunSettingsRepository constructs a Bun-backed settings repository.
func NewBunSettingsRepository(db *bun.DB) *BunSettingsRepository {
	return &BunSettingsRepository{db: db, broadcaster: newSettingsBroadcaster()}
}

var errSettingsNoDB = errors.New("carousel: bun settings repository requires a database")

// Get returns the persisted settings.
func (r *BunSettingsRepository) Get(ctx context.Context) (Settings, error) {
	if r.db == nil {
		return Settings{}, errSettingsNoDB
	}
	model, err := r.load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return model.settings(), nil
}

func (r *BunSettingsRepository) load(ctx context.Context) (*settingsModel, error) {
	var model settingsModel
	if err := r.db.NewSelect().Model(&model).Where("id = ?", 1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &model, nil
}

// Upsert creates or updates the settings row.
func (r *BunSettingsRepository) Upsert(ctx context.Context, settings Settings) (Settings, error) {
	if r.db == nil {
		return Settings{}, errSettingsNoDB
	}
	_, err := r.load(ctx)
	created := errors.Is(err, ErrSettingsNotFound)
	if err != nil && !created {
		return Settings{}, err
	}

	model := modelFromSettings(settings)
	model.ID = 1
	model.UpdatedAt = time.Now().UTC()

	if created {
		if _, err := r.db.NewInsert().Model(&model).Exec(ctx); err != nil {
			return Settings{}, err
		}
	} else {
		if _, err := r.db.NewUpdate().
			Model(&model).
			Column("interval", "wrap", "pause", "indicators", "controls", "assets", "image_type", "image_style", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return Settings{}, err
		}
	}

	stored, err := r.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	changeType := ChangeUpdated
	if created {
		changeType = ChangeCreated
	}
	r.broadcaster.Broadcast(changeType, stored)
	return stored, nil
}

// Delete clears persisted settings.
func (r *BunSettingsRepository) Delete(ctx context.Context) error {
	if r.db == nil {
		return errSettingsNoDB
	}
	model, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, err := r.db.NewDelete().Model(model).WherePK().Exec(ctx); err != nil {
		return err
	}
	r.broadcaster.Broadcast(ChangeDeleted, Settings{})
	return nil
}

// Subscribe delivers change events until ctx is cancelled.
func (r *BunSettingsRepository) Subscribe(ctx context.Context) (<-chan SettingsEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

type settingsModel struct {
	bun.BaseModel `bun:"table:carousel_settings"`

	ID         int       `bun:",pk"`
	Interval   int       `bun:"interval"`
	Wrap       bool      `bun:"wrap"`
	Pause      bool      `bun:"pause"`
	Indicators bool      `bun:"indicators"`
	Controls   bool      `bun:"controls"`
	Assets     bool      `bun:"assets"`
	ImageType  string    `bun:"image_type"`
	ImageStyle string    `bun:"image_style"`
	UpdatedAt  time.Time `bun:"updated_at"`
}

func modelFromSettings(settings Settings) settingsModel {
	return settingsModel{
		Interval:   settings.Interval,
		Wrap:       settings.Wrap,
		Pause:      settings.Pause,
		Indicators: settings.Indicators,
		Controls:   settings.Controls,
		Assets:     settings.Assets,
		ImageType:  string(settings.ImageType),
		ImageStyle: settings.ImageStyle,
	}
}

func (m *settingsModel) settings() Settings {
	return Settings{
		Interval:   m.Interval,
		Wrap:       m.Wrap,
		Pause:      m.Pause,
		Indicators: m.Indicators,
		Controls:   m.Controls,
		Assets:     m.Assets,
		ImageType:  ImageType(m.ImageType),
		ImageStyle: m.ImageStyle,
	}
}
