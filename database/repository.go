package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Record is satisfied by pointers to the id-addressable content types.
type Record[T any] interface {
	*T
	document() *Document
	prepareInsert()
}

// Repository is the id-keyed store for one content type. Listing is
// newest-first, i.e. descending id.
type Repository[T any, PT Record[T]] struct {
	db *gorm.DB
}

func NewRepository[T any, PT Record[T]](db *gorm.DB) *Repository[T, PT] {
	return &Repository[T, PT]{db: db}
}

func (r *Repository[T, PT]) List(ctx context.Context) ([]T, error) {
	return r.ListLimited(ctx, -1)
}

// ListLimited returns at most n items; a negative n means no limit.
func (r *Repository[T, PT]) ListLimited(ctx context.Context, n int) ([]T, error) {
	var items []T
	result := r.db.WithContext(ctx).Order("id DESC").Limit(n).Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *Repository[T, PT]) GetByID(ctx context.Context, id string) (T, error) {
	var item T
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return item, ErrNotFound
		}
		return item, result.Error
	}
	return item, nil
}

// Create ignores any id or analytics set by the caller.
func (r *Repository[T, PT]) Create(ctx context.Context, item T) (T, error) {
	PT(&item).prepareInsert()
	result := r.db.WithContext(ctx).Create(PT(&item))
	if result.Error != nil {
		var zero T
		return zero, result.Error
	}
	return item, nil
}

// Update loads the record, applies the edit and saves the whole row back.
// Concurrent edits are last-writer-wins.
func (r *Repository[T, PT]) Update(ctx context.Context, id string, edit func(PT)) (T, error) {
	item, err := r.GetByID(ctx, id)
	if err != nil {
		return item, err
	}

	doc := *PT(&item).document()
	edit(PT(&item))
	// id and analytics are not editable
	d := PT(&item).document()
	d.ID = doc.ID
	d.Analytics = doc.Analytics
	d.CreatedAt = doc.CreatedAt

	result := r.db.WithContext(ctx).Model(PT(&item)).Select("*").Omit("created_at").Updates(PT(&item))
	if result.Error != nil {
		var zero T
		return zero, result.Error
	}
	if result.RowsAffected == 0 {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

func (r *Repository[T, PT]) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(PT(new(T)))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
