package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter narrows a query.
type Filter func(*gorm.DB) *gorm.DB

// Store is the persistence contract shared by every record type. T is a
// pointer to a GORM model; newT returns a fresh zero value of it.
type Store[T any] struct {
	db      *gorm.DB
	newT    func() T
	preload []string
}

func NewStore[T any](db *gorm.DB, newT func() T, preload ...string) *Store[T] {
	return &Store[T]{db: db, newT: newT, preload: preload}
}

func (s *Store[T]) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// With returns a copy of the store bound to tx.
func (s *Store[T]) With(tx *gorm.DB) *Store[T] {
	return &Store[T]{db: tx, newT: s.newT, preload: s.preload}
}

func (s *Store[T]) query(ctx context.Context, filters []Filter) *gorm.DB {
	q := s.DB(ctx).Model(s.newT())
	for _, p := range s.preload {
		q = q.Preload(p)
	}
	for _, f := range filters {
		q = f(q)
	}
	return q
}

// Find returns every record matching the filters, newest first.
func (s *Store[T]) Find(ctx context.Context, filters ...Filter) ([]T, error) {
	var out []T
	if err := s.query(ctx, filters).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne returns the first match or gorm.ErrRecordNotFound.
func (s *Store[T]) FindOne(ctx context.Context, filters ...Filter) (T, error) {
	rec := s.newT()
	if err := s.query(ctx, filters).First(rec).Error; err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

func (s *Store[T]) FindByID(ctx context.Context, id uuid.UUID) (T, error) {
	return s.FindOne(ctx, ByID(id))
}

// Insert creates rec. Nested associations in the payload are never written.
func (s *Store[T]) Insert(ctx context.Context, rec T) error {
	return s.DB(ctx).Omit(clause.Associations).Create(rec).Error
}

// UpdateByID overwrites every column of the record with the given id except
// its identity and creation audit. It returns gorm.ErrRecordNotFound when no
// row matched.
func (s *Store[T]) UpdateByID(ctx context.Context, id uuid.UUID, rec T) error {
	res := s.DB(ctx).Model(rec).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at", "created_by", clause.Associations).
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByID hard-deletes one record.
func (s *Store[T]) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res := s.DB(ctx).Delete(s.newT(), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func ByID(id uuid.UUID) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

// Where is an ad-hoc condition.
func Where(query string, args ...any) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// Tenancy restricts rows to the given brands and outlets. With brandWide, rows
// whose outlet column is NULL match on brand alone.
func Tenancy(brandCol, outletCol string, brandIDs, outletIDs []uuid.UUID, brandWide bool) Filter {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where(brandCol+" IN ?", brandIDs)
		if outletCol == "" {
			return db
		}
		if brandWide {
			if len(outletIDs) == 0 {
				return db.Where(outletCol + " IS NULL")
			}
			return db.Where("("+outletCol+" IN ? OR "+outletCol+" IS NULL)", outletIDs)
		}
		return db.Where(outletCol+" IN ?", outletIDs)
	}
}
