package repository

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Constraint is a unique natural key. One declaration drives both the storage
// index created at migration and the check run before a write.
type Constraint[T any] struct {
	Name    string
	Columns []string
	// Where is the partial index predicate. Applies must agree with it.
	Where   string
	Applies func(T) bool
	// Fields are the JSON names reported on conflict. Defaults to Columns.
	Fields []string
}

func (c Constraint[T]) ConflictFields() []string {
	if len(c.Fields) > 0 {
		return c.Fields
	}
	return c.Columns
}

func (c Constraint[T]) IndexName(table string) string {
	return "uq_" + table + "_" + c.Name
}

func (c Constraint[T]) applies(rec T) bool {
	return c.Applies == nil || c.Applies(rec)
}

// EnsureIndex creates the unique index backing the constraint.
func (c Constraint[T]) EnsureIndex(db *gorm.DB, rec T) error {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(rec); err != nil {
		return err
	}
	table := stmt.Schema.Table
	sql := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s)",
		c.IndexName(table), table, strings.Join(c.Columns, ", "))
	if c.Where != "" {
		sql += " WHERE " + c.Where
	}
	return db.Exec(sql).Error
}

// Key returns rec's values for the constraint columns, or nil when rec falls
// outside the partial index.
func (c Constraint[T]) Key(db *gorm.DB, rec T) (map[string]any, error) {
	if !c.applies(rec) {
		return nil, nil
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(rec); err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(rec)
	key := make(map[string]any, len(c.Columns))
	for _, col := range c.Columns {
		f := stmt.Schema.LookUpField(col)
		if f == nil {
			return nil, fmt.Errorf("constraint %s: unknown column %s", c.Name, col)
		}
		v, _ := f.ValueOf(context.Background(), rv)
		key[col] = deref(v)
	}
	return key, nil
}

// Taken reports whether a record other than exclude already holds rec's key.
func (c Constraint[T]) Taken(ctx context.Context, db *gorm.DB, rec T, exclude uuid.UUID) (bool, error) {
	key, err := c.Key(db, rec)
	if err != nil || key == nil {
		return false, err
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(rec); err != nil {
		return false, err
	}
	q := db.WithContext(ctx).Table(stmt.Schema.Table).Where(key)
	if c.Where != "" {
		q = q.Where(c.Where)
	}
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}
