package service

import (
	"context"
	"encoding/json"
	"errors"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// decodeInto merges a JSON payload onto rec, keeping rec's identity and
// creation audit.
func decodeInto(payload []byte, rec model.Scoped) error {
	saved := *rec.Base()
	if err := json.Unmarshal(payload, rec); err != nil {
		return apperror.Validation(map[string]string{"body": "invalid_json"})
	}
	base := rec.Base()
	base.ID = saved.ID
	base.CreatedAt = saved.CreatedAt
	base.CreatedBy = saved.CreatedBy
	base.UpdatedAt = saved.UpdatedAt
	base.UpdatedBy = saved.UpdatedBy
	return nil
}

// prepare fills defaults and runs both tag validation and cross-field rules.
func prepare(rec any) error {
	fields := map[string]string{}
	if n, ok := rec.(model.Normalizer); ok {
		for k, v := range n.Normalize() {
			fields[k] = v
		}
	}
	if errs := validator.ValidateStruct(rec); len(errs) > 0 {
		for k, v := range validator.Fields(errs) {
			if _, seen := fields[k]; !seen {
				fields[k] = v
			}
		}
	}
	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

// naturalKeys snapshots every constraint key of rec.
func naturalKeys[T any](db *gorm.DB, cs []repository.Constraint[T], rec T) ([]map[string]any, error) {
	out := make([]map[string]any, len(cs))
	for i, c := range cs {
		k, err := c.Key(db, rec)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}

// checkUnique runs the advisory pre-check. With before set, only constraints
// whose key changed are checked.
func checkUnique[T any](ctx context.Context, db *gorm.DB, cs []repository.Constraint[T], rec T, self uuid.UUID, before []map[string]any) error {
	var fields []string
	for i, c := range cs {
		if before != nil {
			after, err := c.Key(db, rec)
			if err != nil {
				return apperror.Internal(err)
			}
			if keyEqual(before[i], after) {
				continue
			}
		}
		taken, err := c.Taken(ctx, db, rec, self)
		if err != nil {
			return apperror.Internal(err)
		}
		if taken {
			fields = append(fields, c.ConflictFields()...)
		}
	}
	if len(fields) > 0 {
		return apperror.Conflict(dedupe(fields)...)
	}
	return nil
}

// storageError maps a failed write. A unique violation from storage is the
// authoritative conflict; the constraints are re-run to name the fields.
func storageError[T any](ctx context.Context, db *gorm.DB, cs []repository.Constraint[T], rec T, self uuid.UUID, what string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		if named := checkUnique(ctx, db, cs, rec, self, nil); named != nil {
			return named
		}
		return apperror.Conflict()
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(what)
	default:
		return apperror.Internal(err)
	}
}

func keyEqual(a, b map[string]any) bool {
	if len(a) != len(b) || (a == nil) != (b == nil) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || v != w {
			return false
		}
	}
	return true
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// outletInBrand verifies that an outlet reference belongs to the record's brand.
func outletInBrand(ctx context.Context, db *gorm.DB, t model.Tenant) error {
	if t.OutletID == nil {
		return nil
	}
	var n int64
	err := db.WithContext(ctx).Model(&model.Outlet{}).
		Where("id = ? AND brand_id = ?", *t.OutletID, t.BrandID).
		Count(&n).Error
	if err != nil {
		return apperror.Internal(err)
	}
	if n == 0 {
		return apperror.Validation(map[string]string{"outlet_id": "not_in_brand"})
	}
	return nil
}

func actorName(staff *model.Staff) string {
	if staff == nil {
		return "system"
	}
	return staff.ID.String()
}
