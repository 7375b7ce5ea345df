package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dependent is a collection that blocks deletion while it references a record.
type Dependent struct {
	Label  string
	Model  any
	Column string
}

// ReferenceCheck validates foreign references of a record before a write and
// returns field errors.
type ReferenceCheck[T any] func(ctx context.Context, db *gorm.DB, rec T) (map[string]string, error)

// Kind describes one tenant-scoped resource type.
type Kind[T model.Scoped] struct {
	Name        string
	New         func() T
	ViewPerms   []string
	EditPerms   []string
	DeletePerms []string
	// BrandWide marks types whose rows may omit the outlet and then apply to
	// every outlet of the brand.
	BrandWide   bool
	Constraints []repository.Constraint[T]
	References  []ReferenceCheck[T]
	Dependents  []Dependent
	Preload     []string
	// Present transforms records on the way out.
	Present func(T) T
}

// ListQuery narrows a listing inside the caller's scope.
type ListQuery struct {
	BrandID  *uuid.UUID
	OutletID *uuid.UUID
	Status   string
}

// BulkOutcome is the per-element result of a bulk upsert.
type BulkOutcome struct {
	Index   int               `json:"index"`
	Action  string            `json:"action,omitempty"`
	ID      *uuid.UUID        `json:"id,omitempty"`
	Code    apperror.Kind     `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type BulkResult struct {
	Succeeded []BulkOutcome `json:"succeeded"`
	Failed    []BulkOutcome `json:"failed"`
}

// ResourceService implements list, fetch, create, update, delete and bulk
// upsert for one Kind under the staff's permissions and tenant scope.
type ResourceService[T model.Scoped] struct {
	kind  Kind[T]
	db    *gorm.DB
	store *repository.Store[T]
	pub   Publisher
}

func NewResourceService[T model.Scoped](db *gorm.DB, kind Kind[T], pub Publisher) *ResourceService[T] {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &ResourceService[T]{
		kind:  kind,
		db:    db,
		store: repository.NewStore(db, kind.New, kind.Preload...),
		pub:   pub,
	}
}

func (s *ResourceService[T]) Name() string {
	return s.kind.Name
}

func (s *ResourceService[T]) present(rec T) T {
	if s.kind.Present != nil {
		return s.kind.Present(rec)
	}
	return rec
}

func (s *ResourceService[T]) viewPerms() []string {
	return append(append([]string{}, s.kind.ViewPerms...), s.kind.EditPerms...)
}

// List returns the records inside the caller's scope. A caller with no brand
// grants gets an empty list, as does a caller with no outlet grants unless the
// kind allows brand-wide rows.
func (s *ResourceService[T]) List(ctx context.Context, staff *model.Staff, q ListQuery) ([]T, error) {
	if err := Authorize(staff, s.viewPerms()...); err != nil {
		return nil, err
	}
	scope := ScopeOf(staff)
	out := []T{}
	if scope.EmptyFor(s.kind.BrandWide) {
		return out, nil
	}

	filters := []repository.Filter{
		repository.Tenancy("brand_id", "outlet_id", scope.BrandIDs(), scope.OutletIDs(), s.kind.BrandWide),
	}
	if q.BrandID != nil {
		filters = append(filters, repository.Where("brand_id = ?", *q.BrandID))
	}
	if q.OutletID != nil {
		filters = append(filters, repository.Where("outlet_id = ?", *q.OutletID))
	}
	if q.Status != "" {
		filters = append(filters, repository.Where("status = ?", q.Status))
	}

	rows, err := s.store.Find(ctx, filters...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, r := range rows {
		if scope.Admits(r.Tenant(), s.kind.BrandWide) {
			out = append(out, s.present(r))
		}
	}
	return out, nil
}

// load fetches a record the caller can see. Records outside the scope are
// reported as missing.
func (s *ResourceService[T]) load(ctx context.Context, staff *model.Staff, id uuid.UUID) (T, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, apperror.NotFound(s.kind.Name)
		}
		return zero, apperror.Internal(err)
	}
	if !ScopeOf(staff).Admits(rec.Tenant(), s.kind.BrandWide) {
		var zero T
		return zero, apperror.NotFound(s.kind.Name)
	}
	return rec, nil
}

func (s *ResourceService[T]) Get(ctx context.Context, staff *model.Staff, id uuid.UUID) (T, error) {
	if err := Authorize(staff, s.viewPerms()...); err != nil {
		var zero T
		return zero, err
	}
	rec, err := s.load(ctx, staff, id)
	if err != nil {
		return rec, err
	}
	return s.present(rec), nil
}

// checkWrite runs the scope gate, the outlet/brand consistency check and the
// reference checks for a record about to be written.
func (s *ResourceService[T]) checkWrite(ctx context.Context, staff *model.Staff, rec T) error {
	t := rec.Tenant()
	scope := ScopeOf(staff)
	if !scope.HasBrand(t.BrandID) || (t.OutletID != nil && !scope.HasOutlet(*t.OutletID)) {
		return apperror.Forbidden(s.kind.Name + " brand or outlet is outside your scope")
	}
	if err := outletInBrand(ctx, s.db, t); err != nil {
		return err
	}
	fields := map[string]string{}
	for _, check := range s.kind.References {
		errs, err := check(ctx, s.db, rec)
		if err != nil {
			return apperror.Internal(err)
		}
		for k, v := range errs {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

func (s *ResourceService[T]) Create(ctx context.Context, staff *model.Staff, payload []byte) (T, error) {
	var zero T
	if err := Authorize(staff, s.kind.EditPerms...); err != nil {
		return zero, err
	}
	rec := s.kind.New()
	if err := decodeInto(payload, rec); err != nil {
		return zero, err
	}
	if err := prepare(rec); err != nil {
		return zero, err
	}
	if err := s.checkWrite(ctx, staff, rec); err != nil {
		return zero, err
	}
	if err := checkUnique(ctx, s.db, s.kind.Constraints, rec, uuid.Nil, nil); err != nil {
		return zero, err
	}

	rec.Base().Stamp(actorName(staff), true)
	if err := s.store.Insert(ctx, rec); err != nil {
		return zero, storageError(ctx, s.db, s.kind.Constraints, rec, uuid.Nil, s.kind.Name, err)
	}
	s.pub.Publish(changeEvent(s.kind.Name, "created", rec, staff))
	return s.reload(ctx, rec)
}

// Update merges payload onto the stored record. The natural key is re-checked
// only when it changed.
func (s *ResourceService[T]) Update(ctx context.Context, staff *model.Staff, id uuid.UUID, payload []byte) (T, error) {
	var zero T
	if err := Authorize(staff, s.kind.EditPerms...); err != nil {
		return zero, err
	}
	rec, err := s.load(ctx, staff, id)
	if err != nil {
		return zero, err
	}
	before, err := naturalKeys(s.db, s.kind.Constraints, rec)
	if err != nil {
		return zero, apperror.Internal(err)
	}

	if err := decodeInto(payload, rec); err != nil {
		return zero, err
	}
	if err := prepare(rec); err != nil {
		return zero, err
	}
	if err := s.checkWrite(ctx, staff, rec); err != nil {
		return zero, err
	}
	if err := checkUnique(ctx, s.db, s.kind.Constraints, rec, id, before); err != nil {
		return zero, err
	}

	rec.Base().Stamp(actorName(staff), false)
	if err := s.store.UpdateByID(ctx, id, rec); err != nil {
		return zero, storageError(ctx, s.db, s.kind.Constraints, rec, id, s.kind.Name, err)
	}
	s.pub.Publish(changeEvent(s.kind.Name, "updated", rec, staff))
	return s.reload(ctx, rec)
}

func (s *ResourceService[T]) Delete(ctx context.Context, staff *model.Staff, id uuid.UUID) error {
	if err := Authorize(staff, s.kind.DeletePerms...); err != nil {
		return err
	}
	rec, err := s.load(ctx, staff, id)
	if err != nil {
		return err
	}
	if err := checkDependents(ctx, s.db, s.kind.Name, id, s.kind.Dependents); err != nil {
		return err
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return storageError(ctx, s.db, s.kind.Constraints, rec, id, s.kind.Name, err)
	}
	s.pub.Publish(changeEvent(s.kind.Name, "deleted", rec, staff))
	return nil
}

// BulkUpsert applies each element independently: an element whose id names a
// record in scope updates it, any other element is created. One failure never
// aborts the rest.
func (s *ResourceService[T]) BulkUpsert(ctx context.Context, staff *model.Staff, elems []json.RawMessage) (*BulkResult, error) {
	if err := Authorize(staff, s.kind.EditPerms...); err != nil {
		return nil, err
	}
	res := &BulkResult{Succeeded: []BulkOutcome{}, Failed: []BulkOutcome{}}
	for i, raw := range elems {
		var head struct {
			ID uuid.UUID `json:"id"`
		}
		_ = json.Unmarshal(raw, &head)

		var (
			rec    T
			err    error
			action = "created"
		)
		if head.ID != uuid.Nil && s.resolves(ctx, staff, head.ID) {
			action = "updated"
			rec, err = s.Update(ctx, staff, head.ID, raw)
		} else {
			rec, err = s.Create(ctx, staff, raw)
		}
		if err != nil {
			e := apperror.From(err)
			res.Failed = append(res.Failed, BulkOutcome{Index: i, Code: e.Kind, Message: e.Message, Fields: e.Fields})
			continue
		}
		id := rec.GetID()
		res.Succeeded = append(res.Succeeded, BulkOutcome{Index: i, Action: action, ID: &id})
	}
	return res, nil
}

func (s *ResourceService[T]) resolves(ctx context.Context, staff *model.Staff, id uuid.UUID) bool {
	_, err := s.load(ctx, staff, id)
	return err == nil
}

func (s *ResourceService[T]) reload(ctx context.Context, rec T) (T, error) {
	fresh, err := s.store.FindByID(ctx, rec.GetID())
	if err != nil {
		return rec, apperror.Internal(err)
	}
	return s.present(fresh), nil
}

// checkDependents enforces the restrict delete policy.
func checkDependents(ctx context.Context, db *gorm.DB, name string, id uuid.UUID, deps []Dependent) error {
	for _, d := range deps {
		var n int64
		if err := db.WithContext(ctx).Model(d.Model).Where(d.Column+" = ?", id).Count(&n).Error; err != nil {
			return apperror.Internal(err)
		}
		if n > 0 {
			return apperror.ConflictWith(fmt.Sprintf("%s still has %d %s", name, n, d.Label), d.Label)
		}
	}
	return nil
}
