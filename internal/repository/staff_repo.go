package repository

import (
	"context"
	"time"

	"go-pos-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StaffScope carries replacement brand/outlet sets. A nil slice leaves the
// current set untouched.
type StaffScope struct {
	Permissions []model.Permission
	BrandIDs    []uuid.UUID
	OutletIDs   []uuid.UUID
}

type StaffRepository interface {
	FindIdentity(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	FindByEmail(ctx context.Context, email string) (*model.Staff, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	Find(ctx context.Context, filters ...Filter) ([]model.Staff, error)
	EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error)
	Create(ctx context.Context, staff *model.Staff, scope StaffScope) error
	Update(ctx context.Context, staff *model.Staff, scope StaffScope) error
	ReplacePermissions(ctx context.Context, staffID uuid.UUID, perms []model.Permission) error
	Delete(ctx context.Context, id uuid.UUID) error
	GrantBrand(tx *gorm.DB, brandID uuid.UUID, staffIDs ...uuid.UUID) error
	GrantOutlet(tx *gorm.DB, outletID uuid.UUID, staffIDs ...uuid.UUID) error
	RevokeBrand(tx *gorm.DB, brandID uuid.UUID) error
	RevokeOutlet(tx *gorm.DB, outletID uuid.UUID) error
	SuperStaffIDs(ctx context.Context, ownerID *uuid.UUID) ([]uuid.UUID, error)
	UpdateCredentials(ctx context.Context, id uuid.UUID, passwordHash, pinHash string) error
	UpdateLastSeen(ctx context.Context, id uuid.UUID) error
}

type staffRepo struct {
	db *gorm.DB
}

func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db}
}

func (r *staffRepo) withScope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Role").
		Preload("Permissions", func(db *gorm.DB) *gorm.DB { return db.Order("permissions.id") }).
		Preload("Brands").
		Preload("Outlets")
}

// FindIdentity loads the authenticated projection: role, permissions and
// scope, never the credential hashes.
func (r *staffRepo) FindIdentity(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var staff model.Staff
	if err := r.withScope(ctx).First(&staff, "id = ?", id).Error; err != nil {
		return nil, err
	}
	staff.ClearSecrets()
	return &staff, nil
}

func (r *staffRepo) FindByEmail(ctx context.Context, email string) (*model.Staff, error) {
	var staff model.Staff
	if err := r.withScope(ctx).Where("email = ?", email).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var staff model.Staff
	if err := r.withScope(ctx).First(&staff, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) Find(ctx context.Context, filters ...Filter) ([]model.Staff, error) {
	q := r.withScope(ctx).Model(&model.Staff{})
	for _, f := range filters {
		q = f(q)
	}
	var out []model.Staff
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *staffRepo) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Staff{}).Where("email = ?", email)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *staffRepo) Create(ctx context.Context, staff *model.Staff, scope StaffScope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(staff).Error; err != nil {
			return err
		}
		return applyScope(tx, staff, scope)
	})
}

func (r *staffRepo) Update(ctx context.Context, staff *model.Staff, scope StaffScope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(staff).
			Select("*").
			Omit("id", "created_at", "created_by", clause.Associations).
			Updates(staff)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return applyScope(tx, staff, scope)
	})
}

func applyScope(tx *gorm.DB, staff *model.Staff, scope StaffScope) error {
	if scope.Permissions != nil {
		if err := tx.Model(staff).Association("Permissions").Replace(scope.Permissions); err != nil {
			return err
		}
	}
	if scope.BrandIDs != nil {
		if err := tx.Where("staff_id = ?", staff.ID).Delete(&model.StaffBrand{}).Error; err != nil {
			return err
		}
		for _, id := range scope.BrandIDs {
			if err := grant(tx, &model.StaffBrand{StaffID: staff.ID, BrandID: id}); err != nil {
				return err
			}
		}
	}
	if scope.OutletIDs != nil {
		if err := tx.Where("staff_id = ?", staff.ID).Delete(&model.StaffOutlet{}).Error; err != nil {
			return err
		}
		for _, id := range scope.OutletIDs {
			if err := grant(tx, &model.StaffOutlet{StaffID: staff.ID, OutletID: id}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *staffRepo) ReplacePermissions(ctx context.Context, staffID uuid.UUID, perms []model.Permission) error {
	staff := model.Staff{BaseModel: model.BaseModel{ID: staffID}}
	return r.db.WithContext(ctx).Model(&staff).Association("Permissions").Replace(perms)
}

func (r *staffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		staff := model.Staff{BaseModel: model.BaseModel{ID: id}}
		if err := tx.Model(&staff).Association("Permissions").Clear(); err != nil {
			return err
		}
		if err := tx.Where("staff_id = ?", id).Delete(&model.StaffBrand{}).Error; err != nil {
			return err
		}
		if err := tx.Where("staff_id = ?", id).Delete(&model.StaffOutlet{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Staff{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GrantBrand adds brandID to each staff's brand set. Existing grants are kept
// as they are, so concurrent grants never duplicate or drop a membership. It
// runs on tx so a new brand and its grants commit together.
func (r *staffRepo) GrantBrand(tx *gorm.DB, brandID uuid.UUID, staffIDs ...uuid.UUID) error {
	rows := make([]model.StaffBrand, 0, len(staffIDs))
	for _, id := range uniqueIDs(staffIDs) {
		rows = append(rows, model.StaffBrand{StaffID: id, BrandID: brandID})
	}
	if len(rows) == 0 {
		return nil
	}
	return grant(tx, &rows)
}

func (r *staffRepo) GrantOutlet(tx *gorm.DB, outletID uuid.UUID, staffIDs ...uuid.UUID) error {
	rows := make([]model.StaffOutlet, 0, len(staffIDs))
	for _, id := range uniqueIDs(staffIDs) {
		rows = append(rows, model.StaffOutlet{StaffID: id, OutletID: outletID})
	}
	if len(rows) == 0 {
		return nil
	}
	return grant(tx, &rows)
}

// RevokeBrand drops every grant of brandID. It runs inside the caller's
// transaction so the grant rows go together with the brand.
func (r *staffRepo) RevokeBrand(tx *gorm.DB, brandID uuid.UUID) error {
	return tx.Where("brand_id = ?", brandID).Delete(&model.StaffBrand{}).Error
}

func (r *staffRepo) RevokeOutlet(tx *gorm.DB, outletID uuid.UUID) error {
	return tx.Where("outlet_id = ?", outletID).Delete(&model.StaffOutlet{}).Error
}

func grant(db *gorm.DB, rows any) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error
}

// SuperStaffIDs lists the super-role staff of an owner.
func (r *staffRepo) SuperStaffIDs(ctx context.Context, ownerID *uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if ownerID == nil {
		return ids, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Staff{}).
		Joins("JOIN roles ON roles.id = staff.role_id").
		Where("roles.is_super_role = ? AND staff.owner_id = ?", true, *ownerID).
		Pluck("staff.id", &ids).Error
	return ids, err
}

func (r *staffRepo) UpdateCredentials(ctx context.Context, id uuid.UUID, passwordHash, pinHash string) error {
	updates := map[string]any{}
	if passwordHash != "" {
		updates["password"] = passwordHash
	}
	if pinHash != "" {
		updates["pos_pin"] = pinHash
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Staff{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *staffRepo) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Staff{}).Where("id = ?", id).UpdateColumn("last_seen_at", time.Now()).Error
}

// InBrands keeps staff holding at least one of the given brands.
func InBrands(brandIDs []uuid.UUID) Filter {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).Table("staff_brands").Select("staff_id").Where("brand_id IN ?", brandIDs)
		return db.Where("staff.id IN (?)", sub)
	}
}

// InOutlets keeps staff holding at least one of the given outlets.
func InOutlets(outletIDs []uuid.UUID) Filter {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).Table("staff_outlets").Select("staff_id").Where("outlet_id IN ?", outletIDs)
		return db.Where("staff.id IN (?)", sub)
	}
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
