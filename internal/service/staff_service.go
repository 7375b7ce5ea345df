package service

import (
	"context"
	"errors"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/internal/ws"
	"go-pos-admin/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type StaffService interface {
	Create(ctx context.Context, caller *model.Staff, req *CreateStaffRequest) (*model.StaffResponse, error)
	Update(ctx context.Context, caller *model.Staff, id uuid.UUID, req *UpdateStaffRequest) (*model.StaffResponse, error)
	ReplacePermissions(ctx context.Context, caller *model.Staff, id uuid.UUID, keys []string) (*model.StaffResponse, error)
	Delete(ctx context.Context, caller *model.Staff, id uuid.UUID) error
	List(ctx context.Context, caller *model.Staff, q ListQuery) ([]model.StaffResponse, error)
	Get(ctx context.Context, caller *model.Staff, id uuid.UUID) (*model.StaffResponse, error)
}

type CreateStaffRequest struct {
	Image       string      `json:"image" validate:"omitempty,max=512"`
	Name        string      `json:"name" validate:"required,max=255"`
	Email       string      `json:"email" validate:"required,email"`
	Phone       string      `json:"phone" validate:"omitempty,max=20"`
	Password    string      `json:"password" validate:"required,min=6"`
	PosLoginPin string      `json:"pos_login_pin" validate:"omitempty,numeric,min=4,max=8"`
	Status      string      `json:"status" validate:"omitempty,oneof=active inactive banned"`
	RoleID      uint        `json:"role_id" validate:"required"`
	Permissions []string    `json:"permissions"` // nil means the role defaults
	Brands      []uuid.UUID `json:"brands"`
	Outlets     []uuid.UUID `json:"outlets"`
}

// UpdateStaffRequest is a partial update: nil fields are left unchanged.
type UpdateStaffRequest struct {
	Image       *string     `json:"image" validate:"omitempty,max=512"`
	Name        *string     `json:"name" validate:"omitempty,min=1,max=255"`
	Email       *string     `json:"email" validate:"omitempty,email"`
	Phone       *string     `json:"phone" validate:"omitempty,max=20"`
	Password    *string     `json:"password" validate:"omitempty,min=6"`
	PosLoginPin *string     `json:"pos_login_pin" validate:"omitempty,numeric,min=4,max=8"`
	Status      *string     `json:"status" validate:"omitempty,oneof=active inactive banned"`
	RoleID      *uint       `json:"role_id"`
	Permissions []string    `json:"permissions"`
	Brands      []uuid.UUID `json:"brands"`
	Outlets     []uuid.UUID `json:"outlets"`
}

type staffService struct {
	db        *gorm.DB
	staffRepo repository.StaffRepository
	roleRepo  repository.RoleRepository
	permRepo  repository.PermissionRepository
	catalog   *Catalog
	pub       Publisher
}

func NewStaffService(db *gorm.DB, staffRepo repository.StaffRepository, roleRepo repository.RoleRepository, permRepo repository.PermissionRepository, catalog *Catalog, pub Publisher) StaffService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &staffService{
		db:        db,
		staffRepo: staffRepo,
		roleRepo:  roleRepo,
		permRepo:  permRepo,
		catalog:   catalog,
		pub:       pub,
	}
}

func (s *staffService) Create(ctx context.Context, caller *model.Staff, req *CreateStaffRequest) (*model.StaffResponse, error) {
	// 1. Permission gate
	if err := Authorize(caller, model.PermStaffManage); err != nil {
		return nil, err
	}

	// 2. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(validator.Fields(errs))
	}

	// 3. Role and permissions
	role, err := s.resolveRole(ctx, caller, req.RoleID)
	if err != nil {
		return nil, err
	}
	perms := role.DefaultPermissions
	if req.Permissions != nil {
		if perms, err = s.resolvePermissions(ctx, caller, req.Permissions); err != nil {
			return nil, err
		}
	}

	// 4. Scope assignment
	brands, outlets := orEmpty(req.Brands), orEmpty(req.Outlets)
	if err := s.checkAssignment(ctx, caller, brands, outlets); err != nil {
		return nil, err
	}

	// 5. Email is the login key
	taken, err := s.staffRepo.EmailTaken(ctx, req.Email, uuid.Nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if taken {
		return nil, apperror.Conflict("email")
	}

	staff := &model.Staff{
		Image:   req.Image,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Status:  req.Status,
		OwnerID: caller.OwnerID,
		RoleID:  role.ID,
	}
	if staff.Status == "" {
		staff.Status = model.StatusActive
	}
	if err := staff.SetPassword(req.Password); err != nil {
		return nil, apperror.Internal(err)
	}
	if req.PosLoginPin != "" {
		if err := staff.SetPin(req.PosLoginPin); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	staff.Stamp(actorName(caller), true)

	// 6. Save with permissions and scope in one transaction
	scope := repository.StaffScope{Permissions: perms, BrandIDs: brands, OutletIDs: outlets}
	if err := s.staffRepo.Create(ctx, staff, scope); err != nil {
		return nil, staffStorageError(err)
	}

	resp, err := s.reload(ctx, staff.ID)
	if err != nil {
		return nil, err
	}
	s.publish("created", staff.ID, brands, caller)
	return resp, nil
}

// Update applies a partial update. A staff member editing their own record
// never changes their role or permissions, and keeps their scope unless they
// hold staff_manage without the super role. Only super staff may edit super
// staff.
func (s *staffService) Update(ctx context.Context, caller *model.Staff, id uuid.UUID, req *UpdateStaffRequest) (*model.StaffResponse, error) {
	self := caller != nil && caller.ID == id
	if self {
		if err := Authorize(caller); err != nil {
			return nil, err
		}
	} else if err := Authorize(caller, model.PermStaffManage); err != nil {
		return nil, err
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(validator.Fields(errs))
	}

	target, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, staffStorageError(err)
	}
	if !self {
		if !s.visible(caller, target) {
			return nil, apperror.NotFound("staff")
		}
		if err := guardSuperTarget(caller, target); err != nil {
			return nil, err
		}
	}

	if self {
		req.RoleID = nil
		req.Permissions = nil
		if caller.IsSuper() || !Allows(caller, model.PermStaffManage) {
			req.Brands = nil
			req.Outlets = nil
		}
	}

	if req.Email != nil && *req.Email != target.Email {
		taken, err := s.staffRepo.EmailTaken(ctx, *req.Email, id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if taken {
			return nil, apperror.Conflict("email")
		}
		target.Email = *req.Email
	}
	if req.Image != nil {
		target.Image = *req.Image
	}
	if req.Name != nil {
		target.Name = *req.Name
	}
	if req.Phone != nil {
		target.Phone = *req.Phone
	}
	if req.Status != nil {
		target.Status = *req.Status
	}

	var scope repository.StaffScope
	if req.RoleID != nil && *req.RoleID != target.RoleID {
		role, err := s.resolveRole(ctx, caller, *req.RoleID)
		if err != nil {
			return nil, err
		}
		target.RoleID = role.ID
	}
	if req.Permissions != nil {
		if scope.Permissions, err = s.resolvePermissions(ctx, caller, req.Permissions); err != nil {
			return nil, err
		}
	}
	if req.Brands != nil || req.Outlets != nil {
		brands, outlets := req.Brands, req.Outlets
		if brands == nil {
			brands = target.BrandIDs()
		}
		if outlets == nil {
			outlets = target.OutletIDs()
		}
		if err := s.checkAssignment(ctx, caller, brands, outlets); err != nil {
			return nil, err
		}
		scope.BrandIDs, scope.OutletIDs = req.Brands, req.Outlets
	}

	if req.Password != nil {
		if err := target.SetPassword(*req.Password); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	if req.PosLoginPin != nil {
		if err := target.SetPin(*req.PosLoginPin); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	target.Role = nil
	target.Stamp(actorName(caller), false)
	if err := s.staffRepo.Update(ctx, target, scope); err != nil {
		return nil, staffStorageError(err)
	}

	resp, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish("updated", id, resp.Brands, caller)
	return resp, nil
}

// ReplacePermissions swaps the whole permission set of another staff member.
func (s *staffService) ReplacePermissions(ctx context.Context, caller *model.Staff, id uuid.UUID, keys []string) (*model.StaffResponse, error) {
	if err := Authorize(caller, model.PermStaffManage); err != nil {
		return nil, err
	}
	if caller.ID == id {
		return nil, apperror.Forbidden("cannot change your own permissions")
	}
	target, err := s.staffRepo.FindIdentity(ctx, id)
	if err != nil {
		return nil, staffStorageError(err)
	}
	if !s.visible(caller, target) {
		return nil, apperror.NotFound("staff")
	}
	if err := guardSuperTarget(caller, target); err != nil {
		return nil, err
	}

	perms, err := s.resolvePermissions(ctx, caller, orEmptyKeys(keys))
	if err != nil {
		return nil, err
	}
	if err := s.staffRepo.ReplacePermissions(ctx, id, perms); err != nil {
		return nil, apperror.Internal(err)
	}

	resp, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish("updated", id, resp.Brands, caller)
	return resp, nil
}

func (s *staffService) Delete(ctx context.Context, caller *model.Staff, id uuid.UUID) error {
	if err := Authorize(caller, model.PermStaffManage); err != nil {
		return err
	}
	if caller.ID == id {
		return apperror.Forbidden("cannot delete yourself")
	}
	target, err := s.staffRepo.FindIdentity(ctx, id)
	if err != nil {
		return staffStorageError(err)
	}
	if !s.visible(caller, target) {
		return apperror.NotFound("staff")
	}
	if err := guardSuperTarget(caller, target); err != nil {
		return err
	}
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return staffStorageError(err)
	}
	s.publish("deleted", id, target.BrandIDs(), caller)
	return nil
}

// List returns the staff sharing at least one brand with the caller.
func (s *staffService) List(ctx context.Context, caller *model.Staff, q ListQuery) ([]model.StaffResponse, error) {
	if err := Authorize(caller, model.PermStaffManage); err != nil {
		return nil, err
	}
	out := []model.StaffResponse{}
	scope := ScopeOf(caller)
	brands := scope.BrandIDs()
	if len(brands) == 0 {
		return out, nil
	}

	filters := []repository.Filter{repository.InBrands(brands)}
	if q.BrandID != nil {
		filters = append(filters, repository.InBrands([]uuid.UUID{*q.BrandID}))
	}
	if q.OutletID != nil {
		filters = append(filters, repository.InOutlets([]uuid.UUID{*q.OutletID}))
	}
	if q.Status != "" {
		filters = append(filters, repository.Where("staff.status = ?", q.Status))
	}

	rows, err := s.staffRepo.Find(ctx, filters...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range rows {
		out = append(out, rows[i].ToResponse())
	}
	return out, nil
}

func (s *staffService) Get(ctx context.Context, caller *model.Staff, id uuid.UUID) (*model.StaffResponse, error) {
	self := caller != nil && caller.ID == id
	if self {
		if err := Authorize(caller); err != nil {
			return nil, err
		}
	} else if err := Authorize(caller, model.PermStaffManage); err != nil {
		return nil, err
	}
	target, err := s.staffRepo.FindIdentity(ctx, id)
	if err != nil {
		return nil, staffStorageError(err)
	}
	if !self && !s.visible(caller, target) {
		return nil, apperror.NotFound("staff")
	}
	resp := target.ToResponse()
	return &resp, nil
}

// visible reports whether target shares a brand with caller.
func (s *staffService) visible(caller, target *model.Staff) bool {
	scope := ScopeOf(caller)
	for _, id := range target.BrandIDs() {
		if scope.HasBrand(id) {
			return true
		}
	}
	return false
}

// resolveRole loads the role. Only super staff may hand out the super role.
func (s *staffService) resolveRole(ctx context.Context, caller *model.Staff, id uint) (*model.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation(map[string]string{"role_id": "unknown"})
		}
		return nil, apperror.Internal(err)
	}
	if role.IsSuperRole && !caller.IsSuper() {
		return nil, apperror.Forbidden("only administrators can assign the " + role.Name + " role")
	}
	return role, nil
}

// guardSuperTarget keeps super staff out of reach of everyone else.
func guardSuperTarget(caller, target *model.Staff) error {
	if target.IsSuper() && !caller.IsSuper() {
		return apperror.Forbidden("only administrators can manage an administrator")
	}
	return nil
}

// resolvePermissions loads catalog permissions. Callers without the super role
// can only hand out keys they hold themselves.
func (s *staffService) resolvePermissions(ctx context.Context, caller *model.Staff, keys []string) ([]model.Permission, error) {
	if err := s.catalog.Check(keys); err != nil {
		return nil, err
	}
	if !caller.IsSuper() {
		for _, key := range keys {
			if !caller.HasPermission(key) {
				return nil, apperror.Forbidden("cannot grant " + key + " without holding it")
			}
		}
	}
	perms, err := s.permRepo.FindByKeys(ctx, keys)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if perms == nil {
		perms = []model.Permission{}
	}
	return perms, nil
}

// checkAssignment keeps grants inside the caller's scope and every outlet
// inside one of the assigned brands.
func (s *staffService) checkAssignment(ctx context.Context, caller *model.Staff, brands, outlets []uuid.UUID) error {
	scope := ScopeOf(caller)
	for _, id := range brands {
		if !scope.HasBrand(id) {
			return apperror.Forbidden("brand " + id.String() + " is outside your scope")
		}
	}
	for _, id := range outlets {
		if !scope.HasOutlet(id) {
			return apperror.Forbidden("outlet " + id.String() + " is outside your scope")
		}
	}
	if len(outlets) == 0 {
		return nil
	}

	var rows []model.Outlet
	if err := s.db.WithContext(ctx).Select("id", "brand_id").Where("id IN ?", outlets).Find(&rows).Error; err != nil {
		return apperror.Internal(err)
	}
	owner := make(map[uuid.UUID]uuid.UUID, len(rows))
	for _, o := range rows {
		owner[o.ID] = o.BrandID
	}
	assigned := make(map[uuid.UUID]struct{}, len(brands))
	for _, id := range brands {
		assigned[id] = struct{}{}
	}
	for _, id := range outlets {
		brandID, ok := owner[id]
		if !ok {
			return apperror.Validation(map[string]string{"outlets": "unknown outlet " + id.String()})
		}
		if _, ok := assigned[brandID]; !ok {
			return apperror.Validation(map[string]string{"outlets": "not_in_brand"})
		}
	}
	return nil
}

func (s *staffService) reload(ctx context.Context, id uuid.UUID) (*model.StaffResponse, error) {
	staff, err := s.staffRepo.FindIdentity(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	resp := staff.ToResponse()
	return &resp, nil
}

func (s *staffService) publish(action string, id uuid.UUID, brands []uuid.UUID, caller *model.Staff) {
	for _, brandID := range brands {
		s.pub.Publish(ws.Event{
			Type:     ws.EventChange,
			Resource: "staff",
			Action:   action,
			ID:       id,
			BrandID:  brandID,
			StaffID:  caller.ID,
		})
	}
}

func staffStorageError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflict("email")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound("staff")
	default:
		return apperror.Internal(err)
	}
}

func orEmpty(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

func orEmptyKeys(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}
