package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Staff is an authenticated person acting on behalf of an owner. Password and
// PosPin hold bcrypt hashes and never leave the service.
type Staff struct {
	BaseModel
	Image       string       `gorm:"type:varchar(512)" json:"image"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Email       string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone       string       `gorm:"type:varchar(20);index" json:"phone"`
	Password    string       `gorm:"type:varchar(255);not null" json:"-"`
	PosPin      string       `gorm:"type:varchar(255)" json:"-"`
	Status      string       `gorm:"type:varchar(20);not null;default:active;index" json:"status"`
	OwnerID     *uuid.UUID   `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	RoleID      uint         `gorm:"index;not null" json:"role_id"`
	Role        *Role        `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Permissions []Permission `gorm:"many2many:staff_permissions;" json:"-"`
	Brands      []Brand      `gorm:"many2many:staff_brands;" json:"-"`
	Outlets     []Outlet     `gorm:"many2many:staff_outlets;" json:"-"`
	LastSeenAt  *time.Time   `json:"last_seen_at,omitempty"`
	// PinSet survives ClearSecrets so responses can still report has_pin.
	PinSet      bool         `gorm:"-" json:"-"`
}

func (Staff) TableName() string {
	return "staff"
}

// StaffBrand is the staff_brands join row. The composite key makes grants
// idempotent.
type StaffBrand struct {
	StaffID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	BrandID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

// StaffOutlet is the staff_outlets join row.
type StaffOutlet struct {
	StaffID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OutletID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

// SetPassword hashes and sets the staff password
func (s *Staff) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.Password = string(hashed)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (s *Staff) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(password)) == nil
}

// SetPin hashes and sets the POS login PIN
func (s *Staff) SetPin(pin string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PosPin = string(hashed)
	return nil
}

// CheckPin verifies the POS login PIN. Staff without a PIN never match.
func (s *Staff) CheckPin(pin string) bool {
	if s.PosPin == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.PosPin), []byte(pin)) == nil
}

// ClearSecrets drops both hashes, remembering whether a PIN was set.
func (s *Staff) ClearSecrets() {
	s.PinSet = s.PinSet || s.PosPin != ""
	s.Password = ""
	s.PosPin = ""
}

func (s *Staff) IsActive() bool {
	return s.Status == StatusActive
}

// IsSuper reports whether the staff holds the super role.
func (s *Staff) IsSuper() bool {
	return s.Role != nil && s.Role.IsSuperRole
}

// HasPermission checks if the staff holds a specific permission key
func (s *Staff) HasPermission(key string) bool {
	for _, p := range s.Permissions {
		if p.Key == key {
			return true
		}
	}
	return false
}

func (s *Staff) PermissionKeys() []string {
	return PermissionKeys(s.Permissions)
}

func (s *Staff) BrandIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.Brands))
	for i, b := range s.Brands {
		ids[i] = b.ID
	}
	return ids
}

func (s *Staff) OutletIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.Outlets))
	for i, o := range s.Outlets {
		ids[i] = o.ID
	}
	return ids
}

// StaffResponse is the authenticated projection returned by the API.
type StaffResponse struct {
	ID          uuid.UUID   `json:"id"`
	Image       string      `json:"image"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Status      string      `json:"status"`
	OwnerID     *uuid.UUID  `json:"owner_id,omitempty"`
	RoleID      uint        `json:"role_id"`
	Role        *Role       `json:"role,omitempty"`
	Permissions []string    `json:"permissions"`
	Brands      []uuid.UUID `json:"brands"`
	Outlets     []uuid.UUID `json:"outlets"`
	HasPin      bool        `json:"has_pin"`
	LastSeenAt  *time.Time  `json:"last_seen_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ToResponse converts Staff to StaffResponse
func (s *Staff) ToResponse() StaffResponse {
	var role *Role
	if s.Role != nil {
		r := *s.Role
		r.DefaultPermissions = nil
		role = &r
	}
	return StaffResponse{
		ID:          s.ID,
		Image:       s.Image,
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		Status:      s.Status,
		OwnerID:     s.OwnerID,
		RoleID:      s.RoleID,
		Role:        role,
		Permissions: s.PermissionKeys(),
		Brands:      s.BrandIDs(),
		Outlets:     s.OutletIDs(),
		HasPin:      s.PosPin != "" || s.PinSet,
		LastSeenAt:  s.LastSeenAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
