package service

import (
	"context"
	"errors"
	"time"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/internal/ws"
	"go-pos-admin/pkg/jwt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var errInvalidCredentials = apperror.Unauthenticated("invalid email or password")

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	PinLogin(ctx context.Context, email, pin string) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*model.Staff, error)
	ChangePassword(ctx context.Context, staff *model.Staff, oldPassword, newPassword string) error
	Heartbeat(ctx context.Context, staff *model.Staff) error
}

type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	Staff     model.StaffResponse `json:"staff"`
}

type authService struct {
	staffRepo repository.StaffRepository
	sessions  repository.SessionStore
	tokens    *jwt.Manager
	pub       Publisher
	log       zerolog.Logger
}

func NewAuthService(staffRepo repository.StaffRepository, sessions repository.SessionStore, tokens *jwt.Manager, pub Publisher, log zerolog.Logger) AuthService {
	if sessions == nil {
		sessions = repository.NopSessionStore{}
	}
	if pub == nil {
		pub = NopPublisher{}
	}
	return &authService{
		staffRepo: staffRepo,
		sessions:  sessions,
		tokens:    tokens,
		pub:       pub,
		log:       log,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	return s.login(ctx, email, func(st *model.Staff) bool { return st.CheckPassword(password) })
}

// PinLogin is the point-of-sale login with the staff PIN in place of the password.
func (s *authService) PinLogin(ctx context.Context, email, pin string) (*LoginResponse, error) {
	return s.login(ctx, email, func(st *model.Staff) bool { return st.CheckPin(pin) })
}

func (s *authService) login(ctx context.Context, email string, verify func(*model.Staff) bool) (*LoginResponse, error) {
	staff, err := s.staffRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, apperror.Internal(err)
	}

	// Credentials first, so an inactive account is only revealed to its owner.
	if !verify(staff) {
		return nil, errInvalidCredentials
	}
	if !staff.IsActive() {
		return nil, apperror.Forbidden("account is " + staff.Status)
	}

	token, claims, err := s.tokens.GenerateToken(staff.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := s.staffRepo.UpdateLastSeen(ctx, staff.ID); err != nil {
		s.log.Warn().Err(err).Str("staff_id", staff.ID.String()).Msg("update last seen")
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Staff:     staff.ToResponse(),
	}, nil
}

// Logout revokes the token's id until the token would have expired anyway.
// Invalid tokens are ignored: there is nothing left to revoke.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Authenticate resolves a session token to the staff identity with role,
// permissions and scope loaded.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.Staff, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, apperror.Unauthenticated(err.Error())
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if revoked {
		return nil, apperror.Unauthenticated("session has been logged out")
	}

	staff, err := s.staffRepo.FindIdentity(ctx, claims.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthenticated("staff not found")
		}
		return nil, apperror.Internal(err)
	}
	if !staff.IsActive() {
		return nil, apperror.Forbidden("account is " + staff.Status)
	}
	return staff, nil
}

func (s *authService) ChangePassword(ctx context.Context, staff *model.Staff, oldPassword, newPassword string) error {
	if staff == nil {
		return apperror.Unauthenticated("authentication required")
	}
	if len(newPassword) < minPasswordLength {
		return apperror.Validation(map[string]string{"new_password": "min=6"})
	}
	full, err := s.staffRepo.FindByEmail(ctx, staff.Email)
	if err != nil {
		return apperror.Internal(err)
	}
	if !full.CheckPassword(oldPassword) {
		return apperror.Validation(map[string]string{"old_password": "mismatch"})
	}
	if err := full.SetPassword(newPassword); err != nil {
		return apperror.Internal(err)
	}
	if err := s.staffRepo.UpdateCredentials(ctx, full.ID, full.Password, ""); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Heartbeat records activity and announces presence to every brand the staff
// member belongs to.
func (s *authService) Heartbeat(ctx context.Context, staff *model.Staff) error {
	if err := s.staffRepo.UpdateLastSeen(ctx, staff.ID); err != nil {
		return apperror.Internal(err)
	}
	for _, brandID := range staff.BrandIDs() {
		s.pub.Publish(ws.Event{
			Type:    ws.EventPresence,
			Action:  "online",
			ID:      staff.ID,
			BrandID: brandID,
			StaffID: staff.ID,
		})
	}
	return nil
}
