package service

import (
	"strings"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
)

// Allows reports whether staff holds at least one of perms. The super role
// holds every permission. No perms means no requirement.
func Allows(staff *model.Staff, perms ...string) bool {
	if staff == nil {
		return false
	}
	if len(perms) == 0 || staff.IsSuper() {
		return true
	}
	for _, p := range perms {
		if staff.HasPermission(p) {
			return true
		}
	}
	return false
}

// Authorize is the permission gate run before any persistence access.
func Authorize(staff *model.Staff, perms ...string) error {
	if staff == nil {
		return apperror.Unauthenticated("authentication required")
	}
	if !staff.IsActive() {
		return apperror.Forbidden("account is " + staff.Status)
	}
	if Allows(staff, perms...) {
		return nil
	}
	return apperror.Forbidden("missing permission: " + strings.Join(perms, " or "))
}
