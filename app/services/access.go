package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/pkg/rbac"
)

// selfOrAdmin allows caller to act on target's records when they are the
// same person or the caller is an admin.
func selfOrAdmin(ctx context.Context, roles rbac.RoleLookup, caller, target string) error {
	if caller != "" && caller == target {
		return nil
	}
	admin, err := isAdmin(ctx, roles, caller)
	if err != nil {
		return err
	}
	if !admin {
		return fail(ErrForbidden, "Forbidden Access!")
	}
	return nil
}

func isAdmin(ctx context.Context, roles rbac.RoleLookup, email string) (bool, error) {
	d, err := rbac.Authorize(ctx, roles, email, models.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("role lookup: %w", err)
	}
	return d == rbac.Allowed, nil
}

// normalizeEmail matches the form verified identities carry.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
