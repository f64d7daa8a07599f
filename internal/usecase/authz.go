package usecase

import (
	"context"
	"errors"
	"strings"

	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"
	"jobkit-backend/pkg/validation"
)

// principal returns the caller attached by the auth middleware.
func principal(ctx context.Context) (int64, domain.Role, error) {
	id, role, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return 0, "", apperror.Unauthorized("User not authenticated")
	}
	return id, role, nil
}

// authorizeOwner allows the owner acting in the given role, or any admin.
func authorizeOwner(ctx context.Context, ownerID int64, role domain.Role) error {
	id, r, err := principal(ctx)
	if err != nil {
		return err
	}
	if r == domain.RoleAdmin {
		return nil
	}
	if r != role || id != ownerID {
		return apperror.Forbidden("You can only access your own resources")
	}
	return nil
}

func validationError(err error) error {
	return apperror.Validation(validation.FieldErrors(err))
}

// repoError maps repository errors onto HTTP-facing ones.
func repoError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(notFound)
	}
	var dup *domain.DuplicateError
	if errors.As(err, &dup) {
		return apperror.FieldError(dup.Field, duplicateMessage(dup.Field))
	}
	return apperror.Internal(err)
}

func duplicateMessage(field string) string {
	return "A record with this " + strings.ReplaceAll(field, "_", " ") + " already exists."
}

// cleanNames trims, drops empties and removes case-insensitive duplicates, keeping first spelling.
func cleanNames(names []string, transform func(string) string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if transform != nil {
			n = transform(n)
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
