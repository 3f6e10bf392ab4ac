package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
)

func TestUserRepository_CRUDAndList(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{
		Email:        "Seller@VoltBay.io",
		Name:         "Sam Seller",
		PasswordHash: "hash",
		Role:         entities.RoleSeller,
	}
	require.NoError(t, repo.Create(ctx, u))
	require.Equal(t, "seller@voltbay.io", u.Email)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, entities.RoleSeller, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, "seller@voltbay.io")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "hash2"))
	require.NoError(t, repo.UpdateRole(ctx, u.ID, entities.RoleEnterpriseVendor))

	updated, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, entities.RoleEnterpriseVendor, updated.Role)

	items, total, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, items, 1)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &entities.User{Email: "dup@voltbay.io", Name: "First", PasswordHash: "h", Role: entities.RoleBuyer}
	require.NoError(t, repo.Create(ctx, first))

	second := &entities.User{Email: "DUP@voltbay.io", Name: "Second", PasswordHash: "h", Role: entities.RoleBuyer}
	require.ErrorIs(t, repo.Create(ctx, second), domainerrors.ErrAlreadyExists)
}

func TestUserRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "missing@voltbay.io")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.ErrorIs(t, repo.UpdatePassword(ctx, id, "hash"), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdateRole(ctx, id, entities.RoleAdmin), domainerrors.ErrNotFound)
}
