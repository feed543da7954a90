package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/quezi/domain"
)

func TestUserRepositoryImpl_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		Email:        "ana@example.com",
		Name:         "Ana",
		Phone:        "+5511912345678",
		PasswordHash: "hashed_password",
		UserType:     domain.UserTypeProfessional,
		City:         "São Paulo",
		IsActive:     true,
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	byEmail, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, domain.UserTypeProfessional, byEmail.UserType)
	assert.Equal(t, "São Paulo", byEmail.City)
	assert.False(t, byEmail.IsEmailVerified)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", byID.Name)
}

func TestUserRepositoryImpl_NotFound(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.ErrorIs(t, repo.SetActive(ctx, 42, false), domain.ErrUserNotFound)
}

func TestUserRepositoryImpl_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	seedUser(t, repo, "dup@example.com", domain.UserTypeClient)

	err := repo.Create(context.Background(), &domain.User{Email: "dup@example.com", UserType: domain.UserTypeClient})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestUserRepositoryImpl_Flags(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	u := seedUser(t, repo, "flags@example.com", domain.UserTypeClient)

	require.NoError(t, repo.MarkEmailVerified(ctx, u.ID))
	require.NoError(t, repo.MarkPhoneVerified(ctx, u.ID))
	require.NoError(t, repo.SetActive(ctx, u.ID, false))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsEmailVerified)
	assert.True(t, got.IsPhoneVerified)
	assert.False(t, got.IsActive)
}

func TestUserRepositoryImpl_Update(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	u := seedUser(t, repo, "upd@example.com", domain.UserTypeProfessional)

	u.Bio = "Nail artist"
	u.City = "Recife"
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nail artist", got.Bio)
	assert.Equal(t, "Recife", got.City)
	assert.Equal(t, "upd@example.com", got.Email)
}

func TestUserRepositoryImpl_List(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		seedUser(t, repo, fmt.Sprintf("pro%02d@example.com", i), domain.UserTypeProfessional)
	}
	for i := 0; i < 3; i++ {
		seedUser(t, repo, fmt.Sprintf("client%02d@example.com", i), domain.UserTypeClient)
	}
	inactive := seedUser(t, repo, "gone@example.com", domain.UserTypeProfessional)
	require.NoError(t, repo.SetActive(ctx, inactive.ID, false))

	tests := []struct {
		name      string
		filter    domain.UserFilter
		page      domain.Page
		wantTotal int64
		wantLen   int
	}{
		{
			name:      "all users first page",
			page:      domain.Page{Offset: 0, Limit: 10},
			wantTotal: 16,
			wantLen:   10,
		},
		{
			name:      "active professionals last page",
			filter:    domain.UserFilter{UserType: domain.UserTypeProfessional, ActiveOnly: true},
			page:      domain.Page{Offset: 10, Limit: 10},
			wantTotal: 12,
			wantLen:   2,
		},
		{
			name:      "search",
			filter:    domain.UserFilter{Search: "CLIENT0"},
			page:      domain.Page{Limit: 10},
			wantTotal: 3,
			wantLen:   3,
		},
		{
			name:      "page past the end",
			filter:    domain.UserFilter{UserType: domain.UserTypeClient},
			page:      domain.Page{Offset: 20, Limit: 10},
			wantTotal: 3,
			wantLen:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, total, err := repo.List(ctx, tt.filter, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, users, tt.wantLen)
		})
	}
}
