package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/quezi/domain"
)

func TestSessionRepositoryImpl_Create(t *testing.T) {
	tests := []struct {
		name    string
		session *domain.Session
		ttl     time.Duration
		wantTTL time.Duration
	}{
		{
			name: "expiry shorter than repository ttl",
			session: &domain.Session{
				ID:        "session_123",
				UserID:    1,
				CreatedAt: time.Now(),
				ExpiresAt: time.Now().Add(30 * time.Minute),
			},
			ttl:     time.Hour,
			wantTTL: 30 * time.Minute,
		},
		{
			name: "no expiry uses repository ttl",
			session: &domain.Session{
				ID:        "session_456",
				UserID:    2,
				CreatedAt: time.Now(),
			},
			ttl:     time.Hour,
			wantTTL: time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mr := setupTestRedis(t)
			repo := NewSessionRepository(client, tt.ttl)

			require.NoError(t, repo.Create(context.Background(), tt.session))

			key := "session:" + tt.session.ID
			assert.True(t, mr.Exists(key))
			assert.InDelta(t, tt.wantTTL.Seconds(), mr.TTL(key).Seconds(), 2)
		})
	}
}

func TestSessionRepositoryImpl_FindByID(t *testing.T) {
	tests := []struct {
		name     string
		session  *domain.Session
		lookup   string
		wantErr  error
		wantUser uint
	}{
		{
			name:     "active session",
			session:  &domain.Session{ID: "active", UserID: 1, CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)},
			lookup:   "active",
			wantUser: 1,
		},
		{
			name:    "missing session",
			lookup:  "nonexistent",
			wantErr: domain.ErrSessionNotFound,
		},
		{
			name:    "expired session",
			session: &domain.Session{ID: "expired", UserID: 2, CreatedAt: time.Now().Add(-2 * time.Hour), ExpiresAt: time.Now().Add(-time.Hour)},
			lookup:  "expired",
			wantErr: domain.ErrSessionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mr := setupTestRedis(t)
			repo := NewSessionRepository(client, time.Hour)
			ctx := context.Background()
			if tt.session != nil {
				require.NoError(t, repo.Create(ctx, tt.session))
			}

			got, err := repo.FindByID(ctx, tt.lookup)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantErr == domain.ErrSessionExpired {
					assert.False(t, mr.Exists("session:"+tt.lookup), "expired session is cleaned up")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lookup, got.ID)
			assert.Equal(t, tt.wantUser, got.UserID)
		})
	}
}

func TestSessionRepositoryImpl_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Session{ID: "bye", UserID: 1}))
	require.NoError(t, repo.Delete(ctx, "bye"))

	assert.False(t, mr.Exists("session:bye"))
	_, err := repo.FindByID(ctx, "bye")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
