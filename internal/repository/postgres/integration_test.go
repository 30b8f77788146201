//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/learnhub-auth/internal/model"
	repo "github.com/dtroode/learnhub-auth/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "learnhub_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/learnhub_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConnection(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newUser(email string) model.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: []byte("hash"),
		FirstName:    "First",
		LastName:     "Last",
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	ur := repo.NewUserRepository(connect(t))

	u := newUser("user@example.com")
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)

	byEmail, err := ur.GetByEmail(ctx, "USER@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, model.RoleUser, byID.Role)

	_, err = ur.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)

	federated := newUser("federated@example.com")
	federated.PasswordHash = nil
	saved, err = ur.Create(ctx, federated)
	require.NoError(t, err)
	require.False(t, saved.HasPassword())
}

func TestUserRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	ur := repo.NewUserRepository(connect(t))

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ur.Create(ctx, newUser("race@example.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case assert.ErrorIs(t, err, model.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)
}

func TestAuthTokenRepository_RevokeAll(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ur := repo.NewUserRepository(conn)
	tr := repo.NewAuthTokenRepository(conn)

	alice, err := ur.Create(ctx, newUser("alice@example.com"))
	require.NoError(t, err)
	bob, err := ur.Create(ctx, newUser("bob@example.com"))
	require.NoError(t, err)

	token := func(owner uuid.UUID, n int) model.AuthToken {
		return model.AuthToken{
			UserID:           owner,
			AccessTokenHash:  []byte(fmt.Sprintf("access-%s-%d", owner, n)),
			RefreshTokenHash: []byte(fmt.Sprintf("refresh-%s-%d", owner, n)),
			IssuedAt:         time.Now(),
		}
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, tr.Create(ctx, token(alice.ID, i)))
	}
	require.NoError(t, tr.Create(ctx, token(bob.ID, 0)))

	revoked, err := tr.RevokeAllByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), revoked)

	for i := 0; i < 3; i++ {
		got, err := tr.GetByAccessHash(ctx, token(alice.ID, i).AccessTokenHash)
		require.NoError(t, err)
		assert.False(t, got.Usable())
	}

	bobs, err := tr.GetByAccessHash(ctx, token(bob.ID, 0).AccessTokenHash)
	require.NoError(t, err)
	assert.True(t, bobs.Usable())

	revoked, err = tr.RevokeAllByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, revoked)

	t.Run("revoked tokens stay revoked", func(t *testing.T) {
		_, err := conn.Exec(ctx, `UPDATE auth_tokens SET revoked = FALSE WHERE user_id = $1`, alice.ID)
		require.Error(t, err)

		_, err = conn.Exec(ctx, `UPDATE auth_tokens SET expired = FALSE WHERE user_id = $1`, alice.ID)
		require.Error(t, err)
	})
}
