package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/learnhub-auth/internal/model"
)

var userColumnNames = []string{"id", "email", "password_hash", "first_name", "last_name", "role", "created_at", "updated_at", "deleted_at"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return mockDB
}

func userRow(u model.User) *pgxmock.Rows {
	return pgxmock.NewRows(userColumnNames).AddRow(
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.CreatedAt, u.UpdatedAt, u.DeletedAt,
	)
}

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	now := time.Now()
	existing := model.User{
		ID: uuid.New(), Email: "a@x.com", PasswordHash: []byte("hash"),
		FirstName: "A", LastName: "B", Role: model.RoleUser, CreatedAt: now, UpdatedAt: now,
	}

	tests := []struct {
		name    string
		setup   func(pgxmock.PgxPoolIface)
		want    model.User
		wantErr error
	}{
		{
			name: "found",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(`SELECT .* FROM users WHERE lower\(email\) = lower\(\$1\)`).
					WithArgs("a@x.com").
					WillReturnRows(userRow(existing))
			},
			want: existing,
		},
		{
			name: "not found",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(`SELECT .* FROM users`).
					WithArgs("a@x.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "database error",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(`SELECT .* FROM users`).
					WithArgs("a@x.com").
					WillReturnError(assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := newMockPool(t)
			tt.setup(mockDB)
			repo := NewUserRepository(mockDB)

			got, err := repo.GetByEmail(context.Background(), "a@x.com")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want.ID, got.ID)
				assert.Equal(t, tt.want.Email, got.Email)
				assert.Equal(t, tt.want.Role, got.Role)
				assert.Equal(t, tt.want.PasswordHash, got.PasswordHash)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	mockDB := newMockPool(t)
	id := uuid.New()
	mockDB.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := NewUserRepository(mockDB).GetByID(context.Background(), id)
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	now := time.Now()
	user := model.User{
		ID: uuid.New(), Email: "a@x.com", PasswordHash: []byte("hash"),
		FirstName: "A", LastName: "B", Role: model.RoleUser, CreatedAt: now, UpdatedAt: now,
	}
	args := []any{user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role, user.CreatedAt, user.UpdatedAt}

	t.Run("success", func(t *testing.T) {
		mockDB := newMockPool(t)
		mockDB.ExpectQuery(`INSERT INTO users`).
			WithArgs(args...).
			WillReturnRows(userRow(user))

		saved, err := NewUserRepository(mockDB).Create(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, user.ID, saved.ID)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		mockDB := newMockPool(t)
		mockDB.ExpectQuery(`INSERT INTO users`).
			WithArgs(args...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_active_key"})

		_, err := NewUserRepository(mockDB).Create(context.Background(), user)
		require.ErrorIs(t, err, model.ErrConflict)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("other database error", func(t *testing.T) {
		mockDB := newMockPool(t)
		mockDB.ExpectQuery(`INSERT INTO users`).
			WithArgs(args...).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		_, err := NewUserRepository(mockDB).Create(context.Background(), user)
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrConflict)
	})
}
