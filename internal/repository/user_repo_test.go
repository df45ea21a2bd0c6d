package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"travelfy/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func contains(s, substr string) bool { return strings.Contains(s, substr) }

func TestUserSQLite_Create(t *testing.T) {
	tests := []struct {
		name           string
		user           models.User
		mockExpect     func(sqlmock.Sqlmock)
		wantErr        bool
		errContainsStr string
	}{
		{
			name: "success",
			user: models.User{Username: "alice", PasswordHash: "h123", Bio: ""},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "h123", "").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			wantErr: false,
		},
		{
			name: "duplicate username fails at the database",
			user: models.User{Username: "alice", PasswordHash: "h456"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "h456", "").
					WillReturnError(errors.New("UNIQUE constraint failed: users.username"))
			},
			wantErr:        true,
			errContainsStr: "insert user",
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			err := repo.Create(context.Background(), tt.user)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContainsStr != "" && !contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUserSQLite_GetByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"username", "password_hash", "bio"}).
			AddRow("alice", "h123", "Loves hiking")
		mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
			WithArgs("alice").
			WillReturnRows(rows)

		u, err := repo.GetByUsername(context.Background(), "alice")
		if err != nil {
			t.Fatalf("GetByUsername: %v", err)
		}
		if u == nil {
			t.Fatal("expected user, got nil")
		}
		if u.Username != "alice" || u.PasswordHash != "h123" || u.Bio != "Loves hiking" {
			t.Fatalf("unexpected user: %+v", u)
		}
	})

	t.Run("not found returns nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
			WithArgs("bob").
			WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "bio"}))

		u, err := repo.GetByUsername(context.Background(), "bob")
		if err != nil {
			t.Fatalf("GetByUsername: %v", err)
		}
		if u != nil {
			t.Fatalf("expected nil user, got %+v", u)
		}
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
			WithArgs("carol").
			WillReturnError(errors.New("db down"))

		_, err := repo.GetByUsername(context.Background(), "carol")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !contains(err.Error(), "select user") {
			t.Fatalf("expected wrapped error, got %q", err.Error())
		}
	})
}

func TestUserSQLite_UpdateBio(t *testing.T) {
	t.Run("row matched", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateUserBioSQL)).
			WithArgs("Loves hiking", "alice").
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.UpdateBio(context.Background(), "alice", "Loves hiking")
		if err != nil {
			t.Fatalf("UpdateBio: %v", err)
		}
		if !updated {
			t.Fatal("expected updated=true")
		}
	})

	t.Run("no row matched", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateUserBioSQL)).
			WithArgs("Loves hiking", "bob").
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.UpdateBio(context.Background(), "bob", "Loves hiking")
		if err != nil {
			t.Fatalf("UpdateBio: %v", err)
		}
		if updated {
			t.Fatal("expected updated=false for unknown user")
		}
	})
}

func TestUserSQLite_Count(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(countUsersSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 users, got %d", n)
	}
}
