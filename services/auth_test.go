package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stepwars-server/models"
)

func testCatalog() *CatalogService {
	warriorTypes := defaultWarriorTypes()[:1]
	buildingTypes := defaultBuildingTypes()[:1]
	warriorTypes[0].ID = 1
	buildingTypes[0].ID = 1

	catalog := &CatalogService{
		warriors:      map[uint]models.WarriorType{1: warriorTypes[0]},
		buildings:     map[uint]models.BuildingType{1: buildingTypes[0]},
		warriorOrder:  warriorTypes,
		buildingOrder: buildingTypes,
	}
	return catalog
}

func registerInput() RegisterInput {
	return RegisterInput{
		Username: "ragnar",
		Email:    "ragnar@example.com",
		Password: "secret123",
		Tribe:    "north",
		Avatar:   "avatar.png",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("CreatesFullStartingState", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewAuthService(db, testCatalog())

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery(`INSERT INTO "user_stats"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "user_resources"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "user_steps"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "user_warriors"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "user_buildings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		user, err := service.Register(registerInput())
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
		assert.Equal(t, "ragnar", user.Username)
		assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackWhenWarriorInsertFails", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewAuthService(db, testCatalog())

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery(`INSERT INTO "user_stats"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "user_resources"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "user_steps"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO "user_warriors"`).
			WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		_, err := service.Register(registerInput())
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RejectsTakenUsername", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewAuthService(db, testCatalog())

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		_, err := service.Register(registerInput())
		assert.ErrorIs(t, err, ErrInvalidArgument)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RejectsMissingFields", func(t *testing.T) {
		db, _ := newMockDB(t)
		service := NewAuthService(db, testCatalog())

		in := registerInput()
		in.Tribe = ""
		_, err := service.Register(in)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userColumns := []string{"id", "username", "email", "password", "tribe", "avatar"}

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewAuthService(db, testCatalog())

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(7, "ragnar", "ragnar@example.com", string(hash), "north", ""))
		mock.ExpectExec(`INSERT INTO "sessions"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		user, session, err := service.Login("ragnar@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, uint(7), session.UserID)
		assert.True(t, session.ExpiresAt.After(session.CreatedAt))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WrongPassword", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewAuthService(db, testCatalog())

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(7, "ragnar", "ragnar@example.com", string(hash), "north", ""))

		_, _, err := service.Login("ragnar@example.com", "wrong")
		assert.ErrorIs(t, err, ErrUnauthorized)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewAuthService(db, testCatalog())

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, _, err := service.Login("nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrUnauthorized)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
