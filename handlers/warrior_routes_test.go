package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stepwars-server/services"
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	app := fiber.New()
	warriorService := services.NewWarriorService(db)
	catalog := services.NewCatalogService(db)
	SetupWarriorRoutes(app, warriorService, catalog, db)
	return app, mock
}

func expectValidSession(mock sqlmock.Sqlmock, userID uint) {
	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "expires_at", "created_at"}).
			AddRow("tok-123", userID, time.Now().Add(time.Hour), time.Now()))
}

func authedRequest(method, target string, body []byte) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: "token", Value: "tok-123"})
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestWarriorRoutes_Auth(t *testing.T) {
	t.Run("MissingTokenIsUnauthorized", func(t *testing.T) {
		app, _ := newTestApp(t)

		req := httptest.NewRequest(http.MethodGet, "/user/warriors/types", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ExpiredSessionIsUnauthorized", func(t *testing.T) {
		app, mock := newTestApp(t)

		mock.ExpectQuery(`SELECT \* FROM "sessions"`).
			WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "expires_at", "created_at"}))

		resp, err := app.Test(authedRequest(http.MethodGet, "/user/warriors/types", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestWarriorRoutes_Train(t *testing.T) {
	t.Run("StartsTraining", func(t *testing.T) {
		app, mock := newTestApp(t)

		expectValidSession(mock, 7)
		mock.ExpectQuery(`SELECT \* FROM "user_warriors"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "warrior_type_id", "name", "count", "level", "training_time"}).
				AddRow(1, 7, 2, "Clubman", 0, 1, 100))
		mock.ExpectQuery(`INSERT INTO "warrior_trainings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		body, _ := json.Marshal(fiber.Map{"userId": 7, "warriorTypeId": 2, "count": 3})
		resp, err := app.Test(authedRequest(http.MethodPost, "/user/warriors/train", body))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		out := decodeBody(t, resp)
		assert.Equal(t, "Training 3 warriors started", out["message"])
		assert.NotEmpty(t, out["finishTime"])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RejectsZeroCount", func(t *testing.T) {
		app, mock := newTestApp(t)

		expectValidSession(mock, 7)

		body, _ := json.Marshal(fiber.Map{"userId": 7, "warriorTypeId": 2, "count": 0})
		resp, err := app.Test(authedRequest(http.MethodPost, "/user/warriors/train", body))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownWarriorIsNotFound", func(t *testing.T) {
		app, mock := newTestApp(t)

		expectValidSession(mock, 7)
		mock.ExpectQuery(`SELECT \* FROM "user_warriors"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		body, _ := json.Marshal(fiber.Map{"userId": 7, "warriorTypeId": 99, "count": 1})
		resp, err := app.Test(authedRequest(http.MethodPost, "/user/warriors/train", body))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestWarriorRoutes_ApplyTraining(t *testing.T) {
	t.Run("NothingDue", func(t *testing.T) {
		app, mock := newTestApp(t)

		expectValidSession(mock, 7)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "warrior_trainings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "warrior_type_id", "count", "finish_time", "created_at"}))
		mock.ExpectCommit()

		resp, err := app.Test(authedRequest(http.MethodPost, "/user/warriors/apply-training/7", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		out := decodeBody(t, resp)
		assert.Equal(t, "No completed trainings.", out["message"])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AppliesDueEntries", func(t *testing.T) {
		app, mock := newTestApp(t)
		due := time.Now().Add(-time.Minute)

		expectValidSession(mock, 7)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "warrior_trainings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "warrior_type_id", "count", "finish_time", "created_at"}).
				AddRow(1, 7, 2, 5, due, due.Add(-time.Hour)))
		mock.ExpectExec(`UPDATE "user_warriors" SET "count"=count \+ \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "warrior_trainings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		resp, err := app.Test(authedRequest(http.MethodPost, "/user/warriors/apply-training/7", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		out := decodeBody(t, resp)
		assert.Equal(t, "Applied 1 training(s)", out["message"])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BadUserParam", func(t *testing.T) {
		app, mock := newTestApp(t)

		expectValidSession(mock, 7)

		resp, err := app.Test(authedRequest(http.MethodPost, "/user/warriors/apply-training/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestWarriorRoutes_Queues(t *testing.T) {
	t.Run("TrainingQueueReturnsEntries", func(t *testing.T) {
		app, mock := newTestApp(t)
		finish := time.Now().Add(time.Hour)

		expectValidSession(mock, 7)
		mock.ExpectQuery(`SELECT \* FROM "warrior_trainings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "warrior_type_id", "count", "finish_time", "created_at"}).
				AddRow(1, 7, 2, 5, finish, time.Now()))

		resp, err := app.Test(authedRequest(http.MethodGet, "/user/warriors/training-queue/7", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var entries []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
		require.Len(t, entries, 1)
		assert.Equal(t, float64(5), entries[0]["count"])
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
