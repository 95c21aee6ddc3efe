package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB opens gorm over a sqlmock connection. Implicit single-statement
// transactions are skipped so expectations track only the explicit
// transactional passes under test.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func userWarriorColumns() []string {
	return []string{
		"id", "user_id", "warrior_type_id", "name", "count", "level",
		"training_cost", "resource_cost", "training_time", "upgrading_time",
		"attack", "defense", "speed",
	}
}

func trainingQueueColumns() []string {
	return []string{"id", "user_id", "warrior_type_id", "count", "finish_time"}
}

func upgradeQueueColumns() []string {
	return []string{"id", "user_id", "warrior_type_id", "upgrading_time", "finish_time"}
}
