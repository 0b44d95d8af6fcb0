package activitylog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stockpilot/inventory-admin/internal/models"
)

// openTestDB connects to the database named by TEST_DATABASE_URL. Tests that
// need a real database skip when the variable is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Room{},
		&models.Item{},
		&models.ActivityLog{},
	))

	t.Cleanup(func() {
		db.Exec("DELETE FROM activity_logs")
	})

	return db
}

func testItem(t *testing.T, db *gorm.DB) *models.Item {
	t.Helper()

	room := models.Room{Name: fmt.Sprintf("room-%d", time.Now().UnixNano())}
	require.NoError(t, db.Create(&room).Error)

	category := models.Category{Name: fmt.Sprintf("cat-%d", time.Now().UnixNano())}
	require.NoError(t, db.Create(&category).Error)

	item := models.Item{
		Name:       "Hex bolt",
		SKU:        fmt.Sprintf("SKU-%d", time.Now().UnixNano()),
		CategoryID: category.ID,
		RoomID:     room.ID,
		Quantity:   10,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

func TestRecorderLifecycle(t *testing.T) {
	db := openTestDB(t)
	rec := New(db)
	ctx := context.Background()

	causer := models.User{
		Name:         "Logger",
		Email:        fmt.Sprintf("logger-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "x",
		Active:       true,
	}
	require.NoError(t, db.Create(&causer).Error)

	item := testItem(t, db)

	// created
	require.NoError(t, rec.Created(db, &causer, item))

	// updated, with the snapshot taken before the mutation
	old, err := Snapshot(item)
	require.NoError(t, err)
	item.Quantity = 5
	require.NoError(t, db.Save(item).Error)
	require.NoError(t, rec.Updated(db, &causer, item, old))

	// deleted
	require.NoError(t, rec.Deleted(db, &causer, item))

	logs, err := rec.ForSubject(ctx, item)
	require.NoError(t, err)
	require.Len(t, logs, 3)

	// Newest first.
	assert.Equal(t, "deleted item", logs[0].Description)
	assert.Equal(t, "updated item", logs[1].Description)
	assert.Equal(t, "created item", logs[2].Description)

	for _, entry := range logs {
		assert.Equal(t, "item", entry.LogName)
		require.NotNil(t, entry.SubjectType)
		assert.Equal(t, "item", *entry.SubjectType)
		require.NotNil(t, entry.SubjectID)
		assert.Equal(t, item.ID, *entry.SubjectID)
		require.NotNil(t, entry.CauserType)
		assert.Equal(t, "user", *entry.CauserType)
		require.NotNil(t, entry.CauserID)
		assert.Equal(t, causer.ID, *entry.CauserID)
	}

	var updated map[string]any
	require.NoError(t, json.Unmarshal(logs[1].Properties, &updated))
	assert.Equal(t, float64(5), updated["attributes"].(map[string]any)["quantity"])
	assert.Equal(t, float64(10), updated["old"].(map[string]any)["quantity"])

	var created map[string]any
	require.NoError(t, json.Unmarshal(logs[2].Properties, &created))
	assert.NotContains(t, created, "old")
}

func TestForSubjectIsolation(t *testing.T) {
	db := openTestDB(t)
	rec := New(db)
	ctx := context.Background()

	first := testItem(t, db)
	second := testItem(t, db)

	require.NoError(t, rec.Created(db, nil, first))
	require.NoError(t, rec.Created(db, nil, second))
	require.NoError(t, rec.Deleted(db, nil, second))

	logs, err := rec.ForSubject(ctx, first)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, first.ID, *logs[0].SubjectID)
}

func TestRecorderJoinsTransaction(t *testing.T) {
	db := openTestDB(t)
	rec := New(db)
	ctx := context.Background()

	item := testItem(t, db)
	boom := errors.New("boom")

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := rec.Created(tx, nil, item); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	logs, err := rec.ForSubject(ctx, item)
	require.NoError(t, err)
	assert.Empty(t, logs, "a rolled back mutation leaves no activity behind")
}
