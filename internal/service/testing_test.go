package service

import (
	"regexp"
	"testing"
	"time"

	"coursegpt_backend/internal/repository"
	"coursegpt_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var unsafeDSNChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// newTestDB opens a private in-memory SQLite database for one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := unsafeDSNChars.ReplaceAllString(t.Name(), "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestLessonService(t *testing.T, cache LessonCache) (*LessonService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewLessonService(repository.NewLessonRepository(db), cache, 5*time.Second)
	svc.now = stepClock()
	return svc, db
}
