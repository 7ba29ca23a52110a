package database

import (
	"testing"

	"coursegpt_backend/internal/config"
	"coursegpt_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDBSQLiteAndMigrate(t *testing.T) {
	db, err := InitDB(&config.DatabaseConfig{Driver: "sqlite", DSN: "file:dbtest?mode=memory&cache=shared"}, "release")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&model.Lesson{}))
	assert.True(t, db.Migrator().HasTable(&model.Course{}))
}

func TestDialectorFor(t *testing.T) {
	d, err := dialectorFor(&config.DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, DBName: "coursegpt"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = dialectorFor(&config.DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, DBName: "coursegpt", Charset: "utf8mb4"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	_, err = dialectorFor(&config.DatabaseConfig{Driver: "mongo"})
	assert.Error(t, err)
}
