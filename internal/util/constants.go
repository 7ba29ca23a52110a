package util

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Values applied when a lesson is created without them.
const (
	DefaultCategory         = "General"
	DefaultLevel            = LevelBeginner
	DefaultSubtopicDuration = 30
)

const (
	DatabaseMySQL    = "mysql"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)
