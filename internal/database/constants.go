package database

const (
	// DefaultMinConnections is kept warm in every pool
	DefaultMinConnections = 2

	ToolMaxConnections = 2
)

// Migrations
const (
	GooseDialect  = "postgres"
	MigrationsDir = "migrations"
)

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"

	LogMsgConnectedToDatabase = "Connected to database"
)
