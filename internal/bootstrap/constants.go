package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of old log files kept before a new one is opened
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting Knightly Treasures"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Store Selection
// =============================================================================

// StoreConnectTimeout bounds the startup ping; a slower database counts as unavailable
const StoreConnectTimeout = 5 * time.Second

const (
	LogMsgStoreLocalMode     = "Store mode is local, using in-memory store"
	LogMsgStoreUnavailable   = "Database unavailable, falling back to in-memory store"
	LogMsgStoreConnected     = "Connected to postgres store"
	LogMsgMigrationsApplied  = "Database migrations applied"
	ErrMsgFailedMigrate      = "failed to apply migrations"
	ErrMsgFailedSeedWorld    = "failed to seed initial honor"
	LogMsgInitialHonorSeeded = "Initial honor seeded from world file"
)

// =============================================================================
// Content Loading
// =============================================================================

const (
	LogMsgLoadingCatalog = "Loading item catalog..."
	LogMsgCatalogLoaded  = "Item catalog loaded"
	LogMsgWorldLoaded    = "World file loaded"

	ErrMsgFailedLoadWorld   = "failed to load world file"
	ErrMsgFailedLoadCatalog = "failed to load item catalog"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgSSESubscriberRegistered    = "SSE subscriber registered"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgRolloverShutdownFail = "Week rollover worker shutdown failed"
)
