// Package constants provides shared constants used throughout the eventhub codebase.
// This includes timeouts, file permissions, and default values that should be
// consistent across the library and the CLI.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the EventHub API
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Minute

	// StatsRefreshTimeout bounds the background stats refresh triggered by
	// registration status changes
	StatsRefreshTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureDirPermissions is for directories holding credentials (rwx------)
	SecureDirPermissions = 0700

	// SecureFilePermissions is for sensitive files like session tokens (rw-------)
	SecureFilePermissions = 0600
)

// API constants
const (
	// DefaultBaseURL is the EventHub API endpoint used when none is configured
	DefaultBaseURL = "http://localhost:5000/api"

	// RequestIDHeader carries the per-request correlation ID
	RequestIDHeader = "X-Request-ID"
)

// Limit constants define various limits and capacities
const (
	// MaxTitleLength is the maximum allowed length for event titles
	MaxTitleLength = 200

	// MaxDescriptionLength is the maximum allowed length for event descriptions
	MaxDescriptionLength = 4096

	// MaxReasonLength is the maximum allowed length for rejection reasons
	MaxReasonLength = 500

	// MinPasswordLength is the minimum accepted password length at signup
	MinPasswordLength = 6
)

// File name constants
const (
	// CredentialsFileName is the name of the persisted session file
	CredentialsFileName = "credentials.json"

	// ConfigDirName is the per-user directory holding eventhub state
	ConfigDirName = ".eventhub"
)
