package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidSettings is returned when the resolver settings fail validation.
	ErrInvalidSettings = zerr.New("invalid resolver settings")

	// ErrMissingClientID is returned when no client identity is configured.
	ErrMissingClientID = zerr.New("client id must not be empty")

	// ErrInvalidTimeout is returned when the per-attempt timeout is not positive.
	ErrInvalidTimeout = zerr.New("timeout must be positive")

	// ErrInvalidRetries is returned when the retry bound is not positive.
	ErrInvalidRetries = zerr.New("retries must be positive")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidEnvValue is returned when an environment variable holds an unparsable value.
	ErrInvalidEnvValue = zerr.New("invalid environment value")

	// ErrSnapshotNotFound is returned when no snapshot exists at the configured path.
	ErrSnapshotNotFound = zerr.New("no snapshot present")

	// ErrSnapshotReadFailed is returned when the snapshot cannot be read.
	ErrSnapshotReadFailed = zerr.New("failed to read snapshot")

	// ErrSnapshotUnmarshalFailed is returned when the snapshot cannot be decoded.
	ErrSnapshotUnmarshalFailed = zerr.New("failed to unmarshal snapshot")

	// ErrSnapshotMarshalFailed is returned when the snapshot cannot be encoded.
	ErrSnapshotMarshalFailed = zerr.New("failed to marshal snapshot")

	// ErrSnapshotCreateFailed is returned when the snapshot directory cannot be created.
	ErrSnapshotCreateFailed = zerr.New("failed to create snapshot directory")

	// ErrSnapshotWriteFailed is returned when the snapshot cannot be written.
	ErrSnapshotWriteFailed = zerr.New("failed to write snapshot")

	// ErrTransportFailed is returned when a query attempt fails at the socket level.
	ErrTransportFailed = zerr.New("transport failure")

	// ErrEmptyReply is returned when the resolver service answers with an empty message.
	ErrEmptyReply = zerr.New("empty reply")

	// ErrNoQueries is returned when a command that needs queries receives none.
	ErrNoQueries = zerr.New("no queries specified")

	// ErrQueryNotFound is returned by the CLI when a query does not resolve to a real path.
	ErrQueryNotFound = zerr.New("query does not resolve")
)
