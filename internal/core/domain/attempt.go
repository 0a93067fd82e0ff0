package domain

// SendStatus is the outcome of a single transport round-trip.
type SendStatus int

const (
	// SendOK means a non-empty reply was received.
	SendOK SendStatus = iota
	// SendTimeout means no reply arrived within the timeout.
	SendTimeout
	// SendTransportError means the socket failed or the reply was empty.
	SendTransportError
)

// String returns the status name used in log lines.
func (s SendStatus) String() string {
	switch s {
	case SendOK:
		return "ok"
	case SendTimeout:
		return "timeout"
	case SendTransportError:
		return "transport error"
	default:
		return "unknown"
	}
}

// AttemptKind tags the result of one resolution attempt.
type AttemptKind int

const (
	// AttemptSuccess carries a resolved path.
	AttemptSuccess AttemptKind = iota
	// AttemptTransient means the attempt should be retried.
	AttemptTransient
	// AttemptPermanentMiss means no further attempts should be made.
	AttemptPermanentMiss
)

// Attempt is the tagged result of a single resolution attempt.
type Attempt struct {
	Kind   AttemptKind
	Path   string
	Reason string
}

// Success returns an attempt that resolved to path.
func Success(path string) Attempt {
	return Attempt{Kind: AttemptSuccess, Path: path}
}

// Transient returns a retryable attempt with a reason for the log.
func Transient(reason string) Attempt {
	return Attempt{Kind: AttemptTransient, Reason: reason}
}

// PermanentMiss returns a terminal failed attempt.
func PermanentMiss(reason string) Attempt {
	return Attempt{Kind: AttemptPermanentMiss, Reason: reason}
}

// Outcome is how a Resolve call ended.
type Outcome int

const (
	// OutcomeCacheHit means the value came from the cache.
	OutcomeCacheHit Outcome = iota
	// OutcomeResolved means the value came from a live reply.
	OutcomeResolved
	// OutcomeBlocked means live resolution was disabled and the cache missed.
	OutcomeBlocked
	// OutcomeMiss means the query is known not to resolve or retries were exhausted.
	OutcomeMiss
)

// Resolution is the value returned to callers together with how it was obtained.
type Resolution struct {
	Path    string
	Outcome Outcome
}

// Exists reports whether the resolution produced a real path.
func (r Resolution) Exists() bool {
	return (r.Outcome == OutcomeCacheHit || r.Outcome == OutcomeResolved) && r.Path != NotFound
}
