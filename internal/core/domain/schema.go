package domain

import "strings"

const (
	// SchemePrefix is the canonical prefix of an asset query.
	SchemePrefix = "tank://"

	// SchemePrefixShort is the prefix used for schema matching. It is a prefix of SchemePrefix,
	// so both "tank:/x" and "tank://x" match.
	SchemePrefixShort = "tank:"

	// PlatformKey is the query parameter carrying the platform qualifier.
	PlatformKey = "platform"
)

// MatchesSchema reports whether path is an asset query.
// The check is an exact, case-sensitive prefix match.
func MatchesSchema(path string) bool {
	return strings.HasPrefix(path, SchemePrefixShort)
}

// DecorateQuery appends the platform qualifier to query.
// An empty platform leaves the query untouched.
func DecorateQuery(query, platform string) string {
	if platform == "" {
		return query
	}
	return query + "&" + PlatformKey + "=" + platform
}

// IsAbsolutePath reports whether reply looks like an absolute filesystem path.
// Both POSIX paths and Windows drive or UNC paths are accepted since the resolver service
// answers for the platform named in the query, not for the host running the client.
func IsAbsolutePath(reply string) bool {
	switch {
	case strings.HasPrefix(reply, "/"):
		return true
	case strings.HasPrefix(reply, `\\`):
		return true
	case len(reply) >= 3 && isDriveLetter(reply[0]) && reply[1] == ':' && (reply[2] == '\\' || reply[2] == '/'):
		return true
	default:
		return false
	}
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
