package s3

import (
	"fmt"
	"regexp"
	"strings"
)

// songPrefixRegex matches the hierarchical song prefixes: empty, "A",
// "A/B", or "A/B/C".
var songPrefixRegex = regexp.MustCompile(`^(([A-Z]/){0,2}[A-Z]|)$`)

// ParseURI splits an s3://bucket/key URI into bucket and key. The key
// may be empty.
func ParseURI(uri string) (bucket, key string, err error) {
	const scheme = "s3://"
	if !strings.HasPrefix(uri, scheme) {
		return "", "", fmt.Errorf("not an s3 URI: %s", uri)
	}
	rest := strings.TrimPrefix(uri, scheme)
	if rest == "" {
		return "", "", fmt.Errorf("missing bucket in URI: %s", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in URI: %s", uri)
	}
	return bucket, key, nil
}

// JoinPrefix appends extra path segments to a base key.
func JoinPrefix(base string, extra ...string) string {
	parts := []string{strings.TrimSuffix(base, "/")}
	for _, e := range extra {
		e = strings.Trim(e, "/")
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, "/")
}

// ValidateSongPrefix checks that a song-data prefix has the expected
// A, A/B, or A/B/C shape.
func ValidateSongPrefix(prefix string) error {
	if !songPrefixRegex.MatchString(prefix) {
		return fmt.Errorf("invalid song prefix %q, expected forms: A, A/B, A/B/C", prefix)
	}
	return nil
}
