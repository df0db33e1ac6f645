package pagex

import (
	"net/url"
	"strings"
)

// ResolveURL normalizes a candidate URL against a base URL.
//
// Rules, in order: an already-absolute candidate is returned unchanged; a
// protocol-relative candidate ("//host/...") gets the base's scheme; any
// other candidate goes through standard base-relative resolution; if that
// fails, a manual join is attempted (root-relative paths join to the base's
// origin, everything else to the base's path). An empty candidate resolves
// to an empty string, never an error.
func ResolveURL(candidate, base string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}

	if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
		return candidate
	}

	baseURL, baseErr := url.Parse(base)

	if strings.HasPrefix(candidate, "//") {
		if baseErr == nil && baseURL.Scheme != "" {
			return baseURL.Scheme + ":" + candidate
		}
		return "https:" + candidate
	}

	if baseErr == nil {
		if ref, err := url.Parse(candidate); err == nil {
			return baseURL.ResolveReference(ref).String()
		}
	}

	// Manual join fallback for candidates the standard resolver rejects.
	if strings.HasPrefix(candidate, "/") {
		if baseErr == nil && baseURL.Host != "" {
			return baseURL.Scheme + "://" + baseURL.Host + candidate
		}
		return candidate
	}
	return strings.TrimRight(base, "/") + "/" + candidate
}
