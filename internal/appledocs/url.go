// Package appledocs fetches Apple Developer Documentation pages through their
// JSON API and renders them as markdown.
package appledocs

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// Host is the only host documentation URLs may point at.
	Host = "developer.apple.com"
	// DefaultBaseURL is the origin JSON API requests are sent to.
	DefaultBaseURL = "https://" + Host

	jsonAPIPrefix = "/tutorials/data/documentation/"
)

// IsDeveloperURL reports whether raw is an absolute developer.apple.com URL.
func IsDeveloperURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host == Host
}

// ToJSONAPIURL converts a documentation page URL such as
// https://developer.apple.com/documentation/swiftui/view into the matching
// JSON API URL. URLs already ending in .json are returned unchanged.
func ToJSONAPIURL(raw string) (string, error) {
	if !IsDeveloperURL(raw) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	u, _ := url.Parse(raw)
	if strings.HasSuffix(u.Path, ".json") {
		return raw, nil
	}
	return DefaultBaseURL + jsonAPIPrefix + documentPath(u.Path) + ".json", nil
}

// referenceJSONURL converts a reference path ("/documentation/swiftui/text")
// into a JSON API URL.
func referenceJSONURL(path string) string {
	return DefaultBaseURL + jsonAPIPrefix + documentPath(path) + ".json"
}

func documentPath(p string) string {
	if rest, ok := strings.CutPrefix(p, "/documentation/"); ok {
		return strings.TrimSuffix(rest, "/")
	}
	return strings.Trim(p, "/")
}

// absoluteURL makes a reference URL absolute.
func absoluteURL(u string) string {
	if strings.HasPrefix(u, "/") {
		return DefaultBaseURL + u
	}
	if u == "" {
		return "#"
	}
	return u
}

// APIName returns the last path element of a documentation URL, without a
// .json suffix.
func APIName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSuffix(parts[len(parts)-1], ".json")
}
