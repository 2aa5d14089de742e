package clientinfo

import (
	"net/http"
	"strings"
)

// loopbackSentinel is reported when no forwarded address is present.
const loopbackSentinel = "127.0.0.1"

// UASummary is a coarse classification of a raw User-Agent string.
type UASummary struct {
	Browser string `json:"browser"`
	OS      string `json:"os"`
	Device  string `json:"device"`
	Raw     string `json:"raw"`
}

// IPFromRequest derives the client identity from the first entry of the
// X-Forwarded-For header, falling back to the loopback sentinel.
func IPFromRequest(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return loopbackSentinel
	}
	first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
	if first == "" {
		return loopbackSentinel
	}
	return first
}

// ParseUserAgent classifies a raw User-Agent string into browser, OS and
// device family. Unknown inputs classify as Unknown/Desktop.
func ParseUserAgent(raw string) UASummary {
	ua := strings.ToLower(raw)

	browser := "Unknown"
	switch {
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	}

	os := "Unknown"
	switch {
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ios"):
		os = "iOS"
	case strings.Contains(ua, "win"):
		os = "Windows"
	case strings.Contains(ua, "mac"):
		os = "macOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	}

	device := "Desktop"
	switch {
	case strings.Contains(ua, "ipad"), strings.Contains(ua, "tablet"):
		device = "Tablet"
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "android"), strings.Contains(ua, "iphone"):
		device = "Mobile"
	}

	return UASummary{Browser: browser, OS: os, Device: device, Raw: raw}
}
