package clientinfo

import (
	"net/http/httptest"
	"testing"
)

func TestIPFromRequestUsesFirstForwardedEntry(t *testing.T) {
	req := httptest.NewRequest("POST", "/analyze", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 172.16.0.2")

	if got := IPFromRequest(req); got != "10.0.0.1" {
		t.Fatalf("expected 10.0.0.1, got %q", got)
	}
}

func TestIPFromRequestDefaultsToLoopback(t *testing.T) {
	req := httptest.NewRequest("POST", "/analyze", nil)

	if got := IPFromRequest(req); got != "127.0.0.1" {
		t.Fatalf("expected loopback sentinel, got %q", got)
	}
}

func TestParseUserAgent(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		browser string
		os      string
		device  string
	}{
		{
			name:    "chrome windows desktop",
			raw:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			browser: "Chrome",
			os:      "Windows",
			device:  "Desktop",
		},
		{
			name:    "edge windows",
			raw:     "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
			browser: "Edge",
			os:      "Windows",
			device:  "Desktop",
		},
		{
			name:    "safari iphone",
			raw:     "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile/15E148 Safari/604.1",
			browser: "Safari",
			os:      "iOS",
			device:  "Mobile",
		},
		{
			name:    "firefox linux",
			raw:     "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0",
			browser: "Firefox",
			os:      "Linux",
			device:  "Desktop",
		},
		{
			name:    "empty",
			raw:     "",
			browser: "Unknown",
			os:      "Unknown",
			device:  "Desktop",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseUserAgent(tc.raw)
			if got.Browser != tc.browser {
				t.Fatalf("browser: expected %q, got %q", tc.browser, got.Browser)
			}
			if got.OS != tc.os {
				t.Fatalf("os: expected %q, got %q", tc.os, got.OS)
			}
			if got.Device != tc.device {
				t.Fatalf("device: expected %q, got %q", tc.device, got.Device)
			}
			if got.Raw != tc.raw {
				t.Fatalf("raw should round-trip")
			}
		})
	}
}
