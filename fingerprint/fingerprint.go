// Package fingerprint derives the heuristic device identifier used to spot
// repeat attendance submissions. The identifier is a best-effort guess, not a
// security boundary: two devices can collide and one device can drift.
package fingerprint

import (
	"fmt"
	"strconv"
	"unicode/utf16"
)

const (
	// Unknown stands in for any signal the browser couldn't provide.
	Unknown = "unknown"

	// WebGLError stands in for the whole WebGL probe when reading the
	// graphics context threw.
	WebGLError = "webgl-error"

	separator = "|"
)

// Probe produces a single fingerprint signal. Probes are independent: one
// failing must never abort the others.
type Probe func() string

// Safe wraps a probe so that a panic or an empty result degrades to the
// given sentinel instead of propagating.
func Safe(p Probe, sentinel string) Probe {
	return func() (out string) {
		defer func() {
			if recover() != nil {
				out = sentinel
			}
		}()

		out = p()
		if out == "" {
			out = sentinel
		}
		return out
	}
}

// Signals is the raw bundle of browser-collected values a fingerprint is
// derived from. Zero values mean the signal was unavailable.
type Signals struct {
	UserAgent      string  `json:"userAgent"`
	Language       string  `json:"language"`
	ScreenWidth    int     `json:"screenWidth"`
	ScreenHeight   int     `json:"screenHeight"`
	TimezoneOffset *int    `json:"timezoneOffset"`
	Canvas         string  `json:"canvas"`
	Platform       string  `json:"platform"`
	CPUCores       int     `json:"hardwareConcurrency"`
	DeviceMemory   float64 `json:"deviceMemory"`
	ColorDepth     int     `json:"colorDepth"`
	PixelRatio     float64 `json:"devicePixelRatio"`
	AvailWidth     int     `json:"availWidth"`
	AvailHeight    int     `json:"availHeight"`
	PluginCount    *int    `json:"pluginCount"`
	TouchSupport   bool    `json:"touchSupport"`
	WebGLVendor    string  `json:"webglVendor"`
	WebGLRenderer  string  `json:"webglRenderer"`
	WebGLFailed    bool    `json:"webglFailed"`

	// Per-tab value generated once per browsing session so repeated
	// calls within one session stay stable.
	SessionStart string `json:"sessionStart"`
}

// Probes expands the bundle into the ordered probe list. The order is part of
// the identifier: changing it changes every device ID ever issued.
func (s Signals) Probes() []Probe {
	probes := []Probe{
		Safe(func() string { return s.UserAgent }, Unknown),
		Safe(func() string { return s.Language }, Unknown),
		Safe(func() string { return fmt.Sprintf("%dx%d", s.ScreenWidth, s.ScreenHeight) }, Unknown),
		Safe(func() string { return strconv.Itoa(*s.TimezoneOffset) }, Unknown),
		Safe(func() string { return s.Canvas }, Unknown),
		Safe(func() string { return s.Platform }, Unknown),
		Safe(func() string { return nonZeroInt(s.CPUCores) }, Unknown),
		Safe(func() string { return nonZeroFloat(s.DeviceMemory) }, Unknown),
		Safe(func() string { return nonZeroInt(s.ColorDepth) }, Unknown),
		Safe(func() string { return nonZeroFloat(s.PixelRatio) }, Unknown),
		Safe(func() string { return fmt.Sprintf("%dx%d", s.AvailWidth, s.AvailHeight) }, Unknown),
		Safe(func() string { return strconv.Itoa(*s.PluginCount) }, Unknown),
		Safe(func() string {
			if s.TouchSupport {
				return "touch"
			}
			return "no-touch"
		}, Unknown),
	}

	// The WebGL signals are only present when the debug extension could be
	// read. A thrown context collapses the whole probe into one sentinel.
	switch {
	case s.WebGLFailed:
		probes = append(probes, Safe(func() string { return WebGLError }, WebGLError))
	case s.WebGLVendor != "" || s.WebGLRenderer != "":
		probes = append(probes,
			Safe(func() string { return s.WebGLVendor }, Unknown),
			Safe(func() string { return s.WebGLRenderer }, Unknown),
		)
	}

	probes = append(probes, Safe(func() string { return s.SessionStart }, Unknown))
	return probes
}

// Compose runs every probe and joins the results with the fixed separator.
// It never fails: broken probes contribute their sentinel instead.
func Compose(probes []Probe) string {
	out := make([]byte, 0, 256)
	for i, p := range probes {
		if i > 0 {
			out = append(out, separator...)
		}
		out = append(out, p()...)
	}
	return string(out)
}

// Hash reduces a fingerprint string to a short base-36 identifier with the
// rolling hash the original invitation pages shipped:
// hash = (hash << 5) - hash + charCode, truncated to 32 bits.
// Iteration is over UTF-16 code units so multilingual user agents hash the
// same as they did in the browser.
func Hash(s string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}

	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return strconv.FormatInt(abs, 36)
}

// Generate derives the device identifier from a signal bundle. The result is
// always a non-empty string, no matter how little the browser exposed.
func Generate(s Signals) string {
	return Hash(Compose(s.Probes()))
}

func nonZeroInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func nonZeroFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
