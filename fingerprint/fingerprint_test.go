package fingerprint

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base36 = regexp.MustCompile(`^[0-9a-z]+$`)

func TestHashKnownValues(t *testing.T) {
	assert.Equal(t, "0", Hash(""))
	assert.Equal(t, "2p", Hash("a"))   // 97
	assert.Equal(t, "2e9", Hash("ab")) // 3105
}

func TestHashDeterministic(t *testing.T) {
	s := "Mozilla/5.0|ko-KR|390x844|-540|data:image/png;base64,AAAA|MacIntel"
	assert.Equal(t, Hash(s), Hash(s))
	assert.Regexp(t, base36, Hash(s))
}

func TestHashMultibyte(t *testing.T) {
	// Korean user agents hash through UTF-16 code units like the browser did
	h := Hash("안녕하세요 결혼식")
	assert.NotEmpty(t, h)
	assert.Regexp(t, base36, h)
}

func TestSafeRecoversPanics(t *testing.T) {
	p := Safe(func() string { panic("probe exploded") }, WebGLError)
	assert.Equal(t, WebGLError, p())
}

func TestSafeReplacesEmpty(t *testing.T) {
	p := Safe(func() string { return "" }, Unknown)
	assert.Equal(t, Unknown, p())
}

func TestGenerateNeverEmpty(t *testing.T) {
	// A browser exposing nothing at all still yields an identifier
	id := Generate(Signals{})
	assert.NotEmpty(t, id)
	assert.Regexp(t, base36, id)
}

func TestGenerateWebGLFailure(t *testing.T) {
	s := Signals{UserAgent: "Mozilla/5.0", WebGLFailed: true}

	// Generation survives the failed probe and the sentinel is part of
	// the composed string
	require.NotEmpty(t, Generate(s))
	assert.Contains(t, Compose(s.Probes()), WebGLError)
}

func TestComposeOrderAndSentinels(t *testing.T) {
	tz := -540
	plugins := 3
	s := Signals{
		UserAgent:      "UA",
		Language:       "ko-KR",
		ScreenWidth:    390,
		ScreenHeight:   844,
		TimezoneOffset: &tz,
		Canvas:         "data:image/png;base64,AAAA",
		Platform:       "iPhone",
		CPUCores:       6,
		DeviceMemory:   4,
		ColorDepth:     24,
		PixelRatio:     3,
		AvailWidth:     390,
		AvailHeight:    844,
		PluginCount:    &plugins,
		TouchSupport:   true,
		WebGLVendor:    "Apple Inc.",
		WebGLRenderer:  "Apple GPU",
		SessionStart:   "1700000000000",
	}

	composed := Compose(s.Probes())
	assert.Equal(t,
		"UA|ko-KR|390x844|-540|data:image/png;base64,AAAA|iPhone|6|4|24|3|390x844|3|touch|Apple Inc.|Apple GPU|1700000000000",
		composed,
	)

	// Dropping optional signals swaps in sentinels instead of failing
	s.TimezoneOffset = nil
	s.PluginCount = nil
	s.Platform = ""
	composed = Compose(s.Probes())
	assert.Contains(t, composed, "|"+Unknown+"|")
	assert.Equal(t, 16, len(strings.Split(composed, "|")))
}

func TestGenerateStableForSameSignals(t *testing.T) {
	s := Signals{UserAgent: "UA", Language: "ko-KR", SessionStart: "123"}
	assert.Equal(t, Generate(s), Generate(s))

	// A different session start yields a different fingerprint string
	other := s
	other.SessionStart = "456"
	assert.NotEqual(t, Compose(s.Probes()), Compose(other.Probes()))
}
