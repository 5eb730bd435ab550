package urltools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "https://example.com/path", "https://example.com/path"},
		{"uppercase and www", "HTTPS://WWW.Example.com/Path/", "https://example.com/path"},
		{"schemeless defaults to https", "example.com", "https://example.com"},
		{"http preserved", "http://example.com/login", "http://example.com/login"},
		{"trailing slash stripped", "https://example.com/", "https://example.com"},
		{"query preserved", "https://example.com/a?b=1&c=2", "https://example.com/a?b=1&c=2"},
		{"port dropped", "https://example.com:8443/a", "https://example.com/a"},
		{"fragment dropped", "https://example.com/a#frag", "https://example.com/a"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"HTTPS://WWW.Example.com/Path/",
		"example.com",
		"http://sub.domain.co.uk/x?y=z",
		"https://192.168.1.1/login.php?acct=verify",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalizing twice should be a no-op for %q", in)
	}
}

func TestParseNeverNil(t *testing.T) {
	u := Parse("http://%zz invalid")
	assert.NotNil(t, u)
	assert.Empty(t, u.Host)
}

func TestHost(t *testing.T) {
	assert.Equal(t, "example.com", Host("https://example.com/path"))
	assert.Equal(t, "example.com", Host("example.com/path"))
	assert.Equal(t, "example.com:8080", Host("https://example.com:8080/path"))
	assert.Equal(t, "example.com", Host("user@example.com/path"))
}
