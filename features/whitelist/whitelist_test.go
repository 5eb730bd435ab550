package whitelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsDefaultSet(t *testing.T) {
	wl := New(nil)

	assert.True(t, wl.Contains("https://google.com"))
	assert.True(t, wl.Contains("https://en.wikipedia.org/wiki/Phishing"), "subdomain resolves to registrable domain")
	assert.True(t, wl.Contains("github.com/some/repo"), "schemeless input")

	assert.False(t, wl.Contains("https://google.com.evil.example"))
	assert.False(t, wl.Contains("https://notgoogle.com"))
	assert.False(t, wl.Contains("https://192.168.1.1/login"))
}

func TestContainsCustomSet(t *testing.T) {
	wl := New([]string{"mycompany.org"})

	assert.True(t, wl.Contains("https://sso.mycompany.org/portal"))
	assert.False(t, wl.Contains("https://google.com"), "custom set replaces the default one")
}

func TestContainsUnparseable(t *testing.T) {
	wl := New(nil)
	assert.False(t, wl.Contains(""))
	assert.False(t, wl.Contains("https://com"))
}
