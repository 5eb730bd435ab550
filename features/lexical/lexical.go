package lexical

import (
	"math"
	"regexp"
	"strings"

	"phishdetect/features/model"
	"phishdetect/features/urltools"
)

// BaselineSchema is the 15-slot column order the baseline model was trained
// on. Order is load-bearing: it must match the training dataframe exactly.
var BaselineSchema = model.Schema{
	"url_length",
	"count_dot",
	"count_hyphen",
	"count_at",
	"count_question",
	"count_equal",
	"count_percent",
	"count_slash",
	"https",
	"entropy",
	"domain_length",
	"subdomain_length",
	"tld_length",
	"has_suspicious_word",
	"has_ip",
}

var suspiciousWords = []string{
	"login", "secure", "bank", "account", "update", "verify", "signin", "password",
}

// Anchored dotted-quad check against the parsed network location. Known
// loose on purpose: no octet bounds, no IPv6. A hostname like 1.2.3.4.com
// does not match because the pattern covers the whole netloc.
var ipPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// Entropy is the Shannon entropy in bits of the character distribution of
// s; 0 for the empty string.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}

	runes := []rune(s)
	counts := make(map[rune]int, len(runes))
	for _, r := range runes {
		counts[r]++
	}

	total := float64(len(runes))
	entropy := 0.0
	for _, c := range counts {
		p := float64(c) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// Features derives the lexical slot set from the raw URL string. Purely
// computational: counts are over the string as given (not normalized, not
// decoded) and there is no failure path.
func Features(rawURL string) model.FeatureMap {
	u := urltools.Parse(rawURL)
	parts := urltools.Extract(rawURL)

	https := 0.0
	if u.Scheme == "https" {
		https = 1
	}

	suspicious := 0.0
	lowered := strings.ToLower(rawURL)
	for _, word := range suspiciousWords {
		if strings.Contains(lowered, word) {
			suspicious = 1
			break
		}
	}

	hasIP := 0.0
	if ipPattern.MatchString(u.Host) {
		hasIP = 1
	}

	return model.FeatureMap{
		"url_length":          float64(len(rawURL)),
		"count_dot":           float64(strings.Count(rawURL, ".")),
		"count_hyphen":        float64(strings.Count(rawURL, "-")),
		"count_at":            float64(strings.Count(rawURL, "@")),
		"count_question":      float64(strings.Count(rawURL, "?")),
		"count_equal":         float64(strings.Count(rawURL, "=")),
		"count_percent":       float64(strings.Count(rawURL, "%")),
		"count_slash":         float64(strings.Count(rawURL, "/")),
		"https":               https,
		"entropy":             Entropy(rawURL),
		"domain_length":       float64(len(parts.Domain)),
		"subdomain_length":    float64(len(parts.Subdomain)),
		"tld_length":          float64(len(parts.Suffix)),
		"has_suspicious_word": suspicious,
		"has_ip":              hasIP,
	}
}

// Vector returns the baseline 15-slot vector in BaselineSchema order.
func Vector(rawURL string) []float64 {
	return model.Assemble(BaselineSchema, Features(rawURL))
}
