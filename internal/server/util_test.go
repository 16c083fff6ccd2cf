package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeBase(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"/":           "",
		"  /  ":       "",
		"hypnoctl":    "/hypnoctl",
		"/hypnoctl":   "/hypnoctl",
		"/hypnoctl/":  "/hypnoctl",
		"/a/b/":       "/a/b",
		" /trimmed ":  "/trimmed",
		"no/slash/":   "/no/slash",
		"/hypnoctl//": "/hypnoctl",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeBase(in), "input %q", in)
	}
}
