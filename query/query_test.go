package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Query
	}{
		{"plain", "hello", Query{Text: "hello"}},
		{"bare slash", "/", Query{Text: "/", IsSlash: true}},
		{"token only", "/clear", Query{Text: "/clear", IsSlash: true, Token: "clear"}},
		{"token and arg", "/files  budget 2024 ", Query{Text: "/files  budget 2024 ", IsSlash: true, Token: "files", Arg: "budget 2024", IsFileCommand: true}},
		{"alias case", "/FIND x", Query{Text: "/FIND x", IsSlash: true, Token: "FIND", Arg: "x", IsFileCommand: true}},
		{"tab separated", "/email\tbob", Query{Text: "/email\tbob", IsSlash: true, Token: "email", Arg: "bob"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestParse_CustomAliases(t *testing.T) {
	q := Parse("/docs tax", "docs")
	assert.True(t, q.IsFileCommand)
	assert.False(t, Parse("/files tax", "docs").IsFileCommand)
}

func TestSearchTerm(t *testing.T) {
	term, ok := Parse("  hello ").SearchTerm()
	assert.True(t, ok)
	assert.Equal(t, "hello", term)

	term, ok = Parse("/files budget").SearchTerm()
	assert.True(t, ok)
	assert.Equal(t, "budget", term)

	_, ok = Parse("/files").SearchTerm()
	assert.False(t, ok, "file command without argument does not search")

	_, ok = Parse("/email budget").SearchTerm()
	assert.False(t, ok, "non-file slash commands suppress search")

	_, ok = Parse("   ").SearchTerm()
	assert.False(t, ok)
}
