package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		slug string
	}{
		{"Mathematics", "mathematics"},
		{"Computer Science", "computer-science"},
		{"  Foreign   Languages  ", "foreign-languages"},
		{"C++ & Go!", "c-go"},
		{"Grade 9-12", "grade-9-12"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.slug, Slugify(tt.name), "input %q", tt.name)
	}
}
