package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverage(t *testing.T) {
	tests := []struct {
		name       string
		userSkills []string
		pool       []string
		expected   int
	}{
		{
			name:       "duplicate pool entries count toward denominator",
			userSkills: []string{"react", "go"},
			pool:       []string{"react", "react", "node"},
			expected:   33, // one owned skill against a pool of three
		},
		{
			name:       "full coverage",
			userSkills: []string{"react", "node"},
			pool:       []string{"react", "node"},
			expected:   100,
		},
		{
			name:       "no overlap",
			userSkills: []string{"cooking"},
			pool:       []string{"react", "node"},
			expected:   0,
		},
		{
			name:       "empty pool",
			userSkills: []string{"react"},
			pool:       nil,
			expected:   0,
		},
		{
			name:       "empty user skills",
			userSkills: nil,
			pool:       []string{"react"},
			expected:   0,
		},
		{
			name:       "case sensitive comparison",
			userSkills: []string{"React"},
			pool:       []string{"react"},
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Coverage(tt.userSkills, tt.pool))
		})
	}
}
