package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordIDValid(t *testing.T) {
	tests := []struct {
		id   RecordID
		want bool
	}{
		{"1", true},
		{"0", true},
		{"42", true},
		{"-1", false},
		{"", false},
		{"abc", false},
		{"1.5", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.Valid())
		})
	}
}

func TestRecordIDMatches(t *testing.T) {
	assert.True(t, RecordID("7").Matches(7))
	assert.False(t, RecordID("7").Matches(8))
	assert.False(t, RecordID("x").Matches(0))
	assert.Equal(t, RecordID("12"), RecordIDOf(12))
}
