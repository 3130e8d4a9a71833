package playbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextCode(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  string
	}{
		{name: "gaps use the max", codes: []string{"P-001", "P-007", "P-003"}, want: "P-008"},
		{name: "empty scope", codes: nil, want: "P-001"},
		{name: "nothing parses", codes: []string{"X-1"}, want: "P-001"},
		{name: "malformed mixed in", codes: []string{"P-002", "P-", "P-abc", "p-009", "P-004x"}, want: "P-003"},
		{name: "past three digits", codes: []string{"P-999"}, want: "P-1000"},
		{name: "unpadded input", codes: []string{"P-12"}, want: "P-013"},
		{name: "surrounding space", codes: []string{" P-005 "}, want: "P-006"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextCode(tt.codes))
		})
	}
}

func TestScopeKey(t *testing.T) {
	id := uint(7)
	assert.Equal(t, "team:7", Scope{TeamID: &id, OwnerID: "u1"}.Key())
	assert.Equal(t, "user:u1", Scope{OwnerID: "u1"}.Key())
}

func TestIsPlayCode(t *testing.T) {
	assert.True(t, IsPlayCode("P-001"))
	assert.True(t, IsPlayCode("P-1000"))
	assert.False(t, IsPlayCode("P-"))
	assert.False(t, IsPlayCode("X-1"))
	assert.False(t, IsPlayCode("p-001"))
}
