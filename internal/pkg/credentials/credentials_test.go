package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		name, nisn, want string
	}{
		{"Budi Santoso", "1234567890", "budi7890"},
		{"ARETHA HASNAA AZ ZAHRAA", "3137227672", "aretha7672"},
		{"  Alika   Naura Putri ", "0135009650", "alika9650"},
		{"Moh. Alfarezio Manumpil", "3136840384", "moh.0384"},
		{"Siti", "12", "siti12"},
		{"Siti", "1234", "siti1234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Password(tt.name, tt.nisn), "%s/%s", tt.name, tt.nisn)
	}
}

func TestPasswordDeterministic(t *testing.T) {
	assert.Equal(t, Password("Budi Santoso", "1234567890"), Password("Budi Santoso", "1234567890"))
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name, nisn, domain, want string
	}{
		{"Budi Santoso", "1234567890", "", "budi.7890@students.pppl.id"},
		{"M. Akbar Nurdhafa Pratama", "0136583540", "", "m.3540@students.pppl.id"},
		{"Moh. Alfarezio", "3136840384", DefaultEmailDomain, "moh.0384@students.pppl.id"},
		{"Siti Aminah", "12", "example.sch.id", "siti.12@example.sch.id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Email(tt.name, tt.nisn, tt.domain), "%s/%s", tt.name, tt.nisn)
	}
}

func TestNISNSuffix(t *testing.T) {
	assert.Equal(t, "", NISNSuffix(""))
	assert.Equal(t, "12", NISNSuffix("12"))
	assert.Equal(t, "7890", NISNSuffix("1234567890"))
	assert.Equal(t, "Ŝ123", NISNSuffix("abŜ123"))
}

func TestFirstToken(t *testing.T) {
	assert.Equal(t, "", FirstToken("   "))
	assert.Equal(t, "nadilla", FirstToken("Nadilla Kirana"))
	assert.Equal(t, "zhahira", FirstToken("ZHAHIRA\tMustika"))
}
