package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitial(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@example.com", "A"},
		{"  bob@example.com", "B"},
		{"élodie@example.com", "É"},
		{"", "U"},
	}

	for _, tt := range tests {
		u := &User{Email: tt.email}
		assert.Equal(t, tt.want, u.Initial(), tt.email)
	}

	var nilUser *User
	assert.Equal(t, "U", nilUser.Initial())
}
