package photo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicID(t *testing.T) {
	tests := []struct {
		grade, name, want string
	}{
		{"5ºA", "João da Silva", "5A - Joao da Silva"},
		{"5º A", "João da Silva", "5A - Joao da Silva"},
		{"6º B", "Maria Conceição", "6B - Maria Conceicao"},
		{"1ª Série", "Ana", "1Serie - Ana"},
		{"7A", "José/Antônio: *?", "7A - JoseAntonio"},
		{"", "Ana", " - Ana"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PublicID(tt.grade, tt.name), "grade=%q name=%q", tt.grade, tt.name)
	}
}

func TestPublicID_Deterministic(t *testing.T) {
	a := PublicID("5ºA", "João da Silva")
	b := PublicID("5ºA", "João da Silva")
	assert.Equal(t, a, b)
}
