package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"accents and case", "Café Con Leché", "cafe con leche"},
		{"collapse whitespace", "  Sabores \t Helado\n ", "sabores helado"},
		{"enye", "Piña Colada", "pina colada"},
		{"underscores kept", "Sabores_Helado", "sabores_helado"},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"Café", "  ÁRBOL  de   Navidad ", "Ñandú", "x", ""} {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func TestNormalizeAccentInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("Café"), Normalize("cafe"))
	assert.Equal(t, Normalize("CHOCOLATE"), Normalize("chocolate"))
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "abc123", Compact("ABC123"))
	assert.Equal(t, "abc123", Compact("abc 123"))
	assert.Equal(t, "conodoble", Compact(" Cono  Doble "))
	assert.Equal(t, Compact("ABC123"), Compact(Compact("ABC123")))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"sundae", "chocolate"}, Tokens("  Sundae   CHOCOLATE "))
	assert.Empty(t, Tokens("   "))
}

func TestContainsAll(t *testing.T) {
	name := Normalize("Chocolate Sundae")
	assert.True(t, ContainsAll(name, Tokens("sundae chocolate")))
	assert.False(t, ContainsAll(Normalize("Vanilla Sundae"), Tokens("sundae chocolate")))
	assert.True(t, ContainsAll(name, nil))
}
