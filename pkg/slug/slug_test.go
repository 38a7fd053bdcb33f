package slug_test

import (
	"fmt"
	"strings"
	"testing"

	"catalogo/pkg/slug"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Loja A", "loja-a"},
		{"Açaí do João", "acai-do-joao"},
		{"  Minha   Loja  ", "minha-loja"},
		{"Café & Cia.", "cafe-cia"},
		{"--Promoção!!--", "promocao"},
		{"ALREADY-A-SLUG", "already-a-slug"},
		{"under_score kept", "under_score-kept"},
		{"123 Things", "123-things"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.Make(tc.in), "input: %q", tc.in)
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Loja A", "Açaí do João", "  spaced   out  ", "Crème Brûlée", "ção----ção",
	}
	for _, in := range inputs {
		once := slug.Make(in)
		assert.Equal(t, once, slug.Make(once), "input: %q", in)
	}
}

func TestMakeNeverEmitsForbiddenCharacters(t *testing.T) {
	inputs := []string{
		"Loja A", "UPPER CASE", " leading and trailing ", "a  b\tc\nd", "ést--ranho!",
	}
	for _, in := range inputs {
		got := slug.Make(in)
		assert.NotContains(t, got, " ", "input: %q", in)
		assert.Equal(t, strings.ToLower(got), got, "input: %q", in)
		assert.False(t, strings.HasPrefix(got, "-"), "input: %q", in)
		assert.False(t, strings.HasSuffix(got, "-"), "input: %q", in)
	}
}

func TestUniqueReturnsBaseWhenFree(t *testing.T) {
	got, err := slug.Unique("loja-a", func(candidate string) (bool, error) {
		return false, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "loja-a", got)
}

func TestUniqueProbesUntilFree(t *testing.T) {
	existing := map[string]bool{
		"loja-a":   true,
		"loja-a-1": true,
		"loja-a-2": true,
	}
	var probes []string
	got, err := slug.Unique("loja-a", func(candidate string) (bool, error) {
		probes = append(probes, candidate)
		return existing[candidate], nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "loja-a-3", got)
	assert.Equal(t, []string{"loja-a", "loja-a-1", "loja-a-2", "loja-a-3"}, probes)
}

func TestUniquePropagatesCheckErrors(t *testing.T) {
	boom := fmt.Errorf("connection refused")
	_, err := slug.Unique("loja-a", func(candidate string) (bool, error) {
		return false, boom
	})
	assert.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
