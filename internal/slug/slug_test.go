package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Al-Qur'an Custom!!":  "al-quran-custom",
		"Science Fiction":     "science-fiction",
		"Kopi & Teh":          "kopi-teh",
		"  --Promo  Spesial!": "promo-spesial",
		"Crème Brûlée":        "creme-brulee",
		"UPPER":               "upper",
		"already-a-slug":      "already-a-slug",
	}

	for in, want := range cases {
		require.Equal(t, want, Make(in), "input %q", in)
	}
}

func TestMakeEmpty(t *testing.T) {
	require.Equal(t, "", Make(""))
	require.Equal(t, "", Make("!!!"))
}
