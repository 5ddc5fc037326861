package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maastricht-university/clusterd/clustering"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"english", "english"},
		{"farsi", "farsi"},
		{"Arabic", "arabic"},
		{" FRENCH ", "french"},
		{"klingon", "english"},
		{"", "english"},
	}
	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			assert.Equal(t, guides[tt.want], Lookup(tt.language))
		})
	}
}

func TestEveryGuideCoversEveryMethod(t *testing.T) {
	for _, lang := range Languages() {
		g := Lookup(lang)
		assert.Len(t, g, len(clustering.Methods()), lang)
		for _, m := range clustering.Methods() {
			assert.NotEmpty(t, g[string(m)], "%s/%s", lang, m)
		}
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	g := Lookup("french")
	g["kmeans"] = "changed"
	assert.NotEqual(t, "changed", Lookup("french")["kmeans"])
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"arabic", "english", "farsi", "french"}, Languages())
	assert.True(t, Supported("Farsi"))
	assert.False(t, Supported("german"))
}
