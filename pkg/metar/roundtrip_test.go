package metar

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type roundTripCase struct {
	Text      string `yaml:"text"`
	Canonical string `yaml:"canonical"`
}

func loadRoundTripCases(t *testing.T) []roundTripCase {
	t.Helper()
	data, err := os.ReadFile("testdata/roundtrip.yaml")
	require.NoError(t, err)

	var corpus struct {
		Reports []roundTripCase `yaml:"reports"`
	}
	require.NoError(t, yaml.Unmarshal(data, &corpus))
	require.NotEmpty(t, corpus.Reports)
	return corpus.Reports
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range loadRoundTripCases(t) {
		t.Run(tc.Text, func(t *testing.T) {
			r, err := Parse(tc.Text)
			require.NoError(t, err)

			want := tc.Text
			if tc.Canonical != "" {
				want = tc.Canonical
			}
			assert.Equal(t, want, Format(r))
			assert.Equal(t, want, r.String())
		})
	}
}

func TestIdempotence(t *testing.T) {
	for _, tc := range loadRoundTripCases(t) {
		t.Run(tc.Text, func(t *testing.T) {
			first, err := Parse(tc.Text)
			require.NoError(t, err)

			second, err := Parse(Format(first))
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}
