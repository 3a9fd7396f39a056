package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	data := []byte(`
1.7.0_21: openjdk-1.7.0_21.tar.gz
1.10: openjdk-1.10.tar.gz
"1.8.0_5": openjdk-1.8.0_5.tar.gz
`)
	idx, err := ParseIndex(data, "root")
	require.NoError(t, err)

	assert.Equal(t, Index{
		"1.7.0_21": "openjdk-1.7.0_21.tar.gz",
		"1.10":     "openjdk-1.10.tar.gz",
		"1.8.0_5":  "openjdk-1.8.0_5.tar.gz",
	}, idx)
	assert.Equal(t, []string{"1.10", "1.7.0_21", "1.8.0_5"}, idx.Versions())
}

func TestParseIndex_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "1.7: [unclosed"},
		{"empty", ""},
		{"list", "- 1.7\n"},
		{"missing path", "1.7: ~\n"},
		{"nested path", "1.7:\n  path: x\n"},
		{"duplicate", "1.7: a\n1.7: b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIndex([]byte(tt.data), "root")
			var idxErr *IndexLoadError
			require.True(t, errors.As(err, &idxErr), "got %v", err)
			assert.Equal(t, "root", idxErr.Root)
		})
	}
}

func TestIndexURI(t *testing.T) {
	assert.Equal(t, "https://example.com/openjdk/index.yml", IndexURI("https://example.com/openjdk"))
}
