package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVendor(t *testing.T) {
	t.Run("single vendor without candidate", func(t *testing.T) {
		got, err := ResolveVendor("", []string{"openjdk"})
		require.NoError(t, err)
		assert.Equal(t, "openjdk", got)
	})

	t.Run("no vendors without candidate", func(t *testing.T) {
		_, err := ResolveVendor("", nil)
		var ambiguous *AmbiguousVendorError
		assert.True(t, errors.As(err, &ambiguous))
	})

	t.Run("several vendors without candidate", func(t *testing.T) {
		_, err := ResolveVendor("", []string{"openjdk", "zulu"})
		var ambiguous *AmbiguousVendorError
		require.True(t, errors.As(err, &ambiguous))
		assert.Contains(t, err.Error(), "openjdk, zulu")
	})

	t.Run("candidate among several", func(t *testing.T) {
		got, err := ResolveVendor("zulu", []string{"openjdk", "zulu"})
		require.NoError(t, err)
		assert.Equal(t, "zulu", got)
	})

	t.Run("candidate not known", func(t *testing.T) {
		_, err := ResolveVendor("oracle", []string{"openjdk"})
		var notFound *VendorNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "oracle", notFound.Vendor)
	})

	t.Run("matching is case sensitive", func(t *testing.T) {
		_, err := ResolveVendor("OpenJDK", []string{"openjdk"})
		var notFound *VendorNotFoundError
		assert.True(t, errors.As(err, &notFound))
	})

	t.Run("no partial matching", func(t *testing.T) {
		_, err := ResolveVendor("open", []string{"openjdk"})
		assert.Error(t, err)
	})
}
