package versions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	known := []string{"1.6.0_27", "1.7.0_9", "1.7.0_21", "1.7.1", "1.8.0_5", "1.10.2"}

	tests := []struct {
		name      string
		candidate string
		fallback  string
		want      string
		wantErr   any
	}{
		{name: "exact match", candidate: "1.6.0_27", want: "1.6.0_27"},
		{name: "exact match ignores default", candidate: "1.7.1", fallback: "1.8.+", want: "1.7.1"},
		{name: "exact miss", candidate: "1.7", wantErr: &VersionNotFoundError{}},
		{name: "wildcard picks highest update", candidate: "1.7.0_+", want: "1.7.0_21"},
		{name: "wildcard picks highest minor", candidate: "1.7.+", want: "1.7.1"},
		{name: "numeric segments compare by value", candidate: "1.+", want: "1.10.2"},
		{name: "bare wildcard", candidate: "+", want: "1.10.2"},
		{name: "wildcard miss", candidate: "2.+", wantErr: &VersionNotFoundError{}},
		{name: "default used when candidate empty", fallback: "1.8.+", want: "1.8.0_5"},
		{name: "nothing specified", wantErr: &NoVersionSpecifiedError{}},
		{name: "malformed candidate", candidate: "1..7", wantErr: &MalformedVersionError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.candidate, tt.fallback, known)
			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			case *VersionNotFoundError:
				assert.True(t, errors.As(err, &want), "got %v", err)
			case *NoVersionSpecifiedError:
				assert.True(t, errors.As(err, &want), "got %v", err)
			case *MalformedVersionError:
				assert.True(t, errors.As(err, &want), "got %v", err)
			}
		})
	}
}

func TestResolveExactReturnsInputUnchanged(t *testing.T) {
	for _, v := range []string{"1.7.0", "11", "17.0.2_8", "1.8.0_ea-b12"} {
		got, err := Resolve(v, "", []string{"0.1", v, "99"})
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestResolveSkipsUnparseableKnownVersions(t *testing.T) {
	got, err := Resolve("1.+", "", []string{"1..9", "1.2", "latest", "1.+"})
	require.NoError(t, err)
	assert.Equal(t, "1.2", got)
}

func TestResolveTieKeepsFirst(t *testing.T) {
	// "1.07" and "1.7" are distinct strings that compare equal.
	got, err := Resolve("1.+", "", []string{"1.07", "1.7"})
	require.NoError(t, err)
	assert.Equal(t, "1.07", got)
}

func TestVersionNotFoundErrorListsKnown(t *testing.T) {
	_, err := Resolve("9.+", "", []string{"1.8", "1.7"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"9.+"`)
	assert.Contains(t, err.Error(), "1.7, 1.8")
}

func TestSummarizeTruncates(t *testing.T) {
	var many []string
	for i := 0; i < 12; i++ {
		many = append(many, string(rune('a'+i)))
	}
	assert.Equal(t, "a, b, c, d, e, f, g, h, i, j, ... (2 more)", Summarize(many))
	assert.Equal(t, "none", Summarize(nil))
}
