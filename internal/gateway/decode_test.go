package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeProducts(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"bare array", `[{"id":1,"name":"A"},{"id":2,"name":"B"}]`, 2},
		{"results envelope", `{"results":[{"id":1,"name":"A"}]}`, 1},
		{"items envelope", `{"items":[{"id":1,"name":"A"}]}`, 1},
		{"products envelope", `{"products":[{"id":1,"name":"A"}]}`, 1},
		{"data envelope", `{"data":[{"id":1,"name":"A"}]}`, 1},
		{"empty object", `{}`, 0},
		{"empty array", `[]`, 0},
		{"null", `null`, 0},
		{"scalar", `42`, 0},
		{"string", `"nope"`, 0},
		{"envelope with non-array value", `{"results":"nope"}`, 0},
		{"unknown key", `{"payload":[{"id":1,"name":"A"}]}`, 0},
		{"garbage", `{invalid`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeProducts([]byte(tt.payload))
			require.NotNil(t, got)
			require.Len(t, got, tt.want)
		})
	}
}

func TestDecodeProductsEnvelopePriority(t *testing.T) {
	// "results" wins over later keys when both are present.
	payload := `{"items":[{"id":9,"name":"Items"}],"results":[{"id":1,"name":"Results"}]}`
	got := DecodeProducts([]byte(payload))
	require.Len(t, got, 1)
	require.Equal(t, "Results", got[0].Name)
}

func TestDecodeProductsSkipsBrokenEnvelopeKey(t *testing.T) {
	// A non-array under the first key falls through to the next.
	payload := `{"results":{"nested":true},"items":[{"id":3,"name":"Fallback"}]}`
	got := DecodeProducts([]byte(payload))
	require.Len(t, got, 1)
	require.Equal(t, "Fallback", got[0].Name)
}
