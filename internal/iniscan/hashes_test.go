package iniscan

import (
	"reflect"
	"testing"
)

func TestExtractHashes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "hash = d94c8962", []string{"d94c8962"}},
		{"hex prefix", "hash = 0xABCD1234", []string{"abcd1234"}},
		{"sixteen digits", "hash = 00000000d94c8962", []string{"d94c8962"}},
		{"key is case-insensitive", "HASH=ABCD1234", []string{"abcd1234"}},
		{"wrong key", "hashing = 12345678", nil},
		{"short value", "hash = abc", nil},
		{"non-hex value", "hash = zzzz1234", nil},
		{"no equals", "hash d94c8962", nil},
		{"duplicates collapse", "hash = d94c8962\nhash = d94c8962", []string{"d94c8962"}},
		{
			"mixed lines keep order",
			"[TextureOverride]\nhash = 11112222\njunk line\nhash = 0x33334444\n",
			[]string{"11112222", "33334444"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractHashes(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExtractHashes(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeHashRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "0x", "123", "abcd12345", "ghijklmn", "0x123456789abcdef"} {
		if hash, ok := NormalizeHash(raw); ok {
			t.Fatalf("NormalizeHash(%q) accepted malformed value as %q", raw, hash)
		}
	}
}
