package iniscan

import (
	"bufio"
	"strings"
)

const hashHexLength = 8

// ExtractHashes scans configuration text line by line and returns the
// normalized identifying hashes it declares, in order of first appearance.
// A line qualifies only when the left side of its first '=' is exactly the
// key "hash" (case-insensitive). Values are normalized: an optional 0x
// prefix is stripped and a 16-hex value is reduced to its trailing 8 digits.
// Lines that do not yield exactly 8 hex digits are dropped silently.
func ExtractHashes(text string) []string {
	var hashes []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(key), "hash") {
			continue
		}
		hash, ok := NormalizeHash(value)
		if !ok {
			continue
		}
		if _, dup := seen[hash]; dup {
			continue
		}
		seen[hash] = struct{}{}
		hashes = append(hashes, hash)
	}
	return hashes
}

// NormalizeHash validates and canonicalizes a raw hash value. It strips an
// optional 0x prefix, reduces a 16-hex value to its trailing 8 digits, and
// lowercases the result. Returns false for anything that is not exactly
// 8 hex digits after normalization.
func NormalizeHash(raw string) (string, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.TrimPrefix(value, "0x")
	if len(value) == 2*hashHexLength && isHex(value) {
		value = value[hashHexLength:]
	}
	if len(value) != hashHexLength || !isHex(value) {
		return "", false
	}
	return value, true
}

func isHex(value string) bool {
	for _, r := range value {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
