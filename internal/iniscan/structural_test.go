package iniscan

import (
	"testing"

	"modscout/internal/textnorm"
)

const sampleINI = `
; merged mod config
[TextureOverrideAyakaBody]
hash = d94c8962
filename = textures\Ayaka\body_diffuse.dds

[ShaderOverride X]
run = CommandListSkinTexture

[Resource R]
vb0 = cb
`

func testConfig() TokenizerConfig {
	return TokenizerConfig{
		SectionAllowShort: textnorm.NewTokenSet("r"),
		KeyAllow:          textnorm.NewTokenSet("filename"),
		KeyDeny:           textnorm.NewTokenSet("hash", "run", "vb0"),
	}
}

func TestExtractStructuralTokensSections(t *testing.T) {
	tokens := ExtractStructuralTokens(sampleINI, testConfig())
	for _, want := range []string{"texture", "override", "ayaka", "body", "shader", "resource", "r"} {
		if !tokens.Sections.Has(want) {
			t.Fatalf("section tokens %v missing %q", tokens.Sections.Sorted(), want)
		}
	}
	// "x" is short and not whitelisted; "r" is whitelisted above.
	if tokens.Sections.Has("x") {
		t.Fatalf("short section token %q should have been filtered", "x")
	}
}

func TestExtractStructuralTokensKeyFiltering(t *testing.T) {
	tokens := ExtractStructuralTokens(sampleINI, testConfig())
	// Deny-listed keys contribute nothing.
	for _, denied := range []string{"hash", "run", "vb0"} {
		if tokens.Keys.Has(denied) {
			t.Fatalf("deny-listed key token %q leaked into %v", denied, tokens.Keys.Sorted())
		}
	}
	// Allow-list wins over deny-list.
	cfg := testConfig()
	cfg.KeyDeny.Add("filename")
	tokens = ExtractStructuralTokens(sampleINI, cfg)
	if !tokens.Keys.Has("filename") {
		t.Fatalf("allow-listed key should survive deny-list, got %v", tokens.Keys.Sorted())
	}
}

func TestExtractStructuralTokensPaths(t *testing.T) {
	tokens := ExtractStructuralTokens(sampleINI, testConfig())
	for _, want := range []string{"textures", "ayaka", "body", "diffuse"} {
		if !tokens.Paths.Has(want) {
			t.Fatalf("path tokens %v missing %q", tokens.Paths.Sorted(), want)
		}
	}
	// Extension segment is dropped.
	if tokens.Paths.Has("dds") {
		t.Fatalf("extension token should be dropped, got %v", tokens.Paths.Sorted())
	}
}

func TestExtractStructuralTokensMalformedInput(t *testing.T) {
	tokens := ExtractStructuralTokens("= no key\n[unclosed\n===\n", TokenizerConfig{})
	if len(tokens.Keys) != 0 || len(tokens.Paths) != 0 {
		t.Fatalf("malformed input should yield empty key/path buckets, got %v / %v",
			tokens.Keys.Sorted(), tokens.Paths.Sorted())
	}
}
