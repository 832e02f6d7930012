package tui

// Glyph sets for outline rows. The ascii set is for terminals/fonts where
// the unicode markers render poorly; selected via config.toml [tui] glyphs.

type glyphSet struct {
	bullet    string
	collapsed string
	expanded  string
}

var glyphsUnicode = glyphSet{bullet: "•", collapsed: "▸", expanded: "▾"}
var glyphsASCII = glyphSet{bullet: "-", collapsed: ">", expanded: "v"}

func glyphsFor(name string) glyphSet {
	if name == "ascii" {
		return glyphsASCII
	}
	return glyphsUnicode
}
