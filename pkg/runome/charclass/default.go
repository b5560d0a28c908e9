package charclass

import "github.com/cognicore/runome/pkg/runome/dict"

// Category names used by Default, following IPADIC's char.def.
const (
	Space        = "SPACE"
	Kanji        = "KANJI"
	Symbol       = "SYMBOL"
	Numeric      = "NUMERIC"
	Alpha        = "ALPHA"
	Hiragana     = "HIRAGANA"
	Katakana     = "KATAKANA"
	KanjiNumeric = "KANJINUMERIC"
	Greek        = "GREEK"
	Cyrillic     = "CYRILLIC"
)

// Templates use context id 0, which is the only id every connection
// matrix has. Costs are IPADIC's for the same categories.
var defaultCategories = []dict.Category{
	{Name: dict.DefaultCategory, Group: true, Templates: []dict.Template{{Cost: 4769, POS: "記号,一般,*,*"}}},
	{Name: Space, Group: true, Templates: []dict.Template{{Cost: 8903, POS: "記号,空白,*,*"}}},
	{Name: Kanji, Length: 2, Templates: []dict.Template{{Cost: 11426, POS: "名詞,一般,*,*"}}},
	{Name: Symbol, Invoke: true, Group: true, Templates: []dict.Template{{Cost: 17585, POS: "名詞,サ変接続,*,*"}}},
	{Name: Numeric, Invoke: true, Group: true, Templates: []dict.Template{{Cost: 27386, POS: "名詞,数,*,*"}}},
	{Name: Alpha, Invoke: true, Group: true, Templates: []dict.Template{{Cost: 13398, POS: "名詞,固有名詞,組織,*"}}},
	{Name: Hiragana, Group: true, Length: 2, Templates: []dict.Template{{Cost: 13069, POS: "名詞,一般,*,*"}}},
	{Name: Katakana, Invoke: true, Group: true, Length: 2, Templates: []dict.Template{{Cost: 9461, POS: "名詞,一般,*,*"}}},
	{Name: KanjiNumeric, Invoke: true, Group: true, Templates: []dict.Template{{Cost: 27473, POS: "名詞,数,*,*"}}},
	{Name: Greek, Invoke: true, Group: true, Templates: []dict.Template{{Cost: 7884, POS: "名詞,一般,*,*"}}},
	{Name: Cyrillic, Invoke: true, Group: true, Templates: []dict.Template{{Cost: 7966, POS: "名詞,一般,*,*"}}},
}

var defaultRanges = []rangeRule{
	{0x0009, 0x000D, []string{Space}},
	{0x0020, 0x0020, []string{Space}},
	{0x0021, 0x002F, []string{Symbol}},
	{0x0030, 0x0039, []string{Numeric}},
	{0x003A, 0x0040, []string{Symbol}},
	{0x0041, 0x005A, []string{Alpha}},
	{0x005B, 0x0060, []string{Symbol}},
	{0x0061, 0x007A, []string{Alpha}},
	{0x007B, 0x007E, []string{Symbol}},
	{0x00A1, 0x00BF, []string{Symbol}},
	{0x00C0, 0x02FF, []string{Alpha}},
	{0x0300, 0x036F, []string{Alpha}},
	{0x0374, 0x03FB, []string{Greek}},
	{0x0400, 0x052F, []string{Cyrillic}},
	{0x1E00, 0x1EFF, []string{Alpha}},
	{0x2000, 0x206F, []string{Symbol}},
	{0x2070, 0x209F, []string{Numeric}},
	{0x20A0, 0x214F, []string{Symbol}},
	{0x2150, 0x218F, []string{Numeric}},
	{0x2190, 0x2BFF, []string{Symbol}},
	{0x2E80, 0x2FDF, []string{Kanji}},
	{0x3000, 0x303F, []string{Symbol}},
	{0x3000, 0x3000, []string{Space}},
	{0x3005, 0x3005, []string{Kanji}},
	{0x3007, 0x3007, []string{Symbol, KanjiNumeric}},
	{0x3041, 0x309F, []string{Hiragana}},
	{0x30A1, 0x30FF, []string{Katakana}},
	{0x30FB, 0x30FB, []string{Symbol}},
	{0x31F0, 0x31FF, []string{Katakana}},
	{0x3200, 0x33FF, []string{Symbol}},
	{0x3400, 0x4DBF, []string{Kanji}},
	{0x4E00, 0x9FFF, []string{Kanji}},
	{0xF900, 0xFAFF, []string{Kanji}},
	{0xFE30, 0xFE6B, []string{Symbol}},
	{0xFF01, 0xFF0F, []string{Symbol}},
	{0xFF10, 0xFF19, []string{Numeric}},
	{0xFF1A, 0xFF20, []string{Symbol}},
	{0xFF21, 0xFF3A, []string{Alpha}},
	{0xFF3B, 0xFF40, []string{Symbol}},
	{0xFF41, 0xFF5A, []string{Alpha}},
	{0xFF5B, 0xFF65, []string{Symbol}},
	{0xFF66, 0xFF9F, []string{Katakana}},
	{0xFFE0, 0xFFEF, []string{Symbol}},
}

// 一二三四五六七八九十百千万億兆
var kanjiNumerals = []rune{
	0x4E00, 0x4E8C, 0x4E09, 0x56DB, 0x4E94, 0x516D, 0x4E03, 0x516B,
	0x4E5D, 0x5341, 0x767E, 0x5343, 0x4E07, 0x5104, 0x5146,
}

// Default returns a fresh rule set with IPADIC-like categories.
func Default() *Rules {
	r := New()
	for _, c := range defaultCategories {
		r.SetCategory(c)
	}
	for _, rr := range defaultRanges {
		r.AddRange(rr.lo, rr.hi, rr.cats...)
	}
	for _, n := range kanjiNumerals {
		r.AddRange(n, n, KanjiNumeric, Kanji)
	}
	return r
}
