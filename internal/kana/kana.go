// Package kana maps full-width katakana to the half-width forms the
// display font can fit.
package kana

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Paired rune by rune. Segmenting these into graphemes would fuse ﾞ and ﾟ
// (Grapheme_Extend) onto ﾝ and misalign the pairs.
const (
	_fullDirect = "。「」、・ヲァィゥェォャュョッーアイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワン゛゜"
	_halfDirect = "｡｢｣､･ｦｧｨｩｪｫｬｭｮｯｰｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝﾞﾟ"
)

// Voiced forms have no single half-width code point; they become the base
// glyph followed by a half-width voicing mark.
var _voiced = [][2]string{
	{"ガ", "ｶﾞ"}, {"ギ", "ｷﾞ"}, {"グ", "ｸﾞ"}, {"ゲ", "ｹﾞ"}, {"ゴ", "ｺﾞ"},
	{"ザ", "ｻﾞ"}, {"ジ", "ｼﾞ"}, {"ズ", "ｽﾞ"}, {"ゼ", "ｾﾞ"}, {"ゾ", "ｿﾞ"},
	{"ダ", "ﾀﾞ"}, {"ヂ", "ﾁﾞ"}, {"ヅ", "ﾂﾞ"}, {"デ", "ﾃﾞ"}, {"ド", "ﾄﾞ"},
	{"バ", "ﾊﾞ"}, {"ビ", "ﾋﾞ"}, {"ブ", "ﾌﾞ"}, {"ベ", "ﾍﾞ"}, {"ボ", "ﾎﾞ"},
	{"パ", "ﾊﾟ"}, {"ピ", "ﾋﾟ"}, {"プ", "ﾌﾟ"}, {"ペ", "ﾍﾟ"}, {"ポ", "ﾎﾟ"},
	{"ヴ", "ｳﾞ"}, {"ヷ", "ﾜﾞ"},
}

// Normalizer holds the lookup tables. Build it once with NewNormalizer and
// share it; it is read-only after construction.
type Normalizer struct {
	toHalf map[string]string
	toFull map[string]string
}

// NewNormalizer builds the 90-entry full-width to half-width table
func NewNormalizer() *Normalizer {
	n := &Normalizer{
		toHalf: make(map[string]string, 90),
		toFull: make(map[string]string, 90),
	}

	half := []rune(_halfDirect)
	for i, full := range []rune(_fullDirect) {
		n.add(string(full), string(half[i]))
	}
	for _, pair := range _voiced {
		n.add(pair[0], pair[1])
	}
	return n
}

func (n *Normalizer) add(full, half string) {
	n.toHalf[full] = half
	n.toFull[half] = full
}

// Len is the number of table entries
func (n *Normalizer) Len() int {
	return len(n.toHalf)
}

// Entries returns a copy of the full-width to half-width table
func (n *Normalizer) Entries() map[string]string {
	out := make(map[string]string, len(n.toHalf))
	for k, v := range n.toHalf {
		out[k] = v
	}
	return out
}

// Normalize replaces every full-width katakana cluster in s with its
// half-width form. Anything else is copied through untouched.
func (n *Normalizer) Normalize(s string) string {
	if isASCII(s) {
		return s
	}
	return n.mapClusters(s, n.toHalf)
}

// Denormalize is the inverse of Normalize for mapped glyphs.
// A half-width glyph fused with a voicing mark it has no voiced form for
// is restored rune by rune. A voiceable glyph followed by a standalone
// mark, as in カ゛, comes back as its voiced form ガ.
func (n *Normalizer) Denormalize(s string) string {
	if isASCII(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if full, ok := n.toFull[cluster]; ok {
			b.WriteString(full)
			continue
		}
		for _, r := range cluster {
			if full, ok := n.toFull[string(r)]; ok {
				b.WriteString(full)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func (n *Normalizer) mapClusters(s string, table map[string]string) string {
	var b strings.Builder
	b.Grow(len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if len(cluster) == 1 && cluster[0] < utf8.RuneSelf {
			b.WriteString(cluster)
			continue
		}
		if mapped, ok := table[cluster]; ok {
			b.WriteString(mapped)
		} else {
			b.WriteString(cluster)
		}
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
