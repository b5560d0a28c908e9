package tokenizer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ikawaha/kagome-dict/ipa"
	kagome "github.com/ikawaha/kagome/v2/tokenizer"
)

type segment struct {
	Surface string
	Unknown bool
}

// The lattice over the IPADIC artifact should segment exactly like kagome
// does for inputs shorter than one chunk.
func TestTokenize_MatchesKagome(t *testing.T) {
	kg, err := kagome.New(ipa.Dict(), kagome.OmitBosEos())
	if err != nil {
		t.Fatalf("kagome.New: %v", err)
	}
	tk := newTokenizer(t, Options{})

	inputs := []string{
		"すもももももももものうち",
		"東京駅で降りる",
		"私は2009年10月16日に生まれました。",
		"関西国際空港限定トートバッグ",
		"蛇の目はPurePythonな形態素解析器です。",
		"ｶﾀｶﾅとＡＢＣ123",
		"吾輩は猫である。名前はまだ無い。",
	}
	for _, in := range inputs {
		var want []segment
		for _, kt := range kg.Tokenize(in) {
			want = append(want, segment{Surface: kt.Surface, Unknown: kt.Class == kagome.UNKNOWN})
		}
		var got []segment
		for _, tok := range collectTokens(t, tk, in) {
			got = append(got, segment{Surface: tok.Surface, Unknown: tok.NodeType == Unknown})
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: segmentation differs from kagome (-kagome +runome):\n%s", in, diff)
		}
	}
}
