package tokenizer

import (
	"fmt"
	"strings"
)

// NodeType tells which dictionary a token came from.
type NodeType int

const (
	SystemDictionary NodeType = iota
	Unknown
	UserDictionary
)

func (t NodeType) String() string {
	switch t {
	case SystemDictionary:
		return "SystemDictionary"
	case Unknown:
		return "Unknown"
	case UserDictionary:
		return "UserDictionary"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Token is one morpheme of the analyzed text.
type Token struct {
	Surface      string
	PartOfSpeech string
	InflType     string
	InflForm     string
	BaseForm     string
	Reading      string
	Phonetic     string
	NodeType     NodeType
}

// String formats the token as surface, a tab, and the comma-separated
// features.
func (t Token) String() string {
	return t.Surface + "\t" + strings.Join([]string{
		t.PartOfSpeech, t.InflType, t.InflForm, t.BaseForm, t.Reading, t.Phonetic,
	}, ",")
}

// Attribute names accepted by Token.Attribute.
const (
	AttrSurface      = "surface"
	AttrPartOfSpeech = "part_of_speech"
	AttrInflType     = "infl_type"
	AttrInflForm     = "infl_form"
	AttrBaseForm     = "base_form"
	AttrReading      = "reading"
	AttrPhonetic     = "phonetic"
)

// Attributes lists the string attributes of a token.
var Attributes = []string{
	AttrSurface, AttrPartOfSpeech, AttrInflType, AttrInflForm,
	AttrBaseForm, AttrReading, AttrPhonetic,
}

// Attribute returns the named string attribute.
func (t Token) Attribute(name string) (string, bool) {
	switch name {
	case AttrSurface:
		return t.Surface, true
	case AttrPartOfSpeech:
		return t.PartOfSpeech, true
	case AttrInflType:
		return t.InflType, true
	case AttrInflForm:
		return t.InflForm, true
	case AttrBaseForm:
		return t.BaseForm, true
	case AttrReading:
		return t.Reading, true
	case AttrPhonetic:
		return t.Phonetic, true
	}
	return "", false
}
