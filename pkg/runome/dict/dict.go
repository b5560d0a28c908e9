package dict

// Store is the read-only morpheme dictionary consumed by the lattice builder.
// Implementations must be safe for concurrent readers.
type Store interface {
	// Lookup returns every entry whose surface is a prefix of input,
	// ordered by surface length and then by entry id.
	Lookup(input string) []Match

	// Entry returns the full morpheme entry for an id reported by Lookup.
	Entry(id int) Entry

	// ConnectionCost is the transition cost from a morpheme whose right
	// context is prevRightID to one whose left context is nextLeftID.
	ConnectionCost(prevRightID, nextLeftID int) int

	BOSContextID() int
	EOSContextID() int
}

// Classifier maps characters to categories and holds the unknown-word
// policy of each category.
type Classifier interface {
	// Categorize returns the category labels of r, primary first.
	Categorize(r rune) []string
	Category(name string) (Category, bool)
}

// Entry is a dictionary-resident morpheme.
type Entry struct {
	Surface  string
	LeftID   int
	RightID  int
	Cost     int
	POS      string
	InflType string
	InflForm string
	BaseForm string
	Reading  string
	Phonetic string
}

// Match is a dictionary hit at the head of a lookup input.
// Length is the matched surface length in bytes.
type Match struct {
	ID      int
	Length  int
	LeftID  int
	RightID int
	Cost    int
}

// DefaultCategory is the catch-all category for characters no rule covers.
const DefaultCategory = "DEFAULT"

// Category is the unknown-word policy for one character category.
type Category struct {
	Name string
	// Invoke runs unknown-word processing even where a dictionary entry matched.
	Invoke bool
	// Group extends unknown words over consecutive characters of the category.
	Group bool
	// Length caps grouped runs, in characters. Zero means no cap beyond the
	// tokenizer's maximum unknown length.
	Length    int
	Templates []Template
}

// Template holds the morpheme data given to a synthesized unknown word.
type Template struct {
	LeftID  int
	RightID int
	Cost    int
	POS     string
}

// FallbackTemplate is used for a character whose category has no templates.
var FallbackTemplate = Template{POS: "記号,一般,*,*"}
