package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/runome/pkg/runome/charclass"
	"github.com/cognicore/runome/pkg/runome/dict"
	"github.com/cognicore/runome/pkg/runome/dict/memdict"
	"github.com/cognicore/runome/pkg/runome/internalerr"
)

// Analyzer is the analyzer pipeline configuration.
type Analyzer struct {
	Tokenizer    Tokenizer     `yaml:"tokenizer"`
	CharFilters  []CharFilter  `yaml:"char_filters"`
	TokenFilters []TokenFilter `yaml:"token_filters"`
}

// Tokenizer selects the dictionary and tokenizer options.
type Tokenizer struct {
	// Dict is "ipa" (default), "uni" or "sqlite".
	Dict     string `yaml:"dict"`
	DictPath string `yaml:"dict_path"`
	// Categories is the path of a character category file, used with
	// sqlite dictionaries.
	Categories       string `yaml:"categories"`
	MaxUnknownLength int    `yaml:"max_unknown_length"`
	Wakati           bool   `yaml:"wakati"`
	UserDict         string `yaml:"udic"`
}

// CharFilter is one character filter entry. Type is one of
// unicode_normalize, regex_replace or html_strip.
type CharFilter struct {
	Type        string `yaml:"type"`
	Form        string `yaml:"form"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// TokenFilter is one token filter entry. Type is one of lower_case,
// upper_case, pos_keep, pos_stop, stop_word, compound_noun,
// extract_attribute or token_count.
type TokenFilter struct {
	Type     string   `yaml:"type"`
	POS      []string `yaml:"pos"`
	Words    []string `yaml:"words"`
	Stoplist string   `yaml:"stoplist"`
	Attr     string   `yaml:"attr"`
	Sorted   bool     `yaml:"sorted"`
}

// LoadAnalyzer loads an analyzer configuration from a YAML file
func LoadAnalyzer(path string) (*Analyzer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Analyzer
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// Categories is a character category file.
type Categories struct {
	// Base is "default" to extend charclass.Default, or "empty".
	Base       string          `yaml:"base"`
	Categories []CategoryRule  `yaml:"categories"`
	Ranges     []CategoryRange `yaml:"ranges"`
}

// CategoryRule is the unknown-word policy of one category.
type CategoryRule struct {
	Name      string     `yaml:"name"`
	Invoke    bool       `yaml:"invoke"`
	Group     bool       `yaml:"group"`
	Length    int        `yaml:"length"`
	Templates []Template `yaml:"templates"`
}

// Template is an unknown-word template.
type Template struct {
	LeftID  int    `yaml:"left_id"`
	RightID int    `yaml:"right_id"`
	Cost    int    `yaml:"cost"`
	POS     string `yaml:"pos"`
}

// CategoryRange assigns categories to code points. From and To are either
// a single character or a code point such as "0x3041".
type CategoryRange struct {
	From       string   `yaml:"from"`
	To         string   `yaml:"to"`
	Categories []string `yaml:"categories"`
}

// LoadCategories builds a character classifier from a YAML file.
func LoadCategories(path string) (*charclass.Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Categories
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return cfg.Build()
}

// Build turns the configuration into a classifier.
func (c *Categories) Build() (*charclass.Rules, error) {
	var rules *charclass.Rules
	switch c.Base {
	case "", "default":
		rules = charclass.Default()
	case "empty":
		rules = charclass.New()
	default:
		return nil, &internalerr.ConfigError{Option: "base", Value: c.Base, Reason: "expected default or empty"}
	}

	for _, cr := range c.Categories {
		if cr.Name == "" {
			return nil, &internalerr.ConfigError{Option: "categories.name", Value: "", Reason: "missing"}
		}
		cat := dict.Category{Name: cr.Name, Invoke: cr.Invoke, Group: cr.Group, Length: cr.Length}
		for _, t := range cr.Templates {
			cat.Templates = append(cat.Templates, dict.Template(t))
		}
		rules.SetCategory(cat)
	}

	for _, r := range c.Ranges {
		lo, err := parseCodePoint(r.From)
		if err != nil {
			return nil, err
		}
		hi := lo
		if r.To != "" {
			if hi, err = parseCodePoint(r.To); err != nil {
				return nil, err
			}
		}
		for _, name := range r.Categories {
			if _, ok := rules.Category(name); !ok {
				return nil, &internalerr.ConfigError{Option: "ranges.categories", Value: name, Reason: "undefined category"}
			}
		}
		if hi < lo || len(r.Categories) == 0 {
			return nil, &internalerr.ConfigError{Option: "ranges", Value: r.From + ".." + r.To, Reason: "empty range"}
		}
		rules.AddRange(lo, hi, r.Categories...)
	}
	return rules, nil
}

func parseCodePoint(s string) (rune, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseInt(s[2:], 16, 32)
		if err != nil {
			return 0, &internalerr.ConfigError{Option: "ranges", Value: s, Err: err}
		}
		return rune(n), nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, &internalerr.ConfigError{Option: "ranges", Value: s, Reason: "expected one character or a 0x code point"}
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// LoadLexicon loads dictionary entries from a MeCab-style CSV file into a
// new in-memory dictionary using the given connection matrix.
// Format: surface,left_id,right_id,cost,pos1,pos2,pos3,pos4,infl_type,infl_form,base_form,reading,phonetic
// Reading and phonetic may be omitted.
func LoadLexicon(path string, matrix memdict.Matrix) (*memdict.Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	d := memdict.New(matrix)
	lines := strings.Split(string(data), "\n")

	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 11 {
			return nil, fmt.Errorf("%s:%d: %d fields, want at least 11: %w", path, n+1, len(parts), internalerr.ErrInvalidInput)
		}

		// Trim all parts
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		var ids [3]int
		for i := range ids {
			if ids[i], err = strconv.Atoi(parts[i+1]); err != nil {
				return nil, fmt.Errorf("%s:%d: field %d: %w", path, n+1, i+2, internalerr.ErrInvalidInput)
			}
		}

		entry := dict.Entry{
			Surface:  parts[0],
			LeftID:   ids[0],
			RightID:  ids[1],
			Cost:     ids[2],
			POS:      strings.Join(parts[4:8], ","),
			InflType: parts[8],
			InflForm: parts[9],
			BaseForm: parts[10],
			Reading:  field(parts, 11),
			Phonetic: field(parts, 12),
		}
		d.Add(entry)
	}

	return d, nil
}

func field(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return "*"
}

// LoadMatrix loads a connection matrix in MeCab's matrix.def format: a
// "rows cols" header followed by "right_id left_id cost" lines.
func LoadMatrix(path string) (memdict.Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return memdict.Matrix{}, err
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	var m memdict.Matrix
	header := true
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		nums := make([]int, len(fields))
		for i, f := range fields {
			if nums[i], err = strconv.Atoi(f); err != nil {
				return memdict.Matrix{}, fmt.Errorf("%s:%d: %w", path, line, internalerr.ErrInvalidInput)
			}
		}
		if header {
			if len(nums) != 2 || nums[0] <= 0 || nums[1] <= 0 {
				return memdict.Matrix{}, fmt.Errorf("%s:%d: bad header: %w", path, line, internalerr.ErrInvalidInput)
			}
			m = memdict.NewMatrix(nums[0], nums[1])
			header = false
			continue
		}
		if len(nums) != 3 {
			return memdict.Matrix{}, fmt.Errorf("%s:%d: want 3 fields: %w", path, line, internalerr.ErrInvalidInput)
		}
		m.Set(nums[0], nums[1], nums[2])
	}
	if err := sc.Err(); err != nil {
		return memdict.Matrix{}, err
	}
	if header {
		return memdict.Matrix{}, fmt.Errorf("%s: empty matrix: %w", path, internalerr.ErrInvalidInput)
	}
	return m, nil
}
