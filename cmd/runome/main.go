package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"strings"

	"github.com/cognicore/runome/internal/corpus"
	"github.com/cognicore/runome/pkg/runome/analyzer"
	"github.com/cognicore/runome/pkg/runome/config"
	"github.com/cognicore/runome/pkg/runome/dict/memdict"
	"github.com/cognicore/runome/pkg/runome/dict/sqlitedict"
	"github.com/cognicore/runome/pkg/runome/record"
	"github.com/cognicore/runome/pkg/runome/tokenfilter"
	"github.com/cognicore/runome/pkg/runome/tokenizer"
)

func main() {
	var (
		analyzerPath = flag.String("analyzer", "", "Analyzer config file (optional)")
		stoplistPath = flag.String("stoplist", "", "Stoplist file (optional)")
		dictName     = flag.String("dict", "", "System dictionary (ipa, uni) or a .db file built with -build-dict")
		format       = flag.String("format", "text", "Output format: text, wakati or jsonl")
		wakati       = flag.Bool("wakati", false, "Shorthand for -format wakati")
		inputPath    = flag.String("input", "", "JSONL corpus to analyze instead of stdin")
		lexiconPath  = flag.String("build-dict", "", "Build a dictionary from a MeCab-style CSV lexicon")
		matrixPath   = flag.String("matrix", "", "Connection matrix (matrix.def) for -build-dict")
		outPath      = flag.String("o", "", "Output database for -build-dict")
	)
	flag.Parse()

	ctx := context.Background()

	if *lexiconPath != "" {
		if *outPath == "" {
			log.Fatal("-o required with -build-dict")
		}
		n, err := buildDict(ctx, *lexiconPath, *matrixPath, *outPath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote %d entries to %s", n, *outPath)
		return
	}

	if *wakati {
		*format = "wakati"
	}
	switch *format {
	case "text", "wakati", "jsonl":
	default:
		log.Fatalf("unknown format %q", *format)
	}

	p, err := buildPipeline(ctx, *analyzerPath, *stoplistPath, *dictName)
	if err != nil {
		log.Fatal(err)
	}

	if *inputPath != "" {
		docs, err := corpus.LoadFromJSONL(*inputPath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Loaded %d documents from %s", len(docs), *inputPath)
		if err := p.runDocs(os.Stdout, docs, *format); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := p.run(os.Stdin, os.Stdout, *format); err != nil {
		log.Fatal(err)
	}
}

// pipeline analyzes input lines. an is nil when the tokenizer is in wakati
// mode.
type pipeline struct {
	tk      *tokenizer.Tokenizer
	an      *analyzer.Analyzer
	records *record.Builder
}

func buildPipeline(ctx context.Context, analyzerPath, stoplistPath, dictName string) (*pipeline, error) {
	if dictName != "" && analyzerPath != "" {
		return nil, fmt.Errorf("-dict cannot be combined with -analyzer; set tokenizer.dict in the config")
	}

	loader := config.Loader{
		AnalyzerPath: analyzerPath,
		StoplistPath: stoplistPath,
	}

	components, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	p := &pipeline{
		tk:      components.Tokenizer,
		an:      components.Analyzer,
		records: record.New(),
	}
	if analyzerPath != "" {
		return p, nil
	}

	if dictName != "" {
		cfg := config.Tokenizer{Dict: dictName}
		if strings.HasSuffix(dictName, ".db") {
			cfg = config.Tokenizer{Dict: "sqlite", DictPath: dictName}
		}
		if p.tk, err = cfg.Build(ctx); err != nil {
			return nil, fmt.Errorf("build tokenizer: %w", err)
		}
	}

	var filters []tokenfilter.Filter
	if len(components.Stopwords) > 0 {
		filters = append(filters, tokenfilter.NewStopWord(components.Stopwords))
	}
	p.an, err = analyzer.New(analyzer.Options{Tokenizer: p.tk, TokenFilters: filters})
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}
	return p, nil
}

func (p *pipeline) analyze(text string) iter.Seq2[any, error] {
	if p.an == nil {
		return p.tk.Tokenize(text)
	}
	return p.an.Analyze(text)
}

// run analyzes r line by line. Lines that fail are logged and skipped.
func (p *pipeline) run(r io.Reader, w io.Writer, format string) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if err := p.write(bw, "stdin", line, text, format); err != nil {
			log.Printf("Warning: line %d: %v", line, err)
		}
	}
	return scanner.Err()
}

func (p *pipeline) runDocs(w io.Writer, docs []corpus.Doc, format string) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for _, doc := range docs {
		if err := p.write(bw, doc.Source, doc.Line, doc.Text, format); err != nil {
			log.Printf("Warning: %s:%d: %v", doc.Source, doc.Line, err)
		}
	}
	return nil
}

func (p *pipeline) write(w io.Writer, source string, line int, text, format string) error {
	items, err := analyzer.Collect[any](p.analyze(text))
	if err != nil {
		return err
	}

	switch format {
	case "jsonl":
		return json.NewEncoder(w).Encode(p.records.Build(source, line, text, items))
	case "wakati":
		words := make([]string, 0, len(items))
		for _, item := range items {
			words = append(words, display(item, true))
		}
		_, err = fmt.Fprintln(w, strings.Join(words, " "))
		return err
	default:
		for _, item := range items {
			if _, err := fmt.Fprintln(w, display(item, false)); err != nil {
				return err
			}
		}
		return nil
	}
}

func display(item any, surfaceOnly bool) string {
	switch v := item.(type) {
	case tokenizer.Token:
		if surfaceOnly {
			return v.Surface
		}
		return v.String()
	case tokenfilter.Count:
		return fmt.Sprintf("%s\t%d", v.Value, v.Count)
	default:
		return fmt.Sprint(v)
	}
}

// buildDict compiles a CSV lexicon into a SQLite dictionary and returns the
// number of entries written.
func buildDict(ctx context.Context, lexiconPath, matrixPath, outPath string) (int, error) {
	matrix := memdict.NewMatrix(1, 1)
	if matrixPath != "" {
		var err error
		if matrix, err = config.LoadMatrix(matrixPath); err != nil {
			return 0, fmt.Errorf("load matrix: %w", err)
		}
	}

	d, err := config.LoadLexicon(lexiconPath, matrix)
	if err != nil {
		return 0, fmt.Errorf("load lexicon: %w", err)
	}

	if err := sqlitedict.Save(ctx, outPath, d); err != nil {
		return 0, fmt.Errorf("save dictionary: %w", err)
	}
	return d.Len(), nil
}
