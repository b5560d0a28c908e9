package sqlitedict

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cognicore/runome/pkg/runome/dict"
	"github.com/cognicore/runome/pkg/runome/dict/memdict"
	"github.com/cognicore/runome/pkg/runome/internalerr"
)

func sampleDict() *memdict.Dict {
	m := memdict.NewMatrix(3, 3)
	m.Set(0, 1, 10)
	m.Set(1, 2, -20)
	m.Set(2, 0, 30)
	d := memdict.New(m)
	d.SetContextIDs(0, 0)
	d.Add(dict.Entry{Surface: "すもも", LeftID: 1, RightID: 1, Cost: 7546, POS: "名詞,一般,*,*",
		InflType: "*", InflForm: "*", BaseForm: "すもも", Reading: "スモモ", Phonetic: "スモモ"})
	d.Add(dict.Entry{Surface: "もも", LeftID: 1, RightID: 1, Cost: 7219, POS: "名詞,一般,*,*",
		InflType: "*", InflForm: "*", BaseForm: "もも", Reading: "モモ", Phonetic: "モモ"})
	d.Add(dict.Entry{Surface: "も", LeftID: 2, RightID: 2, Cost: 4669, POS: "助詞,係助詞,*,*",
		InflType: "*", InflForm: "*", BaseForm: "も", Reading: "モ", Phonetic: "モ"})
	return d
}

func TestSaveOpen_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dict.db")
	want := sampleDict()

	if err := Save(ctx, path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got.Len() != want.Len() {
		t.Fatalf("Len = %d, want %d", got.Len(), want.Len())
	}
	for id, e := range want.Entries() {
		if got.Entry(id) != e {
			t.Errorf("entry %d: got %+v, want %+v", id, got.Entry(id), e)
		}
	}
	for _, c := range [][3]int{{0, 1, 10}, {1, 2, -20}, {2, 0, 30}, {1, 1, 0}} {
		if cost := got.ConnectionCost(c[0], c[1]); cost != c[2] {
			t.Errorf("ConnectionCost(%d,%d) = %d, want %d", c[0], c[1], cost, c[2])
		}
	}
	if m := got.Matrix(); m.Rows != 3 || m.Cols != 3 {
		t.Errorf("matrix size %dx%d, want 3x3", m.Rows, m.Cols)
	}
	if n := len(got.Lookup("すもものうち")); n != 1 {
		t.Errorf("expected 1 prefix match, got %d", n)
	}
}

func TestSave_ReplacesExisting(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dict.db")

	if err := Save(ctx, path, sampleDict()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	small := memdict.New(memdict.NewMatrix(1, 1))
	small.Add(dict.Entry{Surface: "猫"})
	if err := Save(ctx, path, small); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.Len() != 1 || got.Entry(0).Surface != "猫" {
		t.Errorf("expected only the second dictionary, got %+v", got.Entries())
	}
}

func TestOpen_EmptyDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "empty.db")
	_, err := Open(ctx, path)
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
