package memdict

import (
	"testing"

	"github.com/cognicore/runome/pkg/runome/dict"
)

func TestLookup_AllPrefixesInLengthOrder(t *testing.T) {
	d := New(NewMatrix(1, 1))
	d.Add(dict.Entry{Surface: "すもも", Cost: 10})
	d.Add(dict.Entry{Surface: "す", Cost: 30})
	d.Add(dict.Entry{Surface: "すも", Cost: 20})
	d.Add(dict.Entry{Surface: "す", Cost: 40})

	matches := d.Lookup("すもものうち")
	if len(matches) != 4 {
		t.Fatalf("expected 4 matches, got %d: %+v", len(matches), matches)
	}

	wantLen := []int{len("す"), len("す"), len("すも"), len("すもも")}
	wantCost := []int{30, 40, 20, 10}
	for i, m := range matches {
		if m.Length != wantLen[i] {
			t.Errorf("match %d: length %d, want %d", i, m.Length, wantLen[i])
		}
		if m.Cost != wantCost[i] {
			t.Errorf("match %d: cost %d, want %d", i, m.Cost, wantCost[i])
		}
	}
	if matches[0].ID >= matches[1].ID {
		t.Error("entries of equal length should be ordered by id")
	}
}

func TestLookup_NoMatch(t *testing.T) {
	d := New(NewMatrix(1, 1))
	d.Add(dict.Entry{Surface: "もも"})

	if got := d.Lookup("うち"); len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
	if got := d.Lookup(""); len(got) != 0 {
		t.Errorf("expected no matches for empty input, got %+v", got)
	}
}

func TestLookup_RespectsRuneBoundaries(t *testing.T) {
	d := New(NewMatrix(1, 1))
	// "\xe3" alone is the first byte of many kana; it must never match mid-rune.
	d.entries = append(d.entries, dict.Entry{Surface: "\xe3"})
	d.index["\xe3"] = []int{0}
	d.maxLen = 3

	if got := d.Lookup("す"); len(got) != 0 {
		t.Errorf("expected no match inside a rune, got %+v", got)
	}
}

func TestAdd_IgnoresEmptySurface(t *testing.T) {
	d := New(NewMatrix(1, 1))
	if id := d.Add(dict.Entry{}); id != -1 {
		t.Errorf("expected -1, got %d", id)
	}
	if d.Len() != 0 {
		t.Errorf("expected empty dictionary, got %d entries", d.Len())
	}
}

func TestEntry_OutOfRange(t *testing.T) {
	d := New(NewMatrix(1, 1))
	id := d.Add(dict.Entry{Surface: "うち", POS: "名詞,非自立,副詞可能,*"})

	if got := d.Entry(id); got.POS != "名詞,非自立,副詞可能,*" {
		t.Errorf("unexpected entry %+v", got)
	}
	if got := d.Entry(99); got.Surface != "" {
		t.Errorf("expected zero entry, got %+v", got)
	}
}

func TestMatrix_Directional(t *testing.T) {
	m := NewMatrix(3, 3)
	m.Set(1, 2, 100)
	m.Set(2, 1, -50)

	d := New(m)
	if got := d.ConnectionCost(1, 2); got != 100 {
		t.Errorf("ConnectionCost(1,2) = %d, want 100", got)
	}
	if got := d.ConnectionCost(2, 1); got != -50 {
		t.Errorf("ConnectionCost(2,1) = %d, want -50", got)
	}
	if got := d.ConnectionCost(7, 0); got != 0 {
		t.Errorf("out-of-range cost should be 0, got %d", got)
	}
}

func TestSurfaces_Sorted(t *testing.T) {
	d := New(NewMatrix(1, 1))
	d.Add(dict.Entry{Surface: "b"})
	d.Add(dict.Entry{Surface: "a"})
	d.Add(dict.Entry{Surface: "b"})

	got := d.Surfaces()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestContextIDs(t *testing.T) {
	d := New(NewMatrix(1, 1))
	d.SetContextIDs(3, 4)
	if d.BOSContextID() != 3 || d.EOSContextID() != 4 {
		t.Errorf("unexpected context ids %d/%d", d.BOSContextID(), d.EOSContextID())
	}
}
