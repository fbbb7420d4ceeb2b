package words

import (
	"reflect"
	"sync"
	"testing"
)

func TestEqualFold(t *testing.T) {
	if !EqualFold("GO THERE", "go there") {
		t.Fatalf("ascii fold should match")
	}
	if !EqualFold("Ünïcode", "üNÏCODE") {
		t.Fatalf("unicode fold should match")
	}
	if EqualFold("go", "got") {
		t.Fatalf("different words must not match")
	}
}

func TestHasPrefixFold(t *testing.T) {
	if !HasPrefixFold("Quick", "qu") {
		t.Fatalf("Quick should start with qu")
	}
	if HasPrefixFold("quick", "qz") {
		t.Fatalf("quick should not start with qz")
	}
	if !HasPrefixFold("anything", "") {
		t.Fatalf("empty prefix always matches")
	}
}

func TestTrimPrefixFold(t *testing.T) {
	got, ok := TrimPrefixFold("Quick", "QU")
	if !ok || got != "ick" {
		t.Fatalf("trim: got (%q, %v), want (%q, true)", got, ok, "ick")
	}
	if _, ok := TrimPrefixFold("qu", "quick"); ok {
		t.Fatalf("longer prefix must not match")
	}
	got, ok = TrimPrefixFold("héllo", "HÉ")
	if !ok || got != "llo" {
		t.Fatalf("unicode trim: got (%q, %v), want (%q, true)", got, ok, "llo")
	}
}

func TestTrailingAndLast(t *testing.T) {
	cases := []struct {
		text     string
		trailing string
		last     string
	}{
		{text: "", trailing: "", last: ""},
		{text: "The qui", trailing: "qui", last: "qui"},
		{text: "The quick ", trailing: "", last: "quick"},
		{text: "one\ttwo", trailing: "two", last: "two"},
		{text: "  ", trailing: "", last: ""},
	}
	for _, tc := range cases {
		if got := Trailing(tc.text); got != tc.trailing {
			t.Fatalf("Trailing(%q): got %q, want %q", tc.text, got, tc.trailing)
		}
		if got := Last(tc.text); got != tc.last {
			t.Fatalf("Last(%q): got %q, want %q", tc.text, got, tc.last)
		}
	}
}

func TestSplitJoin(t *testing.T) {
	if got, want := Split("  quick  brown\tfox "), []string{"quick", "brown", "fox"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("split: got %v, want %v", got, want)
	}
	if got, want := Join([]string{"a", "b"}), "a b"; got != want {
		t.Fatalf("join: got %q, want %q", got, want)
	}
}

func TestSpaceEdges(t *testing.T) {
	if !EndsWithSpace("a ") || EndsWithSpace("a") || EndsWithSpace("") {
		t.Fatalf("EndsWithSpace mismatch")
	}
	if !StartsWithSpace(" a") || StartsWithSpace("a ") || StartsWithSpace("") {
		t.Fatalf("StartsWithSpace mismatch")
	}
}

func TestFold_ConcurrentUse(t *testing.T) {
	inputs := []string{"Straße", "ΣΊΣΥΦΟΣ", "Quick Brown Fox", "ǅemal"}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		want[i] = Fold(in)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(inputs))
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				i := n % len(inputs)
				if got := Fold(inputs[i]); got != want[i] {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent Fold returned %q", got)
	}
}
