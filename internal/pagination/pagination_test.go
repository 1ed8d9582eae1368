package pagination

import (
	"testing"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total, want int
	}{
		{0, 1},
		{1, 1},
		{PerPage, 1},
		{PerPage + 1, 2},
		{3*PerPage - 1, 3},
		{3 * PerPage, 3},
	}
	for _, tc := range cases {
		if got := PageCount(tc.total); got != tc.want {
			t.Errorf("PageCount(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestConcatenationReproducesSequence(t *testing.T) {
	items := seq(3*PerPage + 4)
	var out []int
	_, meta := Paginate(items, 1)
	for page := 1; page <= meta.TotalPages; page++ {
		chunk, m := Paginate(items, page)
		if m.Number != page {
			t.Fatalf("page %d resolved to %d", page, m.Number)
		}
		out = append(out, chunk...)
	}
	if len(out) != len(items) {
		t.Fatalf("concatenated %d items, want %d", len(out), len(items))
	}
	for i := range items {
		if out[i] != items[i] {
			t.Fatalf("item %d = %d, want %d", i, out[i], items[i])
		}
	}
}

func TestClamping(t *testing.T) {
	items := seq(2*PerPage + 1) // 3 pages

	for _, page := range []int{0, -5} {
		_, meta := Paginate(items, page)
		if meta.Number != 1 {
			t.Errorf("page %d clamped to %d, want 1", page, meta.Number)
		}
		if meta.HasPrev {
			t.Errorf("page %d: HasPrev = true on first page", page)
		}
	}

	chunk, meta := Paginate(items, 99)
	if meta.Number != 3 {
		t.Errorf("page 99 clamped to %d, want 3", meta.Number)
	}
	if meta.HasNext {
		t.Error("last page: HasNext = true")
	}
	if len(chunk) != 1 {
		t.Errorf("last page has %d items, want 1", len(chunk))
	}
}

func TestEmptySequence(t *testing.T) {
	chunk, meta := Paginate([]int{}, 1)
	if len(chunk) != 0 {
		t.Errorf("empty sequence page 1 has %d items", len(chunk))
	}
	if meta.HasPrev || meta.HasNext {
		t.Error("empty sequence reports prev/next pages")
	}
	if meta.TotalPages != 1 {
		t.Errorf("empty sequence TotalPages = %d, want 1", meta.TotalPages)
	}
}

func TestWindowMatchesPaginate(t *testing.T) {
	items := seq(4*PerPage + 7)
	for page := -1; page < 8; page++ {
		offset, meta := Window(len(items), page)
		chunk, m := Paginate(items, page)
		if m != meta {
			t.Fatalf("page %d: meta mismatch %+v vs %+v", page, m, meta)
		}
		if len(chunk) > 0 && chunk[0] != offset {
			t.Fatalf("page %d: offset %d but first item %d", page, offset, chunk[0])
		}
	}
}
