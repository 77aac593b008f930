package model

import (
	"math/rand"
	"testing"
)

var seqs = [][][]float64{
	{{0, 1}, {2, 3}, {4, 5}},
	{{6, 7}},
	{{8, 9}, {10, 11}},
}

func TestNewSeq(t *testing.T) {

	s, e := NewSeq(seqs)
	if e != nil {
		t.Fatal(e)
	}
	if s.NumRows() != 6 {
		t.Errorf("Wrong num rows. Expected: [6], Got: [%d]", s.NumRows())
	}
	if s.NumSeq() != 3 {
		t.Errorf("Wrong num segments. Expected: [3], Got: [%d]", s.NumSeq())
	}
	if s.Dim() != 2 {
		t.Errorf("Wrong dim. Expected: [2], Got: [%d]", s.Dim())
	}

	// Lengths must sum to the row count.
	var sum int
	for _, n := range s.Lengths {
		sum += n
	}
	if sum != s.NumRows() {
		t.Errorf("Lengths sum [%d] doesn't match num rows [%d]", sum, s.NumRows())
	}

	segs := s.Segments()
	if len(segs) != 3 || len(segs[0]) != 3 || len(segs[1]) != 1 || len(segs[2]) != 2 {
		t.Errorf("Wrong segment shapes: %v", s.Lengths)
	}
	if segs[1][0][0] != 6 {
		t.Errorf("Wrong segment content. Expected: [6], Got: [%f]", segs[1][0][0])
	}
}

func TestSubSeq(t *testing.T) {

	s, e := SubSeq(seqs, []int{2, 0})
	if e != nil {
		t.Fatal(e)
	}
	if s.NumSeq() != 2 || s.NumRows() != 5 {
		t.Fatalf("Wrong subset shape: %d segments, %d rows", s.NumSeq(), s.NumRows())
	}
	if s.X[0][0] != 8 {
		t.Errorf("Wrong subset order. Expected: [8], Got: [%f]", s.X[0][0])
	}

	_, e = SubSeq(seqs, []int{3})
	if e == nil {
		t.Errorf("Expected out of range error")
	}
	_, e = SubSeq(seqs, nil)
	if e == nil {
		t.Errorf("Expected empty index error")
	}
}

func TestNewSeqErrors(t *testing.T) {

	if _, e := NewSeq(nil); e == nil {
		t.Errorf("Expected error for empty sequence list")
	}
	if _, e := NewSeq([][][]float64{{{1, 2}, {3}}}); e == nil {
		t.Errorf("Expected error for ragged observations")
	}
}

func TestRandNormalVector(t *testing.T) {

	r := rand.New(rand.NewSource(DefaultSeed))
	v, e := RandNormalVector([]float64{0, 10}, []float64{1, 1}, r)
	if e != nil {
		t.Fatal(e)
	}
	if len(v) != 2 {
		t.Fatalf("Wrong vector length: %d", len(v))
	}

	_, e = RandNormalVector([]float64{0}, []float64{1, 1}, r)
	if e == nil {
		t.Errorf("Expected length mismatch error")
	}
}
