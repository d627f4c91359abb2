package search

import (
	"testing"

	"github.com/afandian/folktunefinder-go/internal/notation/ast"
)

func TestIntervalsFromAscendingScale(t *testing.T) {
	tune := ast.BuildFromText("K:C\nCDEFGABc\n")
	pitches := Pitches(tune)
	intervals := Intervals(pitches)

	want := []int{2, 2, 1, 2, 2, 2, 1}
	if len(intervals) != len(want) {
		t.Fatalf("intervals = %v, want length %d", intervals, len(want))
	}
	for i, v := range want {
		if intervals[i] != v {
			t.Errorf("intervals[%d] = %d, want %d", i, intervals[i], v)
		}
	}
}

func TestCosineSimilarityIdenticalVectorsIsOne(t *testing.T) {
	v := SparseVector{"a": 1, "b": 2}
	if got := CosineSimilarity(v, v); got < 0.999 || got > 1.001 {
		t.Errorf("similarity = %v, want ~1", got)
	}
}

func TestCosineSimilarityOrthogonalIsZero(t *testing.T) {
	a := SparseVector{"a": 1}
	b := SparseVector{"b": 1}
	if got := CosineSimilarity(a, b); got != 0 {
		t.Errorf("similarity = %v, want 0", got)
	}
}

func TestVSMSearchOrdersByScoreDescending(t *testing.T) {
	vsm := NewVSM()
	vsm.Set(1, SparseVector{"a": 1})
	vsm.Set(2, SparseVector{"a": 0.5, "b": 0.5})
	vsm.Set(3, SparseVector{"b": 1})

	results := vsm.Search(SparseVector{"a": 1}, 0)
	if len(results) != 3 {
		t.Fatalf("results = %v, want 3", results)
	}
	if results[0].TuneID != 1 {
		t.Errorf("best match = %d, want tune 1", results[0].TuneID)
	}
}

func TestGrouperJoinsAndMergesGroups(t *testing.T) {
	g := NewGrouper()

	if ids := g.GroupIDs(); len(ids) != 0 {
		t.Fatalf("empty grouper should have no groups, got %v", ids)
	}

	g.Add(1, 1)
	if ids := g.GroupIDs(); len(ids) != 0 {
		t.Fatalf("self-join should not create a group, got %v", ids)
	}

	g.Add(1, 2)
	if ids := g.GroupIDs(); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("GroupIDs = %v, want [1]", ids)
	}

	g1, ok1 := g.Get(1)
	g2, ok2 := g.Get(2)
	if !ok1 || !ok2 || g1 != g2 {
		t.Fatalf("1 and 2 should share a group, got %v,%v %v,%v", g1, ok1, g2, ok2)
	}

	if _, ok := g.Get(3); ok {
		t.Fatalf("3 should not be grouped yet")
	}

	g.Add(3, 4)
	if ids := g.GroupIDs(); len(ids) != 2 {
		t.Fatalf("GroupIDs = %v, want 2 groups", ids)
	}

	g.Add(2, 3)
	ids := g.GroupIDs()
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("merging should leave one group rooted at 1, got %v", ids)
	}

	g1After, _ := g.Get(1)
	g4After, _ := g.Get(4)
	if g1After != g4After {
		t.Fatalf("1 and 4 should now share a group: %d vs %d", g1After, g4After)
	}
}

func TestIndexClustersNearDuplicateMelodies(t *testing.T) {
	idx := NewIndex()
	tuneA := ast.BuildFromText("T:A\nK:C\nCDEFGABc CDEFGABc\n")
	tuneB := ast.BuildFromText("T:B\nK:C\nCDEFGABc CDEFGABc\n")

	idx.Add(1, tuneA)
	idx.Add(2, tuneB)

	g1, ok1 := idx.ClusterOf(1)
	g2, ok2 := idx.ClusterOf(2)
	if !ok1 || !ok2 || g1 != g2 {
		t.Fatalf("identical melodies should cluster together: %v,%v %v,%v", g1, ok1, g2, ok2)
	}
}

func TestIndexSearchByTitle(t *testing.T) {
	idx := NewIndex()
	idx.Add(1, ast.BuildFromText("T:The Kesh Jig\nK:C\nCDE\n"))
	idx.Add(2, ast.BuildFromText("T:Drowsy Maggie\nK:C\nCDE\n"))

	results := idx.SearchByTitle("kesh")
	if len(results) == 0 || results[0].TuneID != 1 {
		t.Fatalf("results = %v, want tune 1 first", results)
	}
}
