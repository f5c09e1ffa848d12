package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdjacency() (Adjacency, Module, Module, Module, Module) {
	a := Module{Name: "A", Kind: "cc_binary", Dirname: "a"}
	b := Module{Name: "B", Kind: "cc_library", Dirname: "b"}
	c := Module{Name: "C", Kind: "cc_library", Dirname: "c"}
	d := Module{Name: "D", Kind: "cc_library", Dirname: "d"}
	adj := Adjacency{
		a: {"B": true, "C": true},
		b: {},
		c: {"D": true},
		d: {},
	}
	return adj, a, b, c, d
}

func TestAnalyzeBlockedBuckets(t *testing.T) {
	adj, a, _, c, d := testAdjacency()
	converted := map[string]bool{"B": true}

	an := Analyze(adj, converted)

	require.Len(t, an.BlockedByCount, 2)
	assert.Equal(t, []int{0, 1}, an.Counts())

	// D has no deps at all; A is blocked by C, C by D. Within a
	// bucket entries come out ordered by module name.
	assert.Equal(t, []Entry{{Module: d, Unconverted: []string{}}}, an.BlockedByCount[0])
	assert.Equal(t, []Entry{
		{Module: a, Unconverted: []string{"C"}},
		{Module: c, Unconverted: []string{"D"}},
	}, an.BlockedByCount[1])

	assert.Equal(t, map[string]int{"C": 1, "D": 1}, an.ReverseBlocked)
	assert.Equal(t, map[string]bool{"a": true, "c": true, "d": true}, an.BlockedDirs)
}

func TestAnalyzeRanking(t *testing.T) {
	adj, _, _, _, _ := testAdjacency()
	an := Analyze(adj, map[string]bool{"B": true})

	// Equal counts rank by ascending name.
	assert.Equal(t, []Blocker{{Name: "C", Count: 1}, {Name: "D", Count: 1}}, an.RankedUnconverted())
	assert.Equal(t, []string{"a", "c", "d"}, an.SortedBlockedDirs())
}

func TestAnalyzeReverseBlockDescending(t *testing.T) {
	x := Module{Name: "X", Kind: "k", Dirname: "x"}
	y := Module{Name: "Y", Kind: "k", Dirname: "y"}
	z := Module{Name: "Z", Kind: "k", Dirname: "z"}
	hot := Module{Name: "hot", Kind: "k", Dirname: "h"}
	warm := Module{Name: "warm", Kind: "k", Dirname: "w"}
	adj := Adjacency{
		x:    {"hot": true, "warm": true},
		y:    {"hot": true},
		z:    {"hot": true},
		hot:  {},
		warm: {},
	}

	an := Analyze(adj, nil)
	assert.Equal(t, []Blocker{{Name: "hot", Count: 3}, {Name: "warm", Count: 1}}, an.RankedUnconverted())
}

func TestAnalyzeConvertedModulesContributeNothing(t *testing.T) {
	e := Module{Name: "E", Kind: "cc_library", Dirname: "e"}
	x := Module{Name: "X", Kind: "cc_library", Dirname: "x"}
	adj := Adjacency{
		e: {"X": true},
		x: {},
	}

	// E is converted: its dep list is not examined, so X blocks nobody.
	an := Analyze(adj, map[string]bool{"E": true})
	assert.Empty(t, an.ReverseBlocked)
	assert.Equal(t, []Entry{{Module: x, Unconverted: []string{}}}, an.BlockedByCount[0])
	assert.NotContains(t, an.BlockedDirs, "e")
}

func TestAnalyzeIdempotent(t *testing.T) {
	adj, _, _, _, _ := testAdjacency()
	converted := map[string]bool{"B": true}

	first := Analyze(adj, converted)
	second := Analyze(adj, converted)
	assert.Equal(t, first, second)
}
