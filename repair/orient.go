package repair

import (
	"github.com/admesh/admesh/facet"
	"github.com/admesh/admesh/geom"
	"github.com/admesh/admesh/match"
	"github.com/admesh/admesh/neighbor"
)

// OrientResult tallies FixNormalDirections' output.
type OrientResult struct {
	FacetsReversed int
	NumberOfParts  int
}

// FixNormalDirections makes every facet within each connected shell wind
// consistently. For each unvisited shell it runs an explicit
// worklist BFS (never recursive: the worklist is a plain slice, not the
// call stack) that propagates a flip decision across every Reversed-tagged
// edge it crosses, then checks the shell's signed volume and flips the
// whole shell again if it still winds inside-out. All flips are applied to
// the geometry only; connectivity is rebuilt once at the end via a fresh
// Exact pass, rather than patched in place edge by edge.
func FixNormalDirections(store *facet.Store, nt *neighbor.Table) OrientResult {
	n := store.Len()
	visited := make([]bool, n)
	flip := make([]bool, n)
	var result OrientResult

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		result.NumberOfParts++
		members := walkComponent(nt, visited, flip, start)
		if volumeSign(store, members, flip) < 0 {
			for _, f := range members {
				flip[f] = !flip[f]
			}
		}
	}

	for f := 0; f < n; f++ {
		if flip[f] {
			flipWinding(store.Get(f))
			result.FacetsReversed++
		}
	}

	match.Exact(store, nt)
	return result
}

// walkComponent BFS-visits every facet reachable from start through matched
// edges, recording in flip[] whether each should invert its winding
// relative to its own current data: crossing a Reversed-tagged edge toggles
// the flip decision, crossing a properly-matched edge keeps it.
func walkComponent(nt *neighbor.Table, visited, flip []bool, start int) []int {
	visited[start] = true
	queue := []int{start}
	for head := 0; head < len(queue); head++ {
		f := queue[head]
		for e := 0; e < 3; e++ {
			g := nt.Neighbor(f, e)
			if g == -1 {
				continue
			}
			gi := int(g)
			if visited[gi] {
				continue
			}
			visited[gi] = true
			if nt.Tag(f, e) == neighbor.Reversed {
				flip[gi] = !flip[f]
			} else {
				flip[gi] = flip[f]
			}
			queue = append(queue, gi)
		}
	}
	return queue
}

// volumeSign sums the signed tetrahedron volume of every facet in members,
// applying each facet's pending flip decision before measuring it, following
// the right-hand rule so a consistently outward-wound closed shell sums
// positive.
func volumeSign(store *facet.Store, members []int, flip []bool) float32 {
	var vol float32
	for _, f := range members {
		ft := store.Get(f)
		v0, v1, v2 := ft.Vertices[0], ft.Vertices[1], ft.Vertices[2]
		if flip[f] {
			v1, v2 = v2, v1
		}
		vol += geom.TetraVolume(v0, v1, v2)
	}
	return vol
}

func flipWinding(f *facet.Facet) {
	f.Vertices[1], f.Vertices[2] = f.Vertices[2], f.Vertices[1]
	f.Normal = f.Normal.Mul(-1)
}
