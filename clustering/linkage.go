package clustering

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type LinkageMethod string

const (
	Ward     LinkageMethod = "ward"
	Single   LinkageMethod = "single"
	Complete LinkageMethod = "complete"
	Average  LinkageMethod = "average"
)

func ParseLinkage(s string) (LinkageMethod, error) {
	switch l := LinkageMethod(strings.ToLower(strings.TrimSpace(s))); l {
	case Ward, Single, Complete, Average:
		return l, nil
	}
	return "", invalidParams("unknown linkage %q, choose ward, single, complete or average", s)
}

// Merge joins clusters A and B (A < B) at Height into a cluster of Size
// rows. Rows are clusters 0..n-1; the cluster created by merge i is n+i.
type Merge struct {
	A, B   int
	Height float64
	Size   int
}

// Dendrogram is the full merge history of n rows.
type Dendrogram struct {
	N      int
	Merges []Merge
}

// Linkage builds the dendrogram of X with the nearest-neighbour chain
// algorithm: follow nearest neighbours from an active cluster until two
// clusters are each other's nearest, merge them and update distances with
// the Lance-Williams rule of the method. All four methods are reducible, so
// the merges sorted by height form the same tree as a greedy closest-pair
// search in O(n^2) time. Ward heights are euclidean, not squared.
func Linkage(ctx context.Context, X *mat.Dense, method LinkageMethod) (*Dendrogram, error) {
	n, err := checkInput(X)
	if err != nil {
		return nil, err
	}
	if _, err := ParseLinkage(string(method)); err != nil {
		return nil, err
	}

	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := i + 1; j < n; j++ {
			d.SetSym(i, j, floats.Distance(X.RawRowView(i), X.RawRowView(j), 2))
		}
	}

	active := make([]bool, n)
	size := make([]int, n)
	for i := range active {
		active[i] = true
		size[i] = 1
	}

	// merges in discovery order, by slot; the merged cluster lives in keep
	type slotMerge struct {
		keep, drop int
		height     float64
	}
	found := make([]slotMerge, 0, n-1)
	chain := make([]int, 0, n)
	next := 0

	for len(found) < n-1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(chain) == 0 {
			for !active[next] {
				next++
			}
			chain = append(chain, next)
		}
		var a, b int
		var height float64
		for {
			a = chain[len(chain)-1]
			prev := -1
			best := math.Inf(1)
			if len(chain) > 1 {
				prev = chain[len(chain)-2]
				best = d.At(a, prev)
			}
			nn := prev
			for k := 0; k < n; k++ {
				if active[k] && k != a && d.At(a, k) < best {
					nn, best = k, d.At(a, k)
				}
			}
			if nn < 0 {
				return nil, errors.New("linkage: distances are not finite")
			}
			if nn == prev {
				b, height = prev, best
				break
			}
			chain = append(chain, nn)
		}
		chain = chain[:len(chain)-2]

		keep, drop := a, b
		if drop < keep {
			keep, drop = drop, keep
		}
		for k := 0; k < n; k++ {
			if !active[k] || k == a || k == b {
				continue
			}
			d.SetSym(keep, k, lanceWilliams(method, d.At(k, a), d.At(k, b), height,
				float64(size[a]), float64(size[b]), float64(size[k])))
		}
		size[keep] = size[a] + size[b]
		active[drop] = false
		found = append(found, slotMerge{keep: keep, drop: drop, height: height})
	}

	// a parent is never lower than its children, and the stable sort keeps
	// equal-height children ahead of their parent
	sort.SliceStable(found, func(i, j int) bool { return found[i].height < found[j].height })

	id := make([]int, n)
	sz := make([]int, n)
	for i := range id {
		id[i] = i
		sz[i] = 1
	}
	dg := &Dendrogram{N: n, Merges: make([]Merge, 0, n-1)}
	for step, m := range found {
		a, b := id[m.keep], id[m.drop]
		if a > b {
			a, b = b, a
		}
		sz[m.keep] += sz[m.drop]
		dg.Merges = append(dg.Merges, Merge{A: a, B: b, Height: m.height, Size: sz[m.keep]})
		id[m.keep] = n + step
	}
	return dg, nil
}

// lanceWilliams returns d(k, i+j) given d(k,i), d(k,j) and d(i,j).
func lanceWilliams(m LinkageMethod, dki, dkj, dij, ni, nj, nk float64) float64 {
	switch m {
	case Single:
		return math.Min(dki, dkj)
	case Complete:
		return math.Max(dki, dkj)
	case Average:
		return (ni*dki + nj*dkj) / (ni + nj)
	default:
		v := ((ni+nk)*dki*dki + (nj+nk)*dkj*dkj - nk*dij*dij) / (ni + nj + nk)
		return math.Sqrt(math.Max(v, 0))
	}
}

// CutDistance applies every merge whose height is at most t and returns
// flat labels numbered from 1.
func (dg *Dendrogram) CutDistance(t float64) []int {
	return dg.cut(func(m Merge, _ int) bool { return m.Height <= t }, 1)
}

// CutClusters applies the first n-k merges, leaving k clusters numbered
// from base.
func (dg *Dendrogram) CutClusters(k, base int) []int {
	keep := dg.N - k
	return dg.cut(func(_ Merge, step int) bool { return step < keep }, base)
}

func (dg *Dendrogram) cut(apply func(Merge, int) bool, base int) []int {
	uf := newUnionFind(dg.N)
	rep := make([]int, dg.N+len(dg.Merges))
	for i := 0; i < dg.N; i++ {
		rep[i] = i
	}
	for step, m := range dg.Merges {
		rep[dg.N+step] = rep[m.A]
		if apply(m, step) {
			uf.union(rep[m.A], rep[m.B])
		}
	}
	roots := make([]int, dg.N)
	for i := range roots {
		roots[i] = uf.find(i)
	}
	return relabel(roots, base, nil)
}

type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}
