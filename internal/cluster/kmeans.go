package cluster

import (
	"math"
	"math/rand"

	"NewsSummary/internal/domain"
)

const maxIterations = 100

// Assign groups vectors into at most k clusters with Lloyd's algorithm and
// returns the cluster index of each vector. The same vectors, k and seed always
// produce the same assignment. When k >= len(vectors) every vector gets its own
// cluster.
func Assign(vectors []domain.Vector, k int, seed int64) []int {
	n := len(vectors)
	if n == 0 || k <= 0 {
		return nil
	}

	assignment := make([]int, n)
	if k >= n {
		for i := range assignment {
			assignment[i] = i
		}
		return assignment
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := make([]domain.Vector, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append(domain.Vector(nil), vectors[idx]...)
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, v := range vectors {
			c := nearest(v, centroids)
			if assignment[i] != c {
				assignment[i] = c
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// Recompute centroids as the mean of their members. Centroids that
		// lost all members keep their previous position.
		dim := len(vectors[0])
		sums := make([]domain.Vector, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make(domain.Vector, dim)
		}
		for i, v := range vectors {
			c := assignment[i]
			counts[c]++
			for d := range v {
				sums[c][d] += v[d]
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			for d := range sums[c] {
				sums[c][d] /= float64(counts[c])
			}
			centroids[c] = sums[c]
		}
	}

	return assignment
}

// nearest picks the centroid with the smallest squared distance, breaking ties
// toward the lower index.
func nearest(v domain.Vector, centroids []domain.Vector) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		if d := squaredDistance(v, c); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func squaredDistance(a, b domain.Vector) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
