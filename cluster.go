package pagegrid

import "sort"

// clusterValues groups scalar values into 1-D clusters: after sorting, a new
// cluster starts whenever the gap to the previous value exceeds tol. The
// returned slice maps each original index to its cluster id. Ties sort by
// original index, so equal and near-equal values (within 1e-3) land in the
// same cluster regardless of input order.
func clusterValues(values []float64, tol float64) []int {
	if len(values) == 0 {
		return nil
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ids := make([]int, len(values))
	cluster := 0
	prev := values[order[0]]
	for _, idx := range order {
		v := values[idx]
		if v-prev > tol {
			cluster++
		}
		ids[idx] = cluster
		prev = v
	}
	return ids
}

// clusterCount returns the number of distinct clusters in a cluster id
// assignment from clusterValues.
func clusterCount(ids []int) int {
	max := -1
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
