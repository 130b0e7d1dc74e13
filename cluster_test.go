package pagegrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClusterValues_GapContract(t *testing.T) {
	values := []float64{1.0, 1.5, 2.0, 10.0, 10.4, 25.0}
	ids := clusterValues(values, 1.0)

	require.Len(t, ids, len(values))
	// 1.0, 1.5, 2.0 chain within tolerance.
	require.Equal(t, ids[0], ids[1])
	require.Equal(t, ids[1], ids[2])
	// 10.0 and 10.4 sit together, far from the first group.
	require.Equal(t, ids[3], ids[4])
	require.NotEqual(t, ids[2], ids[3])
	// 25.0 is alone.
	require.NotEqual(t, ids[4], ids[5])
	require.Equal(t, 3, clusterCount(ids))
}

func TestClusterValues_StableUnderInputOrder(t *testing.T) {
	a := []float64{5.0, 5.0004, 20.0, 5.0002}
	b := []float64{5.0002, 20.0, 5.0, 5.0004}

	idsA := clusterValues(a, 1.0)
	idsB := clusterValues(b, 1.0)

	// Near-equal values land in the same cluster regardless of input order.
	require.Equal(t, idsA[0], idsA[1])
	require.Equal(t, idsA[0], idsA[3])
	require.Equal(t, idsB[0], idsB[2])
	require.Equal(t, idsB[0], idsB[3])
	require.Equal(t, clusterCount(idsA), clusterCount(idsB))
}

func TestClusterValues_SingleValue(t *testing.T) {
	ids := clusterValues([]float64{42.0}, 3.0)
	require.Equal(t, []int{0}, ids)
	require.Equal(t, 1, clusterCount(ids))
}

func TestClusterValues_Empty(t *testing.T) {
	require.Empty(t, clusterValues(nil, 1.0))
}
