package pharmacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMedicines(t *testing.T) {
	all := SearchMedicines("")
	assert.Len(t, all, 5)

	hits := SearchMedicines("PARACETAMOL")
	require.Len(t, hits, 1)
	assert.Equal(t, "med-001", hits[0].ID)

	assert.Empty(t, SearchMedicines("aspirin"))

	// substring, not prefix
	hits = SearchMedicines("500mg")
	assert.Len(t, hits, 2)
}

func TestNearestStores(t *testing.T) {
	// from MG Road the city-centre stores come before Indiranagar/Koramangala
	near := NearestStores(12.9716, 77.5946, 3)
	require.Len(t, near, 3)
	assert.Equal(t, "store-001", near[0].ID)
	assert.Zero(t, near[0].Distance)

	for i := 1; i < len(near); i++ {
		assert.LessOrEqual(t, near[i-1].Distance, near[i].Distance)
	}
}

func TestNearestStoresLimit(t *testing.T) {
	assert.Len(t, NearestStores(0, 0, 0), 5)
	assert.Len(t, NearestStores(0, 0, 10), 5)
	assert.Len(t, NearestStores(0, 0, 2), 2)
}
