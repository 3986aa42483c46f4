// Package pharmacy serves the public medicine-locator endpoints from a small
// in-process catalog. The data set is static; there is no store behind it.
package pharmacy

import (
	"math"
	"sort"
	"strings"
)

type Medicine struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Price        int    `json:"price"`
	InStock      bool   `json:"inStock"`
}

type MedicalStore struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Distance float64 `json:"distanceKm"`
}

var medicines = []Medicine{
	{ID: "med-001", Name: "Paracetamol 500mg", Manufacturer: "Cipla", Price: 30, InStock: true},
	{ID: "med-002", Name: "Amoxicillin 250mg", Manufacturer: "Sun Pharma", Price: 85, InStock: true},
	{ID: "med-003", Name: "Cetirizine 10mg", Manufacturer: "Dr. Reddy's", Price: 45, InStock: true},
	{ID: "med-004", Name: "Omeprazole 20mg", Manufacturer: "Lupin", Price: 60, InStock: false},
	{ID: "med-005", Name: "Metformin 500mg", Manufacturer: "Glenmark", Price: 55, InStock: true},
}

var stores = []MedicalStore{
	{ID: "store-001", Name: "City Care Pharmacy", Address: "12 MG Road", Lat: 12.9716, Lng: 77.5946},
	{ID: "store-002", Name: "Wellness Meds", Address: "48 Brigade Road", Lat: 12.9698, Lng: 77.6060},
	{ID: "store-003", Name: "Apollo Pharmacy", Address: "221 Residency Road", Lat: 12.9667, Lng: 77.5993},
	{ID: "store-004", Name: "HealthFirst Chemists", Address: "7 Indiranagar 100ft Road", Lat: 12.9784, Lng: 77.6408},
	{ID: "store-005", Name: "MediPlus Store", Address: "33 Koramangala 5th Block", Lat: 12.9352, Lng: 77.6245},
}

// SearchMedicines returns the catalog entries whose name contains the query,
// case-insensitively. An empty query returns the whole catalog.
func SearchMedicines(query string) []Medicine {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Medicine, len(medicines))
		copy(out, medicines)
		return out
	}
	out := make([]Medicine, 0, len(medicines))
	for _, m := range medicines {
		if strings.Contains(strings.ToLower(m.Name), q) {
			out = append(out, m)
		}
	}
	return out
}

// NearestStores ranks the stores by great-circle distance from the given point
// and returns the closest n, each annotated with its distance in kilometers.
func NearestStores(lat, lng float64, n int) []MedicalStore {
	out := make([]MedicalStore, len(stores))
	copy(out, stores)
	for i := range out {
		out[i].Distance = haversineKm(lat, lng, out[i].Lat, out[i].Lng)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
