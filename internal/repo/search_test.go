package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medconnect/doctor-service/internal/doctor"
)

func TestSearchFilterEmpty(t *testing.T) {
	assert.Empty(t, searchFilter(doctor.SearchQuery{}))
}

func TestSearchFilterName(t *testing.T) {
	f := searchFilter(doctor.SearchQuery{Name: "smith"})
	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	first := or[0].(bson.M)
	re, ok := first["firstName"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "smith", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestSearchFilterConjunction(t *testing.T) {
	minExp, maxFee := 5, 100
	f := searchFilter(doctor.SearchQuery{
		Specialization: "Cardiology",
		Language:       "English",
		Location:       "bangalore",
		MinExperience:  &minExp,
		MaxFee:         &maxFee,
	})

	assert.Equal(t, bson.M{"$in": bson.A{"Cardiology"}}, f["specialization"])
	assert.Equal(t, bson.M{"$in": bson.A{"English"}}, f["languages"])
	assert.Equal(t, bson.M{"$gte": 5}, f["experience"])
	assert.Equal(t, bson.M{"$lte": 100}, f["consultationFee"])

	loc, ok := f["location"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "i", loc.Options)

	// zero-valued bounds still apply when the pointer is set
	zero := 0
	f = searchFilter(doctor.SearchQuery{MinExperience: &zero})
	assert.Equal(t, bson.M{"$gte": 0}, f["experience"])
}

// Name and location are literal substring matches: regex metacharacters in the
// input are quoted, not interpreted.
func TestSearchFilterQuotesRegexInput(t *testing.T) {
	f := searchFilter(doctor.SearchQuery{Name: "c++ (team)"})
	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	re := or[0].(bson.M)["firstName"].(primitive.Regex)
	assert.Equal(t, `c\+\+ \(team\)`, re.Pattern)

	f = searchFilter(doctor.SearchQuery{Location: "st. john's"})
	loc := f["location"].(primitive.Regex)
	assert.Equal(t, `st\. john's`, loc.Pattern)
}
