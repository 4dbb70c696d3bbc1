package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two unit squares side by side plus a multipolygon zone further east.
const testZones = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"LocationID": 1, "zone": "West Square"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"LocationID": 2, "zone": "East Square"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[1,0],[2,0],[2,1],[1,1],[1,0]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"LocationID": 3, "zone": "Islands"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[3,0],[4,0],[4,1],[3,1],[3,0]]],
          [[[5,0],[6,0],[6,1],[5,1],[5,0]]]
        ]
      }
    }
  ]
}`

func TestResolve(t *testing.T) {
	idx, err := FromGeoJSON([]byte(testZones))
	require.NoError(t, err)
	require.Equal(t, 3, idx.Len())

	tests := []struct {
		name    string
		lng     float64
		lat     float64
		want    int
		located bool
	}{
		{"inside west square", 0.5, 0.5, 1, true},
		{"inside east square", 1.5, 0.5, 2, true},
		{"inside first island", 3.5, 0.5, 3, true},
		{"inside second island", 5.5, 0.5, 3, true},
		{"between islands", 4.5, 0.5, 0, false},
		{"outside everything", -10, -10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := idx.Resolve(tt.lng, tt.lat)
			assert.Equal(t, tt.located, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	// Identical polygons, distinct IDs; feature order decides.
	overlap := `{
	  "type": "FeatureCollection",
	  "features": [
	    {
	      "type": "Feature",
	      "properties": {"LocationID": 7},
	      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
	    },
	    {
	      "type": "Feature",
	      "properties": {"LocationID": 8},
	      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
	    }
	  ]
	}`

	idx, err := FromGeoJSON([]byte(overlap))
	require.NoError(t, err)

	id, ok := idx.Resolve(0.5, 0.5)
	assert.True(t, ok)
	assert.Equal(t, 7, id)
}

func TestResolveStringLocationID(t *testing.T) {
	asString := `{
	  "type": "FeatureCollection",
	  "features": [
	    {
	      "type": "Feature",
	      "properties": {"LocationID": "42"},
	      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
	    }
	  ]
	}`

	idx, err := FromGeoJSON([]byte(asString))
	require.NoError(t, err)

	id, ok := idx.Resolve(0.5, 0.5)
	assert.True(t, ok)
	assert.Equal(t, 42, id)
}

func TestFromGeoJSONRejectsGarbage(t *testing.T) {
	_, err := FromGeoJSON([]byte("not geojson"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.geojson")
	assert.Error(t, err)
}
