package zones

import (
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Index holds the taxi-zone polygons for point-in-polygon lookup.
type Index struct {
	features []*geojson.Feature
}

func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zones file: %w", err)
	}
	return FromGeoJSON(data)
}

func FromGeoJSON(data []byte) (*Index, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode zones geojson: %w", err)
	}
	return &Index{features: fc.Features}, nil
}

func (idx *Index) Len() int {
	return len(idx.features)
}

// Resolve returns the LocationID of the first zone containing the point,
// in feature order, matching the first-match semantics of the map client.
func (idx *Index) Resolve(lng, lat float64) (int, bool) {
	point := orb.Point{lng, lat}
	for _, f := range idx.features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if planar.PolygonContains(g, point) {
				return locationID(f), true
			}
		case orb.MultiPolygon:
			if planar.MultiPolygonContains(g, point) {
				return locationID(f), true
			}
		}
	}
	return 0, false
}

// LocationID arrives as a JSON number in the standard zone file but some
// exports carry it as a string.
func locationID(f *geojson.Feature) int {
	switch v := f.Properties["LocationID"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}
