package zones

import (
	"fmt"
	"net/http"
	"time"

	"ride-analytics/internal/shared/apperrors"
	"ride-analytics/internal/shared/util"
	"ride-analytics/internal/shared/validation"
)

// ResolveHandler maps a clicked coordinate to its taxi zone.
func ResolveHandler(idx *Index) http.HandlerFunc {
	logger := util.New()
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		fail := func(err error) {
			util.ErrResponseInJson(w, err)
			logger.HTTP(apperrors.CheckError(err), time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
		}

		q := r.URL.Query()
		lat, err := validation.RequiredFloat(q, "lat")
		if err != nil {
			fail(err)
			return
		}
		lng, err := validation.RequiredFloat(q, "lng")
		if err != nil {
			fail(err)
			return
		}
		if err := validation.ValidateCoordinates(lat, lng); err != nil {
			fail(fmt.Errorf("%w: %s", apperrors.ErrBadRequest, err))
			return
		}

		id, ok := idx.Resolve(lng, lat)
		if !ok {
			fail(fmt.Errorf("%w: no taxi zone contains this point", apperrors.ErrNotFound))
			return
		}

		util.ResponseInJson(w, http.StatusOK, map[string]int{"location_id": id})
		logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
	}
}

// FileHandler serves the raw zone boundary file the map client consumes.
func FileHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		http.ServeFile(w, r, path)
	}
}
