package weather

import (
	"fmt"
	"net/http"
	"time"

	"ride-analytics/internal/shared/apperrors"
	"ride-analytics/internal/shared/util"
	"ride-analytics/internal/shared/validation"
)

// CurrentHandler exposes the reduced live observation for a dropoff point.
func CurrentHandler(c *Client) http.HandlerFunc {
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

		reading, err := c.Current(r.Context(), lat, lng)
		if err != nil {
			logger.Error("WeatherHandler", err)
			fail(err)
			return
		}

		util.ResponseInJson(w, http.StatusOK, reading)
		logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
	}
}
