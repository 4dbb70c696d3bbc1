package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ride-analytics/internal/rides/domain"
)

type AnalyticsRepo struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepo(db *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

func (r *AnalyticsRepo) AvgFareByWeather(ctx context.Context, p domain.WeatherParams) (*float64, error) {
	var avg *float64
	err := r.db.QueryRow(ctx, `
		SELECT ROUND(AVG(u.total_fare)::numeric, 2)
		FROM uber_rides u
		JOIN weather w ON u.request_hour = w.time
		WHERE w.temperature BETWEEN $1 - 1 AND $1 + 1
			AND w.rain BETWEEN $2 - 0.1 AND $2 + 0.1
			AND w.wind_speed BETWEEN $3 - 1 AND $3 + 1
	`, p.Temperature, p.Rain, p.WindSpeed).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}

func (r *AnalyticsRepo) AvgFareByRouteWeather(ctx context.Context, p domain.RouteWeatherParams) (*float64, error) {
	var avg *float64
	err := r.db.QueryRow(ctx, `
		SELECT ROUND(AVG(u.total_fare)::numeric, 2)
		FROM uber_rides u
		JOIN weather w ON u.request_hour = w.time
		WHERE u.pulocationid = $1 AND u.dolocationid = $2
			AND w.temperature BETWEEN $3 - 1 AND $3 + 1
			AND w.rain BETWEEN $4 - 0.1 AND $4 + 0.1
			AND w.wind_speed BETWEEN $5 - 1 AND $5 + 1
	`, p.PULocationID, p.DOLocationID,
		p.Weather.Temperature, p.Weather.Rain, p.Weather.WindSpeed).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}

func (r *AnalyticsRepo) AvgTripTimeMin(ctx context.Context, p domain.RouteWeatherParams) (*float64, error) {
	var avg *float64
	err := r.db.QueryRow(ctx, `
		SELECT ROUND((AVG(u.trip_time) / 60.0)::numeric, 2)
		FROM uber_rides u
		JOIN weather w ON u.request_hour = w.time
		WHERE u.pulocationid = $1 AND u.dolocationid = $2
			AND w.temperature BETWEEN $3 - 1 AND $3 + 1
			AND w.rain BETWEEN $4 - 0.1 AND $4 + 0.1
			AND w.wind_speed BETWEEN $5 - 1 AND $5 + 1
	`, p.PULocationID, p.DOLocationID,
		p.Weather.Temperature, p.Weather.Rain, p.Weather.WindSpeed).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}

func (r *AnalyticsRepo) HighFareHours(ctx context.Context) ([]domain.HourlyFareStat, error) {
	rows, err := r.db.Query(ctx, `
		SELECT hour, ride_count, ROUND(avg_fare::numeric, 2) AS avg_fare
		FROM mv_hourly_ride_stats
		WHERE avg_fare > (SELECT AVG(avg_fare) FROM mv_hourly_ride_stats)
		ORDER BY avg_fare DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.HourlyFareStat{}
	for rows.Next() {
		var s domain.HourlyFareStat
		if err := rows.Scan(&s.Hour, &s.RideCount, &s.AvgFare); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *AnalyticsRepo) ExtremeWeatherRoutes(ctx context.Context) ([]domain.ExtremeWeatherRoute, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			pulocationid,
			dolocationid,
			ROUND(avg_fare::numeric, 2) AS avg_fare,
			ROUND((avg_trip_time / 60.0)::numeric, 2) AS avg_time_min,
			ride_count
		FROM mv_extreme_weather_stats
		WHERE ride_count > (
			SELECT AVG(ride_count)
			FROM mv_extreme_weather_stats
		)
		ORDER BY avg_fare DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := []domain.ExtremeWeatherRoute{}
	for rows.Next() {
		var rt domain.ExtremeWeatherRoute
		if err := rows.Scan(&rt.PULocationID, &rt.DOLocationID, &rt.AvgFare, &rt.AvgTimeMin, &rt.RideCount); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *AnalyticsRepo) RushHourAnalysis(ctx context.Context) (*domain.RushHourComparison, error) {
	var cmp domain.RushHourComparison
	err := r.db.QueryRow(ctx, `
		SELECT
			ROUND(AVG(avg_fare_rush)::numeric, 2),
			ROUND(AVG(avg_fare_nonrush)::numeric, 2),
			ROUND((AVG(avg_trip_time_rush) / 60.0)::numeric, 2),
			ROUND((AVG(avg_trip_time_nonrush) / 60.0)::numeric, 2)
		FROM mv_rush_hour_stats
	`).Scan(
		&cmp.OverallAvgFareRush,
		&cmp.OverallAvgFareNonrush,
		&cmp.OverallAvgTripTimeRushMin,
		&cmp.OverallAvgTripTimeNonrushMin,
	)
	if err != nil {
		return nil, err
	}
	return &cmp, nil
}

// OutlierRides applies the two-sigma rule against per-route statistics:
// a ride qualifies when its fare or trip time exceeds the route mean by
// more than two standard deviations.
func (r *AnalyticsRepo) OutlierRides(ctx context.Context) ([]domain.OutlierRide, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			u.pulocationid,
			u.dolocationid,
			u.total_fare,
			ROUND((u.trip_time / 60.0)::numeric, 2) AS trip_time_min
		FROM uber_rides u
		JOIN mv_route_stats rs ON u.pulocationid = rs.pulocationid
			AND u.dolocationid = rs.dolocationid
		WHERE u.total_fare > rs.avg_fare + 2 * rs.std_fare
			OR u.trip_time > rs.avg_trip_time + 2 * rs.std_trip_time
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outliers := []domain.OutlierRide{}
	for rows.Next() {
		var o domain.OutlierRide
		if err := rows.Scan(&o.PULocationID, &o.DOLocationID, &o.TotalFare, &o.TripTimeMin); err != nil {
			return nil, err
		}
		outliers = append(outliers, o)
	}
	return outliers, rows.Err()
}

// SimilarRides ranks the user's rides on a route by an unweighted L1
// distance to the reference ride: time offset in hours plus temperature
// and rain deltas, ascending, with ride_id breaking ties.
func (r *AnalyticsRepo) SimilarRides(ctx context.Context, p domain.SimilarRideParams) ([]domain.SimilarRide, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ride_id, request_datetime, pulocationid, dolocationid,
			total_fare, trip_time_min, time_diff_hours, temp_diff, rain_diff, similarity_score
		FROM (
			SELECT
				u.ride_id,
				u.request_datetime,
				u.pulocationid,
				u.dolocationid,
				u.total_fare,
				ROUND((u.trip_time / 60.0)::numeric, 2) AS trip_time_min,
				ROUND((ABS(EXTRACT(EPOCH FROM (u.request_datetime - $4::timestamp))) / 3600.0)::numeric, 2) AS time_diff_hours,
				ABS(w.temperature - $5) AS temp_diff,
				ABS(w.rain - $6) AS rain_diff,
				ROUND((
					ABS(EXTRACT(EPOCH FROM (u.request_datetime - $4::timestamp))) / 3600.0 +
					ABS(w.temperature - $5) +
					ABS(w.rain - $6)
				)::numeric, 2) AS similarity_score
			FROM uber_rides u
			JOIN weather w ON u.request_hour = w.time
			JOIN user_rides ur ON u.ride_id = ur.ride_id
			WHERE ur.username = $1
				AND u.pulocationid = $2
				AND u.dolocationid = $3
		) sub
		ORDER BY similarity_score, ride_id
		LIMIT 5
	`, p.Username, p.PULocationID, p.DOLocationID, p.RideTime, p.Temperature, p.Rain)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rides := []domain.SimilarRide{}
	for rows.Next() {
		var s domain.SimilarRide
		if err := rows.Scan(&s.RideID, &s.RequestDatetime, &s.PULocationID, &s.DOLocationID,
			&s.TotalFare, &s.TripTimeMin, &s.TimeDiffHours, &s.TempDiff, &s.RainDiff, &s.SimilarityScore); err != nil {
			return nil, err
		}
		rides = append(rides, s)
	}
	return rides, rows.Err()
}

func (r *AnalyticsRepo) UserHourlyStats(ctx context.Context, username string) ([]domain.UserHourlyStat, error) {
	rows, err := r.db.Query(ctx, `
		WITH user_hours AS (
			SELECT EXTRACT(HOUR FROM u.request_datetime)::int AS hour,
				AVG(u.total_fare) AS user_avg_fare
			FROM uber_rides u
			JOIN user_rides ur ON u.ride_id = ur.ride_id
			WHERE ur.username = $1
			GROUP BY 1
		), global_hours AS (
			SELECT EXTRACT(HOUR FROM request_datetime)::int AS hour,
				AVG(total_fare) AS global_avg_fare
			FROM uber_rides
			GROUP BY 1
		)
		SELECT
			uh.hour,
			ROUND(uh.user_avg_fare::numeric, 2) AS user_avg_fare,
			ROUND(gh.global_avg_fare::numeric, 2) AS global_avg_fare,
			ROUND((uh.user_avg_fare - gh.global_avg_fare)::numeric, 2) AS fare_diff
		FROM user_hours uh
		JOIN global_hours gh ON uh.hour = gh.hour
		ORDER BY uh.hour
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.UserHourlyStat{}
	for rows.Next() {
		var s domain.UserHourlyStat
		if err := rows.Scan(&s.Hour, &s.UserAvgFare, &s.GlobalAvgFare, &s.FareDiff); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *AnalyticsRepo) HourlyUserAggregates(ctx context.Context) ([]domain.HourlyUserAggregate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT hour, rain_status,
			SUM(total_revenue) AS total_revenue,
			ROUND(AVG(avg_trip_miles)::numeric, 2) AS avg_trip_miles,
			SUM(ride_count) AS ride_count,
			ROUND(AVG(ride_count)::numeric, 2) AS avg_rides_per_user
		FROM (
			SELECT EXTRACT(HOUR FROM u.request_datetime)::int AS hour,
				CASE WHEN w.rain > 0 THEN 'Rain' ELSE 'No Rain' END AS rain_status,
				ur.username,
				COUNT(*) AS ride_count,
				SUM(u.total_fare) AS total_revenue,
				AVG(u.trip_miles) AS avg_trip_miles
			FROM uber_rides u
			JOIN weather w ON u.request_hour = w.time
			JOIN user_rides ur ON u.ride_id = ur.ride_id
			GROUP BY hour, rain_status, ur.username
		) per_user
		GROUP BY hour, rain_status
		ORDER BY hour, rain_status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggs := []domain.HourlyUserAggregate{}
	for rows.Next() {
		var a domain.HourlyUserAggregate
		if err := rows.Scan(&a.Hour, &a.RainStatus, &a.TotalRevenue, &a.AvgTripMiles, &a.RideCount, &a.AvgRidesPerUser); err != nil {
			return nil, err
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

// CarpoolMatches builds per-user behavioral feature vectors (mean request
// hour, temperature, rain, trip time, trip miles) and ranks every other
// user by L1 distance to the requesting user's vector, username breaking
// ties.
func (r *AnalyticsRepo) CarpoolMatches(ctx context.Context, username string) ([]domain.CarpoolMatch, error) {
	rows, err := r.db.Query(ctx, `
		WITH user_features AS (
			SELECT
				ur.username,
				AVG(EXTRACT(HOUR FROM u.request_datetime)) AS avg_hour,
				AVG(w.temperature) AS avg_temp,
				AVG(w.rain) AS avg_rain,
				AVG(u.trip_time) AS avg_trip_time,
				AVG(u.trip_miles) AS avg_trip_miles
			FROM user_rides ur
			JOIN uber_rides u ON ur.ride_id = u.ride_id
			JOIN weather w ON u.request_hour = w.time
			GROUP BY ur.username
		), target AS (
			SELECT *
			FROM user_features
			WHERE username = $1
		)
		SELECT
			uf.username,
			ROUND((ABS(uf.avg_hour - t.avg_hour)
				+ ABS(uf.avg_temp - t.avg_temp)
				+ ABS(uf.avg_rain - t.avg_rain)
				+ ABS(uf.avg_trip_time - t.avg_trip_time)
				+ ABS(uf.avg_trip_miles - t.avg_trip_miles))::numeric, 2) AS similarity_score
		FROM user_features uf
		CROSS JOIN target t
		WHERE uf.username <> t.username
		ORDER BY similarity_score, uf.username
		LIMIT 5
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []domain.CarpoolMatch{}
	for rows.Next() {
		var m domain.CarpoolMatch
		if err := rows.Scan(&m.Username, &m.SimilarityScore); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// OverpaidDifference returns the mean positive gap between the user's
// per-route average fare and the route's global average, or nil when the
// user does not overpay on any route.
func (r *AnalyticsRepo) OverpaidDifference(ctx context.Context, username string) (*float64, error) {
	var diff *float64
	err := r.db.QueryRow(ctx, `
		WITH user_corridor_fares AS (
			SELECT
				u.pulocationid,
				u.dolocationid,
				AVG(u.total_fare) AS user_avg_fare
			FROM user_rides ur
			JOIN uber_rides u ON ur.ride_id = u.ride_id
			WHERE ur.username = $1
			GROUP BY u.pulocationid, u.dolocationid
		), joined_stats AS (
			SELECT
				ucf.user_avg_fare,
				mv.avg_fare AS overall_avg_fare
			FROM user_corridor_fares ucf
			JOIN mv_route_stats mv
				ON ucf.pulocationid = mv.pulocationid AND ucf.dolocationid = mv.dolocationid
		)
		SELECT ROUND(AVG(user_avg_fare - overall_avg_fare)::numeric, 2)
		FROM joined_stats
		WHERE EXISTS (
			SELECT 1
			FROM joined_stats js
			WHERE js.user_avg_fare > js.overall_avg_fare
		)
	`, username).Scan(&diff)
	if err != nil {
		return nil, err
	}
	return diff, nil
}
