package pkg

const (
	INF_WEIGHT float64 = 1e15

	// fallback speed (km/h) when a way carries neither a maxspeed tag nor a
	// recognized highway class
	GLOBAL_DEFAULT_SPEED = 30.0

	KMH_TO_MS = 1.0 / 3.6

	MILES_TO_KM  = 1.60934
	KNOTS_TO_KMH = 1.852

	WALKING_SPEED_KMH = 5.0 // sanity upper bound for ETA checks
)
