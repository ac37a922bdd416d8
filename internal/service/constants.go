package service

const (
	// DefaultUserID owns the data when nobody has signed in
	DefaultUserID = "local"

	// DefaultServingSizeG is assumed when a lookup reports no serving size
	DefaultServingSizeG = 100

	// Time windows
	TrendChartDays    = 30
	DistinctNamesDays = 7
	FeedLimit         = 50
)
