package insights

var (
	ToPageSpeedReportForTest   = toPageSpeedReport
	ToSearchPerformanceForTest = toSearchPerformance
	SearchRangeForTest         = searchRange
	WrapGoogleErrorForTest     = wrapGoogleError
)
