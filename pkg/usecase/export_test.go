package usecase

var (
	RecompressForTest  = recompress
	BuildReportForTest = buildReport
)
