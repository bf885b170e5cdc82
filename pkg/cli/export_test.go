package cli

var (
	HumanSizeForTest       = humanSize
	WriteReportTextForTest = writeReportText
)
