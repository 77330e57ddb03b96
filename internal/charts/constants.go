package charts

const (
	// ChartHeightRatio determines chart height as width/ChartHeightRatio.
	ChartHeightRatio = 8

	// MinChartHeight is the floor for chart height.
	MinChartHeight = 8

	// DefaultWidth is used when the terminal size cannot be determined.
	DefaultWidth = 80
)
