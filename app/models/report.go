package models

// AggregateStats adalah payload /api/chart-data. Server selalu mengirim ulang
// seluruh objek, client tidak pernah mengubahnya.
type AggregateStats struct {
	Categories           []string          `json:"categories"`
	Averages             []float64         `json:"averages"`
	OverallAverage       float64           `json:"overall_average"`
	ProgramStudies       []string          `json:"program_studies"`
	ProgramCounts        []int             `json:"program_counts"`
	SemesterDistribution []int             `json:"semester_distribution"`
	TrendLabels          []string          `json:"trend_labels"`
	TrendData            []float64         `json:"trend_data"`
	TotalRespondents     int               `json:"total_respondents"`
	TotalSurveys         int               `json:"total_surveys"`
	ImprovementAreas     []ImprovementArea `json:"improvement_areas"`
}

type ImprovementArea struct {
	Topic string  `json:"topic"`
	Score float64 `json:"score"`
}

type TopPerformer struct {
	Nama  string  `json:"nama"`
	Prodi string  `json:"prodi"`
	Score float64 `json:"score"`
}

type TopPerformersResponse struct {
	TopPerformers []TopPerformer `json:"top_performers"`
}
