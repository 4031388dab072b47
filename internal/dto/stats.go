package dto

// StatsResponse summarizes catalog size and coverage.
type StatsResponse struct {
	TotalStrains  int64            `json:"total_strains"`
	ActiveStrains int64            `json:"active_strains"`
	TotalTests    int64            `json:"total_tests"`
	TotalResults  int64            `json:"total_results"`
	ResultsByType map[string]int64 `json:"results_by_type"`
	TotalSpecies  int              `json:"total_species"`
	DataSources   int64            `json:"data_sources"`
}

// IdentificationStatsResponse describes the searchable catalog: what the
// identify endpoint can actually match against.
type IdentificationStatsResponse struct {
	SearchableStrains int64            `json:"searchable_strains"`
	AvailableTests    int64            `json:"available_tests"`
	ResultsByType     map[string]int64 `json:"results_by_type"`
}

// HealthResponse is returned by the liveness and readiness endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Version  string `json:"version,omitempty"`
}
