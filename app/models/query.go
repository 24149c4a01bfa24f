package models

// SearchFilters dibaca dari query string dashboard dengan c.QueryParser.
// Nilai kosong atau "all" berarti filter tidak dipakai.
type SearchFilters struct {
	Q        string `query:"q"`
	Prodi    string `query:"prodi"`
	Semester string `query:"semester"`
}

type SearchResultRow struct {
	Nama       string  `json:"nama"`
	NIM        string  `json:"nim"`
	Prodi      string  `json:"prodi"`
	Semester   int     `json:"semester"`
	TotalScore float64 `json:"total_score"`
	Timestamp  string  `json:"timestamp"`
}

type SearchResponse struct {
	Data      []SearchResultRow `json:"data"`
	Total     *int              `json:"total,omitempty"`
	ProdiList []string          `json:"prodi_list"`
}

// Count mengikuti tampilan lama: pakai total dari server kalau ada.
func (r SearchResponse) Count() int {
	if r.Total != nil && *r.Total > 0 {
		return *r.Total
	}
	return len(r.Data)
}
