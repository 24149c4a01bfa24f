package search

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"survey-dashboard/app/score"
)

const workbookSheet = "Survey Data"

var workbookHeader = []interface{}{"Nama", "NIM", "Prodi", "Semester", "Avg Score", "Tier", "Tanggal"}

// Workbook renders search rows as an xlsx file with score cells filled in
// their tier color. The caller closes the file.
func Workbook(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", workbookSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(workbookSheet, "A1", &workbookHeader); err != nil {
		f.Close()
		return nil, err
	}

	styles := make(map[score.Tier]int, 3)
	for _, tier := range []score.Tier{score.TierLow, score.TierMedium, score.TierHigh} {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{tierColor(tier)}},
			NumFmt:    2,
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			f.Close()
			return nil, err
		}
		styles[tier] = id
	}

	for i, r := range rows {
		line := i + 2
		start, _ := excelize.CoordinatesToCellName(1, line)
		values := []interface{}{r.Nama, r.NIM, r.Prodi, r.Semester, r.TotalScore, r.Class.Label, r.Timestamp}
		if err := f.SetSheetRow(workbookSheet, start, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		scoreCell, _ := excelize.CoordinatesToCellName(5, line)
		if err := f.SetCellStyle(workbookSheet, scoreCell, scoreCell, styles[r.Class.Tier]); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func tierColor(t score.Tier) string {
	switch t {
	case score.TierHigh:
		return score.Classify(score.HighThreshold).Color
	case score.TierMedium:
		return score.Classify(score.MediumThreshold).Color
	default:
		return score.Classify(0).Color
	}
}
