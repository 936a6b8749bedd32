package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"roster-backend/models"
)

var csvHeader = []string{
	"nickname", "fullname", "weight", "record",
	"totalwins", "totalloss", "totaldraws", "totalfights",
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []models.AthleteRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, a := range records {
		row := []string{
			a.Nickname,
			a.Fullname,
			a.Weight,
			a.Record,
			strconv.Itoa(int(a.TotalWins)),
			strconv.Itoa(int(a.TotalLosses)),
			strconv.Itoa(int(a.TotalDraws)),
			strconv.Itoa(int(a.TotalWins + a.TotalLosses + a.TotalDraws)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %q: %w", a.Fullname, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseCSV reads records written by WriteCSV, or any CSV carrying at least the
// fullname and count columns. totalfights is always recomputed.
func ParseCSV(reader io.Reader) ([]models.AthleteRecord, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv must include a header row and at least one data row")
	}

	headers := make(map[string]int, len(records[0]))
	for idx, col := range records[0] {
		headers[strings.ToLower(strings.TrimSpace(col))] = idx
	}

	required := []string{"fullname", "totalwins", "totalloss", "totaldraws"}
	for _, col := range required {
		if _, ok := headers[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	out := make([]models.AthleteRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		lineNo := i + 2

		a := models.AthleteRecord{
			Nickname: optionalValue(record, headers, "nickname"),
			Fullname: strings.TrimSpace(readValue(record, headers["fullname"])),
			Weight:   optionalValue(record, headers, "weight"),
			Record:   optionalValue(record, headers, "record"),
		}

		counts := []struct {
			col string
			dst *models.Count
		}{
			{"totalwins", &a.TotalWins},
			{"totalloss", &a.TotalLosses},
			{"totaldraws", &a.TotalDraws},
		}
		for _, c := range counts {
			n, err := readCount(record, headers[c.col])
			if err != nil {
				return nil, fmt.Errorf("line %d %s: %w", lineNo, c.col, err)
			}
			*c.dst = models.Count(n)
		}
		a.Recount()

		out = append(out, a)
	}

	return out, nil
}

func readCount(record []string, idx int) (int, error) {
	value := strings.TrimSpace(readValue(record, idx))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", value)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("negative count %d", parsed)
	}
	return parsed, nil
}

func optionalValue(record []string, headers map[string]int, col string) string {
	idx, ok := headers[col]
	if !ok {
		return ""
	}
	return strings.TrimSpace(readValue(record, idx))
}

func readValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
