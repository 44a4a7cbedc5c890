package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// excelSerialOffset is the day count between the spreadsheet epoch
// (1899-12-30) and the Unix epoch (1970-01-01).
const excelSerialOffset = 25569

var dayFirstRegex = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)

// MissingColumnError reports that a required header column could not be
// located. It aborts the whole import; row-level problems never do.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in header", e.Column)
}

type columnIndex struct {
	name     int
	birth    int
	phone    int
	guardian int
}

// detectColumns locates columns by keyword substring match against the
// normalized header row. Name and birth date are required.
func detectColumns(header []string, keywords ImportColumns) (columnIndex, error) {

	// Normalize each header cell to trimmed lowercase
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	idx := columnIndex{
		name:     findColumn(normalized, keywords.Name),
		birth:    findColumn(normalized, keywords.BirthDate),
		phone:    findColumn(normalized, keywords.Phone),
		guardian: findColumn(normalized, keywords.Guardian),
	}

	if idx.name == -1 {
		return idx, &MissingColumnError{Column: "name"}
	}
	if idx.birth == -1 {
		return idx, &MissingColumnError{Column: "birth date"}
	}

	return idx, nil
}

func findColumn(header []string, keywords []string) int {
	for i, h := range header {
		for _, kw := range keywords {
			if strings.Contains(h, kw) {
				return i
			}
		}
	}
	return -1
}

// coerceBirthDate normalizes the heterogeneous date encodings seen in
// exported spreadsheets to ISO form:
//   - a numeric cell is a spreadsheet epoch serial
//   - D/M/YYYY and D-M-YYYY strings are day-first dates
//   - anything else passes through unchanged, assumed already ISO
func coerceBirthDate(cell string) string {
	cell = strings.TrimSpace(cell)

	// Convert spreadsheet serial day counts
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		days := int(math.Round(serial - excelSerialOffset))
		d := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
		return d.Format(dateLayout)
	}

	// Reinterpret day-first strings
	if m := dayFirstRegex.FindStringSubmatch(cell); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	}

	return cell
}

// normalizeRows turns a raw grid (first row = header) into patient
// records. Rows missing a name or a parseable birth date are counted as
// rejected and skipped; only a missing required column fails the call.
func normalizeRows(rows [][]string, keywords ImportColumns) ([]Patient, ImportSummary, error) {
	var summary ImportSummary

	// Header-only or empty input is zero accepted rows, not an error
	if len(rows) < 2 {
		return nil, summary, nil
	}

	idx, err := detectColumns(rows[0], keywords)
	if err != nil {
		return nil, summary, err
	}

	var patients []Patient
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cellAt(row, idx.name))
		birthRaw := strings.TrimSpace(cellAt(row, idx.birth))

		if name == "" || birthRaw == "" {
			summary.Rejected++
			continue
		}

		birthStr := coerceBirthDate(birthRaw)
		birth, err := parseDate(birthStr)
		if err != nil {
			summary.Rejected++
			continue
		}

		// Identifiers are always generated fresh, never taken from the
		// source file
		patients = append(patients, Patient{
			Id:           uuid.NewString(),
			Name:         name,
			BirthDate:    Date{birth},
			Phone:        cellAt(row, idx.phone),
			GuardianName: cellAt(row, idx.guardian),
		})
		summary.Imported++
	}

	return patients, summary, nil
}

// cellAt guards against ragged rows and undetected optional columns.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// readWorkbook extracts the raw grid from the first sheet of an xlsx
// workbook.
func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %v", err)
	}
	defer f.Close()

	// First sheet only
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %v", sheet, err)
	}

	return rows, nil
}

// readDelimited extracts the raw grid from comma-separated text.
func readDelimited(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)

	// Rows are allowed to be ragged; missing cells are handled per row
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading delimited file: %v", err)
	}

	return rows, nil
}
