package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"studiopulse/domain/core"
	"studiopulse/domain/pipeline"
	"studiopulse/internal/errors"
)

// RosterReader reads a client roster exported from the studio's booking
// system, in XLSX or CSV form. The first row must be a header; columns are
// matched by name, not position.
type RosterReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// Recognized header names (case-insensitive, trimmed).
const (
	colID          = "id"
	colFirstName   = "first_name"
	colLastName    = "last_name"
	colStage       = "stage"
	colValue       = "estimated_value"
	colProbability = "probability"
	colFollowUp    = "follow_up_date"
	colCompliance  = "compliance_score"
)

// Follow-up dates accept either plain dates or RFC3339 timestamps.
var followUpLayouts = []string{"2006-01-02", time.RFC3339}

// NewRosterReader creates a reader that handles both Excel and CSV rosters
func NewRosterReader(filePath string) *RosterReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &RosterReader{filePath: filePath, fileType: fileType}
}

// Read parses the roster into client records.
func (r *RosterReader) Read() ([]pipeline.ClientRecord, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.New(errors.CodeRosterError,
			fmt.Sprintf("roster file not found: %s", r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s roster", r.fileType)
	}

	return parseRoster(rows)
}

func (r *RosterReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func (r *RosterReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func parseRoster(rows [][]string) ([]pipeline.ClientRecord, error) {
	if len(rows) == 0 {
		return []pipeline.ClientRecord{}, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	if _, ok := columns[colID]; !ok {
		return nil, errors.New(errors.CodeRosterError, "roster header is missing the id column")
	}

	clients := make([]pipeline.ClientRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		id := cell(colID)
		if id == "" {
			continue // blank spacer rows are common in studio exports
		}

		record := pipeline.ClientRecord{
			ID:        core.ClientID(id),
			FirstName: cell(colFirstName),
			LastName:  cell(colLastName),
			Pipeline: pipeline.PipelineStatus{
				Stage:          pipeline.ParseStage(strings.ToLower(cell(colStage))),
				EstimatedValue: parseFloat(cell(colValue)),
				Probability:    parseFloat(cell(colProbability)),
			},
			Aftercare: pipeline.AftercareStatus{
				ComplianceScore: parseFloat(cell(colCompliance)),
			},
		}

		if raw := cell(colFollowUp); raw != "" {
			if followUp, ok := parseFollowUp(raw); ok {
				record.Pipeline.FollowUpDate = &followUp
			}
		}

		clients = append(clients, record)
	}

	return clients, nil
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.TrimPrefix(strings.ReplaceAll(s, ",", ""), "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFollowUp(s string) (time.Time, bool) {
	for _, layout := range followUpLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RosterSource adapts a roster file into ports.ClientSourcePort, re-reading
// the file on every snapshot so edits show up without a restart.
type RosterSource struct {
	reader *RosterReader
}

// NewRosterSource creates a client source backed by a roster file
func NewRosterSource(filePath string) *RosterSource {
	return &RosterSource{reader: NewRosterReader(filePath)}
}

// ListClients implements ports.ClientSourcePort.
func (s *RosterSource) ListClients(ctx context.Context) ([]pipeline.ClientRecord, error) {
	return s.reader.Read()
}
