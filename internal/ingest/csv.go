package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/utils"
)

// ParseCSV reads funnel records from a header-driven CSV stream. Optional
// columns may be blank; unknown columns are ignored. Records with no id or
// created_at are rejected.
func ParseCSV(r io.Reader) ([]models.FunnelRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index["id"]; !ok {
		return nil, fmt.Errorf("csv missing required column %q", "id")
	}
	if _, ok := index["created_at"]; !ok {
		return nil, fmt.Errorf("csv missing required column %q", "created_at")
	}

	records := make([]models.FunnelRecord, 0)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		createdAt, err := utils.ParseRFC3339(field("created_at"))
		if err != nil {
			return nil, fmt.Errorf("csv line %d: created_at: %w", line, err)
		}

		record := models.FunnelRecord{
			ID:        field("id"),
			Type:      recordType(field("type")),
			Name:      field("name"),
			Email:     field("email"),
			Domain:    field("domain"),
			Company:   field("company"),
			Source:    field("source"),
			Region:    field("region"),
			Owner:     field("owner"),
			Stage:     field("stage"),
			Status:    models.RecordStatusActive,
			CreatedAt: createdAt,
			NextStep:  field("next_step"),
			Notes:     field("notes"),
		}
		if record.ID == "" {
			return nil, fmt.Errorf("csv line %d: id is required", line)
		}

		if raw := field("last_touch_at"); raw != "" {
			touched, err := utils.ParseRFC3339(raw)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: last_touch_at: %w", line, err)
			}
			record.LastTouchAt = &touched
		}
		if raw := field("value_usd"); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: value_usd: %w", line, err)
			}
			record.ValueUSD = int64(value)
		}
		if raw := field("status"); strings.EqualFold(raw, string(models.RecordStatusArchived)) {
			record.Status = models.RecordStatusArchived
		}

		records = append(records, record)
	}

	return records, nil
}

func recordType(raw string) models.RecordType {
	if strings.EqualFold(raw, string(models.RecordTypeOpp)) {
		return models.RecordTypeOpp
	}
	return models.RecordTypeLead
}
