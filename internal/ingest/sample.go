package ingest

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/revopsstack/revleak/internal/models"
)

// GenerateSampleData builds a demo record set seeding every leak class: an
// SLA breach, an unassigned lead, a stale opportunity, a duplicate-domain
// pair and a missing next step, plus random filler. Filler randomness is
// seeded so repeated demo runs produce the same shape.
func GenerateSampleData(now time.Time) []models.FunnelRecord {
	records := make([]models.FunnelRecord, 0, 50)

	// Lead past the 30-minute response SLA, never touched.
	records = append(records, models.FunnelRecord{
		ID:        uuid.NewString(),
		Type:      models.RecordTypeLead,
		Name:      "John Doe",
		Email:     "john@acme.com",
		Domain:    "acme.com",
		Company:   "Acme Corp",
		Source:    "inbound",
		Region:    "NA",
		Owner:     "Alice",
		Stage:     "New",
		Status:    models.RecordStatusActive,
		CreatedAt: now.Add(-45 * time.Minute),
		ValueUSD:  1200,
		Notes:     "Interesting inquiry",
	})

	records = append(records, models.FunnelRecord{
		ID:        uuid.NewString(),
		Type:      models.RecordTypeLead,
		Name:      "Jane Smith",
		Email:     "jane@start.up",
		Domain:    "start.up",
		Company:   "StartUp Inc",
		Source:    "website",
		Region:    "EMEA",
		Stage:     "New",
		Status:    models.RecordStatusActive,
		CreatedAt: now.Add(-10 * time.Minute),
		ValueUSD:  1000,
		Notes:     "Needs assignment",
	})

	staleTouch := now.Add(-10 * 24 * time.Hour)
	records = append(records, models.FunnelRecord{
		ID:          uuid.NewString(),
		Type:        models.RecordTypeOpp,
		Name:        "Big Deal Q1",
		Email:       "ceo@bigcorp.com",
		Domain:      "bigcorp.com",
		Company:     "BigCorp",
		Source:      "outbound",
		Region:      "NA",
		Owner:       "Bob",
		Stage:       "Proposal",
		Status:      models.RecordStatusActive,
		CreatedAt:   now.Add(-14 * 24 * time.Hour),
		LastTouchAt: &staleTouch,
		NextStep:    "Send contract",
		ValueUSD:    50000,
		Notes:       "Radio silence",
	})

	// Same domain as the first lead: duplicate suspect pair.
	records = append(records, models.FunnelRecord{
		ID:        uuid.NewString(),
		Type:      models.RecordTypeLead,
		Name:      "J. Doe",
		Email:     "john.doe@acme.com",
		Domain:    "acme.com",
		Company:   "Acme",
		Source:    "event",
		Region:    "NA",
		Owner:     "Alice",
		Stage:     "New",
		Status:    models.RecordStatusActive,
		CreatedAt: now.Add(-5 * time.Minute),
		ValueUSD:  1200,
		Notes:     "Met at event",
	})

	recentTouch := now.Add(-2 * time.Hour)
	records = append(records, models.FunnelRecord{
		ID:          uuid.NewString(),
		Type:        models.RecordTypeOpp,
		Name:        "Renewal 2026",
		Email:       "procurement@client.com",
		Domain:      "client.com",
		Company:     "Client Co",
		Source:      "upsell",
		Region:      "APAC",
		Owner:       "Charlie",
		Stage:       "Negotiation",
		Status:      models.RecordStatusActive,
		CreatedAt:   now.Add(-2 * 24 * time.Hour),
		LastTouchAt: &recentTouch,
		ValueUSD:    15000,
		Notes:       "Discussing terms",
	})

	rng := rand.New(rand.NewSource(42))
	regions := []string{"NA", "EMEA", "APAC"}
	for i := 0; i < 45; i++ {
		recordType := models.RecordTypeLead
		if rng.Float64() > 0.7 {
			recordType = models.RecordTypeOpp
		}
		owner := "Dave"
		if rng.Float64() <= 0.1 {
			owner = ""
		}
		var lastTouch *time.Time
		if rng.Float64() > 0.5 {
			touched := now.Add(-time.Duration(rng.Intn(5)) * 24 * time.Hour)
			lastTouch = &touched
		}
		nextStep := "Call"
		if rng.Float64() <= 0.3 {
			nextStep = ""
		}

		records = append(records, models.FunnelRecord{
			ID:          uuid.NewString(),
			Type:        recordType,
			Name:        fmt.Sprintf("Lead %d", i),
			Email:       fmt.Sprintf("lead%d@example%d.com", i, i),
			Domain:      fmt.Sprintf("example%d.com", i),
			Company:     fmt.Sprintf("Example %d Ltd", i),
			Source:      "marketing",
			Region:      regions[rng.Intn(len(regions))],
			Owner:       owner,
			Stage:       "New",
			Status:      models.RecordStatusActive,
			CreatedAt:   now.Add(-time.Duration(rng.Intn(20)) * 24 * time.Hour),
			LastTouchAt: lastTouch,
			NextStep:    nextStep,
			ValueUSD:    1000 + int64(rng.Intn(10000)),
		})
	}

	return records
}
