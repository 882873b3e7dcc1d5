package audit

import (
	"fmt"
	"testing"
)

func TestRecordNewestFirst(t *testing.T) {
	log := NewLog("tester")
	log.Record("FIX_APPLIED", "first", "r1")
	log.Record("FIX_APPLIED", "second", "r2")

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Details != "second" {
		t.Fatalf("newest entry must come first, got %q", entries[0].Details)
	}
	if entries[0].User != "tester" || entries[0].EntityID != "r2" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
	if entries[0].ID == entries[1].ID {
		t.Fatalf("entries must get unique ids")
	}
}

func TestRecordCapsEntries(t *testing.T) {
	log := NewLog("")
	for i := 0; i < 60; i++ {
		log.Record("FIX_APPLIED", fmt.Sprintf("entry %d", i), "")
	}

	entries := log.Entries()
	if len(entries) != maxEntries {
		t.Fatalf("expected cap at %d, got %d", maxEntries, len(entries))
	}
	if entries[0].Details != "entry 59" {
		t.Fatalf("cap must evict oldest, newest is %q", entries[0].Details)
	}
	if entries[0].User != "system" {
		t.Fatalf("blank user must default to system, got %q", entries[0].User)
	}
}

func TestClear(t *testing.T) {
	log := NewLog("tester")
	log.Record("FIX_APPLIED", "x", "")
	log.Clear()
	if len(log.Entries()) != 0 {
		t.Fatalf("clear must drop all entries")
	}
}
