package policy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPolicy(t *testing.T) {
	pol := Default()
	if pol.SLAMinutes != 30 || pol.StaleDays != 7 {
		t.Fatalf("unexpected defaults: %+v", pol)
	}
	if pol.ErrorBudgetUSD != 50000 {
		t.Fatalf("unexpected error budget %d", pol.ErrorBudgetUSD)
	}
	if pol.WarnThreshold != 0.25 || pol.PageThreshold != 0.50 {
		t.Fatalf("unexpected paging thresholds: %+v", pol)
	}
}

func TestWinProb(t *testing.T) {
	pol := Default()
	if got := pol.WinProb("Proposal"); got != 0.45 {
		t.Fatalf("Proposal: expected 0.45, got %f", got)
	}
	if got := pol.WinProb("Closed_Lost"); got != 0 {
		t.Fatalf("Closed_Lost: expected 0, got %f", got)
	}
	if got := pol.WinProb(""); got != DefaultWinProbability {
		t.Fatalf("empty stage: expected default, got %f", got)
	}
	if got := pol.WinProb("Made Up Stage"); got != DefaultWinProbability {
		t.Fatalf("unknown stage: expected default, got %f", got)
	}
}

func TestLoaderMissingFileUsesDefaults(t *testing.T) {
	loader, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing policy file must not fail: %v", err)
	}
	if loader.Policy().SLAMinutes != 30 {
		t.Fatalf("expected default policy, got %+v", loader.Policy())
	}
}

func TestLoaderReadsFileAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := "slaMinutes: 15\nerrorBudgetUSD: 100000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	loader, err := NewLoader(path)
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}
	pol := loader.Policy()
	if pol.SLAMinutes != 15 {
		t.Fatalf("expected 15, got %d", pol.SLAMinutes)
	}
	if pol.ErrorBudgetUSD != 100000 {
		t.Fatalf("expected 100000, got %d", pol.ErrorBudgetUSD)
	}
	if pol.StaleDays != 7 || len(pol.WinProbability) == 0 {
		t.Fatalf("unset fields must fall back to defaults: %+v", pol)
	}
}

func TestLoaderReloadNotifiesCallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("slaMinutes: 15\n"), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	loader, err := NewLoader(path)
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}

	var seen []int
	loader.OnChange(func(pol Policy) { seen = append(seen, pol.SLAMinutes) })

	if err := os.WriteFile(path, []byte("slaMinutes: 45\n"), 0o644); err != nil {
		t.Fatalf("rewrite policy: %v", err)
	}
	if _, err := loader.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if loader.Policy().SLAMinutes != 45 {
		t.Fatalf("expected 45 after reload, got %d", loader.Policy().SLAMinutes)
	}
	if len(seen) != 1 || seen[0] != 45 {
		t.Fatalf("callback not invoked with new policy: %v", seen)
	}
}

func TestLoaderReloadBadFileKeepsCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("slaMinutes: 15\n"), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	loader, err := NewLoader(path)
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}

	if err := os.WriteFile(path, []byte("slaMinutes: [broken\n"), 0o644); err != nil {
		t.Fatalf("rewrite policy: %v", err)
	}
	if _, err := loader.Reload(); err == nil {
		t.Fatalf("expected parse error")
	}
	if loader.Policy().SLAMinutes != 15 {
		t.Fatalf("failed reload must keep the previous policy, got %d", loader.Policy().SLAMinutes)
	}
}
