package accesslog

import (
	"math/rand"
	"strings"
	"testing"
)

var testAssets = []GeneratorAsset{
	{ID: "cage-5a", Name: "Cage 5A", LocationID: "dc-denver-1", ZoneID: "zone-south"},
	{ID: "rack-101", Name: "Rack 101", LocationID: "dc-denver-1", ZoneID: "zone-north"},
}

func newTestGenerator() *Generator {
	return NewGenerator(rand.New(rand.NewSource(42))) //nolint:gosec // deterministic test data
}

func TestGenerate_VolumeAndOrdering(t *testing.T) {
	g := newTestGenerator()
	logs := g.Generate("tenant-acme", testAssets, 30, 15)

	// Daily counts vary 80-120% of the average.
	if len(logs) < 30*12 || len(logs) > 30*18 {
		t.Errorf("log count = %d, want within [360, 540]", len(logs))
	}

	for i := 1; i < len(logs); i++ {
		if logs[i].Timestamp.After(logs[i-1].Timestamp) {
			t.Fatalf("logs not sorted newest first at index %d", i)
		}
	}
}

func TestGenerate_Distributions(t *testing.T) {
	g := newTestGenerator()
	logs := g.Generate("tenant-acme", testAssets, 60, 50)

	var business, success, denied, escorted int
	for _, l := range logs {
		h := l.Timestamp.Hour()
		if h >= 8 && h < 18 {
			business++
		}
		if l.Success {
			success++
		}
		if l.Action == ActionDenied {
			denied++
		}
		if l.EscortName != "" {
			escorted++
		}
	}
	total := float64(len(logs))

	if share := float64(business) / total; share < 0.6 || share > 0.8 {
		t.Errorf("business-hours share = %.2f, want ~0.70", share)
	}
	if share := float64(success) / total; share < 0.9 {
		t.Errorf("success share = %.2f, want ~0.95", share)
	}
	if denied == 0 {
		t.Error("expected some denied events")
	}
	if share := float64(escorted) / total; share < 0.05 || share > 0.2 {
		t.Errorf("escorted share = %.2f, want ~0.10", share)
	}
}

func TestGenerate_FieldConsistency(t *testing.T) {
	g := newTestGenerator()
	logs := g.Generate("tenant-acme", testAssets, 5, 20)

	for _, l := range logs {
		if l.TenantID != "tenant-acme" {
			t.Fatalf("tenant = %q", l.TenantID)
		}
		switch l.Action {
		case ActionDenied:
			if l.Success {
				t.Error("denied event flagged successful")
			}
			if l.DenialReason == "" {
				t.Error("denied event missing reason")
			}
			if l.DurationSeconds != 0 {
				t.Error("denied event carries a duration")
			}
		case ActionExit:
			if !l.Success {
				t.Error("exit event flagged unsuccessful")
			}
			if l.DurationSeconds < minVisitSeconds || l.DurationSeconds >= maxVisitSeconds {
				t.Errorf("duration = %d, want [%d, %d)", l.DurationSeconds, minVisitSeconds, maxVisitSeconds)
			}
		case ActionEntry:
			if l.DenialReason != "" {
				t.Error("entry event carries a denial reason")
			}
		}
		if !strings.HasPrefix(l.BadgeID, "BADGE-") || len(l.BadgeID) != 10 {
			t.Errorf("badge ID = %q", l.BadgeID)
		}
		if !strings.Contains(l.AccessPoint, "-Door-") {
			t.Errorf("access point = %q", l.AccessPoint)
		}
	}
}

func TestGenerate_EmptyInputs(t *testing.T) {
	g := newTestGenerator()

	if logs := g.Generate("tenant-acme", nil, 30, 15); len(logs) != 0 {
		t.Errorf("no assets: %d logs, want 0", len(logs))
	}
	if logs := g.Generate("tenant-acme", testAssets, 0, 15); len(logs) != 0 {
		t.Errorf("zero days: %d logs, want 0", len(logs))
	}
}
