package slots

import (
	"strings"
	"testing"

	"avatarforge/internal/pcs"
)

func TestReportFlagsMissingEssentialSlots(t *testing.T) {
	records := []pcs.LayerRecord{
		tagged("mouth", &pcs.Tag{Part: "Mouth", Viseme: "AI"}),
	}
	result := Aggregate(records)
	report := BuildReport(records, result)

	var sawEyeL, sawEyeR bool
	for _, warning := range report.Warnings {
		if strings.Contains(warning, "EyeL") {
			sawEyeL = true
		}
		if strings.Contains(warning, "EyeR") {
			sawEyeR = true
		}
	}
	if !sawEyeL || !sawEyeR {
		t.Fatalf("expected warnings for missing eyes, got %v", report.Warnings)
	}
}

func TestReportFlagsMissingVisemeCoverage(t *testing.T) {
	records := []pcs.LayerRecord{
		tagged("mouth ai", &pcs.Tag{Part: "Mouth", Viseme: "AI"}),
		tagged("eye l open", &pcs.Tag{Part: "Eye", Side: "L", State: "open"}),
		tagged("eye l closed", &pcs.Tag{Part: "Eye", Side: "L", State: "closed"}),
		tagged("eye r open", &pcs.Tag{Part: "Eye", Side: "R", State: "open"}),
		tagged("eye r closed", &pcs.Tag{Part: "Eye", Side: "R", State: "closed"}),
	}
	result := Aggregate(records)
	report := BuildReport(records, result)

	found := false
	for _, warning := range report.Warnings {
		if strings.Contains(warning, "Mouth missing visemes") {
			found = true
			if !strings.Contains(warning, "REST") {
				t.Fatalf("expected REST in missing list, got %q", warning)
			}
		}
	}
	if !found {
		t.Fatalf("expected mouth viseme warning, got %v", report.Warnings)
	}
}

func TestReportCleanWhenCoverageComplete(t *testing.T) {
	records := []pcs.LayerRecord{
		tagged("eye l", &pcs.Tag{Part: "Eye", Side: "L"}),
		tagged("eye r", &pcs.Tag{Part: "Eye", Side: "R"}),
		tagged("mouth", &pcs.Tag{Part: "Mouth"}),
	}
	// Default injection supplies the full vocabularies here.
	result := Aggregate(records)
	report := BuildReport(records, result)
	if len(report.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", report.Warnings)
	}
}

func TestReportCountsUnmapped(t *testing.T) {
	records := []pcs.LayerRecord{
		tagged("mapped", &pcs.Tag{Part: "Mouth"}),
		tagged("mystery", nil),
	}
	report := BuildReport(records, Aggregate(records))
	if report.MappedLayers != 1 || len(report.UnmappedLayers) != 1 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if report.UnmappedLayers[0] != "mystery" {
		t.Fatalf("unexpected unmapped list %v", report.UnmappedLayers)
	}
}

func TestReportMarkdown(t *testing.T) {
	records := []pcs.LayerRecord{
		tagged("mouth", &pcs.Tag{Part: "Mouth", Viseme: "AI"}),
		tagged("mystery", nil),
	}
	result := Aggregate(records)
	report := BuildReport(records, result)

	md := report.Markdown(result.Slots)
	for _, want := range []string{
		"# Avatar Mapping Report",
		"## Summary",
		"## Warnings",
		"### Mouth",
		"- Visemes: AI",
		"## Unmapped Layers",
		"- mystery",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
