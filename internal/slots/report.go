package slots

import (
	"fmt"
	"sort"
	"strings"

	"avatarforge/internal/pcs"
)

// Essential coverage the report checks for. Missing entries are warnings,
// never errors; strict handling belongs to the caller.
var (
	essentialSlots       = []string{"EyeL", "EyeR", "Mouth"}
	essentialEyeStates   = []string{"open", "closed"}
	essentialMouthViseme = []string{"REST", "AI", "E", "U", "O"}
)

// Report summarizes how well the source art mapped onto slots.
type Report struct {
	TotalLayers    int
	MappedLayers   int
	UnmappedLayers []string
	SlotsCreated   int
	Warnings       []string
	Coverage       map[string][]string
}

// BuildReport inspects the enhanced layer list and aggregation result for
// coverage gaps.
func BuildReport(records []pcs.LayerRecord, result *Result) *Report {
	report := &Report{
		TotalLayers:  len(records),
		SlotsCreated: len(result.Slots),
		Coverage:     make(map[string][]string),
	}

	for _, record := range records {
		if record.Tag != nil {
			report.MappedLayers++
		} else {
			report.UnmappedLayers = append(report.UnmappedLayers, record.Name)
		}
	}

	for _, slot := range essentialSlots {
		def, ok := result.Slots[slot]
		if !ok {
			report.Warnings = append(report.Warnings, fmt.Sprintf("missing essential slot: %s", slot))
			continue
		}
		switch {
		case strings.HasPrefix(slot, "Eye"):
			if missing := missingValues(essentialEyeStates, def.States); len(missing) > 0 {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("slot %s missing states: %s", slot, strings.Join(missing, ", ")))
			}
			report.Coverage[slot] = def.States
		case slot == "Mouth":
			if missing := missingValues(essentialMouthViseme, def.Visemes); len(missing) > 0 {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("slot %s missing visemes: %s", slot, strings.Join(missing, ", ")))
			}
			report.Coverage[slot] = def.Visemes
		}
	}

	return report
}

// Markdown renders the report for humans.
func (r *Report) Markdown(slotDefs map[string]Definition) string {
	var b strings.Builder
	b.WriteString("# Avatar Mapping Report\n\n")
	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Total layers: %d\n", r.TotalLayers)
	fmt.Fprintf(&b, "- Mapped layers: %d\n", r.MappedLayers)
	fmt.Fprintf(&b, "- Unmapped layers: %d\n", len(r.UnmappedLayers))
	fmt.Fprintf(&b, "- Slots created: %d\n\n", r.SlotsCreated)

	if len(r.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, warning := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Slot Coverage\n\n")
	names := make([]string, 0, len(slotDefs))
	for name := range slotDefs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := slotDefs[name]
		fmt.Fprintf(&b, "### %s\n", name)
		if len(def.States) > 0 {
			fmt.Fprintf(&b, "- States: %s\n", strings.Join(def.States, ", "))
		}
		if len(def.Visemes) > 0 {
			fmt.Fprintf(&b, "- Visemes: %s\n", strings.Join(def.Visemes, ", "))
		}
		if len(def.Emotions) > 0 {
			fmt.Fprintf(&b, "- Emotions: %s\n", strings.Join(def.Emotions, ", "))
		}
		if len(def.Shapes) > 0 {
			fmt.Fprintf(&b, "- Shapes: %s\n", strings.Join(def.Shapes, ", "))
		}
		b.WriteString("\n")
	}

	if len(r.UnmappedLayers) > 0 {
		b.WriteString("## Unmapped Layers\n\n")
		for _, name := range r.UnmappedLayers {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	return b.String()
}

func missingValues(required, available []string) []string {
	var missing []string
	for _, want := range required {
		found := false
		for _, have := range available {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	return missing
}
