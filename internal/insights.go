package internal

import "workplace-utilization/specs"

// Insight thresholds over the global size distribution, as fractions of all
// occupied events study-wide.
const (
	smallMeetingSharePct = 60
	largeMeetingHighPct  = 15
	largeMeetingLowPct   = 5
)

// buildGlobalSizeBins converts the global bin counts into the six ordered
// output bins. The counts partition every occupied event exactly once.
func buildGlobalSizeBins(global *globalStats) []specs.GlobalSizeBinSpec {
	bins := make([]specs.GlobalSizeBinSpec, 0, len(specs.SizeBinLabels))
	for _, label := range specs.SizeBinLabels {
		count := global.binCounts[label]
		pct := 0.0
		if global.totalOccupiedEvents > 0 {
			pct = float64(count) / float64(global.totalOccupiedEvents) * 100
		}
		bins = append(bins, specs.GlobalSizeBinSpec{
			Label:        label,
			Count:        count,
			OccupancyPct: pct,
		})
	}
	return bins
}

// buildGlobalInsights emits short behavioral observations from threshold
// rules over the global size distribution. Advisory text only; the numbers
// behind them live in the bins.
func buildGlobalInsights(global *globalStats) []string {
	if global.totalOccupiedEvents == 0 {
		return []string{"Insufficient data to generate behavioral insights."}
	}

	total := float64(global.totalOccupiedEvents)
	smallPct := float64(global.binCounts["1p"]+global.binCounts["2p"]) / total * 100
	largePct := float64(global.binCounts["8-11p"]+global.binCounts["12p+"]) / total * 100

	var insights []string
	if smallPct > smallMeetingSharePct {
		insights = append(insights, "Most interactions are small-format (1-2p), suggesting high demand for focus or dyad rooms.")
	}
	if largePct > largeMeetingHighPct {
		insights = append(insights, "Notable volume of mid-to-large meetings indicates valid need for formal conference spaces.")
	}
	if largePct < largeMeetingLowPct {
		insights = append(insights, "Large meetings (8p+) are infrequent; consider repurposing large boardrooms.")
	}
	if global.binCounts["3-4p"] > global.binCounts["1p"] {
		insights = append(insights, "Small group collaboration (3-4p) is a dominant behavior.")
	}
	return insights
}
