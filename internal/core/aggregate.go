package core

import "sort"

// Lead-intent score boundaries. These are user-visible classification
// boundaries: high is score >= HighIntentScore, medium is
// MediumIntentScore <= score < HighIntentScore, low is everything below.
const (
	HighIntentScore   = 20
	MediumIntentScore = 10
)

// DefaultTopTitles is the job title ranking length used when none is configured.
const DefaultTopTitles = 10

// Aggregate computes every chart mapping from the contact list in one pass.
//
// Owner keys are raw: a contact with Owner "" is counted under "". Display
// code substitutes UnassignedOwner via OwnerLabel. topTitles <= 0 returns the
// full ranking.
func Aggregate(contacts []Contact, topTitles int) Stats {
	stats := Stats{
		TotalContacts:     len(contacts),
		ByOwner:           make(map[string]int),
		ByLifecycle:       make(map[string]int),
		EngagementByOwner: make(map[string]EngagementBreakdown),
	}

	titleCounts := make(map[string]int)
	var titleOrder []string

	for _, c := range contacts {
		stats.ByOwner[c.Owner]++
		stats.ByLifecycle[c.LifecycleStage]++

		b := stats.EngagementByOwner[c.Owner]
		switch c.Priority {
		case PriorityHigh:
			b.High++
		case PriorityMedium:
			b.Medium++
		default:
			b.Low++
		}
		stats.EngagementByOwner[c.Owner] = b

		switch IntentCategory(c.IntentScore) {
		case PriorityHigh:
			stats.LeadIntent.High++
		case PriorityMedium:
			stats.LeadIntent.Medium++
		default:
			stats.LeadIntent.Low++
		}

		if c.Title != "" {
			if _, seen := titleCounts[c.Title]; !seen {
				titleOrder = append(titleOrder, c.Title)
			}
			titleCounts[c.Title]++
		}
	}

	stats.TopTitles = rankTitles(titleOrder, titleCounts, topTitles)
	return stats
}

// IntentCategory classifies a lead-intent score.
func IntentCategory(score int) Priority {
	switch {
	case score >= HighIntentScore:
		return PriorityHigh
	case score >= MediumIntentScore:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// rankTitles orders titles by count, keeping first-encountered order for ties.
func rankTitles(order []string, counts map[string]int, n int) []TitleCount {
	ranked := make([]TitleCount, len(order))
	for i, t := range order {
		ranked[i] = TitleCount{Title: t, Count: counts[t]}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Share returns count as a percentage of total, or 0 when total is 0.
func Share(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) * 100 / float64(total)
}
