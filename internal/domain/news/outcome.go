package news

// FetchOutcome is the result of fetching one section. Degraded marks
// a meta section composed while at least one constituent was failing.
type FetchOutcome struct {
	Stories  []Story
	Degraded bool
	Err      *FetchError
}

// Ok reports whether the fetch succeeded.
func (o FetchOutcome) Ok() bool { return o.Err == nil }

// ComposeMeta unions the outcomes of a meta section's constituents,
// deduplicated by story ID and re-sorted by the section ordering rule.
// Degraded is true when any constituent failed or has no outcome;
// the stories of the remaining constituents still render.
func ComposeMeta(constituents []string, outcomes map[string]FetchOutcome) (stories []Story, degraded bool) {
	merged := make([]Story, 0)
	for _, name := range constituents {
		outcome, ok := outcomes[name]
		if !ok || !outcome.Ok() {
			degraded = true
			continue
		}
		merged = append(merged, outcome.Stories...)
	}
	merged = DedupeByID(merged)
	SortStories(merged)
	return merged, degraded
}
