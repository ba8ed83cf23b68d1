package stats

// Tier is one level of the streak badge ladder.
type Tier struct {
	Name     string `json:"name"`
	Subtitle string `json:"subtitle"`
	Emoji    string `json:"emoji"`
	MinDays  int    `json:"min_days"`
}

var tiers = []Tier{
	{Name: "Spark", Subtitle: "Start your streak", Emoji: "✨", MinDays: 0},
	{Name: "Flame", Subtitle: "3-day momentum", Emoji: "🔥", MinDays: 3},
	{Name: "Blaze", Subtitle: "1 week strong", Emoji: "⚡", MinDays: 7},
	{Name: "Comet", Subtitle: "2 weeks locked in", Emoji: "🌠", MinDays: 14},
	{Name: "Legend", Subtitle: "30-day master", Emoji: "👑", MinDays: 30},
}

// Tiers returns the badge ladder, lowest first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Badge is the tier earned by a streak and the progress toward the next.
type Badge struct {
	Tier
	Next     *Tier `json:"next,omitempty"`
	Progress int   `json:"progress"`
}

// BadgeFor returns the badge for a streak of days. Progress is a percentage
// of the way from the current tier to the next; the top tier reports 100.
func BadgeFor(days int) Badge {
	idx := 0
	for i, t := range tiers {
		if days >= t.MinDays {
			idx = i
		}
	}
	b := Badge{Tier: tiers[idx], Progress: 100}
	if idx+1 < len(tiers) {
		next := tiers[idx+1]
		b.Next = &next
		span := next.MinDays - b.MinDays
		b.Progress = clamp(percent(max(days-b.MinDays, 0), span), 0, 100)
	}
	return b
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
