package insights

import (
	"context"
	"fmt"
	"math"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/utils"
)

// MoodSummary aggregates the moods recorded over a trailing window of days.
type MoodSummary struct {
	Start        string      `json:"start"`
	End          string      `json:"end"`
	Entries      int         `json:"entries"`
	Rated        int         `json:"rated"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}

// Mood summarises entries written in the last days days, today included.
// Entries without a mood count towards Entries but not the average.
func (s *Service) Mood(ctx context.Context, days int) (MoodSummary, error) {
	if days <= 0 {
		days = constants.DefaultMoodDays
	}
	today := s.Today()
	start := today.AddDate(0, 0, -(days - 1))
	summary := MoodSummary{
		Start:        utils.FormatDay(start),
		End:          utils.FormatDay(today),
		Distribution: make(map[int]int, constants.MoodMax),
	}
	for m := constants.MoodMin; m <= constants.MoodMax; m++ {
		summary.Distribution[m] = 0
	}

	key := s.key(ctx, "mood", summary.Start, summary.End)
	if s.lookup(ctx, "mood", key, &summary) {
		return summary, nil
	}

	entries, err := s.store.ListEntries(models.EntryFilter{StartDay: summary.Start, EndDay: summary.End})
	if err != nil {
		return MoodSummary{}, fmt.Errorf("failed to list entries: %w", err)
	}

	total := 0
	for _, e := range entries {
		summary.Entries++
		if e.Mood < constants.MoodMin || e.Mood > constants.MoodMax {
			continue
		}
		summary.Rated++
		summary.Distribution[e.Mood]++
		total += e.Mood
	}
	if summary.Rated > 0 {
		summary.Average = math.Round(float64(total)/float64(summary.Rated)*100) / 100
	}

	s.save(ctx, key, summary)
	return summary, nil
}
