package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompute(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		capacity  int
		applied   int
		want      Result
	}{
		{
			name:     "ended course",
			start:    date(2025, 1, 1),
			end:      date(2025, 3, 9),
			capacity: 20,
			applied:  5,
			want:     Result{Remaining: 15, Label: LabelEnded, Countdown: CountdownEnded, IsClosed: true},
		},
		{
			name:     "ongoing with free seats",
			start:    date(2025, 3, 1),
			end:      date(2025, 4, 1),
			capacity: 20,
			applied:  5,
			want:     Result{Remaining: 15, Label: LabelOngoing, Countdown: CountdownOngoing, IsClosed: false},
		},
		{
			name:     "ongoing and full",
			start:    date(2025, 3, 10),
			end:      date(2025, 3, 10),
			capacity: 10,
			applied:  10,
			want:     Result{Remaining: 0, Label: LabelOngoing, Countdown: CountdownOngoing, IsClosed: true},
		},
		{
			name:     "full before start",
			start:    date(2025, 3, 15),
			end:      date(2025, 5, 1),
			capacity: 10,
			applied:  12,
			want:     Result{Remaining: 0, Label: LabelClosed, Countdown: "D-5", IsClosed: true},
		},
		{
			name:     "full without start date",
			end:      date(2025, 5, 1),
			capacity: 10,
			applied:  10,
			want:     Result{Remaining: 0, Label: LabelClosed, Countdown: CountdownDDay, IsClosed: true},
		},
		{
			name:     "open enrollment",
			start:    date(2025, 3, 11),
			end:      date(2025, 5, 1),
			capacity: 10,
			applied:  3,
			want:     Result{Remaining: 7, Label: LabelOpen, Countdown: "D-1", IsClosed: false},
		},
		{
			name:     "no dates at all",
			capacity: 10,
			applied:  3,
			want:     Result{Remaining: 7, Label: LabelUnknown, Countdown: CountdownUndetermined, IsClosed: false},
		},
		{
			name:     "start known in the past, end unknown",
			start:    date(2025, 3, 1),
			capacity: 10,
			applied:  3,
			want:     Result{Remaining: 7, Label: LabelUnknown, Countdown: CountdownUndetermined, IsClosed: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.start, tt.end, tt.capacity, tt.applied, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemaining_NeverNegative(t *testing.T) {
	for capacity := 0; capacity <= 30; capacity++ {
		for applied := 0; applied <= 30; applied++ {
			got := Remaining(capacity, applied)
			want := capacity - applied
			if want < 0 {
				want = 0
			}
			assert.Equal(t, want, got, "capacity=%d applied=%d", capacity, applied)
			assert.GreaterOrEqual(t, got, 0)
		}
	}
}

func TestCompute_LabelVocabulary(t *testing.T) {
	today := date(2025, 6, 15)
	listLabels := map[string]bool{LabelOngoing: true, LabelClosed: true, LabelOpen: true}
	detailLabels := map[string]bool{LabelEnded: true, LabelOngoing: true, LabelClosed: true, LabelOpen: true, LabelUnknown: true}

	for startOff := -5; startOff <= 5; startOff++ {
		for length := 0; length <= 5; length++ {
			for _, seats := range [][2]int{{10, 0}, {10, 9}, {10, 10}, {0, 0}} {
				start := today.AddDate(0, 0, startOff)
				end := start.AddDate(0, 0, length)

				got := Compute(start, end, seats[0], seats[1], today)
				assert.True(t, detailLabels[got.Label], "unexpected label %q", got.Label)
				assert.Equal(t, Remaining(seats[0], seats[1]), got.Remaining)

				// list records always have dates and end >= today
				if !end.Before(today) {
					assert.True(t, listLabels[got.Label], "unexpected list label %q", got.Label)
				}
			}
		}
	}
}

func TestDaysBetween_AcrossLocations(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	a := time.Date(2025, 3, 10, 23, 59, 0, 0, seoul)
	b := time.Date(2025, 3, 13, 0, 1, 0, 0, seoul)
	assert.Equal(t, 3, DaysBetween(a, b))
}
