package utils

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSeededRandom(t *testing.T) {
	t.Run("is stable for the same seed", func(t *testing.T) {
		assert.Equal(t, SeededRandom(1000), SeededRandom(1000))
	})

	t.Run("matches the sine hash", func(t *testing.T) {
		// sin(1) * 10000 = 8414.709848078965
		assert.InDelta(t, 0.709848078965, SeededRandom(1), 1e-9)
	})

	t.Run("stays in the unit interval", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			seed := rapid.IntRange(-1_000_000, 1_000_000).Draw(rt, "seed")
			v := SeededRandom(seed)
			if v < 0 || v >= 1 {
				rt.Fatalf("SeededRandom(%d) = %v out of range", seed, v)
			}
		})
	})
}

func TestSplitMixSource(t *testing.T) {
	src := SplitMixSource{}

	assert.Equal(t, src.Float(42), src.Float(42))
	assert.NotEqual(t, src.Float(42), src.Float(43))

	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int().Draw(rt, "seed")
		v := src.Float(seed)
		if v < 0 || v >= 1 {
			rt.Fatalf("Float(%d) = %v out of range", seed, v)
		}
	})
}

func TestNewRandomSource(t *testing.T) {
	assert.Equal(t, RandomSourceSine, NewRandomSource("sine").Name())
	assert.Equal(t, RandomSourceSplitMix, NewRandomSource("splitmix").Name())
	assert.Equal(t, RandomSourceSine, NewRandomSource("").Name(), "unknown names fall back to sine")
}

func TestShuffleWithSeed(t *testing.T) {
	t.Run("empty and single element are unchanged", func(t *testing.T) {
		assert.Empty(t, ShuffleWithSeed([]string{}, 7))
		assert.Equal(t, []string{"a"}, ShuffleWithSeed([]string{"a"}, 7))
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := []int{1, 2, 3, 4, 5, 6}
		_ = ShuffleWithSeed(in, 3000)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, in)
	})

	t.Run("follows the Fisher-Yates draw order", func(t *testing.T) {
		in := []int{0, 1, 2}
		want := []int{0, 1, 2}
		for i := 2; i > 0; i-- {
			j := int(SeededRandom(10+i) * float64(i+1))
			want[i], want[j] = want[j], want[i]
		}
		assert.Equal(t, want, ShuffleWithSeed(in, 10))
	})

	t.Run("same seed same permutation, always a permutation", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			items := rapid.SliceOfDistinct(rapid.IntRange(0, 10_000), rapid.ID[int]).Draw(rt, "items")
			seed := rapid.IntRange(0, 100_000).Draw(rt, "seed")

			a := ShuffleWithSeed(items, seed)
			b := ShuffleWithSeed(items, seed)
			require.Equal(rt, a, b)

			sortedIn := append([]int(nil), items...)
			sortedOut := append([]int(nil), a...)
			sort.Ints(sortedIn)
			sort.Ints(sortedOut)
			require.Equal(rt, sortedIn, sortedOut)
		})
	})

	t.Run("works with the integer source", func(t *testing.T) {
		in := []string{"a", "b", "c", "d", "e"}
		out := ShuffleWith(SplitMixSource{}, in, 1000)
		assert.ElementsMatch(t, in, out)
		assert.Equal(t, out, ShuffleWith(SplitMixSource{}, in, 1000))
	})
}

func TestWeekNumber(t *testing.T) {
	start := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before campaign start", start.Add(-time.Hour), 1},
		{"campaign start", start, 1},
		{"end of first week", start.Add(CampaignWeek - time.Nanosecond), 1},
		{"second week", start.Add(CampaignWeek), 2},
		{"tenth week", start.Add(9*CampaignWeek + 3*time.Hour), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekNumber(tt.now, start))
		})
	}
}

func TestNextWeekStart(t *testing.T) {
	start := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, start.Add(CampaignWeek), NextWeekStart(start.Add(-48*time.Hour), start))
	assert.Equal(t, start.Add(CampaignWeek), NextWeekStart(start.Add(time.Hour), start))
	assert.Equal(t, start.Add(3*CampaignWeek), NextWeekStart(start.Add(2*CampaignWeek), start))
}

func TestClampAndCeilDiv(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(30, 0, 10))
	assert.Equal(t, 4, Clamp(4, 0, 10))

	assert.Equal(t, 0, CeilDiv(0, 10))
	assert.Equal(t, 1, CeilDiv(1, 10))
	assert.Equal(t, 3, CeilDiv(25, 10))
	assert.Equal(t, 2, CeilDiv(20, 10))
}
