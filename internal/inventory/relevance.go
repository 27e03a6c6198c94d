package inventory

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

// Relevance scores how well item fits the party's quest and location:
// 10 per matching quest tag, 5 for a province match, 1 for the "general" tag.
func Relevance(item domain.Item, quest *domain.ActiveQuest, location *domain.PartyLocation) int {
	sc := newScorer(quest, location)
	if sc == nil {
		return 0
	}
	return sc.score(item)
}

type scorer struct {
	questTags    mapset.Set[string]
	provinceTags mapset.Set[string]
	cache        map[string]int
}

// newScorer returns nil when neither a quest nor a location is active
func newScorer(quest *domain.ActiveQuest, location *domain.PartyLocation) *scorer {
	if quest == nil && location == nil {
		return nil
	}
	sc := &scorer{
		questTags:    mapset.NewThreadUnsafeSet[string](),
		provinceTags: mapset.NewThreadUnsafeSet[string](),
		cache:        make(map[string]int),
	}
	if quest != nil {
		sc.questTags.Append(quest.Tags...)
	}
	if location != nil {
		if location.Province != "" {
			sc.provinceTags.Add(location.Province)
		}
		sc.provinceTags.Append(location.ProvinceTags...)
		sc.provinceTags.Remove(domain.GeneralProvinceTag)
	}
	return sc
}

func (s *scorer) score(item domain.Item) int {
	if v, ok := s.cache[item.ID]; ok {
		return v
	}

	total := 0
	for _, tag := range item.QuestTags {
		if s.questTags.Contains(tag) {
			total += QuestTagWeight
		}
	}
	provinceMatch, general := false, false
	for _, tag := range item.ProvinceTags {
		if tag == domain.GeneralProvinceTag {
			general = true
		} else if s.provinceTags.Contains(tag) {
			provinceMatch = true
		}
	}
	if provinceMatch {
		total += ProvinceMatchWeight
	}
	if general {
		total += GeneralTagWeight
	}

	s.cache[item.ID] = total
	return total
}

// relevantFirst stably moves items scoring at least threshold to the front
func (s *scorer) relevantFirst(items []domain.Item, threshold int) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	var rest []domain.Item
	for _, item := range items {
		if s.score(item) >= threshold {
			out = append(out, item)
		} else {
			rest = append(rest, item)
		}
	}
	return append(out, rest...)
}

// byScore stably orders items by descending score, keeping shuffled order for ties
func (s *scorer) byScore(items []domain.Item) []domain.Item {
	sort.SliceStable(items, func(i, j int) bool {
		return s.score(items[i]) > s.score(items[j])
	})
	return items
}
