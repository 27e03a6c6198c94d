package inventory

import (
	"math"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/utils"
)

// Input is everything a weekly selection depends on.
// Quest and Location are optional; when either is set the selection is quest-aware.
type Input struct {
	Catalog   []domain.Item
	Week      int
	Purchased mapset.Set[string]
	Quest     *domain.ActiveQuest
	Location  *domain.PartyLocation
}

// Generator produces the reproducible weekly shop selection
type Generator struct {
	cfg Config
	src utils.RandomSource
}

// NewGenerator creates a generator. A nil source uses the sine hash.
func NewGenerator(cfg Config, src utils.RandomSource) *Generator {
	if src == nil {
		src = utils.SineSource{}
	}
	return &Generator{cfg: cfg, src: src}
}

// Config returns the generator's quotas
func (g *Generator) Config() Config {
	return g.cfg
}

// Source returns the random source name, used in cache keys
func (g *Generator) Source() string {
	return g.src.Name()
}

// Generate returns the selection for in: legendary picks first, then rare,
// uncommon and common. The result is identical for identical inputs.
func (g *Generator) Generate(in Input) []domain.Item {
	base := in.Week * SeedMultiplier
	sc := newScorer(in.Quest, in.Location)
	pools := g.partition(in)
	selected := mapset.NewThreadUnsafeSet[string]()

	legendary := g.pickPerClass(pools[domain.RarityLegendary], base+LegendarySeedOffset, sc, selected, len(g.cfg.Classes))

	rare := g.pickPerClass(pools[domain.RarityRare], base+RareClassSeedOffset, sc, selected, g.cfg.Rare.Quota)
	rare = append(rare, g.fillTier(pools[domain.RarityRare], g.cfg.Rare, rare, base+RareFillSeedOffset, sc, selected)...)

	uncommon := g.fillTier(pools[domain.RarityUncommon], g.cfg.Uncommon, nil, base+UncommonSeedOffset, sc, selected)
	common := g.fillTier(pools[domain.RarityCommon], g.cfg.Common, nil, base+CommonSeedOffset, sc, selected)

	out := make([]domain.Item, 0, len(legendary)+len(rare)+len(uncommon)+len(common))
	out = append(out, legendary...)
	out = append(out, rare...)
	out = append(out, uncommon...)
	out = append(out, common...)
	return out
}

// partition groups the purchasable catalog by rarity, keeping catalog order
func (g *Generator) partition(in Input) map[domain.Rarity][]domain.Item {
	pools := make(map[domain.Rarity][]domain.Item, len(domain.Rarities))
	for _, item := range in.Catalog {
		if item.Rarity.IsUnique() && in.Purchased != nil && in.Purchased.Contains(item.ID) {
			continue
		}
		pools[item.Rarity] = append(pools[item.Rarity], item)
	}
	return pools
}

// pickPerClass walks the party classes in order and gives each uncovered class one
// item from pool. A class counts as covered once any picked item suits it.
func (g *Generator) pickPerClass(pool []domain.Item, seedBase int, sc *scorer, selected mapset.Set[string], limit int) []domain.Item {
	var picked []domain.Item
	covered := mapset.NewThreadUnsafeSet[string]()

	for i, class := range g.cfg.Classes {
		if len(picked) >= limit {
			break
		}
		if covered.Contains(class) {
			continue
		}

		var candidates []domain.Item
		for _, item := range pool {
			if item.SuitsClass(class) && !selected.Contains(item.ID) {
				candidates = append(candidates, item)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		shuffled := utils.ShuffleWith(g.src, candidates, seedBase+i)
		if sc != nil {
			shuffled = sc.relevantFirst(shuffled, g.cfg.RelevanceThreshold)
		}

		choice := shuffled[0]
		for _, c := range shuffled {
			if !coversAny(c, covered) {
				choice = c
				break
			}
		}

		selected.Add(choice.ID)
		picked = append(picked, choice)
		for _, cls := range choice.SuitableFor {
			covered.Add(cls)
		}
	}
	return picked
}

func coversAny(item domain.Item, covered mapset.Set[string]) bool {
	for _, cls := range item.SuitableFor {
		if covered.Contains(cls) {
			return true
		}
	}
	return false
}

// fillTier tops a tier up to its quota. already holds picks made for the tier
// before the fill (the rare class guarantees); they count toward quota and the
// per-category counts.
func (g *Generator) fillTier(pool []domain.Item, tier TierConfig, already []domain.Item, seedBase int, sc *scorer, selected mapset.Set[string]) []domain.Item {
	remaining := tier.Quota - len(already)
	if remaining <= 0 {
		return nil
	}

	taken := make(map[domain.Category]int, len(domain.Categories))
	for _, item := range already {
		taken[item.Category]++
	}

	var picked []domain.Item
	take := func(item domain.Item) {
		selected.Add(item.ID)
		taken[item.Category]++
		picked = append(picked, item)
	}

	if sc != nil {
		target := int(math.Ceil(float64(tier.Quota) * g.cfg.MinRelevantFraction))
		for _, item := range already {
			if sc.score(item) >= g.cfg.RelevanceThreshold {
				target--
			}
		}
		target = utils.MinInt(target, remaining)

		if target > 0 {
			relevant := g.available(pool, selected, func(item domain.Item) bool {
				return sc.score(item) >= g.cfg.RelevanceThreshold
			})
			relevant = sc.byScore(utils.ShuffleWith(g.src, relevant, seedBase+RelevantSeedOffset))
			for _, item := range relevant {
				if len(picked) >= target {
					break
				}
				take(item)
			}
		}
	}

	counts := make(map[domain.Category]int, len(domain.Categories))
	for cat, n := range tier.CategoryCounts {
		if left := n - taken[cat]; left > 0 {
			counts[cat] = left
		}
	}
	rest := g.fillBuckets(g.available(pool, selected, nil), counts, remaining-len(picked), seedBase)
	for _, item := range rest {
		take(item)
	}
	return picked
}

// fillBuckets shuffles each category bucket with its own sub-seed, takes the
// per-category counts in fixed category order, then tops up round-robin from
// what is left until quota items are chosen or the pool runs dry.
func (g *Generator) fillBuckets(pool []domain.Item, counts map[domain.Category]int, quota int, seedBase int) []domain.Item {
	if quota <= 0 {
		return nil
	}

	buckets := make([][]domain.Item, len(domain.Categories))
	for idx, cat := range domain.Categories {
		var bucket []domain.Item
		for _, item := range pool {
			if item.Category == cat {
				bucket = append(bucket, item)
			}
		}
		buckets[idx] = utils.ShuffleWith(g.src, bucket, seedBase+idx)
	}

	picked := make([]domain.Item, 0, quota)
	cursor := make([]int, len(buckets))

	for idx, cat := range domain.Categories {
		n := utils.MinInt(counts[cat], len(buckets[idx]))
		n = utils.MinInt(n, quota-len(picked))
		picked = append(picked, buckets[idx][:n]...)
		cursor[idx] = n
	}

	for len(picked) < quota {
		progressed := false
		for idx := range buckets {
			if len(picked) >= quota {
				break
			}
			if cursor[idx] < len(buckets[idx]) {
				picked = append(picked, buckets[idx][cursor[idx]])
				cursor[idx]++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return picked
}

// available returns pool items not yet selected that pass keep (nil keeps all)
func (g *Generator) available(pool []domain.Item, selected mapset.Set[string], keep func(domain.Item) bool) []domain.Item {
	var out []domain.Item
	for _, item := range pool {
		if selected.Contains(item.ID) {
			continue
		}
		if keep != nil && !keep(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// IDs returns the ids of items in order
func IDs(items []domain.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// sortedKeys returns a set's members in a stable order, for cache keys
func sortedKeys(s mapset.Set[string]) []string {
	if s == nil {
		return nil
	}
	keys := s.ToSlice()
	sort.Strings(keys)
	return keys
}
