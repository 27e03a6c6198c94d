// Package memory is the in-process store used when Postgres is unavailable or disabled.
package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/repository"
)

const subscriberBuffer = 16

type data struct {
	purchases    map[string]domain.PurchaseRecord
	reservations map[string]domain.ReservationRecord
	honor        map[string]int
	quest        *domain.ActiveQuest
	location     *domain.PartyLocation
	characters   map[string]domain.Character
}

func newData() data {
	return data{
		purchases:    map[string]domain.PurchaseRecord{},
		reservations: map[string]domain.ReservationRecord{},
		honor:        map[string]int{},
		characters:   map[string]domain.Character{},
	}
}

func (d data) clone() data {
	out := data{
		purchases:    maps.Clone(d.purchases),
		reservations: maps.Clone(d.reservations),
		honor:        maps.Clone(d.honor),
		quest:        cloneQuest(d.quest),
		location:     cloneLocation(d.location),
		characters:   make(map[string]domain.Character, len(d.characters)),
	}
	for id, c := range d.characters {
		out.characters[id] = c.Clone()
	}
	return out
}

// Store keeps every table in maps guarded by one RWMutex
type Store struct {
	mu   sync.RWMutex
	data data

	subMu sync.Mutex
	subs  map[chan domain.ChangeNotice]struct{}
}

var _ repository.Store = (*Store)(nil)

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		data: newData(),
		subs: map[chan domain.ChangeNotice]struct{}{},
	}
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error { return nil }

// Close drops every subscriber
func (s *Store) Close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		close(ch)
		delete(s.subs, ch)
	}
}

// Subscribe registers a listener that is removed when ctx ends
func (s *Store) Subscribe(ctx context.Context) (<-chan domain.ChangeNotice, error) {
	ch := make(chan domain.ChangeNotice, subscriberBuffer)

	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}()
	return ch, nil
}

// notify fans out without blocking; a full buffer already guarantees a reload
func (s *Store) notify(sources ...domain.ChangeSource) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, src := range sources {
		for ch := range s.subs {
			select {
			case ch <- domain.ChangeNotice{Source: src}:
			default:
			}
		}
	}
}

// ---- Shop ----

func (s *Store) ListPurchases(context.Context) ([]domain.PurchaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listPurchases(&s.data), nil
}

func (s *Store) CreatePurchase(_ context.Context, rec domain.PurchaseRecord) error {
	s.mu.Lock()
	err := createPurchase(&s.data, rec)
	s.mu.Unlock()
	if err == nil {
		s.notify(domain.ChangePurchases)
	}
	return err
}

func (s *Store) DeletePurchase(_ context.Context, itemID string) error {
	s.mu.Lock()
	_, existed := s.data.purchases[itemID]
	delete(s.data.purchases, itemID)
	s.mu.Unlock()
	if existed {
		s.notify(domain.ChangePurchases)
	}
	return nil
}

func (s *Store) ListReservations(context.Context) ([]domain.ReservationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listReservations(&s.data), nil
}

func (s *Store) CreateReservation(_ context.Context, rec domain.ReservationRecord) error {
	s.mu.Lock()
	err := createReservation(&s.data, rec)
	s.mu.Unlock()
	if err == nil {
		s.notify(domain.ChangeReservations)
	}
	return err
}

func (s *Store) DeleteReservation(_ context.Context, itemID string) error {
	s.mu.Lock()
	existed := deleteReservation(&s.data, itemID)
	s.mu.Unlock()
	if existed {
		s.notify(domain.ChangeReservations)
	}
	return nil
}

// ---- World ----

func (s *Store) GetHonor(context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data.honor), nil
}

func (s *Store) SetHonor(_ context.Context, clan string, score int) error {
	s.mu.Lock()
	s.data.honor[clan] = score
	s.mu.Unlock()
	s.notify(domain.ChangeHonor)
	return nil
}

func (s *Store) GetQuest(context.Context) (*domain.ActiveQuest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneQuest(s.data.quest), nil
}

func (s *Store) SetQuest(_ context.Context, quest *domain.ActiveQuest) error {
	s.mu.Lock()
	s.data.quest = cloneQuest(quest)
	s.mu.Unlock()
	s.notify(domain.ChangeQuest)
	return nil
}

func (s *Store) GetLocation(context.Context) (*domain.PartyLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLocation(s.data.location), nil
}

func (s *Store) SetLocation(_ context.Context, loc *domain.PartyLocation) error {
	s.mu.Lock()
	s.data.location = cloneLocation(loc)
	s.mu.Unlock()
	s.notify(domain.ChangeLocation)
	return nil
}

// ---- Characters ----

func (s *Store) ListCharacters(context.Context) ([]domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listCharacters(&s.data), nil
}

func (s *Store) GetCharacter(_ context.Context, id string) (*domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getCharacter(&s.data, id)
}

func (s *Store) SaveCharacter(_ context.Context, c domain.Character) error {
	s.mu.Lock()
	s.data.characters[c.ID] = c.Clone()
	s.mu.Unlock()
	s.notify(domain.ChangeCharacters)
	return nil
}

// ---- shared helpers, callers hold the lock ----

func listPurchases(d *data) []domain.PurchaseRecord {
	out := slices.Collect(maps.Values(d.purchases))
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func createPurchase(d *data, rec domain.PurchaseRecord) error {
	if _, exists := d.purchases[rec.ItemID]; exists {
		return domain.ErrAlreadyPurchased
	}
	d.purchases[rec.ItemID] = rec
	return nil
}

func listReservations(d *data) []domain.ReservationRecord {
	out := slices.Collect(maps.Values(d.reservations))
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func createReservation(d *data, rec domain.ReservationRecord) error {
	if _, exists := d.reservations[rec.ItemID]; exists {
		return domain.ErrAlreadyReserved
	}
	d.reservations[rec.ItemID] = rec
	return nil
}

func deleteReservation(d *data, itemID string) bool {
	_, existed := d.reservations[itemID]
	delete(d.reservations, itemID)
	return existed
}

func listCharacters(d *data) []domain.Character {
	out := make([]domain.Character, 0, len(d.characters))
	for _, c := range d.characters {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func getCharacter(d *data, id string) (*domain.Character, error) {
	c, ok := d.characters[id]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	out := c.Clone()
	return &out, nil
}

func cloneQuest(q *domain.ActiveQuest) *domain.ActiveQuest {
	if q == nil {
		return nil
	}
	out := *q
	out.Tags = slices.Clone(q.Tags)
	return &out
}

func cloneLocation(l *domain.PartyLocation) *domain.PartyLocation {
	if l == nil {
		return nil
	}
	out := *l
	out.ProvinceTags = slices.Clone(l.ProvinceTags)
	return &out
}
