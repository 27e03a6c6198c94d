package character

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KnightlyTreasures_Go/internal/concurrency"
	"github.com/osse101/KnightlyTreasures_Go/internal/database/memory"
	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

// flakyStore fails saves while down is set
type flakyStore struct {
	*memory.Store
	mu   sync.Mutex
	down bool
}

func (f *flakyStore) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *flakyStore) SaveCharacter(ctx context.Context, c domain.Character) error {
	f.mu.Lock()
	down := f.down
	f.mu.Unlock()
	if down {
		return errors.New("connection reset")
	}
	return f.Store.SaveCharacter(ctx, c)
}

func TestStore_FailedSaveShadowsUntilNextSuccess(t *testing.T) {
	ctx := context.Background()
	base := &flakyStore{Store: memory.NewStore()}
	require.NoError(t, base.SaveCharacter(ctx, domain.Character{ID: "aria", Name: "Aria", Purse: domain.CoinPurse{GP: 10}}))
	store := NewStore(base, nil)

	base.setDown(true)
	err := store.SaveCharacter(ctx, domain.Character{ID: "aria", Name: "Aria", Purse: domain.CoinPurse{GP: 4}})
	require.Error(t, err)
	assert.True(t, store.Pending("aria"))

	got, err := store.GetCharacter(ctx, "aria")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Purse.GP)

	list, err := store.ListCharacters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4, list[0].Purse.GP)

	base.setDown(false)
	require.NoError(t, store.SaveCharacter(ctx, *got))
	assert.False(t, store.Pending("aria"))
}

func TestStore_HoldAndRelease(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewStore(), nil)

	store.Hold(domain.Character{ID: "bram", Name: "Bram"})
	list, err := store.ListCharacters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "held characters appear even when the store has none")

	store.Release("bram")
	_, err = store.GetCharacter(ctx, "bram")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestStore_SharedLockManager(t *testing.T) {
	locks := concurrency.NewLockManager()
	a := NewStore(memory.NewStore(), locks)
	b := NewStore(memory.NewStore(), locks)

	inside := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = a.WithLock("aria", func() error {
			close(inside)
			<-release
			return nil
		})
	}()
	<-inside

	acquired := make(chan struct{})
	go func() {
		_ = b.WithLock("aria", func() error { return nil })
		close(acquired)
	}()

	assert.Never(t, func() bool {
		select {
		case <-acquired:
			return true
		default:
			return false
		}
	}, 30*time.Millisecond, 5*time.Millisecond, "second store entered while the lock was held")
	close(release)
	<-acquired
}
