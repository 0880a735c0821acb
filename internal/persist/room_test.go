package persist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/store"
)

// memStore is an in-memory store.Store for repository tests.
type memStore struct {
	data    map[string][]byte
	failSet bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(ctx context.Context, key string, value []byte) error {
	if m.failSet {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range m.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (m *memStore) Close() error { return nil }

const testAddr = "0x1111111111111111111111111111111111111111"

func TestRoomRepository_SaveLoadRoundTrip(t *testing.T) {
	repo := NewRoomRepository(newMemStore())
	ctx := context.Background()

	state := DefaultRoom(testAddr)
	state.THCAmount = 4.2
	state.Plants = append(state.Plants, domain.Plant{
		ID: 1, Stage: domain.StageSprout, Progress: 33.3, IsGrowing: true,
		Quality: 1.2, PlantedAt: time.Now().UTC(),
	})
	state.NextPlantID = 2

	require.NoError(t, repo.Save(ctx, state))
	assert.False(t, state.LastSaved.IsZero(), "Save stamps LastSaved")

	got, err := repo.Load(ctx, testAddr)
	require.NoError(t, err)
	assert.Equal(t, state.THCAmount, got.THCAmount)
	require.Len(t, got.Plants, 1)
	assert.Equal(t, domain.StageSprout, got.Plants[0].Stage)
	assert.Equal(t, 2, got.NextPlantID)
}

func TestRoomRepository_LoadMissingGivesDefaults(t *testing.T) {
	repo := NewRoomRepository(newMemStore())

	got, err := repo.Load(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, testAddr, got.Address)
	assert.Empty(t, got.Plants)
	assert.Equal(t, domain.InitialPlantCapacity, got.PlantCapacity)
	assert.Len(t, got.Equipment, len(domain.EquipmentTypes))
	assert.Equal(t, 1, got.NextPlantID)
}

func TestRoomRepository_LoadCorruptGivesDefaults(t *testing.T) {
	ms := newMemStore()
	ms.data["room:"+testAddr] = []byte("{not json")
	repo := NewRoomRepository(ms)

	got, err := repo.Load(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, testAddr, got.Address)
	assert.Equal(t, domain.InitialPlantCapacity, got.PlantCapacity)
}

func TestRoomRepository_LoadNormalizesPartialBlob(t *testing.T) {
	ms := newMemStore()
	// Hand-edited blob: no equipment, plants with high IDs, absurd capacity.
	ms.data["room:"+testAddr] = []byte(`{
		"address": "",
		"thc_amount": -3,
		"plants": [{"id": 9, "stage": 1, "is_growing": true}],
		"plant_capacity": 9999,
		"next_plant_id": 1
	}`)
	repo := NewRoomRepository(ms)

	got, err := repo.Load(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, testAddr, got.Address)
	assert.Equal(t, 0.0, got.THCAmount, "negative THC clamped")
	assert.Equal(t, domain.MaxPlantCapacity, got.PlantCapacity, "capacity clamped")
	assert.Len(t, got.Equipment, len(domain.EquipmentTypes), "missing equipment repaired")
	assert.Equal(t, 10, got.NextPlantID, "next ID moved past existing plants")
}

func TestRoomRepository_CaseInsensitiveAddress(t *testing.T) {
	repo := NewRoomRepository(newMemStore())
	ctx := context.Background()

	upper := "0xABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD"
	state := DefaultRoom(upper)
	state.THCAmount = 1.5
	require.NoError(t, repo.Save(ctx, state))

	got, err := repo.Load(ctx, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	require.NoError(t, err)
	assert.Equal(t, 1.5, got.THCAmount)
}

func TestRoomRepository_Addresses(t *testing.T) {
	repo := NewRoomRepository(newMemStore())
	ctx := context.Background()

	a := "0x2222222222222222222222222222222222222222"
	b := "0x3333333333333333333333333333333333333333"
	require.NoError(t, repo.Save(ctx, DefaultRoom(a)))
	require.NoError(t, repo.Save(ctx, DefaultRoom(b)))

	addrs, err := repo.Addresses(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, addrs)
}

func TestRoomRepository_SaveError(t *testing.T) {
	ms := newMemStore()
	ms.failSet = true
	repo := NewRoomRepository(ms)

	err := repo.Save(context.Background(), DefaultRoom(testAddr))
	assert.Error(t, err)
}
