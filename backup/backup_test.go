package backup

import (
	"context"
	"testing"

	"clementus360/daily-tracker/store"
	"clementus360/daily-tracker/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commit(n int64) types.Document {
	return types.Document{
		Tasks:      &types.TaskBundle{},
		Data:       types.CompletionGrid{},
		Comments:   types.Annotations{"2024-0-1": "commit"},
		TodayNotes: types.Annotations{},
		Timestamp:  n,
	}
}

func TestRotate_KeepsThreeNewest(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemory())

	for i := int64(1); i <= 4; i++ {
		require.NoError(t, m.Rotate(ctx, commit(i)))
	}

	for slot, want := range map[int]int64{1: 4, 2: 3, 3: 2} {
		doc, err := m.Load(ctx, slot)
		require.NoError(t, err)
		assert.Equal(t, want, doc.Timestamp, "slot %d", slot)
	}
}

func TestRotate_PartiallyFilled(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemory())

	require.NoError(t, m.Rotate(ctx, commit(1)))
	require.NoError(t, m.Rotate(ctx, commit(2)))

	doc, err := m.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Timestamp)

	_, err = m.Load(ctx, 3)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRotate_ShiftsCorruptSlotVerbatim(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	m := NewManager(s)
	require.NoError(t, s.Set(ctx, store.BackupKey(1), []byte("{broken")))

	require.NoError(t, m.Rotate(ctx, commit(7)))

	raw, err := s.Get(ctx, store.BackupKey(2))
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(raw))
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	m := NewManager(s)

	_, err := m.Load(ctx, 0)
	assert.ErrorIs(t, err, types.ErrInvalidSlot)
	_, err = m.Load(ctx, 4)
	assert.ErrorIs(t, err, types.ErrInvalidSlot)

	_, err = m.Load(ctx, 1)
	assert.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, s.Set(ctx, store.BackupKey(1), []byte("not json")))
	_, err = m.Load(ctx, 1)
	assert.ErrorIs(t, err, types.ErrParse)

	require.NoError(t, s.Set(ctx, store.BackupKey(2), []byte(`{"data":{}}`)))
	_, err = m.Load(ctx, 2)
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	m := NewManager(s)
	require.NoError(t, m.Rotate(ctx, commit(1700000000000)))
	require.NoError(t, s.Set(ctx, store.BackupKey(2), []byte("garbage")))

	slots, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.True(t, slots[0].Present)
	require.NotNil(t, slots[0].Timestamp)
	assert.Equal(t, int64(1700000000000), slots[0].Timestamp.UnixMilli())

	assert.True(t, slots[1].Present)
	assert.True(t, slots[1].Corrupt)

	assert.False(t, slots[2].Present)
}
