package repositories

import (
	"context"
	"testing"
	"time"

	"storefront-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(variantID string, quantity int) models.CartItem {
	return models.CartItem{
		ProductID: 1,
		VariantID: variantID,
		Quantity:  quantity,
		Price:     10,
	}
}

func TestMemoryCartStore_AddMergesVariantQuantity(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.Add(ctx, "c1", item("1_default_default", 2))
	require.NoError(t, err)
	items, err := store.Add(ctx, "c1", item("1_default_default", 3))
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestMemoryCartStore_VariantsAreSeparateLines(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.Add(ctx, "c1", item("1_2_default", 1))
	require.NoError(t, err)
	items, err := store.Add(ctx, "c1", item("1_3_default", 1))
	require.NoError(t, err)

	assert.Len(t, items, 2)
}

func TestMemoryCartStore_UpdateQuantity(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.Add(ctx, "c1", item("1_default_default", 2))
	require.NoError(t, err)

	items, err := store.UpdateQuantity(ctx, "c1", "1_default_default", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestMemoryCartStore_ZeroQuantityRemovesLine(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.Add(ctx, "c1", item("1_default_default", 2))
	require.NoError(t, err)

	items, err := store.UpdateQuantity(ctx, "c1", "1_default_default", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryCartStore_UnknownVariantErrors(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.UpdateQuantity(ctx, "c1", "missing", 3)
	var notFound *ErrItemNotFound
	require.ErrorAs(t, err, &notFound)

	_, err = store.Remove(ctx, "c1", "missing")
	require.ErrorAs(t, err, &notFound)
}

func TestMemoryCartStore_CartsAreIsolated(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	_, err := store.Add(ctx, "c1", item("1_default_default", 1))
	require.NoError(t, err)

	items, err := store.Get(ctx, "c2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryCartStore_ClearAndEvents(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()
	events := store.Subscribe()

	_, err := store.Add(ctx, "c1", item("1_default_default", 1))
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx, "c1"))

	items, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, items)

	actions := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		select {
		case event := <-events:
			actions = append(actions, event.Action)
		case <-time.After(time.Second):
			t.Fatal("expected a cart event")
		}
	}
	assert.Equal(t, []string{"add", "clear"}, actions)
}

func TestMemoryCartStore_SlowSubscriberNeverBlocksWrites(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()
	store.Subscribe() // never drained

	for i := 0; i < 100; i++ {
		_, err := store.Add(ctx, "c1", item("1_default_default", 1))
		require.NoError(t, err)
	}

	items, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 100, items[0].Quantity)
}

func TestMemoryConfirmationStore_ConsumeOnce(t *testing.T) {
	store := NewMemoryConfirmationStore(time.Minute)
	ctx := context.Background()
	result := &models.OrderResult{Success: true}

	require.NoError(t, store.Put(ctx, "order_1_abc", result))

	got, err := store.Consume(ctx, "order_1_abc")
	require.NoError(t, err)
	assert.True(t, got.Success)

	_, err = store.Consume(ctx, "order_1_abc")
	assert.ErrorIs(t, err, ErrConfirmationNotFound)
}

func TestMemoryConfirmationStore_Expiry(t *testing.T) {
	store := NewMemoryConfirmationStore(time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "order_2_def", &models.OrderResult{Success: true}))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Consume(ctx, "order_2_def")
	assert.ErrorIs(t, err, ErrConfirmationNotFound)
}
