package repositories

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"storefront-api/models"

	"github.com/redis/go-redis/v9"
)

// CartEvent notifies observers of a cart mutation. Last write wins across
// concurrent writers; observers reload rather than merge.
type CartEvent struct {
	Action    string            `json:"action"` // add, update, remove, clear
	CartID    string            `json:"cart_id"`
	VariantID string            `json:"variant_id,omitempty"`
	Items     []models.CartItem `json:"items"`
}

// CartStore replaces the browser's ambient localStorage cart with an
// explicit interface. Quantity <= 0 on update removes the line.
type CartStore interface {
	Get(ctx context.Context, cartID string) ([]models.CartItem, error)
	Add(ctx context.Context, cartID string, item models.CartItem) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, cartID, variantID string, quantity int) ([]models.CartItem, error)
	Remove(ctx context.Context, cartID, variantID string) ([]models.CartItem, error)
	Clear(ctx context.Context, cartID string) error
	Subscribe() <-chan CartEvent
}

// ErrItemNotFound is returned when a variant id is not in the cart.
type ErrItemNotFound struct {
	VariantID string
}

func (e *ErrItemNotFound) Error() string {
	return "cart item not found: " + e.VariantID
}

// cartNotifier fans mutation events out to subscribers. Sends never block;
// a slow subscriber just misses events and reloads on the next one.
type cartNotifier struct {
	mu   sync.Mutex
	subs []chan CartEvent
}

func (n *cartNotifier) subscribe() <-chan CartEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan CartEvent, 16)
	n.subs = append(n.subs, ch)
	return ch
}

func (n *cartNotifier) publish(event CartEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func mergeItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range items {
		if items[i].VariantID == item.VariantID {
			items[i].Quantity += item.Quantity
			return items
		}
	}
	return append(items, item)
}

func removeItem(items []models.CartItem, variantID string) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].VariantID == variantID {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}

// RedisCartStore keeps carts as JSON under cart:<id> with a TTL, the
// server-side equivalent of the old localStorage "cartItems" key.
type RedisCartStore struct {
	client   *redis.Client
	ttl      time.Duration
	notifier cartNotifier
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func (s *RedisCartStore) key(cartID string) string {
	return "cart:" + cartID
}

func (s *RedisCartStore) load(ctx context.Context, cartID string) ([]models.CartItem, error) {
	raw, err := s.client.Get(ctx, s.key(cartID)).Result()
	if err == redis.Nil {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// A corrupted cart is treated as empty rather than wedging checkout.
		return []models.CartItem{}, nil
	}
	return items, nil
}

func (s *RedisCartStore) save(ctx context.Context, cartID string, items []models.CartItem) error {
	encoded, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(cartID), encoded, s.ttl).Err()
}

func (s *RedisCartStore) Get(ctx context.Context, cartID string) ([]models.CartItem, error) {
	return s.load(ctx, cartID)
}

func (s *RedisCartStore) Add(ctx context.Context, cartID string, item models.CartItem) ([]models.CartItem, error) {
	items, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	items = mergeItem(items, item)
	if err := s.save(ctx, cartID, items); err != nil {
		return nil, err
	}

	s.notifier.publish(CartEvent{Action: "add", CartID: cartID, VariantID: item.VariantID, Items: items})
	return items, nil
}

func (s *RedisCartStore) UpdateQuantity(ctx context.Context, cartID, variantID string, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return s.Remove(ctx, cartID, variantID)
	}

	items, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].VariantID == variantID {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, &ErrItemNotFound{VariantID: variantID}
	}

	if err := s.save(ctx, cartID, items); err != nil {
		return nil, err
	}

	s.notifier.publish(CartEvent{Action: "update", CartID: cartID, VariantID: variantID, Items: items})
	return items, nil
}

func (s *RedisCartStore) Remove(ctx context.Context, cartID, variantID string) ([]models.CartItem, error) {
	items, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	items, removed := removeItem(items, variantID)
	if !removed {
		return nil, &ErrItemNotFound{VariantID: variantID}
	}

	if err := s.save(ctx, cartID, items); err != nil {
		return nil, err
	}

	s.notifier.publish(CartEvent{Action: "remove", CartID: cartID, VariantID: variantID, Items: items})
	return items, nil
}

func (s *RedisCartStore) Clear(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, s.key(cartID)).Err(); err != nil {
		return err
	}
	s.notifier.publish(CartEvent{Action: "clear", CartID: cartID, Items: []models.CartItem{}})
	return nil
}

func (s *RedisCartStore) Subscribe() <-chan CartEvent {
	return s.notifier.subscribe()
}

// MemoryCartStore backs carts with a map when Redis is absent. Single
// process only; fine for development and tests.
type MemoryCartStore struct {
	mu       sync.RWMutex
	carts    map[string][]models.CartItem
	notifier cartNotifier
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string][]models.CartItem)}
}

func (s *MemoryCartStore) Get(ctx context.Context, cartID string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.CartItem, len(s.carts[cartID]))
	copy(items, s.carts[cartID])
	return items, nil
}

func (s *MemoryCartStore) Add(ctx context.Context, cartID string, item models.CartItem) ([]models.CartItem, error) {
	s.mu.Lock()
	items := mergeItem(s.carts[cartID], item)
	s.carts[cartID] = items
	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)
	s.mu.Unlock()

	s.notifier.publish(CartEvent{Action: "add", CartID: cartID, VariantID: item.VariantID, Items: snapshot})
	return snapshot, nil
}

func (s *MemoryCartStore) UpdateQuantity(ctx context.Context, cartID, variantID string, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return s.Remove(ctx, cartID, variantID)
	}

	s.mu.Lock()
	items := s.carts[cartID]
	found := false
	for i := range items {
		if items[i].VariantID == variantID {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return nil, &ErrItemNotFound{VariantID: variantID}
	}
	s.carts[cartID] = items
	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)
	s.mu.Unlock()

	s.notifier.publish(CartEvent{Action: "update", CartID: cartID, VariantID: variantID, Items: snapshot})
	return snapshot, nil
}

func (s *MemoryCartStore) Remove(ctx context.Context, cartID, variantID string) ([]models.CartItem, error) {
	s.mu.Lock()
	items, removed := removeItem(s.carts[cartID], variantID)
	if !removed {
		s.mu.Unlock()
		return nil, &ErrItemNotFound{VariantID: variantID}
	}
	s.carts[cartID] = items
	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)
	s.mu.Unlock()

	s.notifier.publish(CartEvent{Action: "remove", CartID: cartID, VariantID: variantID, Items: snapshot})
	return snapshot, nil
}

func (s *MemoryCartStore) Clear(ctx context.Context, cartID string) error {
	s.mu.Lock()
	delete(s.carts, cartID)
	s.mu.Unlock()

	s.notifier.publish(CartEvent{Action: "clear", CartID: cartID, Items: []models.CartItem{}})
	return nil
}

func (s *MemoryCartStore) Subscribe() <-chan CartEvent {
	return s.notifier.subscribe()
}

// NewCartStore picks Redis when connected, memory otherwise.
func NewCartStore(ttl time.Duration) CartStore {
	if models.RedisClient != nil {
		return NewRedisCartStore(models.RedisClient, ttl)
	}
	return NewMemoryCartStore()
}
