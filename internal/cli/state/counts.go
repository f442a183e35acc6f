package state

import (
	"context"
	"sync"
	"time"

	"WishlistX/internal/cli/model"

	"go.uber.org/zap"
)

// WishlistLister загружает сводку wishlist'ов (реализуется api.Client).
type WishlistLister interface {
	ListWishlists(ctx context.Context) ([]model.Wishlist, error)
}

// WishlistCounts хранит сводку wishlist'ов и обновляет её в фоне.
// Ошибки фонового обновления игнорируются: счётчики согласуются со временем.
type WishlistCounts struct {
	lister  WishlistLister
	log     *zap.SugaredLogger
	timeout time.Duration

	mu    sync.RWMutex
	lists []model.Wishlist
	wg    sync.WaitGroup
}

func NewWishlistCounts(lister WishlistLister, log *zap.SugaredLogger) *WishlistCounts {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &WishlistCounts{lister: lister, log: log, timeout: 15 * time.Second}
}

// Load синхронно загружает сводку.
func (c *WishlistCounts) Load(ctx context.Context) error {
	lists, err := c.lister.ListWishlists(ctx)
	if err != nil {
		return err
	}
	c.Set(lists)
	return nil
}

// Set заменяет сводку.
func (c *WishlistCounts) Set(lists []model.Wishlist) {
	cp := make([]model.Wishlist, len(lists))
	copy(cp, lists)
	c.mu.Lock()
	c.lists = cp
	c.mu.Unlock()
}

// Revalidate запускает фоновое обновление и сразу возвращается.
func (c *WishlistCounts) Revalidate() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.Load(ctx); err != nil {
			c.log.Debugw("wishlist revalidation failed", "error", err)
		}
	}()
}

// Wait дожидается завершения фоновых обновлений.
func (c *WishlistCounts) Wait() {
	c.wg.Wait()
}

// Wishlists возвращает копию текущей сводки.
func (c *WishlistCounts) Wishlists() []model.Wishlist {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cp := make([]model.Wishlist, len(c.lists))
	copy(cp, c.lists)
	return cp
}

// Names сопоставляет id wishlist с именем.
func (c *WishlistCounts) Names() map[int64]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[int64]string, len(c.lists))
	for _, w := range c.lists {
		out[w.ID] = w.Name
	}
	return out
}
