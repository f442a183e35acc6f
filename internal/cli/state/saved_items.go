package state

import (
	"sync"

	"WishlistX/internal/cli/model"
)

// Revalidator обновляет производные данные после мутации.
type Revalidator interface {
	Revalidate()
}

// SavedItems — рабочий набор товаров для списка с оптимистичными обновлениями:
// изменения применяются локально до ответа сервера и не откатываются при ошибке.
type SavedItems struct {
	mu     sync.Mutex
	items  []model.SavedItem
	filter *int64 // nil — без фильтра
	counts Revalidator
}

func NewSavedItems(counts Revalidator) *SavedItems {
	return &SavedItems{counts: counts}
}

// Replace подменяет набор после загрузки с сервера.
func (s *SavedItems) Replace(items []model.SavedItem) {
	cp := make([]model.SavedItem, len(items))
	copy(cp, items)
	s.mu.Lock()
	s.items = cp
	s.mu.Unlock()
}

// SetFilter задаёт текущий фильтр по wishlist; nil снимает фильтр.
func (s *SavedItems) SetFilter(wishlistID *int64) {
	s.mu.Lock()
	s.filter = copyID(wishlistID)
	s.mu.Unlock()
}

// Filter возвращает текущий фильтр.
func (s *SavedItems) Filter() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyID(s.filter)
}

// Move меняет wishlist товара. Если список отфильтрован и товар больше
// не подходит под фильтр, он убирается из набора. false — товара нет.
func (s *SavedItems) Move(itemID int64, target *int64) bool {
	s.mu.Lock()
	idx := s.index(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.items[idx].WishlistID = copyID(target)
	if s.filter != nil && !s.items[idx].InWishlist(s.filter) {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
	s.mu.Unlock()
	s.revalidate()
	return true
}

// Delete убирает товар независимо от фильтра. false — товара нет.
func (s *SavedItems) Delete(itemID int64) bool {
	s.mu.Lock()
	idx := s.index(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.mu.Unlock()
	s.revalidate()
	return true
}

// Visible возвращает товары, подходящие под фильтр, в порядке сервера.
func (s *SavedItems) Visible() []model.SavedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SavedItem, 0, len(s.items))
	for _, it := range s.items {
		if s.filter == nil || it.InWishlist(s.filter) {
			out = append(out, it)
		}
	}
	return out
}

// Get ищет товар в наборе.
func (s *SavedItems) Get(itemID int64) (model.SavedItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.index(itemID); idx >= 0 {
		return s.items[idx], true
	}
	return model.SavedItem{}, false
}

func (s *SavedItems) index(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *SavedItems) revalidate() {
	if s.counts != nil {
		s.counts.Revalidate()
	}
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
