package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"fridgeplan/internal/models"
	"fridgeplan/internal/store"
)

// Row is one line of a user-edited inventory view. The expiry may arrive as
// ISO text, generic date text, a timestamp, or an already-normalized Date
// depending on the editing surface, so it stays loosely typed until
// reconciliation normalizes it.
type Row struct {
	Name     string          `json:"name"`
	Quantity float64         `json:"quantity"`
	Unit     models.Unit     `json:"unit"`
	Expiry   any             `json:"expiry"`
	Category models.Category `json:"category"`
}

// RowError reports an edited row that failed normalization. The reconcile
// that produced it was aborted without touching canonical state.
type RowError struct {
	Index int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Session owns the canonical in-memory inventory for one user session and
// is the only writer to it. All mutations persist through the Store before
// they are considered committed.
type Session struct {
	mu        sync.Mutex
	store     *store.Store
	inventory []models.Ingredient
}

// New loads the persisted inventory into a fresh session.
func New(st *store.Store) (*Session, error) {
	inventory, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &Session{store: st, inventory: inventory}, nil
}

// Add appends a new ingredient and persists the inventory. An item whose
// name is empty after trimming is silently ignored: Add reports false and
// the inventory is left untouched, matching the add-form behavior of simply
// not appending the record.
func (s *Session) Add(item models.Ingredient) (bool, error) {
	item = item.Normalized()
	if item.Name == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inventory = append(s.inventory, item)
	if err := s.store.Save(s.inventory); err != nil {
		s.inventory = s.inventory[:len(s.inventory)-1]
		return false, err
	}
	return true, nil
}

// Reconcile replaces the canonical inventory with a user-edited view. Row
// identity is positional: the edited view's order becomes the canonical
// order. Every row's expiry is normalized by the same rule as the Store's
// load path; a row that fails normalization aborts the reconcile with the
// canonical state and the backing file untouched. A successful reconcile
// persists immediately.
func (s *Session) Reconcile(rows []Row) error {
	updated := make([]models.Ingredient, 0, len(rows))
	for i, row := range rows {
		expiry, err := models.NormalizeDate(row.Expiry)
		if err != nil {
			return &RowError{Index: i, Err: err}
		}
		updated = append(updated, models.Ingredient{
			Name:     row.Name,
			Quantity: row.Quantity,
			Unit:     row.Unit,
			Expiry:   expiry,
			Category: row.Category,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.inventory
	s.inventory = updated
	if err := s.store.Save(s.inventory); err != nil {
		s.inventory = previous
		return err
	}
	return nil
}

// View returns the inventory sorted by (category, expiry) for display and
// editing surfaces. The canonical order is not changed.
func (s *Session) View() []models.Ingredient {
	view := s.Snapshot()
	sort.SliceStable(view, func(a, b int) bool {
		if view[a].Category != view[b].Category {
			return strings.Compare(string(view[a].Category), string(view[b].Category)) < 0
		}
		return view[a].Expiry.Before(view[b].Expiry)
	})
	return view
}

// Snapshot returns a copy of the inventory in canonical order. Callers may
// read it freely; it is never mutated by the session afterwards.
func (s *Session) Snapshot() []models.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]models.Ingredient, len(s.inventory))
	copy(snapshot, s.inventory)
	return snapshot
}

// Len reports the current number of tracked ingredients.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inventory)
}
