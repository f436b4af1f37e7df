package usecase_test

import (
	"sort"
	"time"

	"github.com/tu-usuario/expiry-monitor/internal/domain/entity"
	"github.com/tu-usuario/expiry-monitor/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria para los tests de casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	byID map[string]*entity.Category
	// items enlaza el repo de items para que DetachItems tenga efecto observable.
	items *fakeItemRepo
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[string]*entity.Category{}}
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) GetByIDAndUser(id, userID string) (*entity.Category, error) {
	c, ok := f.byID[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) GetByUserAndName(userID, name string) (*entity.Category, error) {
	for _, c := range f.byID {
		if c.UserID == userID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) ListByUser(userID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.byID {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeCategoryRepo) DetachItems(categoryID, userID string) error {
	if f.items == nil {
		return nil
	}
	for _, it := range f.items.byID {
		if it.UserID == userID && it.CategoryID != nil && *it.CategoryID == categoryID {
			it.CategoryID = nil
		}
	}
	return nil
}

type fakeItemRepo struct {
	byID map[string]*entity.Item
	cats *fakeCategoryRepo
}

func newFakeItemRepo(cats *fakeCategoryRepo) *fakeItemRepo {
	f := &fakeItemRepo{byID: map[string]*entity.Item{}, cats: cats}
	if cats != nil {
		cats.items = f
	}
	return f
}

func (f *fakeItemRepo) Create(it *entity.Item) error {
	cp := *it
	f.byID[it.ID] = &cp
	return nil
}

func (f *fakeItemRepo) GetByIDAndUser(id, userID string) (*entity.Item, error) {
	it, ok := f.byID[id]
	if !ok || it.UserID != userID {
		return nil, nil
	}
	return f.populated(it), nil
}

func (f *fakeItemRepo) ListByUser(userID string) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range f.byID {
		if it.UserID == userID {
			out = append(out, f.populated(it))
		}
	}
	sortByExpiry(out)
	return out, nil
}

func (f *fakeItemRepo) ListBySKUAndUser(userID, sku string) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range f.byID {
		if it.UserID == userID && it.SKU == sku {
			out = append(out, f.populated(it))
		}
	}
	sortByExpiry(out)
	return out, nil
}

func (f *fakeItemRepo) ListExpiring(userID string, from, to time.Time) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range f.byID {
		if it.UserID == userID && !it.Expiry.Before(from) && !it.Expiry.After(to) {
			out = append(out, f.populated(it))
		}
	}
	sortByExpiry(out)
	return out, nil
}

func (f *fakeItemRepo) Update(it *entity.Item) error {
	cp := *it
	cp.Category = nil
	f.byID[it.ID] = &cp
	return nil
}

func (f *fakeItemRepo) AppendQuantity(id, userID string, delta int) (*entity.Item, error) {
	it, ok := f.byID[id]
	if !ok || it.UserID != userID {
		return nil, nil
	}
	it.Quantity += delta
	it.UpdatedAt = time.Now()
	return f.populated(it), nil
}

func (f *fakeItemRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

// populated imita el LEFT JOIN del repo real: copia el item y resuelve la
// categoría referenciada si existe.
func (f *fakeItemRepo) populated(it *entity.Item) *entity.Item {
	cp := *it
	if cp.CategoryID != nil && f.cats != nil {
		if c, ok := f.cats.byID[*cp.CategoryID]; ok {
			cc := *c
			cp.Category = &cc
		}
	}
	return &cp
}

func sortByExpiry(items []*entity.Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].Expiry.Before(items[j].Expiry) })
}

// fakeTxRunner ejecuta el closure directamente sobre el mismo repo; los
// tests no necesitan transaccionalidad real.
type fakeTxRunner struct {
	repo *fakeCategoryRepo
}

func (f *fakeTxRunner) Run(fn func(categories repository.CategoryRepository) error) error {
	return fn(f.repo)
}
