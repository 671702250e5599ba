package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/almanac/internal/item"
)

type fakeRepo struct {
	byYear  func(year int) ([]item.Item, error)
	updated []item.Item
	created []item.Item
	deleted []string
	failErr error
}

func (f *fakeRepo) CreateItem(ctx context.Context, it *item.Item) error {
	if f.failErr != nil {
		return f.failErr
	}
	if it.ID == "" {
		it.ID = "generated"
	}
	f.created = append(f.created, *it)
	return nil
}

func (f *fakeRepo) CreateItems(ctx context.Context, items []*item.Item) error {
	return errors.New("not implemented")
}

func (f *fakeRepo) GetItem(ctx context.Context, id string) (*item.Item, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) ListItems(ctx context.Context) ([]item.Item, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) ListItemsByYear(ctx context.Context, year int) ([]item.Item, error) {
	if f.byYear == nil {
		return nil, errors.New("not implemented")
	}
	return f.byYear(year)
}

func (f *fakeRepo) UpdateItem(ctx context.Context, it item.Item) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.updated = append(f.updated, it)
	return nil
}

func (f *fakeRepo) DeleteItem(ctx context.Context, id string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) Close() error {
	return nil
}

func sample() item.Item {
	return item.Item{
		ID:        "a",
		Title:     "Launch",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, 6, 3, 23, 59, 59, int(999*time.Millisecond), time.Local),
	}
}

func TestLoadItemsReturnsItemsLoadedMsg(t *testing.T) {
	var gotYear int
	repo := &fakeRepo{
		byYear: func(year int) ([]item.Item, error) {
			gotYear = year
			return []item.Item{sample()}, nil
		},
	}

	msg := LoadItems(repo, 2024)()

	loaded, ok := msg.(ItemsLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ItemsLoadedMsg", msg)
	}
	if gotYear != 2024 || loaded.Year != 2024 {
		t.Fatalf("year = %d/%d, want 2024", gotYear, loaded.Year)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Title != "Launch" {
		t.Fatalf("items = %+v", loaded.Items)
	}
}

func TestLoadItemsError(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeRepo{byYear: func(int) ([]item.Item, error) { return nil, boom }}

	msg := LoadItems(repo, 2024)()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, boom) {
		t.Fatalf("err = %v, want wrapped boom", errMsg.Err)
	}
}

func TestSaveItem(t *testing.T) {
	repo := &fakeRepo{}
	it := sample()

	msg := SaveItem(repo, it)()
	saved, ok := msg.(ItemSavedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ItemSavedMsg", msg)
	}
	if saved.Item.ID != it.ID || len(repo.updated) != 1 {
		t.Fatalf("unexpected save: %+v, updated=%d", saved, len(repo.updated))
	}

	repo.failErr = item.ErrNotFound
	if _, ok := SaveItem(repo, it)().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg on failure")
	}
}

func TestCreateItem(t *testing.T) {
	repo := &fakeRepo{}
	it := sample()
	it.ID = ""

	msg := CreateItem(repo, it)()
	created, ok := msg.(ItemCreatedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ItemCreatedMsg", msg)
	}
	if created.Item.ID != "generated" {
		t.Fatalf("created ID = %q, want generated", created.Item.ID)
	}
}

func TestDeleteItem(t *testing.T) {
	repo := &fakeRepo{}

	msg := DeleteItem(repo, sample())()
	if _, ok := msg.(ItemDeletedMsg); !ok {
		t.Fatalf("msg type = %T, want ItemDeletedMsg", msg)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "a" {
		t.Fatalf("deleted = %v", repo.deleted)
	}
}

func TestWaitForChange(t *testing.T) {
	if WaitForChange(nil) != nil {
		t.Fatal("nil channel should give a nil command")
	}

	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	if _, ok := WaitForChange(ch)().(DBChangedMsg); !ok {
		t.Fatal("expected DBChangedMsg")
	}

	close(ch)
	if msg := WaitForChange(ch)(); msg != nil {
		t.Fatalf("closed channel msg = %T, want nil", msg)
	}
}
