package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/artikli/internal/db"
	"github.com/erazemk/artikli/internal/model"
)

func mustAcquire(t *testing.T, st *Store) *Session {
	t.Helper()
	sess, err := st.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	t.Cleanup(func() { sess.Close() })
	return sess
}

func TestInsertAndGetItem(t *testing.T) {
	st := New(db.NewTestDB(t))
	ctx := context.Background()

	sess := mustAcquire(t, st)
	if err := sess.InsertItem(ctx, 5, *model.NewItemInput("Widget", 9.99)); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	if err := sess.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	item, err := sess.RefreshItem(ctx, 5)
	if err != nil {
		t.Fatalf("RefreshItem: %v", err)
	}
	if item == nil {
		t.Fatal("expected item after commit")
	}
	if item.Name != "Widget" || item.Price != 9.99 {
		t.Errorf("expected Widget/9.99, got %q/%v", item.Name, item.Price)
	}
	if item.IsOffer.Valid {
		t.Errorf("expected NULL is_offer, got %v", item.IsOffer.Bool)
	}

	sess = mustAcquire(t, st)
	got, err := sess.GetItem(ctx, 5)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil || got.ID != 5 {
		t.Fatalf("expected item 5, got %+v", got)
	}
}

func TestGetItemMissing(t *testing.T) {
	st := New(db.NewTestDB(t))

	sess := mustAcquire(t, st)
	item, err := sess.GetItem(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for missing item, got %+v", item)
	}
}

func TestUpdateItem(t *testing.T) {
	st := New(db.NewTestDB(t))
	ctx := context.Background()

	err := st.WithSession(ctx, func(sess *Session) error {
		if err := sess.InsertItem(ctx, 1, *model.NewItemInput("Old", 1).WithOffer(true)); err != nil {
			return err
		}
		return sess.Commit()
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	err = st.WithSession(ctx, func(sess *Session) error {
		if err := sess.UpdateItem(ctx, 1, *model.NewItemInput("New", 2.5)); err != nil {
			return err
		}
		return sess.Commit()
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	sess := mustAcquire(t, st)
	item, _ := sess.GetItem(ctx, 1)
	if item.Name != "New" || item.Price != 2.5 {
		t.Errorf("expected New/2.5, got %q/%v", item.Name, item.Price)
	}
	if item.IsOffer.Valid {
		t.Error("expected offer flag cleared to NULL")
	}
}

func TestListAndDeleteItems(t *testing.T) {
	st := New(db.NewTestDB(t))
	ctx := context.Background()

	st.WithSession(ctx, func(sess *Session) error {
		sess.InsertItem(ctx, 1, *model.NewItemInput("A", 1))
		sess.InsertItem(ctx, 2, *model.NewItemInput("B", 2).WithOffer(false))
		return sess.Commit()
	})

	sess := mustAcquire(t, st)
	items, err := sess.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[1].IsOffer.Valid || items[1].IsOffer.Bool {
		t.Errorf("expected is_offer false for item 2, got %+v", items[1].IsOffer)
	}

	if err := sess.DeleteItem(ctx, 1); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	sess.Commit()

	sess = mustAcquire(t, st)
	items, _ = sess.ListItems(ctx)
	if len(items) != 1 || items[0].ID != 2 {
		t.Errorf("expected only item 2 left, got %+v", items)
	}
}

func TestCloseRollsBack(t *testing.T) {
	st := New(db.NewTestDB(t))
	ctx := context.Background()

	sess := mustAcquire(t, st)
	sess.InsertItem(ctx, 7, *model.NewItemInput("Ghost", 1))
	if err := sess.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	sess = mustAcquire(t, st)
	item, _ := sess.GetItem(ctx, 7)
	if item != nil {
		t.Errorf("expected uncommitted insert to be rolled back, got %+v", item)
	}
}

func TestSessionUseAfterCommit(t *testing.T) {
	st := New(db.NewTestDB(t))
	ctx := context.Background()

	sess := mustAcquire(t, st)
	if err := sess.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if sess.active() {
		t.Error("expected session to be inactive after commit")
	}

	if _, err := sess.GetItem(ctx, 1); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed from GetItem, got %v", err)
	}
	if err := sess.Commit(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed from second Commit, got %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Errorf("expected Close after Commit to be a no-op, got %v", err)
	}
}

func TestWithSessionClosesOnError(t *testing.T) {
	st := New(db.NewTestDB(t))
	ctx := context.Background()
	boom := errors.New("boom")

	var held *Session
	err := st.WithSession(ctx, func(sess *Session) error {
		held = sess
		sess.InsertItem(ctx, 3, *model.NewItemInput("Lost", 1))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if held.active() {
		t.Error("expected session to be closed after WithSession returned")
	}

	sess := mustAcquire(t, st)
	if item, _ := sess.GetItem(ctx, 3); item != nil {
		t.Errorf("expected rollback, got %+v", item)
	}
}
