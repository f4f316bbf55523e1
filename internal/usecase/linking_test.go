package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/strideworks/stride/internal/domain"
)

type memLinkRepo struct {
	links []domain.Link
}

func (m *memLinkRepo) Create(ctx context.Context, link domain.Link) error {
	for _, l := range m.links {
		if l.User == link.User && l.Item == link.Item {
			return domain.ErrConflict
		}
	}
	m.links = append(m.links, link)
	return nil
}

func (m *memLinkRepo) Get(ctx context.Context, id domain.ID) (domain.Link, error) {
	for _, l := range m.links {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Link{}, domain.NotFoundError{Resource: "link"}
}

func (m *memLinkRepo) GetByUserItem(ctx context.Context, user, item domain.ID) (domain.Link, error) {
	for _, l := range m.links {
		if l.User == user && l.Item == item {
			return l, nil
		}
	}
	return domain.Link{}, domain.NotFoundError{Resource: "link"}
}

func (m *memLinkRepo) Exists(ctx context.Context, user, item domain.ID) (bool, error) {
	_, err := m.GetByUserItem(ctx, user, item)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memLinkRepo) GetAll(ctx context.Context) ([]domain.Link, error) {
	return m.links, nil
}

func (m *memLinkRepo) GetByUser(ctx context.Context, user domain.ID) ([]domain.Link, error) {
	var out []domain.Link
	for _, l := range m.links {
		if l.User == user {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memLinkRepo) Delete(ctx context.Context, id domain.ID) error {
	for i, l := range m.links {
		if l.ID == id {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memLinkRepo) DeleteByUserItem(ctx context.Context, user, item domain.ID) error {
	for i, l := range m.links {
		if l.User == user && l.Item == item {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestLinkUnlinkRoundTrip(t *testing.T) {
	uc := NewLinkingUsecase(&memLinkRepo{})
	ctx := context.Background()

	if _, err := uc.Link(ctx, "alice", "p1"); err != nil {
		t.Fatalf("link failed: %v", err)
	}
	has, err := uc.HasLink(ctx, "alice", "p1")
	if err != nil || !has {
		t.Fatalf("expected link to exist, has=%v err=%v", has, err)
	}

	if err := uc.Unlink(ctx, "alice", "p1"); err != nil {
		t.Fatalf("unlink failed: %v", err)
	}
	has, err = uc.HasLink(ctx, "alice", "p1")
	if err != nil || has {
		t.Fatalf("expected link gone, has=%v err=%v", has, err)
	}

	// Unlinking again is a silent no-op.
	if err := uc.Unlink(ctx, "alice", "p1"); err != nil {
		t.Fatalf("second unlink must be a no-op: %v", err)
	}
}

func TestLinkDuplicatePair(t *testing.T) {
	uc := NewLinkingUsecase(&memLinkRepo{})
	ctx := context.Background()

	if _, err := uc.Link(ctx, "alice", "p1"); err != nil {
		t.Fatalf("link failed: %v", err)
	}
	_, err := uc.Link(ctx, "alice", "p1")
	var already domain.AlreadyLinkedError
	if !errors.As(err, &already) {
		t.Fatalf("expected AlreadyLinkedError, got %v", err)
	}
	if already.User != "alice" || already.Item != "p1" {
		t.Fatalf("error must carry the conflicting pair, got %+v", already)
	}

	// Same item under a different user is a distinct pair.
	if _, err := uc.Link(ctx, "bob", "p1"); err != nil {
		t.Fatalf("distinct pair rejected: %v", err)
	}
}

func TestDeleteByIDChecksOwnership(t *testing.T) {
	uc := NewLinkingUsecase(&memLinkRepo{})
	ctx := context.Background()

	link, err := uc.Link(ctx, "alice", "p1")
	if err != nil {
		t.Fatalf("link failed: %v", err)
	}

	err = uc.Delete(ctx, link.ID, "bob")
	var notOwner domain.NotOwnerError
	if !errors.As(err, &notOwner) {
		t.Fatalf("expected NotOwnerError, got %v", err)
	}

	if err := uc.Delete(ctx, link.ID, "alice"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if has, _ := uc.HasLink(ctx, "alice", "p1"); has {
		t.Fatalf("link should be gone after delete by id")
	}
}

func TestSetLinkedReconciles(t *testing.T) {
	uc := NewLinkingUsecase(&memLinkRepo{})
	ctx := context.Background()

	if err := uc.SetLinked(ctx, "alice", "c1", true); err != nil {
		t.Fatalf("set linked failed: %v", err)
	}
	// Setting true twice must not surface the duplicate as an error.
	if err := uc.SetLinked(ctx, "alice", "c1", true); err != nil {
		t.Fatalf("idempotent set failed: %v", err)
	}
	if err := uc.SetLinked(ctx, "alice", "c1", false); err != nil {
		t.Fatalf("set unlinked failed: %v", err)
	}
	if has, _ := uc.HasLink(ctx, "alice", "c1"); has {
		t.Fatalf("expected link removed")
	}
}

func TestFilterByItems(t *testing.T) {
	links := []domain.Link{
		{ID: "l1", User: "a", Item: "p1"},
		{ID: "l2", User: "a", Item: "ghost"},
		{ID: "l3", User: "b", Item: "p2"},
	}
	ids := map[domain.ID]struct{}{"p1": {}, "p2": {}}

	kept := FilterByItems(links, ids)
	if len(kept) != 2 || kept[0].ID != "l1" || kept[1].ID != "l3" {
		t.Fatalf("expected dangling link excluded in order, got %v", kept)
	}
}
