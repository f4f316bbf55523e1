package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/strideworks/stride/internal/domain"
)

type mockLinkChecker struct {
	linked map[string]bool
	err    error
}

func (m *mockLinkChecker) HasLink(ctx context.Context, user, item domain.ID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.linked[string(user)+"/"+string(item)], nil
}

func (m *mockLinkChecker) set(user, item domain.ID) {
	if m.linked == nil {
		m.linked = map[string]bool{}
	}
	m.linked[string(user)+"/"+string(item)] = true
}

func post(id, author domain.ID) domain.Post {
	return domain.Post{ID: id, Author: author}
}

func TestResolveAllOwnerAlwaysKept(t *testing.T) {
	checker := &mockLinkChecker{}
	r := NewVisibilityResolver(checker)

	posts := []domain.Post{post("p1", "alice"), post("p2", "alice")}

	decisions, err := ResolveAll(context.Background(), r, "alice", posts)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	for i, d := range decisions {
		if d != Keep {
			t.Fatalf("post %d: owner must see own content unredacted, got %v", i, d)
		}
	}
}

func TestResolveAllRedactsUnlinked(t *testing.T) {
	checker := &mockLinkChecker{}
	checker.set("bob", "p2")
	r := NewVisibilityResolver(checker)

	posts := []domain.Post{post("p2", "bob"), post("p1", "alice")}

	// Anonymous viewer: linked posts kept, the rest redacted but included.
	decisions, err := ResolveAll(context.Background(), r, "", posts)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if decisions[0] != Keep {
		t.Fatalf("expected linked post kept, got %v", decisions[0])
	}
	if decisions[1] != Redact {
		t.Fatalf("expected unlinked post redacted, got %v", decisions[1])
	}
}

func TestResolveAllLinkedVisibleToAnyViewer(t *testing.T) {
	checker := &mockLinkChecker{}
	checker.set("bob", "p1")
	r := NewVisibilityResolver(checker)

	posts := []domain.Post{post("p1", "bob")}
	for _, viewer := range []domain.ID{"", "alice", "bob"} {
		decisions, err := ResolveAll(context.Background(), r, viewer, posts)
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if decisions[0] != Keep {
			t.Fatalf("viewer %q: linked post must be unredacted, got %v", viewer, decisions[0])
		}
	}
}

func TestResolveAllPreservesInputOrder(t *testing.T) {
	checker := &mockLinkChecker{}
	r := NewVisibilityResolver(checker)

	var posts []domain.Post
	for i := 99; i >= 0; i-- {
		id := domain.ID(fmt.Sprintf("p%03d", i))
		posts = append(posts, post(id, "carol"))
		if i%3 == 0 {
			checker.set("carol", id)
		}
	}

	decisions, err := ResolveAll(context.Background(), r, "", posts)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(decisions) != len(posts) {
		t.Fatalf("expected %d decisions, got %d", len(posts), len(decisions))
	}
	// Decisions align by index with the (descending) input ordering.
	for i, p := range posts {
		want := Redact
		if checker.linked["carol/"+string(p.ID)] {
			want = Keep
		}
		if decisions[i] != want {
			t.Fatalf("post %s: expected %v got %v", p.ID, want, decisions[i])
		}
	}
}

func TestResolveAllPropagatesLookupFailure(t *testing.T) {
	checker := &mockLinkChecker{err: fmt.Errorf("store down")}
	r := NewVisibilityResolver(checker)

	_, err := ResolveAll(context.Background(), r, "", []domain.Post{post("p1", "alice")})
	if err == nil {
		t.Fatalf("expected lookup failure to abort resolution")
	}
}

func TestFilterByOwnerOwnerSeesAll(t *testing.T) {
	checker := &mockLinkChecker{}
	r := NewVisibilityResolver(checker)

	posts := []domain.Post{post("p1", "alice"), post("p2", "alice")}
	kept, err := FilterByOwner(context.Background(), r, "alice", "alice", posts)
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if len(kept) != 2 {
		t.Fatalf("owner must see everything, got %d of 2", len(kept))
	}
}

func TestFilterByOwnerDropsUnlinked(t *testing.T) {
	checker := &mockLinkChecker{}
	checker.set("alice", "p2")
	r := NewVisibilityResolver(checker)

	posts := []domain.Post{post("p1", "alice"), post("p2", "alice"), post("p3", "alice")}
	kept, err := FilterByOwner(context.Background(), r, "", "alice", posts)
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if len(kept) != 1 || kept[0].ID != "p2" {
		t.Fatalf("expected only the linked post, got %v", kept)
	}
}

// Anything the author-filtered listing keeps for a non-owner viewer must be
// something the full listing would show unredacted.
func TestFilterSubsetOfUnredacted(t *testing.T) {
	checker := &mockLinkChecker{}
	checker.set("alice", "p1")
	checker.set("alice", "p3")
	r := NewVisibilityResolver(checker)

	posts := []domain.Post{post("p1", "alice"), post("p2", "alice"), post("p3", "alice")}

	kept, err := FilterByOwner(context.Background(), r, "bob", "alice", posts)
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	decisions, err := ResolveAll(context.Background(), r, "bob", posts)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	unredacted := map[domain.ID]bool{}
	for i, p := range posts {
		if decisions[i] == Keep {
			unredacted[p.ID] = true
		}
	}
	for _, p := range kept {
		if !unredacted[p.ID] {
			t.Fatalf("post %s kept by filter but not unredacted by full listing", p.ID)
		}
	}
}

func TestApplyDecisionsDropsAndAligns(t *testing.T) {
	posts := []domain.Post{post("p1", "a"), post("p2", "b"), post("p3", "c")}
	decisions := []Decision{Keep, Drop, Redact}

	kept, keptDecisions := ApplyDecisions(posts, decisions)
	if len(kept) != 2 || kept[0].ID != "p1" || kept[1].ID != "p3" {
		t.Fatalf("unexpected survivors: %v", kept)
	}
	if keptDecisions[0] != Keep || keptDecisions[1] != Redact {
		t.Fatalf("decisions misaligned: %v", keptDecisions)
	}
}
