package store

import (
	"sync"
	"testing"
	"time"

	"example.com/feedcore/internal/models"
)

func ids(posts []models.Post) []int64 {
	out := make([]int64, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func equalIDs(got []models.Post, want ...int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].ID != want[i] {
			return false
		}
	}
	return true
}

func TestFeedStore_StartsEmpty(t *testing.T) {
	f := NewFeedStore()
	if f.Len() != 0 || len(f.Snapshot()) != 0 {
		t.Fatalf("expected empty feed, got %v", ids(f.Snapshot()))
	}
}

func TestFeedStore_ReplaceKeepsOrder(t *testing.T) {
	f := NewFeedStore()
	f.Replace([]models.Post{{ID: 10}, {ID: 20}})

	if got := f.Snapshot(); !equalIDs(got, 10, 20) {
		t.Fatalf("expected [10 20], got %v", ids(got))
	}
}

func TestFeedStore_InsertAtHeadIgnoresTimestamp(t *testing.T) {
	now := time.Now()
	f := NewFeedStore()
	f.Replace([]models.Post{
		{ID: 1, CreatedAt: now},
		{ID: 2, CreatedAt: now.Add(-time.Hour)},
	})

	// Older than everything in the feed, still lands first.
	f.InsertAtHead(models.Post{ID: -1, CreatedAt: now.Add(-48 * time.Hour)})

	if got := f.Snapshot(); !equalIDs(got, -1, 1, 2) {
		t.Fatalf("expected [-1 1 2], got %v", ids(got))
	}
}

func TestFeedStore_InsertAtHeadNoDedup(t *testing.T) {
	f := NewFeedStore()
	f.Replace([]models.Post{{ID: 1}})
	f.InsertAtHead(models.Post{ID: 1})

	if got := f.Snapshot(); !equalIDs(got, 1, 1) {
		t.Fatalf("expected [1 1], got %v", ids(got))
	}
}

func TestFeedStore_SnapshotIsCopy(t *testing.T) {
	f := NewFeedStore()
	f.Replace([]models.Post{{ID: 1}, {ID: 2}})

	before := f.Snapshot()
	f.Replace([]models.Post{{ID: 3}})
	f.InsertAtHead(models.Post{ID: 4})

	if !equalIDs(before, 1, 2) {
		t.Fatalf("old snapshot observed mutation: %v", ids(before))
	}

	before[0].Title = "mutated"
	if f.Snapshot()[1].Title == "mutated" {
		t.Fatal("writing to a snapshot changed the store")
	}
}

func TestFeedStore_ReplaceCopiesInput(t *testing.T) {
	in := []models.Post{{ID: 1}, {ID: 2}}
	f := NewFeedStore()
	f.Replace(in)
	in[0].ID = 99

	if got := f.Snapshot(); !equalIDs(got, 1, 2) {
		t.Fatalf("store aliased caller slice: %v", ids(got))
	}
}

// Locally inserted posts are not reconciled against a later Replace.
func TestFeedStore_ReplaceDropsLocalInsert(t *testing.T) {
	f := NewFeedStore()
	f.Replace([]models.Post{{ID: 1}})
	f.InsertAtHead(models.Post{ID: -5, Pending: true})
	f.Replace([]models.Post{{ID: 1}, {ID: 2}})

	if got := f.Snapshot(); !equalIDs(got, 1, 2) {
		t.Fatalf("expected [1 2] after replace, got %v", ids(got))
	}
}

func TestFeedStore_ConcurrentAccess(t *testing.T) {
	f := NewFeedStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func(id int64) {
			defer wg.Done()
			f.InsertAtHead(models.Post{ID: id})
		}(int64(i))
		go func() {
			defer wg.Done()
			f.Replace([]models.Post{{ID: 1000}})
		}()
		go func() {
			defer wg.Done()
			_ = f.Snapshot()
		}()
	}
	wg.Wait()

	if f.Len() == 0 {
		t.Fatal("expected some posts after concurrent mutations")
	}
}
