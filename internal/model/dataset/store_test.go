package dataset

import (
	"fmt"
	"testing"
	"time"
)

func newDataset(id string) *Dataset {
	return &Dataset{ID: id, Filename: id + ".csv", UploadedAt: time.Now().UTC()}
}

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore(time.Minute, 4)
	defer store.Close()

	store.Put(newDataset("a"))

	got, ok := store.Get("a")
	if !ok {
		t.Fatal("expected dataset to be found")
	}
	if got.ID != "a" {
		t.Fatalf("unexpected dataset ID: %s", got.ID)
	}

	if _, ok := store.Get("missing"); ok {
		t.Fatal("expected missing dataset to not be found")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(30*time.Millisecond, 4)
	defer store.Close()

	store.Put(newDataset("a"))
	time.Sleep(60 * time.Millisecond)

	if _, ok := store.Get("a"); ok {
		t.Fatal("expected dataset to have expired")
	}
}

func TestMemoryStoreGetRefreshesDeadline(t *testing.T) {
	store := NewMemoryStore(50*time.Millisecond, 4)
	defer store.Close()

	store.Put(newDataset("a"))
	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		if _, ok := store.Get("a"); !ok {
			t.Fatal("expected refreshed dataset to survive")
		}
	}
}

func TestMemoryStoreCapacityEviction(t *testing.T) {
	store := NewMemoryStore(time.Minute, 2)
	defer store.Close()

	for i := 0; i < 3; i++ {
		store.Put(newDataset(fmt.Sprintf("ds-%d", i)))
	}

	if store.Len() != 2 {
		t.Fatalf("expected capacity bound of 2, got %d", store.Len())
	}
	if _, ok := store.Get("ds-2"); !ok {
		t.Fatal("expected newest dataset to survive eviction")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute, 4)
	defer store.Close()

	store.Put(newDataset("a"))
	store.Delete("a")

	if _, ok := store.Get("a"); ok {
		t.Fatal("expected deleted dataset to not be found")
	}
}
