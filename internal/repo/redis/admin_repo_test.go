package redis

import (
	"context"
	"sync"
	"testing"
)

func TestEnsureAdminConcurrentBootstrapElectsOneWinner(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewAdminRepo(client)
	ctx := context.Background()

	type outcome struct {
		adminID int64
		became  bool
	}

	const contenders = 10
	results := make(chan outcome, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		candidate := int64(100 + i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			adminID, became, err := repo.EnsureAdmin(ctx, candidate)
			if err != nil {
				t.Errorf("ensure admin %d: %v", candidate, err)
				return
			}
			results <- outcome{adminID: adminID, became: became}
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	var winnerID int64
	for res := range results {
		if res.became {
			winners++
			winnerID = res.adminID
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one bootstrap winner, got %d", winners)
	}

	// Every contender, including the losers, must observe the winner.
	adminID, ok, err := repo.Admin(ctx)
	if err != nil || !ok {
		t.Fatalf("read admin: ok=%v err=%v", ok, err)
	}
	if adminID != winnerID {
		t.Fatalf("persisted admin %d does not match winner %d", adminID, winnerID)
	}
}

func TestEnsureAdminIsIdempotentForTheSameUser(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewAdminRepo(client)
	ctx := context.Background()

	adminID, became, err := repo.EnsureAdmin(ctx, 5)
	if err != nil || !became || adminID != 5 {
		t.Fatalf("first bootstrap: admin=%d became=%v err=%v", adminID, became, err)
	}

	adminID, became, err = repo.EnsureAdmin(ctx, 5)
	if err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if became {
		t.Fatal("second bootstrap must not re-assign")
	}
	if adminID != 5 {
		t.Fatalf("unexpected admin id: %d", adminID)
	}
}
