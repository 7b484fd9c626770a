package game

import (
	"testing"
)

func TestPotPutCoin(t *testing.T) {
	t.Parallel()

	pot := NewPot(8, true)
	pot.PutCoin(2)
	if pot.Coin() != 10 {
		t.Errorf("Pot should be 10 after putting 2, got %d", pot.Coin())
	}
}

func TestPotDrawCoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		coin      int
		allowZero bool
		amount    int
		wantErr   error
		wantCoin  int
	}{
		{name: "partial draw", coin: 8, allowZero: true, amount: 3, wantCoin: 5},
		{name: "exact balance", coin: 8, allowZero: true, amount: 8, wantCoin: 0},
		{name: "more than balance", coin: 8, allowZero: true, amount: 9, wantErr: ErrPotInsufficientCoin, wantCoin: 8},
		{name: "zero draw allowed", coin: 0, allowZero: true, amount: 0, wantCoin: 0},
		{name: "zero draw disallowed on empty pot", coin: 0, allowZero: false, amount: 0, wantErr: ErrPotInsufficientCoin, wantCoin: 0},
		{name: "zero draw disallowed on full pot", coin: 5, allowZero: false, amount: 0, wantErr: ErrPotInsufficientCoin, wantCoin: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pot := NewPot(tt.coin, tt.allowZero)
			err := pot.DrawCoin(tt.amount)
			if err != tt.wantErr {
				t.Errorf("DrawCoin(%d) error = %v, want %v", tt.amount, err, tt.wantErr)
			}
			if pot.Coin() != tt.wantCoin {
				t.Errorf("Pot coin = %d, want %d", pot.Coin(), tt.wantCoin)
			}
		})
	}
}

func TestPotDrawAllCoins(t *testing.T) {
	t.Parallel()

	pot := NewPot(8, false)
	drawn, err := pot.DrawAllCoins()
	if err != nil {
		t.Fatalf("DrawAllCoins failed: %v", err)
	}
	if drawn != 8 {
		t.Errorf("Expected to draw 8 coins, got %d", drawn)
	}
	if pot.Coin() != 0 {
		t.Errorf("Pot should be empty, got %d", pot.Coin())
	}

	// An empty pot can only be drawn from when zero draws are allowed
	if _, err := pot.DrawAllCoins(); err != ErrPotInsufficientCoin {
		t.Errorf("Expected ErrPotInsufficientCoin on empty pot, got %v", err)
	}
}

func TestPotDrawHalfCoins(t *testing.T) {
	t.Parallel()

	for before := 0; before <= 21; before++ {
		pot := NewPot(before, true)
		drawn, err := pot.DrawHalfCoins()
		if err != nil {
			t.Fatalf("DrawHalfCoins(%d) failed: %v", before, err)
		}
		if drawn != before/2 {
			t.Errorf("Pot %d: drew %d, want %d", before, drawn, before/2)
		}
		if pot.Coin() != before-before/2 {
			t.Errorf("Pot %d: left %d, want %d", before, pot.Coin(), before-before/2)
		}
	}

	pot := NewPot(8, false)
	drawn, _ := pot.DrawHalfCoins()
	if drawn != 4 || pot.Coin() != 4 {
		t.Errorf("Pot 8: drew %d leaving %d, want 4 leaving 4", drawn, pot.Coin())
	}
}

func TestPotDrawHalfCoinsZeroPolicy(t *testing.T) {
	t.Parallel()

	for _, coin := range []int{0, 1} {
		pot := NewPot(coin, false)
		if _, err := pot.DrawHalfCoins(); err != ErrPotInsufficientCoin {
			t.Errorf("Pot %d: expected ErrPotInsufficientCoin, got %v", coin, err)
		}
		if pot.Coin() != coin {
			t.Errorf("Pot %d: balance changed to %d after failed draw", coin, pot.Coin())
		}
	}
}

func TestPotNegativeAmountsPanic(t *testing.T) {
	t.Parallel()

	assertPanics := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	assertPanics("NewPot", func() { NewPot(-1, true) })
	assertPanics("PutCoin", func() { NewPot(0, true).PutCoin(-1) })
	assertPanics("DrawCoin", func() { _ = NewPot(3, true).DrawCoin(-1) })
}
