package money

import "testing"

func TestRound2HalfUp(t *testing.T) {
	got := Round2(FromFloat(1.005))
	if got.String() != "1.01" {
		t.Fatalf("expected 1.01, got %s", got)
	}
}

func TestTruncate2(t *testing.T) {
	got := Truncate2(FromFloat(1.999))
	if got.String() != "1.99" {
		t.Fatalf("expected 1.99, got %s", got)
	}
}

func TestRatioZeroDenominator(t *testing.T) {
	got := Ratio(FromFloat(10), Zero)
	if !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}

func TestRepeatedAdditionNoDrift(t *testing.T) {
	sum := Zero
	for i := 0; i < 1000; i++ {
		sum = sum.Add(FromFloat(0.1))
	}
	if sum.String() != "100" {
		t.Fatalf("expected 100, got %s", sum)
	}
}

func TestFromFloatPtr(t *testing.T) {
	if !FromFloatPtr(nil).IsZero() {
		t.Fatal("nil pointer should be zero")
	}
	v := 12.5
	if FromFloatPtr(&v).String() != "12.5" {
		t.Fatalf("expected 12.5, got %s", FromFloatPtr(&v))
	}
}
