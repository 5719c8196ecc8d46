package substrate

import (
	"math"
	"testing"
)

func TestRaoToTao(t *testing.T) {
	if got := RaoToTao(RaoPerTao); got != 1.0 {
		t.Fatalf("1e9 RAO should be 1 TAO, got %f", got)
	}
	if got := RaoToTao(0); got != 0 {
		t.Fatalf("0 RAO should be 0 TAO, got %f", got)
	}
	if got := RaoToTao(1_500_000_000); got != 1.5 {
		t.Fatalf("expected 1.5 TAO, got %f", got)
	}
}

func TestTaoToRao(t *testing.T) {
	if got := TaoToRao(1.5); got != 1_500_000_000 {
		t.Fatalf("expected 1.5e9 RAO, got %d", got)
	}
	if got := TaoToRao(0); got != 0 {
		t.Fatalf("expected 0 RAO, got %d", got)
	}
	if got := TaoToRao(-3); got != 0 {
		t.Fatalf("negative TAO should clamp to 0 RAO, got %d", got)
	}
}

func TestDecodePrice(t *testing.T) {
	if got := DecodePrice(1 << 32); got != 1.0 {
		t.Fatalf("2^32 bits should decode to 1.0, got %f", got)
	}
	if got := DecodePrice(1 << 31); got != 0.5 {
		t.Fatalf("2^31 bits should decode to 0.5, got %f", got)
	}
	if got := DecodePrice(0); got != 0 {
		t.Fatalf("0 bits should decode to 0, got %f", got)
	}
	// Round-trip within float precision for a realistic price.
	price := 0.025
	bits := uint64(price * float64(uint64(1)<<32))
	if got := DecodePrice(bits); math.Abs(got-0.025) > 1e-9 {
		t.Fatalf("expected ~0.025, got %f", got)
	}
}
