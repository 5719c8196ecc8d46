package cmd

import "testing"

func TestCollectSendable(t *testing.T) {
	const tao = 1_000_000_000

	cases := []struct {
		name       string
		freeRao    uint64
		reserveRao uint64
		dustRao    uint64
		wantSend   uint64
		wantSkip   bool
	}{
		{"normal sweep", 5 * tao, tao / 100, tao / 10000, 5*tao - tao/100, false},
		{"zero reserve sweeps everything", 5 * tao, 0, tao / 10000, 5 * tao, false},
		{"balance equals reserve", tao / 100, tao / 100, tao / 10000, 0, true},
		{"balance below reserve", tao / 200, tao / 100, tao / 10000, 0, true},
		{"empty wallet", 0, tao / 100, tao / 10000, 0, true},
		{"sweepable below dust", tao/100 + 10, tao / 100, tao / 10000, 0, true},
		{"sweepable exactly dust", tao/100 + tao/10000, tao / 100, tao / 10000, tao / 10000, false},
	}
	for _, c := range cases {
		send, skip := collectSendable(c.freeRao, c.reserveRao, c.dustRao)
		if c.wantSkip {
			if skip == "" {
				t.Fatalf("%s: expected a skip reason, got send %d", c.name, send)
			}
			if send != 0 {
				t.Fatalf("%s: skipped wallet must send nothing, got %d", c.name, send)
			}
			continue
		}
		if skip != "" {
			t.Fatalf("%s: unexpected skip %q", c.name, skip)
		}
		if send != c.wantSend {
			t.Fatalf("%s: send = %d, want %d", c.name, send, c.wantSend)
		}
	}
}
