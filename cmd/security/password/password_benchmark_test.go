package password

import "testing"

// Benchmarks run at the production defaults on purpose: they are the tool
// for sizing RECIPEHUB_ARGON2_* against a login-latency budget.

func BenchmarkHash(b *testing.B) {
	cfg := DefaultConfig()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := cfg.Hash("correct horse battery staple"); err != nil {
			b.Fatalf("Hash: %v", err)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	cfg := DefaultConfig()
	h, err := cfg.Hash("correct horse battery staple")
	if err != nil {
		b.Fatalf("Hash: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ok, err := cfg.Verify(h, "correct horse battery staple")
		if err != nil || !ok {
			b.Fatalf("Verify: ok=%v err=%v", ok, err)
		}
	}
}
