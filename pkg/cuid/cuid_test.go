package cuid

import (
	"errors"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// scriptedSource replays fixed values so generation is fully deterministic.
type scriptedSource struct {
	floats  []float64
	letters []byte
	f, l    int
}

func (s *scriptedSource) UnitFloat() float64 {
	v := s.floats[s.f%len(s.floats)]
	s.f++
	return v
}

func (s *scriptedSource) LowercaseLetter() byte {
	c := s.letters[s.l%len(s.letters)]
	s.l++
	return c
}

// recordingHasher returns a canned string and records every input it sees.
type recordingHasher struct {
	out    string
	inputs []string
}

func (h *recordingHasher) Hash(input string) string {
	h.inputs = append(h.inputs, input)
	return h.out
}

var idShape = regexp.MustCompile(`^[a-z][0-9a-z]*$`)

// --- Generate Tests ---

func TestGenerate_Defaults(t *testing.T) {
	g := New()
	id, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(id) != DefaultLength {
		t.Errorf("Generate() length = %d, want %d", len(id), DefaultLength)
	}
	if !idShape.MatchString(id) {
		t.Errorf("Generate() = %q, want lowercase letter followed by base-36", id)
	}
}

func TestGenerate_LengthSweep(t *testing.T) {
	for length := 1; length <= MaxLength; length++ {
		g := New(WithLength(length))
		id, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() length=%d error = %v", length, err)
		}
		if len(id) != length {
			t.Errorf("Generate() length=%d produced %d chars: %q", length, len(id), id)
		}
		if !idShape.MatchString(id) {
			t.Errorf("Generate() length=%d = %q, bad charset", length, id)
		}
	}
}

func TestGenerate_LengthBounds(t *testing.T) {
	tests := []struct {
		length  int
		wantErr error
	}{
		{length: MaxLength + 1, wantErr: ErrLengthExceeded},
		{length: 200, wantErr: ErrLengthExceeded},
		{length: 0, wantErr: ErrInvalidLength},
		{length: -5, wantErr: ErrInvalidLength},
	}
	for _, tt := range tests {
		_, err := New(WithLength(tt.length)).Generate()
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Generate() length=%d error = %v, want %v", tt.length, err, tt.wantErr)
		}
	}
}

func TestGenerate_Length1IsBareLetter(t *testing.T) {
	id, err := New(WithLength(1)).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(id) != 1 || id[0] < 'a' || id[0] > 'z' {
		t.Errorf("Generate() length=1 = %q, want single lowercase letter", id)
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	g := New()
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		id, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("Generate() duplicate after %d ids: %s", i, id)
		}
		seen[id] = true
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.5}, letters: []byte{'k'}}
	hasher := &recordingHasher{out: "0123456789abcdefghijklmnop"}
	at := time.Unix(0, 1700000000000000000)

	g := New(
		WithLength(10),
		WithRandom(src),
		WithHasher(hasher),
		WithCounter(NewCounter(7)),
		WithFingerprint(strings.Repeat("f", 32)),
		WithNow(func() time.Time { return at }),
	)

	id, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// floor(0.5*36) = 18 -> 'i' for every entropy digit; the canned hash
	// output loses its first character and is cut to length-1.
	if want := "k123456789"; id != want {
		t.Errorf("Generate() = %q, want %q", id, want)
	}

	wantInput := strconv.FormatInt(at.UnixNano(), 36) + "iiiiiiiiii" + "7" + strings.Repeat("f", 32)
	if len(hasher.inputs) != 1 || hasher.inputs[0] != wantInput {
		t.Errorf("hash input = %q, want %q", hasher.inputs, wantInput)
	}
}

func TestGenerate_ShortDigestToppedUp(t *testing.T) {
	// A canned hash shorter than length-1 must be filled from the entropy
	// source, never returned short.
	src := &scriptedSource{floats: []float64{0.5}, letters: []byte{'k'}}
	g := New(
		WithLength(10),
		WithRandom(src),
		WithHasher(&recordingHasher{out: "ab"}),
		WithCounter(NewCounter(0)),
		WithFingerprint(strings.Repeat("f", 32)),
	)
	id, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if want := "kbiiiiiiii"; id != want {
		t.Errorf("Generate() = %q, want %q", id, want)
	}

	g = New(
		WithLength(4),
		WithRandom(src),
		WithHasher(&recordingHasher{out: ""}),
		WithCounter(NewCounter(0)),
		WithFingerprint(strings.Repeat("f", 32)),
	)
	id, err = g.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if want := "kiii"; id != want {
		t.Errorf("Generate() with empty hash = %q, want %q", id, want)
	}
}

func TestGenerate_CounterComponentAdvances(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.5}, letters: []byte{'k'}}
	hasher := &recordingHasher{out: strings.Repeat("x", 40)}
	at := time.Unix(0, 1700000000000000000)
	fp := strings.Repeat("f", 32)
	const length = 8

	g := New(
		WithLength(length),
		WithRandom(src),
		WithHasher(hasher),
		WithCounter(NewCounter(1000)),
		WithFingerprint(fp),
		WithNow(func() time.Time { return at }),
	)

	timeLen := len(strconv.FormatInt(at.UnixNano(), 36))
	prev := big.NewInt(999)
	for i := 0; i < 100; i++ {
		if _, err := g.Generate(); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		input := hasher.inputs[i]
		countPart := input[timeLen+length : len(input)-len(fp)]
		n, err := decodeBase36(countPart)
		if err != nil {
			t.Fatalf("count component %q: %v", countPart, err)
		}
		if want := new(big.Int).Add(prev, bigOne); n.Cmp(want) != 0 {
			t.Fatalf("count component #%d = %s, want %s", i, n, want)
		}
		prev = n
	}
}

func TestGenerate_DefaultCounterSeededFromSource(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.5}, letters: []byte{'k'}}
	hasher := &recordingHasher{out: strings.Repeat("x", 40)}
	at := time.Unix(0, 1700000000000000000)
	fp := strings.Repeat("f", 32)
	const length = 8

	g := New(
		WithLength(length),
		WithRandom(src),
		WithHasher(hasher),
		WithFingerprint(fp),
		WithNow(func() time.Time { return at }),
	)
	if _, err := g.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	timeLen := len(strconv.FormatInt(at.UnixNano(), 36))
	input := hasher.inputs[0]
	countPart := input[timeLen+length : len(input)-len(fp)]
	u := 0.5
	want := encodeBase36(big.NewInt(int64(u * initialCountMax)))
	if countPart != want {
		t.Errorf("seeded count component = %q, want %q", countPart, want)
	}
}

func TestGenerate_PackageLevelConcurrent(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 250

	results := make(chan string, goroutines*perGoroutine)
	var wg sync.WaitGroup

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				id, err := Generate()
				if err != nil {
					t.Errorf("Generate() error = %v", err)
					return
				}
				results <- id
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, goroutines*perGoroutine)
	for id := range results {
		if len(id) != DefaultLength {
			t.Fatalf("Generate() length = %d, want %d", len(id), DefaultLength)
		}
		if seen[id] {
			t.Fatalf("Generate() concurrent duplicate: %s", id)
		}
		seen[id] = true
	}
}

// --- IsValid Tests ---

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "typical id", in: "tz4a98xxat96iws9zmbrgj3a", want: true},
		{name: "single letter", in: "a", want: true},
		{name: "max length", in: "a" + strings.Repeat("0", MaxLength-1), want: true},
		{name: "empty", in: "", want: false},
		{name: "too long", in: "a" + strings.Repeat("0", MaxLength), want: false},
		{name: "leading digit", in: "1z4a98xxat96iws9zmbrgj3a", want: false},
		{name: "uppercase", in: "tZ4a98xxat96iws9zmbrgj3a", want: false},
		{name: "hyphen", in: "tz4a98-xat96iws9zmbrgj3a", want: false},
		{name: "space", in: "tz4a98 xat96iws9zmbrgj3a", want: false},
		{name: "unicode", in: "tz4a98xxat96iws9zmbrgj3ä", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.in); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValid_AcceptsGenerated(t *testing.T) {
	g := New()
	for i := 0; i < 500; i++ {
		id, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if !IsValid(id) {
			t.Fatalf("IsValid(%q) = false for generated id", id)
		}
	}
}

// --- Benchmarks ---

func BenchmarkGenerate(b *testing.B) {
	g := New()
	for b.Loop() {
		_, _ = g.Generate()
	}
}

func BenchmarkGenerateMaxLength(b *testing.B) {
	g := New(WithLength(MaxLength))
	for b.Loop() {
		_, _ = g.Generate()
	}
}

func BenchmarkGenerateSHA512(b *testing.B) {
	g := New(WithHashVariant(VariantSHA512))
	for b.Loop() {
		_, _ = g.Generate()
	}
}
