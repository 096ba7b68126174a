package transcript

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(text string, start, end int64) Segment {
	return Segment{Text: text, StartMs: start, EndMs: end}
}

func TestSplit_EmptyInput(t *testing.T) {
	for _, p := range []Policy{None(), MaxLength(10), SilenceGap(200)} {
		t.Run(p.Kind.String(), func(t *testing.T) {
			got := Split(nil, p)
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestSplit_MaxLengthOnePerSegment(t *testing.T) {
	segs := []Segment{seg("a", 0, 10), seg("b", 10, 20), seg("c", 20, 30)}
	got := Split(segs, MaxLength(1))
	assert.Equal(t, []Chunk{
		{Text: "a ", StartMs: 0, EndMs: 10},
		{Text: "b ", StartMs: 10, EndMs: 20},
		{Text: "c ", StartMs: 20, EndMs: 30},
	}, got)
}

func TestSplit_MaxLengthMerges(t *testing.T) {
	segs := []Segment{seg("hello", 0, 100), seg("big", 100, 200), seg("world", 250, 400)}
	// "hello " is 6 runes; +3 = 9 <= 10 keeps "big"; "hello big " is 10, +5 > 10 flushes.
	got := Split(segs, MaxLength(10))
	assert.Equal(t, []Chunk{
		{Text: "hello big ", StartMs: 0, EndMs: 200},
		{Text: "world ", StartMs: 250, EndMs: 400},
	}, got)
}

func TestSplit_MaxLengthOversizedLoneSegment(t *testing.T) {
	long := strings.Repeat("x", 100)
	got := Split([]Segment{seg(long, 5, 900)}, MaxLength(10))
	require.Len(t, got, 1)
	assert.Equal(t, long+" ", got[0].Text)
	assert.Equal(t, int64(5), got[0].StartMs)
	assert.Equal(t, int64(900), got[0].EndMs)
}

func TestSplit_MaxLengthOversizedAfterContent(t *testing.T) {
	long := strings.Repeat("y", 50)
	got := Split([]Segment{seg("hi", 0, 10), seg(long, 10, 20), seg("yo", 20, 30)}, MaxLength(10))
	require.Len(t, got, 3)
	assert.Equal(t, "hi ", got[0].Text)
	assert.Equal(t, long+" ", got[1].Text)
	assert.Equal(t, "yo ", got[2].Text)
}

func TestSplit_MaxLengthCountsRunes(t *testing.T) {
	// Four Cyrillic letters are 8 bytes but 4 runes.
	segs := []Segment{seg("мама", 0, 10), seg("папа", 10, 20)}
	got := Split(segs, MaxLength(9))
	require.Len(t, got, 1)
	assert.Equal(t, "мама папа ", got[0].Text)
}

func TestSplit_SilenceGapAboveThreshold(t *testing.T) {
	segs := []Segment{seg("x", 0, 100), seg("y", 400, 500)}
	got := Split(segs, SilenceGap(200))
	assert.Equal(t, []Chunk{
		{Text: "x ", StartMs: 0, EndMs: 100},
		{Text: "y ", StartMs: 400, EndMs: 500},
	}, got)
}

func TestSplit_SilenceGapBelowThreshold(t *testing.T) {
	segs := []Segment{seg("x", 0, 100), seg("y", 400, 500)}
	got := Split(segs, SilenceGap(500))
	assert.Equal(t, []Chunk{{Text: "x y ", StartMs: 0, EndMs: 500}}, got)
}

func TestSplit_SilenceGapEqualToThresholdMerges(t *testing.T) {
	segs := []Segment{seg("x", 0, 100), seg("y", 300, 500)}
	got := Split(segs, SilenceGap(200))
	require.Len(t, got, 1)
}

func TestSplit_SilenceGapOverlappingSegments(t *testing.T) {
	// Auto-generated captions overlap, which gives a negative gap.
	segs := []Segment{seg("a", 0, 1500), seg("b", 1200, 2000), seg("c", 5000, 6000)}
	got := Split(segs, SilenceGap(0))
	assert.Equal(t, []Chunk{
		{Text: "a b ", StartMs: 0, EndMs: 2000},
		{Text: "c ", StartMs: 5000, EndMs: 6000},
	}, got)
}

func TestSplit_NoneReturnsSegments(t *testing.T) {
	segs := []Segment{seg("first", 0, 10), seg("", 10, 20)}
	got := Split(segs, None())
	assert.Equal(t, []Chunk{
		{Text: "first", StartMs: 0, EndMs: 10},
		{Text: "", StartMs: 10, EndMs: 20},
	}, got)
}

func TestSplit_ZeroLengthSegments(t *testing.T) {
	segs := []Segment{seg("", 0, 10), seg("", 10, 20)}
	for _, p := range []Policy{MaxLength(1), SilenceGap(0)} {
		t.Run(p.Kind.String(), func(t *testing.T) {
			got := Split(segs, p)
			require.NotEmpty(t, got)
			assert.Equal(t, int64(0), got[0].StartMs)
			assert.Equal(t, int64(20), got[len(got)-1].EndMs)
		})
	}
}

func TestSplit_DoesNotMutateInput(t *testing.T) {
	segs := []Segment{seg("a", 0, 10), seg("b", 500, 600)}
	orig := append([]Segment(nil), segs...)
	Split(segs, MaxLength(1))
	Split(segs, SilenceGap(10))
	assert.Equal(t, orig, segs)
}

// TestSplit_Reconstruction checks that chunks always cover the input exactly,
// in order, for random inputs under every policy.
func TestSplit_Reconstruction(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	words := []string{"", "a", "go", "chunk", "transcript", "ß", "日本語"}

	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(30)
		segs := make([]Segment, n)
		var cursor int64
		var want strings.Builder
		for i := range segs {
			cursor += int64(rng.Intn(600))
			dur := int64(rng.Intn(2000))
			segs[i] = seg(words[rng.Intn(len(words))], cursor, cursor+dur)
			cursor += dur
			want.WriteString(segs[i].Text + " ")
		}

		policies := []Policy{MaxLength(1 + rng.Intn(40)), SilenceGap(int64(rng.Intn(500)))}
		for _, p := range policies {
			chunks := Split(segs, p)
			require.NotEmpty(t, chunks)

			var got strings.Builder
			for _, c := range chunks {
				got.WriteString(c.Text)
			}
			require.Equal(t, want.String(), got.String(), "policy %v", p)
			assert.Equal(t, segs[0].StartMs, chunks[0].StartMs)
			assert.Equal(t, segs[n-1].EndMs, chunks[len(chunks)-1].EndMs)
			for i := 1; i < len(chunks); i++ {
				assert.LessOrEqual(t, chunks[i-1].StartMs, chunks[i].StartMs)
			}
		}
	}
}

func TestPolicyFor(t *testing.T) {
	ms := func(v int64) *int64 { return &v }
	tests := []struct {
		name      string
		size      int
		bySilence bool
		threshold *int64
		want      Policy
	}{
		{"nothing", 0, false, nil, None()},
		{"size only", 500, false, nil, MaxLength(500)},
		{"negative size", -3, false, nil, None()},
		{"silence default", 0, true, nil, SilenceGap(200)},
		{"silence wins", 500, true, ms(800), SilenceGap(800)},
		{"zero threshold", 0, true, ms(0), SilenceGap(0)},
		{"negative threshold clamped", 0, true, ms(-5), SilenceGap(0)},
		{"threshold without flag", 0, false, ms(800), None()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolicyFor(tt.size, tt.bySilence, tt.threshold))
		})
	}
}

func TestJoinText(t *testing.T) {
	chunks := []Chunk{{Text: "hello world "}, {Text: " "}, {Text: "again "}}
	assert.Equal(t, "hello world again", JoinText(chunks))
	assert.Equal(t, "", JoinText(nil))
}
