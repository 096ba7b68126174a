// Package transcript merges timestamped caption segments into larger chunks.
package transcript

import (
	"strings"
	"unicode/utf8"
)

// DefaultSilenceThresholdMs is the gap used when silence chunking is
// requested without an explicit threshold.
const DefaultSilenceThresholdMs int64 = 200

// Segment is one caption fragment as emitted by the caption source.
type Segment struct {
	Text    string `json:"text"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
}

// Chunk is a run of consecutive segments merged into one unit.
type Chunk struct {
	Text    string `json:"text"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
}

// PolicyKind selects the chunking algorithm.
type PolicyKind int

// Chunking policies.
const (
	PolicyNone       PolicyKind = iota // one chunk per segment
	PolicyMaxLength                    // merge segments up to a character budget
	PolicySilenceGap                   // split where the pause between segments is long
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyMaxLength:
		return "max_length"
	case PolicySilenceGap:
		return "silence_gap"
	default:
		return "none"
	}
}

// Policy is a chunking policy. Build it with None, MaxLength, SilenceGap or PolicyFor.
type Policy struct {
	Kind        PolicyKind
	ChunkSize   int
	ThresholdMs int64
}

// None returns every segment as its own chunk.
func None() Policy { return Policy{Kind: PolicyNone} }

// MaxLength caps chunk text at size runes without ever splitting a segment.
func MaxLength(size int) Policy { return Policy{Kind: PolicyMaxLength, ChunkSize: size} }

// SilenceGap starts a new chunk whenever the pause between two segments exceeds thresholdMs.
func SilenceGap(thresholdMs int64) Policy {
	if thresholdMs < 0 {
		thresholdMs = 0
	}
	return Policy{Kind: PolicySilenceGap, ThresholdMs: thresholdMs}
}

// PolicyFor resolves the optional request parameters into a single policy.
// Silence chunking wins over chunkSize; a nil threshold means the default.
func PolicyFor(chunkSize int, bySilence bool, thresholdMs *int64) Policy {
	if bySilence {
		t := DefaultSilenceThresholdMs
		if thresholdMs != nil {
			t = *thresholdMs
		}
		return SilenceGap(t)
	}
	if chunkSize > 0 {
		return MaxLength(chunkSize)
	}
	return None()
}

// Split chunks segments according to p. The input slice is not modified and
// the result is never nil.
func Split(segments []Segment, p Policy) []Chunk {
	switch p.Kind {
	case PolicyMaxLength:
		return splitByLength(segments, p.ChunkSize)
	case PolicySilenceGap:
		return splitBySilence(segments, p.ThresholdMs)
	default:
		chunks := make([]Chunk, len(segments))
		for i, s := range segments {
			chunks[i] = Chunk(s)
		}
		return chunks
	}
}

// accumulator builds one chunk; n counts constituent segments and size
// counts runes written so far.
type accumulator struct {
	sb    strings.Builder
	start int64
	end   int64
	n     int
	size  int
}

func (a *accumulator) add(s Segment) {
	if a.n == 0 {
		a.start = s.StartMs
	}
	a.sb.WriteString(s.Text)
	a.sb.WriteByte(' ')
	a.size += utf8.RuneCountInString(s.Text) + 1
	a.end = s.EndMs
	a.n++
}

// flush appends the pending chunk, if any, and resets the accumulator.
func (a *accumulator) flush(out []Chunk) []Chunk {
	if a.n == 0 {
		return out
	}
	out = append(out, Chunk{Text: a.sb.String(), StartMs: a.start, EndMs: a.end})
	a.sb.Reset()
	a.start, a.end, a.n, a.size = 0, 0, 0, 0
	return out
}

func splitByLength(segments []Segment, size int) []Chunk {
	chunks := make([]Chunk, 0)
	var acc accumulator
	for _, s := range segments {
		if acc.n > 0 && acc.size+utf8.RuneCountInString(s.Text) > size {
			chunks = acc.flush(chunks)
		}
		acc.add(s)
	}
	return acc.flush(chunks)
}

func splitBySilence(segments []Segment, thresholdMs int64) []Chunk {
	chunks := make([]Chunk, 0)
	var acc accumulator
	for i, s := range segments {
		acc.add(s)
		if i+1 < len(segments) && segments[i+1].StartMs-s.EndMs > thresholdMs {
			chunks = acc.flush(chunks)
		}
	}
	return acc.flush(chunks)
}

// JoinText concatenates chunk texts separated by single spaces, trimming the
// trailing separators the chunker leaves behind.
func JoinText(chunks []Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if t := strings.TrimSpace(c.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
