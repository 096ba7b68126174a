package ytservice

import "strings"

// NeedsPoToken reports whether a caption track URL requires a PoToken.
// Tracks with &exp=xpe only work inside a browser session.
func NeedsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// RankTracks orders tracks by preference for langs: manual tracks in a
// preferred language, then auto-generated ones in a preferred language, then
// any English track, then the rest in their original order. Tracks that need
// a PoToken go last. The input slice is not modified.
func RankTracks(tracks []CaptionTrack, langs []string) []CaptionTrack {
	out := make([]CaptionTrack, 0, len(tracks))
	taken := make([]bool, len(tracks))
	take := func(match func(CaptionTrack) bool) {
		for i, t := range tracks {
			if !taken[i] && !NeedsPoToken(t.BaseURL) && match(t) {
				taken[i] = true
				out = append(out, t)
			}
		}
	}

	for _, lang := range langs {
		take(func(t CaptionTrack) bool { return t.LanguageCode == lang && t.Kind != "asr" })
	}
	for _, lang := range langs {
		take(func(t CaptionTrack) bool { return t.LanguageCode == lang })
	}
	take(func(t CaptionTrack) bool { return strings.HasPrefix(t.LanguageCode, "en") })
	take(func(CaptionTrack) bool { return true })

	for i, t := range tracks {
		if !taken[i] {
			out = append(out, t)
		}
	}
	return out
}
