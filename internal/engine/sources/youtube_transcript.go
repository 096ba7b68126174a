package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/transcript"
	"github.com/anatolykoptev/go_youtube/internal/ytservice"
)

// YouTube transcript fetching.
// Tracks:   scrape watch page ytInitialPlayerResponse (works from any IP)
//           fallback ANDROID Innertube /player (works from non-blocked IPs)
// Segments: timedtext XML of each usable track in preference order
//           fallback /next → engagement panel → /get_transcript

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

var errEmptyTimedText = errors.New("timedtext has no segments")

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

// CaptionTracks lists the caption tracks of a video. A playable video without
// captions yields an empty list.
func (y *YouTube) CaptionTracks(ctx context.Context, videoID string) ([]ytservice.CaptionTrack, error) {
	tracks, err := y.tracksFromWatchPage(ctx, videoID)
	if err == nil {
		return tracks, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	slog.Warn("youtube: page scrape failed, trying player",
		slog.String("id", videoID), slog.Any("error", err))

	tracks, err = y.tracksFromPlayer(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("caption tracks: %w", err)
	}
	return tracks, nil
}

// TranscriptSegments fetches the timed segments of the first usable track,
// trying tracks in the given preference order before the engagement panel.
func (y *YouTube) TranscriptSegments(ctx context.Context, videoID string, tracks []ytservice.CaptionTrack) ([]transcript.Segment, error) {
	for _, t := range tracks {
		if ytservice.NeedsPoToken(t.BaseURL) {
			continue
		}
		segs, err := y.fetchTimedText(ctx, t.BaseURL)
		if err == nil && len(segs) > 0 {
			return segs, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err == nil {
			err = errEmptyTimedText
		}
		slog.Warn("youtube: timedtext failed",
			slog.String("id", videoID), slog.String("lang", t.LanguageCode), slog.Any("error", err))
	}

	segs, err := y.segmentsViaEngagementPanel(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("transcript segments: %w", err)
	}
	return segs, nil
}

// tracksFromWatchPage scrapes the watch page and reads captionTracks from
// ytInitialPlayerResponse.
func (y *YouTube) tracksFromWatchPage(ctx context.Context, videoID string) ([]ytservice.CaptionTrack, error) {
	body, err := y.getPage(ctx, y.baseURL+"/watch?v="+url.QueryEscape(videoID), 6*1024*1024)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	jsonData, err := findPlayerResponse(body)
	if err != nil {
		return nil, err
	}
	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return playerTracks(playerResp)
}

// findPlayerResponse locates the inline script assigning ytInitialPlayerResponse
// and returns its JSON object.
func findPlayerResponse(page []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}
	var found []byte
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, ytInitialPlayerResponseMarker)
		if idx < 0 {
			return true
		}
		found = extractJSON([]byte(text[idx+len(ytInitialPlayerResponseMarker):]))
		return found == nil
	})
	if found == nil {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	return found, nil
}

// playerTracks converts a player response into caption tracks. Videos that are
// not playable are an error; playable videos without captions are not.
func playerTracks(resp innertubePlayerResp) ([]ytservice.CaptionTrack, error) {
	if ps := resp.PlayabilityStatus; ps != nil && ps.Status != "" && ps.Status != "OK" {
		if ps.Reason != "" {
			return nil, fmt.Errorf("playability %s: %s", ps.Status, ps.Reason)
		}
		return nil, fmt.Errorf("playability %s", ps.Status)
	}
	if resp.Captions == nil {
		return []ytservice.CaptionTrack{}, nil
	}
	raw := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	tracks := make([]ytservice.CaptionTrack, 0, len(raw))
	for _, t := range raw {
		if t.BaseURL == "" {
			continue
		}
		tracks = append(tracks, ytservice.CaptionTrack{
			BaseURL:      t.BaseURL,
			LanguageCode: t.LanguageCode,
			Kind:         t.Kind,
		})
	}
	return tracks, nil
}

// tracksFromPlayer uses the ANDROID Innertube /player endpoint.
func (y *YouTube) tracksFromPlayer(ctx context.Context, videoID string) ([]ytservice.CaptionTrack, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	engine.IncrInnertube()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, y.baseURL+ytPlayerPath+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return y.client.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, &statusError{Code: resp.StatusCode, Snippet: string(snippet)}
	}

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return playerTracks(playerResp)
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func (y *YouTube) fetchTimedText(ctx context.Context, baseURL string) ([]transcript.Segment, error) {
	engine.IncrTimedText()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return y.client.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

// parseTimedText reads both timedtext layouts: legacy <text start dur> in
// seconds and srv3 <p t d> in milliseconds.
func parseTimedText(body []byte) ([]transcript.Segment, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segs := make([]transcript.Segment, 0, len(tt.Lines)+len(tt.Body.Paragraphs))
	for _, line := range tt.Lines {
		text := engine.CleanCaption(line.Text)
		if text == "" {
			continue
		}
		start := secondsToMs(line.Start)
		segs = append(segs, transcript.Segment{
			Text:    text,
			StartMs: start,
			EndMs:   start + secondsToMs(line.Dur),
		})
	}
	for _, p := range tt.Body.Paragraphs {
		text := p.Text
		if len(p.Words) > 0 {
			var sb strings.Builder
			for _, w := range p.Words {
				sb.WriteString(w.Text)
			}
			text = sb.String()
		}
		text = engine.CleanCaption(text)
		if text == "" {
			continue
		}
		start, _ := strconv.ParseInt(p.T, 10, 64)
		dur, _ := strconv.ParseInt(p.D, 10, 64)
		segs = append(segs, transcript.Segment{Text: text, StartMs: start, EndMs: start + dur})
	}
	return segs, nil
}

func secondsToMs(s string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 1000))
}

// segmentsViaEngagementPanel fetches a transcript via:
//  1. POST /next → get engagementPanels containing transcript continuation token
//  2. POST /get_transcript with the token → JSON segments
//
// This approach works from datacenter IPs where /player returns LOGIN_REQUIRED.
func (y *YouTube) segmentsViaEngagementPanel(ctx context.Context, videoID string) ([]transcript.Segment, error) {
	visitorData := generateVisitorData()

	nextData, err := y.postInnerTubeWEB(ctx, ytNextPath, map[string]any{
		"videoId": videoID,
		"context": ytWebContext(visitorData),
	}, visitorData)
	if err != nil {
		return nil, fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}

	transcriptData, err := y.postInnerTubeWEB(ctx, ytGetTranscriptPath, map[string]any{
		"params":  token,
		"context": ytWebContext(visitorData),
	}, visitorData)
	if err != nil {
		return nil, fmt.Errorf("/get_transcript: %w", err)
	}

	var transcriptResp ytGetTranscriptResp
	if err := json.Unmarshal(transcriptData, &transcriptResp); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	segs := parseTranscriptSegments(transcriptResp)
	if len(segs) == 0 {
		return nil, errors.New("empty transcript segments")
	}
	return segs, nil
}

func extractTranscriptToken(data []byte) (string, error) {
	if m := getTranscriptRE.FindSubmatch(data); len(m) >= 2 {
		// The params value in the /next JSON response is URL-encoded.
		// /get_transcript expects the decoded (raw base64) form.
		decoded, err := url.QueryUnescape(string(m[1]))
		if err != nil {
			return string(m[1]), nil
		}
		return decoded, nil
	}
	return "", errors.New("getTranscriptEndpoint not found in engagement panels")
}

// parseTranscriptSegments extracts timed segments from a /get_transcript response.
func parseTranscriptSegments(resp ytGetTranscriptResp) []transcript.Segment {
	var segs []transcript.Segment
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		list := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range list {
			r := seg.TranscriptSegmentRenderer
			if r == nil {
				continue
			}
			var sb strings.Builder
			for _, run := range r.Snippet.Runs {
				sb.WriteString(run.Text)
			}
			start, _ := strconv.ParseInt(r.StartMs, 10, 64)
			end, _ := strconv.ParseInt(r.EndMs, 10, 64)
			segs = append(segs, transcript.Segment{
				Text:    engine.CleanCaption(sb.String()),
				StartMs: start,
				EndMs:   max(end, start),
			})
		}
	}
	return segs
}
