package sources

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/normalize"
	"github.com/anatolykoptev/go_youtube/internal/ytservice"
	"github.com/tidwall/gjson"
)

// YouTube search: Data API v3 when a key is configured, Innertube /search otherwise.
// Both backends emit the same loose record shape (see ytRecord).

// dataAPIMaxResults is the Data API page size cap.
const dataAPIMaxResults = 50

// ytRecord is the record shape handed to normalize.
type ytRecord struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Author      *ytAuthor `json:"author,omitempty"`
	Published   string    `json:"published,omitempty"`
	Description string    `json:"description,omitempty"`
	Thumbnails  []ytThumb `json:"thumbnails,omitempty"`
}

type ytAuthor struct {
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
}

type ytThumb struct {
	URL string `json:"url"`
}

func (r ytRecord) raw() normalize.RawRecord { return normalize.FromValue(r) }

// Search runs a video or channel search.
func (y *YouTube) Search(ctx context.Context, req ytservice.SearchRequest) (ytservice.SearchResponse, error) {
	var (
		recs []ytRecord
		err  error
	)
	if y.useDataAPI() {
		recs, err = y.searchDataAPI(ctx, req)
	} else {
		recs, err = y.searchInnertube(ctx, req)
	}
	if err != nil {
		return ytservice.SearchResponse{}, err
	}

	out := make([]normalize.RawRecord, len(recs))
	for i, r := range recs {
		out[i] = r.raw()
	}
	if req.Type == ytservice.ResultChannel {
		return ytservice.SearchResponse{Channels: out}, nil
	}
	return ytservice.SearchResponse{Videos: out}, nil
}

// --- Innertube /search ---

// innertubeSort maps a sort key to the search-params sort field. Title and
// video-count ordering have no Innertube equivalent and fall back to relevance.
func innertubeSort(k ytservice.SortKey) byte {
	switch k {
	case ytservice.SortRating:
		return 1
	case ytservice.SortDate:
		return 2
	case ytservice.SortViewCount:
		return 3
	default:
		return 0
	}
}

// searchParams encodes the protobuf search filter: field 1 is the sort order,
// field 2 a nested message whose field 2 is the result type.
func searchParams(sort ytservice.SortKey, typ ytservice.ResultType) string {
	var typeCode byte = 1
	if typ == ytservice.ResultChannel {
		typeCode = 2
	}
	var buf []byte
	if s := innertubeSort(sort); s != 0 {
		buf = append(buf, 0x08, s)
	}
	buf = append(buf, 0x12, 0x02, 0x10, typeCode)
	return base64.StdEncoding.EncodeToString(buf)
}

func (y *YouTube) searchInnertube(ctx context.Context, req ytservice.SearchRequest) ([]ytRecord, error) {
	visitorData := generateVisitorData()
	data, err := y.postInnerTubeWEB(ctx, ytSearchPath, map[string]any{
		"context": ytWebContext(visitorData),
		"query":   req.Query,
		"params":  searchParams(req.Sort, req.Type),
	}, visitorData)
	if err != nil {
		return nil, fmt.Errorf("/search: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("/search: invalid JSON")
	}
	return collectRenderers(gjson.ParseBytes(data), req.Type, y.searchLimit), nil
}

// collectRenderers gathers videoRenderer or channelRenderer entries in
// document order, up to limit.
func collectRenderers(root gjson.Result, typ ytservice.ResultType, limit int) []ytRecord {
	key, conv := "videoRenderer", videoRendererRecord
	if typ == ytservice.ResultChannel {
		key, conv = "channelRenderer", channelRendererRecord
	}
	var recs []ytRecord
	walkJSON(root, func(k string, v gjson.Result) bool {
		if limit > 0 && len(recs) >= limit {
			return false
		}
		if k != key {
			return true
		}
		if rec, ok := conv(v); ok {
			recs = append(recs, rec)
		}
		return false
	})
	return recs
}

func videoRendererRecord(v gjson.Result) (ytRecord, bool) {
	id := v.Get("videoId").String()
	if id == "" {
		return ytRecord{}, false
	}
	owner := v.Get("ownerText")
	if !owner.Exists() {
		owner = v.Get("longBylineText")
	}
	desc := runsText(v.Get("detailedMetadataSnippets.0.snippetText"))
	if desc == "" {
		desc = runsText(v.Get("descriptionSnippet"))
	}
	return ytRecord{
		ID:    id,
		Title: runsText(v.Get("title")),
		Author: &ytAuthor{
			Name: runsText(owner),
			ID:   owner.Get("runs.0.navigationEndpoint.browseEndpoint.browseId").String(),
		},
		Published:   runsText(v.Get("publishedTimeText")),
		Description: desc,
		Thumbnails:  rendererThumbs(v.Get("thumbnail.thumbnails")),
	}, true
}

func channelRendererRecord(v gjson.Result) (ytRecord, bool) {
	id := v.Get("channelId").String()
	if id == "" {
		return ytRecord{}, false
	}
	name := runsText(v.Get("title"))
	return ytRecord{
		ID:          id,
		Title:       name,
		Author:      &ytAuthor{Name: name, ID: id},
		Description: runsText(v.Get("descriptionSnippet")),
		Thumbnails:  rendererThumbs(v.Get("thumbnail.thumbnails")),
	}, true
}

// rendererThumbs converts an Innertube thumbnails array. Channel avatars come
// protocol-relative ("//yt3.ggpht.com/...").
func rendererThumbs(arr gjson.Result) []ytThumb {
	var out []ytThumb
	for _, t := range arr.Array() {
		u := t.Get("url").String()
		if u == "" {
			continue
		}
		if strings.HasPrefix(u, "//") {
			u = "https:" + u
		}
		out = append(out, ytThumb{URL: u})
	}
	return out
}

// --- YouTube Data API v3 ---

func (y *YouTube) searchDataAPI(ctx context.Context, req ytservice.SearchRequest) ([]ytRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", req.Query)
	params.Set("type", string(req.Type))
	params.Set("order", string(req.Sort))
	params.Set("maxResults", strconv.Itoa(min(max(y.searchLimit, 1), dataAPIMaxResults)))

	res, err := y.dataAPIGet(ctx, "/search", params)
	if err != nil {
		return nil, err
	}
	var recs []ytRecord
	for _, item := range res.Get("items").Array() {
		if rec, ok := dataSearchItemRecord(item, req.Type); ok {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func dataSearchItemRecord(item gjson.Result, typ ytservice.ResultType) (ytRecord, bool) {
	sn := item.Get("snippet")
	rec := ytRecord{
		Title:       engine.CleanCaption(sn.Get("title").String()),
		Published:   sn.Get("publishedAt").String(),
		Description: engine.CleanCaption(sn.Get("description").String()),
		Thumbnails:  dataThumbs(sn.Get("thumbnails")),
	}
	if typ == ytservice.ResultChannel {
		rec.ID = item.Get("id.channelId").String()
		rec.Author = &ytAuthor{Name: rec.Title, ID: rec.ID}
	} else {
		rec.ID = item.Get("id.videoId").String()
		rec.Author = &ytAuthor{
			Name: sn.Get("channelTitle").String(),
			ID:   sn.Get("channelId").String(),
		}
	}
	return rec, rec.ID != ""
}

// dataThumbs orders the Data API thumbnail map from largest to smallest.
func dataThumbs(m gjson.Result) []ytThumb {
	var out []ytThumb
	for _, size := range []string{"maxres", "high", "medium", "default"} {
		if u := m.Get(size + ".url").String(); u != "" {
			out = append(out, ytThumb{URL: u})
		}
	}
	return out
}

// dataAPIGet calls a Data API v3 endpoint, moving on to the fallback key when
// the primary one fails (usually quota exhaustion).
func (y *YouTube) dataAPIGet(ctx context.Context, path string, params url.Values) (gjson.Result, error) {
	var lastErr error
	for i, key := range y.apiKeys {
		res, err := y.dataAPIGetWithKey(ctx, path, params, key)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return gjson.Result{}, ctx.Err()
		}
		lastErr = err
		slog.Debug("youtube: data API key failed", slog.Int("key", i), slog.String("path", path), slog.Any("error", err))
	}
	if lastErr == nil {
		lastErr = errors.New("youtube data API: no key configured")
	}
	return gjson.Result{}, lastErr
}

func (y *YouTube) dataAPIGetWithKey(ctx context.Context, path string, params url.Values, key string) (gjson.Result, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("key", key)
	apiURL := y.apiBase + path + "?" + q.Encode()

	engine.IncrDataAPI()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return y.client.Do(req)
	})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("youtube data API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read youtube data API: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, &statusError{Code: resp.StatusCode, Snippet: engine.TruncateRunes(string(body), 256, "")}
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errors.New("youtube data API: invalid JSON")
	}
	return gjson.ParseBytes(body), nil
}
