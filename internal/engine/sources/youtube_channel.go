package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/normalize"
	"github.com/tidwall/gjson"
)

// YouTube channels: lookup and upload listings.
// Data API v3: channels.list + the uploads playlist via playlistItems.list.
// Innertube:   /browse on the channel, then the Videos tab with continuations.

const (
	// ytVideosTabParams selects the Videos tab of a channel in /browse.
	ytVideosTabParams = "EgZ2aWRlb3PyBgQKAjoA"
	// ytMaxBrowsePages bounds continuation paging of a channel's Videos tab.
	ytMaxBrowsePages = 10
)

// Channel resolves a channel ID. ok is false when YouTube does not know it.
func (y *YouTube) Channel(ctx context.Context, channelID string) (normalize.RawRecord, bool, error) {
	var (
		rec ytRecord
		ok  bool
		err error
	)
	if y.useDataAPI() {
		rec, ok, err = y.channelDataAPI(ctx, channelID)
	} else {
		rec, ok, err = y.channelInnertube(ctx, channelID)
	}
	if err != nil || !ok {
		return normalize.RawRecord{}, false, err
	}
	return rec.raw(), true, nil
}

// ChannelUploads lists up to limit uploads of a channel, newest first.
func (y *YouTube) ChannelUploads(ctx context.Context, channelID string, limit int) ([]normalize.RawRecord, error) {
	var (
		recs []ytRecord
		err  error
	)
	if y.useDataAPI() {
		recs, err = y.uploadsDataAPI(ctx, channelID, limit)
	} else {
		recs, err = y.uploadsInnertube(ctx, channelID, limit)
	}
	if err != nil {
		return nil, err
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]normalize.RawRecord, len(recs))
	for i, r := range recs {
		out[i] = r.raw()
	}
	return out, nil
}

// --- Data API v3 ---

func (y *YouTube) channelDataAPI(ctx context.Context, channelID string) (ytRecord, bool, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", channelID)
	res, err := y.dataAPIGet(ctx, "/channels", params)
	if err != nil {
		return ytRecord{}, false, fmt.Errorf("channels.list: %w", err)
	}
	item := res.Get("items.0")
	if !item.Exists() {
		return ytRecord{}, false, nil
	}
	sn := item.Get("snippet")
	name := sn.Get("title").String()
	return ytRecord{
		ID:          item.Get("id").String(),
		Title:       name,
		Author:      &ytAuthor{Name: name, ID: item.Get("id").String()},
		Published:   sn.Get("publishedAt").String(),
		Description: sn.Get("description").String(),
		Thumbnails:  dataThumbs(sn.Get("thumbnails")),
	}, true, nil
}

// uploadsPlaylistID derives the uploads playlist of a UC... channel ID.
func uploadsPlaylistID(channelID string) string {
	if strings.HasPrefix(channelID, "UC") {
		return "UU" + channelID[2:]
	}
	return ""
}

func (y *YouTube) uploadsDataAPI(ctx context.Context, channelID string, limit int) ([]ytRecord, error) {
	playlistID := uploadsPlaylistID(channelID)
	if playlistID == "" {
		params := url.Values{}
		params.Set("part", "contentDetails")
		params.Set("id", channelID)
		res, err := y.dataAPIGet(ctx, "/channels", params)
		if err != nil {
			return nil, fmt.Errorf("channels.list: %w", err)
		}
		playlistID = res.Get("items.0.contentDetails.relatedPlaylists.uploads").String()
		if playlistID == "" {
			return nil, errors.New("uploads playlist not found")
		}
	}

	var recs []ytRecord
	pageToken := ""
	for len(recs) < limit {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(min(limit-len(recs), dataAPIMaxResults)))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}
		res, err := y.dataAPIGet(ctx, "/playlistItems", params)
		if err != nil {
			return nil, fmt.Errorf("playlistItems.list: %w", err)
		}
		for _, item := range res.Get("items").Array() {
			if rec, ok := playlistItemRecord(item); ok {
				recs = append(recs, rec)
			}
		}
		pageToken = res.Get("nextPageToken").String()
		if pageToken == "" {
			break
		}
	}
	return recs, nil
}

func playlistItemRecord(item gjson.Result) (ytRecord, bool) {
	sn := item.Get("snippet")
	id := sn.Get("resourceId.videoId").String()
	if id == "" {
		return ytRecord{}, false
	}
	return ytRecord{
		ID:    id,
		Title: sn.Get("title").String(),
		Author: &ytAuthor{
			Name: sn.Get("channelTitle").String(),
			ID:   sn.Get("channelId").String(),
		},
		Published:   sn.Get("publishedAt").String(),
		Description: sn.Get("description").String(),
		Thumbnails:  dataThumbs(sn.Get("thumbnails")),
	}, true
}

// --- Innertube /browse ---

func (y *YouTube) browse(ctx context.Context, payload map[string]any) (gjson.Result, error) {
	visitorData := generateVisitorData()
	payload["context"] = ytWebContext(visitorData)
	data, err := y.postInnerTubeWEB(ctx, ytBrowsePath, payload, visitorData)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.New("/browse: invalid JSON")
	}
	return gjson.ParseBytes(data), nil
}

// isNotFound reports whether YouTube rejected the browse ID itself.
func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && (se.Code == http.StatusNotFound || se.Code == http.StatusBadRequest)
}

func (y *YouTube) channelInnertube(ctx context.Context, channelID string) (ytRecord, bool, error) {
	res, err := y.browse(ctx, map[string]any{"browseId": channelID})
	if err != nil {
		if isNotFound(err) {
			slog.Debug("youtube: channel not found", slog.String("id", channelID), slog.Any("error", err))
			return ytRecord{}, false, nil
		}
		return ytRecord{}, false, fmt.Errorf("/browse: %w", err)
	}
	md := res.Get("metadata.channelMetadataRenderer")
	if !md.Exists() {
		return ytRecord{}, false, nil
	}
	id := md.Get("externalId").String()
	if id == "" {
		id = channelID
	}
	name := md.Get("title").String()
	return ytRecord{
		ID:          id,
		Title:       name,
		Author:      &ytAuthor{Name: name, ID: id},
		Description: md.Get("description").String(),
		Thumbnails:  rendererThumbs(md.Get("avatar.thumbnails")),
	}, true, nil
}

func (y *YouTube) uploadsInnertube(ctx context.Context, channelID string, limit int) ([]ytRecord, error) {
	res, err := y.browse(ctx, map[string]any{
		"browseId": channelID,
		"params":   ytVideosTabParams,
	})
	if err != nil {
		return nil, fmt.Errorf("/browse videos: %w", err)
	}

	recs, token := parseUploadsPage(res)
	for page := 1; len(recs) < limit && token != "" && page < ytMaxBrowsePages; page++ {
		res, err = y.browse(ctx, map[string]any{"continuation": token})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("/browse continuation page %d: %w", page, err)
		}
		more, next := parseUploadsPage(res)
		recs = append(recs, more...)
		token = next
	}
	return recs, nil
}

// parseUploadsPage collects video renderers of a Videos tab page (initial or
// continuation) and the token of the next page, if any.
func parseUploadsPage(root gjson.Result) ([]ytRecord, string) {
	var (
		recs  []ytRecord
		token string
	)
	walkJSON(root, func(k string, v gjson.Result) bool {
		switch k {
		case "videoRenderer", "gridVideoRenderer":
			if rec, ok := videoRendererRecord(v); ok {
				recs = append(recs, rec)
			}
			return false
		case "continuationItemRenderer":
			if t := v.Get("continuationEndpoint.continuationCommand.token").String(); t != "" {
				token = t
			}
			return false
		}
		return true
	})
	return recs, token
}
