package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/avraj/courseforge/internal/model"
)

// searchFunc performs one video search with one API key. Swappable in tests.
type searchFunc func(ctx context.Context, key, query, langCode string) (*model.VideoResult, error)

// Finder locates one usable video for a ranked list of search phrases,
// failing over across the key pool on quota exhaustion.
type Finder struct {
	pool   *KeyPool
	search searchFunc
}

// NewFinder creates a Finder backed by the YouTube Data API.
func NewFinder(pool *KeyPool) *Finder {
	return &Finder{pool: pool, search: apiSearch}
}

// Find tries each query in order with the pool's current key. A quota error
// rotates the pool and retries the same query with the next key, at most
// once per available key; any other error moves on to the next query. The
// first structured result wins. Exhausting everything returns nil, never an
// error.
func (f *Finder) Find(ctx context.Context, queries []string, languageName string) *model.VideoResult {
	langCode := LanguageCode(languageName)

	for _, query := range queries {
		for attempt := 0; attempt < max(f.pool.Size(), 1); attempt++ {
			key, err := f.pool.Current()
			if err != nil {
				slog.Error("video lookup disabled", "error", err)
				return nil
			}

			result, err := f.search(ctx, key, query, langCode)
			if err != nil {
				if isQuotaError(err) {
					slog.Warn("quota exceeded, rotating API key", "query", query)
					f.pool.Rotate()
					continue
				}
				slog.Error("video search failed", "query", query, "error", err)
				break
			}
			if result == nil {
				// No items matched; try the next phrase.
				break
			}
			// Spread quota across keys between requests.
			f.pool.Rotate()
			return result
		}
	}

	slog.Warn("no video found for any search phrase", "queries", len(queries))
	return nil
}

// apiSearch runs a single search.list call: first medium-length, relevant,
// high-definition video in the requested language.
func apiSearch(ctx context.Context, key, query, langCode string) (*model.VideoResult, error) {
	svc, err := yt.NewService(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	resp, err := svc.Search.List([]string{"id", "snippet"}).
		Q(query).
		MaxResults(1).
		Type("video").
		VideoDuration("medium").
		RelevanceLanguage(langCode).
		SafeSearch("moderate").
		Order("relevance").
		VideoDefinition("high").
		Fields("items(id(videoId),snippet(title,channelTitle,thumbnails))").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	videoID := item.Id.VideoId
	result := &model.VideoResult{
		Title:    item.Snippet.Title,
		VideoID:  videoID,
		WatchURL: "https://www.youtube.com/watch?v=" + videoID,
		EmbedURL: "https://www.youtube.com/embed/" + videoID,
		Channel:  item.Snippet.ChannelTitle,
		Language: langCode,
	}
	if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
		result.Thumbnail = item.Snippet.Thumbnails.High.Url
	}
	return result, nil
}

// isQuotaError reports whether err is the API's daily-quota rejection.
func isQuotaError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 403 {
		for _, e := range apiErr.Errors {
			if e.Reason == "quotaExceeded" || e.Reason == "dailyLimitExceeded" {
				return true
			}
		}
		return strings.Contains(apiErr.Message, "quota")
	}
	return false
}
