package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"stocksage/internal/entity"
	"stocksage/internal/repository"
	"stocksage/internal/worker/config"
	"stocksage/pkg/logger"
	"stocksage/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/lib/pq"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

// NewsRefreshService pulls the configured RSS feeds, extracts article content
// and stores new items tagged with the watchlist symbols they mention.
type NewsRefreshService interface {
	Refresh(ctx context.Context)
}

// NewNewsRefreshService creates a new NewsRefreshService.
func NewNewsRefreshService(
	cfg *config.Config,
	log *logger.Logger,
	newsRepo repository.StockNewsRepository,
	watchlistRepo repository.WatchlistRepository,
) NewsRefreshService {
	return &newsRefreshService{
		cfg:           cfg,
		log:           log,
		newsRepo:      newsRepo,
		watchlistRepo: watchlistRepo,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

type newsRefreshService struct {
	cfg           *config.Config
	log           *logger.Logger
	newsRepo      repository.StockNewsRepository
	watchlistRepo repository.WatchlistRepository
	client        *http.Client
}

// Refresh processes every configured feed concurrently, bounded by
// max_concurrent.
func (s *newsRefreshService) Refresh(ctx context.Context) {
	symbols := s.watchlistSymbols(ctx)

	maxConcurrent := s.cfg.News.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	semaphore := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	for _, feedURL := range s.cfg.News.Feeds {
		if !utils.ShouldContinue(ctx) {
			break
		}
		feedURL := feedURL
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			s.processFeed(ctx, feedURL, symbols)
		})
	}
	wg.Wait()
}

func (s *newsRefreshService) processFeed(ctx context.Context, feedURL string, symbols []string) {
	s.log.Info("Processing RSS feed", logger.StringField("url", feedURL))

	fp := gofeed.NewParser()
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		s.log.Error("Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("url", feedURL))
		return
	}

	// Newest first.
	sort.Slice(feed.Items, func(i, j int) bool {
		if feed.Items[i].PublishedParsed == nil || feed.Items[j].PublishedParsed == nil {
			return false
		}
		return feed.Items[i].PublishedParsed.After(*feed.Items[j].PublishedParsed)
	})

	items, err := s.filterExistingItems(ctx, feed.Items)
	if err != nil {
		s.log.Error("Failed to filter existing news items", logger.ErrorField(err), logger.StringField("url", feedURL))
		return
	}

	s.log.Info("Filtered news items",
		logger.IntField("original_count", len(feed.Items)),
		logger.IntField("filtered_count", len(items)),
		logger.StringField("url", feedURL))

	stored := 0
	for _, item := range items {
		if !utils.ShouldContinue(ctx) {
			return
		}
		if s.cfg.News.MaxPerFeed > 0 && stored >= s.cfg.News.MaxPerFeed {
			break
		}

		news, err := s.buildNewsItem(ctx, item, feed.Title, symbols)
		if err != nil {
			s.log.Error("Failed to process news item", logger.ErrorField(err), logger.StringField("title", item.Title))
			continue
		}
		if news == nil {
			continue
		}

		if err := s.newsRepo.Create(ctx, news); err != nil {
			s.log.Error("Failed to store news item", logger.ErrorField(err), logger.StringField("link", news.Link))
			continue
		}
		stored++
	}

	s.log.Info("Feed processed", logger.StringField("url", feedURL), logger.IntField("stored", stored))
}

// filterExistingItems drops items already stored (by link hash) or older than
// the configured age.
func (s *newsRefreshService) filterExistingItems(ctx context.Context, items []*gofeed.Item) ([]*gofeed.Item, error) {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.News.MaxAgeInDays)

	hashes := make([]string, 0, len(items))
	for _, item := range items {
		hashes = append(hashes, hashLink(item.Link))
	}
	existing, err := s.newsRepo.ExistingHashes(ctx, hashes)
	if err != nil {
		return nil, err
	}

	filtered := make([]*gofeed.Item, 0, len(items))
	for _, item := range items {
		if s.cfg.News.MaxAgeInDays > 0 && item.PublishedParsed != nil && item.PublishedParsed.Before(cutoff) {
			continue
		}
		if existing[hashLink(item.Link)] {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered, nil
}

func (s *newsRefreshService) buildNewsItem(ctx context.Context, item *gofeed.Item, feedTitle string, symbols []string) (*entity.StockNews, error) {
	content := item.Description
	if s.cfg.News.FetchFullContent {
		if extracted, err := s.fetchArticleContent(ctx, item.Link); err != nil {
			s.log.Debug("Falling back to feed description", logger.ErrorField(err), logger.StringField("link", item.Link))
		} else if extracted != "" {
			content = extracted
		}
	}

	matched := matchSymbols(item.Title+" "+content, symbols)
	if len(symbols) > 0 && len(matched) == 0 {
		// Nothing on the watchlist mentioned, skip.
		return nil, nil
	}

	source := feedTitle
	if item.Author != nil && item.Author.Name != "" {
		source = item.Author.Name
	}

	return &entity.StockNews{
		Title:          utils.CleanToValidUTF8(item.Title),
		Link:           item.Link,
		Source:         utils.CleanToValidUTF8(source),
		PublishedAt:    item.PublishedParsed,
		RawContent:     utils.CleanToValidUTF8(content),
		HashIdentifier: hashLink(item.Link),
		Symbols:        pq.StringArray(matched),
	}, nil
}

// fetchArticleContent downloads the article page and extracts the readable
// body text.
func (s *newsRefreshService) fetchArticleContent(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", err
	}

	contentDoc, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content()))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(contentDoc.Text()), nil
}

func (s *newsRefreshService) watchlistSymbols(ctx context.Context) []string {
	items, err := s.watchlistRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to load watchlist for news tagging", logger.ErrorField(err))
		return nil
	}
	symbols := make([]string, 0, len(items))
	for _, item := range items {
		symbols = append(symbols, item.Symbol)
	}
	return symbols
}

// matchSymbols returns the watchlist symbols mentioned in the text, matching
// whole tokens against the base ticker without the exchange suffix. Substring
// hits inside longer words do not count.
func matchSymbols(text string, symbols []string) []string {
	tokens := make(map[string]bool)
	for _, token := range strings.FieldsFunc(strings.ToUpper(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		tokens[token] = true
	}

	var matched []string
	for _, symbol := range symbols {
		base := symbol
		if idx := strings.Index(base, "."); idx > 0 {
			base = base[:idx]
		}
		if tokens[strings.ToUpper(base)] {
			matched = append(matched, symbol)
		}
	}
	return matched
}

func hashLink(link string) string {
	sum := md5.Sum([]byte(link))
	return hex.EncodeToString(sum[:])
}
