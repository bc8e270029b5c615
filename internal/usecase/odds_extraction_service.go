package usecase

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/weekendbets/internal/domain/odds"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// maxOddsPages bounds pagination when the feed never returns an empty page.
const maxOddsPages = 500

type OddsExtractResult struct {
	Date    string
	Pages   int
	Quotes  int
	Written bool
}

type OddsExtractionService struct {
	feed   odds.Feed
	store  partition.Store
	logger *logging.Logger
}

func NewOddsExtractionService(feed odds.Feed, store partition.Store, logger *logging.Logger) *OddsExtractionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &OddsExtractionService{feed: feed, store: store, logger: logger}
}

// ExtractDate pages through the odds feed for date until an empty page and
// writes one quote per fixture. Nothing is written when the first page is empty.
func (s *OddsExtractionService) ExtractDate(ctx context.Context, date string, profile odds.Profile) (OddsExtractResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsExtractionService.ExtractDate")
	defer span.End()

	profile = profile.Normalize()
	if err := validateDateAndProfile(date, profile); err != nil {
		return OddsExtractResult{}, err
	}
	span.SetAttributes(attribute.String("pipeline.date", date), attribute.String("odds.profile", profile.String()))

	result := OddsExtractResult{Date: date}
	var rows []odds.Row
	for page := 1; ; page++ {
		if page > maxOddsPages {
			return result, fmt.Errorf("odds date=%s exceeded %d pages", date, maxOddsPages)
		}
		batch, err := s.feed.FetchOddsPage(ctx, odds.PageQuery{Date: date, Profile: profile, Page: page})
		if err != nil {
			return result, fmt.Errorf("fetch odds page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}
		result.Pages++
		rows = append(rows, batch...)
	}

	if result.Pages == 0 {
		s.logger.InfoContext(ctx, "no odds published for date", "date", date, "profile", profile.String())
		return result, nil
	}

	quotes, err := odds.Collapse(rows, profile)
	if err != nil {
		return result, crerr.Wrapf(ErrMalformedFeed, "extract odds date=%s: %v", date, err)
	}

	blob, err := odds.EncodeQuotes(quotes)
	if err != nil {
		return result, err
	}
	key := partition.OddsKey(date, profile)
	if err := s.store.Put(ctx, key, blob); err != nil {
		return result, fmt.Errorf("store odds %s: %w", key, err)
	}

	result.Quotes = len(quotes)
	result.Written = true
	s.logger.InfoContext(ctx, "odds stored", "date", date, "key", key, "pages", result.Pages, "quotes", result.Quotes)
	return result, nil
}

// ExtractWindow runs ExtractDate for each date in ascending order. A failing
// date is logged and reported, the rest still run.
func (s *OddsExtractionService) ExtractWindow(ctx context.Context, dates []string, profile odds.Profile) ([]DateReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsExtractionService.ExtractWindow")
	defer span.End()

	return runDates(ctx, s.logger, StageOdds, dates, 1, s.dateTask(profile))
}

func (s *OddsExtractionService) dateTask(profile odds.Profile) dateTask {
	return func(ctx context.Context, date string) (DateReport, error) {
		result, err := s.ExtractDate(ctx, date, profile)
		if err != nil {
			return DateReport{}, err
		}
		report := DateReport{Records: result.Quotes}
		if !result.Written {
			report.Status = DateStatusSkipped
			report.Message = "no odds pages"
		}
		return report, nil
	}
}

func validateDateAndProfile(date string, profile odds.Profile) error {
	if _, err := partition.ParseDate(date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
