package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/locality-resolver/app/models"
	"github.com/locality-resolver/internal/geocoder"
	"github.com/locality-resolver/internal/locality"
	"github.com/locality-resolver/internal/metrics"
)

const (
	DefaultBatchMax         = 50
	DefaultBatchConcurrency = 4
)

// LocalityServiceConfig configures LocalityService.
type LocalityServiceConfig struct {
	APIKey           string // Provider key used when the request does not carry one
	BatchMax         int    // Max addresses per batch
	BatchConcurrency int    // Concurrent resolutions per batch
}

// ResolveOptions carries per-request settings.
type ResolveOptions struct {
	APIKey string // Overrides the configured provider key when set
}

// BatchItem is the outcome for one address of a batch.
type BatchItem struct {
	Input    string
	Location *models.GeocodedLocation
	Err      *ResolveError
}

// LocalityService resolves free-text addresses to a city.
type LocalityService struct {
	provider   geocoder.Provider
	classifier *locality.Classifier
	cfg        LocalityServiceConfig
	logger     *zap.Logger
	startTime  time.Time
}

// NewLocalityService creates a LocalityService.
func NewLocalityService(provider geocoder.Provider, classifier *locality.Classifier, cfg LocalityServiceConfig, logger *zap.Logger) *LocalityService {
	if cfg.BatchMax <= 0 {
		cfg.BatchMax = DefaultBatchMax
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = DefaultBatchConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalityService{
		provider:   provider,
		classifier: classifier,
		cfg:        cfg,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// Classifier returns the classifier in use.
func (ls *LocalityService) Classifier() *locality.Classifier {
	return ls.classifier
}

// BatchMax returns the batch size limit.
func (ls *LocalityService) BatchMax() int {
	return ls.cfg.BatchMax
}

// GetStartTime returns when the service was created.
func (ls *LocalityService) GetStartTime() time.Time {
	return ls.startTime
}

// HasCredential reports whether a default provider key is configured.
func (ls *LocalityService) HasCredential() bool {
	return strings.TrimSpace(ls.cfg.APIKey) != ""
}

// Resolve geocodes rawAddress and picks its city. Any returned error is a
// *ResolveError. Exactly one provider call is made when input and
// credential are valid, none otherwise.
func (ls *LocalityService) Resolve(ctx context.Context, rawAddress string, opts ResolveOptions) (*models.GeocodedLocation, error) {
	start := time.Now()

	loc, stage, rerr := ls.resolve(ctx, rawAddress, opts)
	if rerr != nil {
		metrics.RecordResolution(string(rerr.Kind), time.Since(start))
		fields := []zap.Field{
			zap.String("kind", string(rerr.Kind)),
			zap.String("message", rerr.Message),
			zap.Duration("elapsed", time.Since(start)),
		}
		if rerr.Kind.ServerFault() {
			ls.logger.Error("Address resolution failed", fields...)
		} else {
			ls.logger.Info("Address not resolved", fields...)
		}
		return nil, rerr
	}

	metrics.RecordResolution("success", time.Since(start))
	metrics.RecordClassifierStage(stage.String())
	ls.logger.Info("Address resolved",
		zap.String("city", loc.City),
		zap.String("stage", stage.String()),
		zap.String("place_id", loc.PlaceID),
		zap.Duration("elapsed", time.Since(start)))
	return loc, nil
}

func (ls *LocalityService) resolve(ctx context.Context, rawAddress string, opts ResolveOptions) (*models.GeocodedLocation, locality.Stage, *ResolveError) {
	address := strings.TrimSpace(rawAddress)
	if address == "" {
		return nil, locality.StageNone, newResolveError(KindInvalidInput, "address must be a non-empty string", nil)
	}

	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(ls.cfg.APIKey)
	}
	if apiKey == "" {
		return nil, locality.StageNone, newResolveError(KindMissingCredential, "geocoding provider credential is not configured", nil)
	}

	places, err := ls.provider.Search(ctx, address, apiKey)
	if err != nil {
		return nil, locality.StageNone, providerFailure(ctx, err)
	}
	if len(places) == 0 {
		return nil, locality.StageNone, newResolveError(KindUpstreamNoResults, "the address could not be geocoded", nil)
	}

	best := places[0]
	match, ok := ls.classifier.Classify(detailsFromPlace(best), locality.SplitDisplayName(best.DisplayName))
	if !ok {
		ls.logger.Debug("Classifier found no city",
			zap.String("display_name", best.DisplayName),
			zap.String("city", best.Address.City),
			zap.String("county", best.Address.County),
			zap.String("suburb", best.Address.Suburb))
		return nil, locality.StageNone, newResolveError(KindNoCityFound, "could not determine a city, please provide a more specific address", nil)
	}

	return &models.GeocodedLocation{
		City:    match.City,
		Address: best.DisplayName,
		PlaceID: string(best.PlaceID),
	}, match.Stage, nil
}

// ResolveBatch resolves each address independently, preserving order.
// Only an empty or oversized batch fails as a whole.
func (ls *LocalityService) ResolveBatch(ctx context.Context, addresses []string, opts ResolveOptions) ([]BatchItem, error) {
	if len(addresses) == 0 {
		return nil, newResolveError(KindInvalidInput, "addresses must contain at least one entry", nil)
	}
	if len(addresses) > ls.cfg.BatchMax {
		return nil, newResolveError(KindInvalidInput, "too many addresses in one batch", nil)
	}

	items := make([]BatchItem, len(addresses))
	var g errgroup.Group
	g.SetLimit(ls.cfg.BatchConcurrency)

	for i, address := range addresses {
		i, address := i, address
		g.Go(func() error {
			loc, err := ls.Resolve(ctx, address, opts)
			items[i] = BatchItem{Input: address, Location: loc, Err: AsResolveError(err)}
			return nil
		})
	}
	_ = g.Wait()

	ls.logger.Info("Batch resolved", zap.Int("total", len(addresses)))
	return items, nil
}

func detailsFromPlace(p geocoder.Place) locality.Details {
	return locality.Details{
		City:         p.Address.City,
		County:       p.Address.County,
		Suburb:       p.Address.Suburb,
		CityDistrict: p.Address.CityDistrict,
		Town:         p.Address.Town,
		Village:      p.Address.Village,
	}
}
