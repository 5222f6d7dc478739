package rates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/rustyeddy/tradelog/market"
)

// DefaultCacheTTL matches how long a quote is considered live.
const DefaultCacheTTL = 60 * time.Second

// Config selects endpoints and limits for NewService. Zero values fall back
// to the public endpoints, DefaultCacheTTL and one request per second.
type Config struct {
	FrankfurterURL    string
	CoinGeckoURL      string
	CacheTTL          time.Duration
	RequestsPerSecond float64
	Timeout           time.Duration
}

// Service resolves catalog instruments to live rates. Concurrent lookups of
// the same instrument share one upstream request, and each provider is
// throttled by its own token bucket.
//
// Every failure wraps market.ErrRateUnavailable so callers can fall back to
// a manually entered rate.
type Service struct {
	mu        sync.RWMutex
	providers map[market.InstrumentType]Provider
	limiters  map[string]*rate.Limiter

	cache Cache
	ttl   time.Duration
	rps   float64
	group singleflight.Group
	log   logrus.FieldLogger
}

var _ market.RateSource = (*Service)(nil)

// NewService wires Frankfurter for forex and CoinGecko for crypto and gold.
// Stock indices have no provider. A nil cache means a MemoryCache.
func NewService(cfg Config, cache Cache, log logrus.FieldLogger) *Service {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}

	s := &Service{
		providers: map[market.InstrumentType]Provider{},
		limiters:  map[string]*rate.Limiter{},
		cache:     cache,
		ttl:       cfg.CacheTTL,
		rps:       cfg.RequestsPerSecond,
		log:       log,
	}
	cg := NewCoinGecko(cfg.CoinGeckoURL, cfg.Timeout)
	s.SetProvider(market.Forex, NewFrankfurter(cfg.FrankfurterURL, cfg.Timeout))
	s.SetProvider(market.Crypto, cg)
	s.SetProvider(market.Commodity, cg)
	return s
}

// SetProvider routes an instrument type to p. A nil p removes the route.
func (s *Service) SetProvider(t market.InstrumentType, p Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		delete(s.providers, t)
		return
	}
	s.providers[t] = p
	if _, ok := s.limiters[p.Name()]; !ok {
		s.limiters[p.Name()] = rate.NewLimiter(rate.Limit(s.rps), 1)
	}
}

func (s *Service) route(t market.InstrumentType) (Provider, *rate.Limiter, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.providers[t]
	if !ok {
		return nil, nil, false
	}
	return p, s.limiters[p.Name()], true
}

// Rate returns the live rate of instrumentID, serving a cached value while
// its TTL holds.
func (s *Service) Rate(ctx context.Context, instrumentID string) (float64, error) {
	inst, err := market.Lookup(instrumentID)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", err, market.ErrRateUnavailable)
	}

	p, lim, ok := s.route(inst.Type)
	if !ok {
		return 0, fmt.Errorf("%s: no rate provider for %s instruments: %w", inst.ID, inst.Type, market.ErrRateUnavailable)
	}

	if v, hit, err := s.cache.Get(ctx, inst.ID); err != nil {
		s.log.WithError(err).WithField("instrument", inst.ID).Warn("rate cache read failed")
	} else if hit {
		s.log.WithField("instrument", inst.ID).Debug("rate cache hit")
		return v, nil
	}

	v, err, shared := s.group.Do(inst.ID, func() (any, error) {
		return s.fetch(ctx, inst, p, lim)
	})
	if err != nil {
		return 0, err
	}
	if shared {
		s.log.WithField("instrument", inst.ID).Debug("rate lookup coalesced")
	}
	return v.(float64), nil
}

func (s *Service) fetch(ctx context.Context, inst market.Instrument, p Provider, lim *rate.Limiter) (float64, error) {
	fields := logrus.Fields{"instrument": inst.ID, "provider": p.Name()}

	if err := lim.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%s: rate limit wait: %v: %w", inst.ID, err, market.ErrRateUnavailable)
	}

	v, err := p.Rate(ctx, inst)
	if err != nil {
		s.log.WithFields(fields).WithError(err).Warn("rate fetch failed")
		if errors.Is(err, market.ErrRateUnavailable) {
			return 0, err
		}
		return 0, fmt.Errorf("%s: %v: %w", inst.ID, err, market.ErrRateUnavailable)
	}
	if !market.ValidRate(v) {
		s.log.WithFields(fields).WithField("rate", v).Warn("provider returned unusable rate")
		return 0, fmt.Errorf("%s: provider %s returned %v: %w", inst.ID, p.Name(), v, market.ErrRateUnavailable)
	}

	if err := s.cache.Set(ctx, inst.ID, v, s.ttl); err != nil {
		s.log.WithFields(fields).WithError(err).Warn("rate cache write failed")
	}
	s.log.WithFields(fields).WithField("rate", v).Info("rate fetched")
	return v, nil
}
