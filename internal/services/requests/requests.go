package requests

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"darksky-forecast/internal/models"
	"darksky-forecast/internal/providers"
	"darksky-forecast/pkg/forecast"
	"darksky-forecast/pkg/observe"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrNoProviders     = errors.New("no providers configured")
)

// Defaults override the builder defaults for queries that leave them empty.
type Defaults struct {
	Language forecast.Language
	Units    forecast.Units
}

// RequestService builds forecast request URLs for the configured providers.
type RequestService struct {
	providers []providers.Provider
	defaults  Defaults
	l         *observe.Logger
}

func NewRequestService(ps []providers.Provider, defaults Defaults, l *observe.Logger) *RequestService {
	return &RequestService{
		providers: ps,
		defaults:  defaults,
		l:         l,
	}
}

// Providers returns the names of the configured providers in order.
func (s *RequestService) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name
	}
	return names
}

// BuildRequest builds the request for the named provider, or for the first
// configured one when name is empty. It returns the name of the provider used.
func (s *RequestService) BuildRequest(ctx context.Context, name string, q models.Query) (string, forecast.Request, error) {
	if err := ctx.Err(); err != nil {
		return "", forecast.Request{}, err
	}

	p, err := s.provider(name)
	if err != nil {
		return "", forecast.Request{}, err
	}

	req, err := s.build(p, q)
	if err != nil {
		return p.Name, forecast.Request{}, errors.Wrapf(err, "build %s request", p.Name)
	}

	s.l.Debug("built forecast request", map[string]any{
		"provider": p.Name,
		"params":   q.RequestParams(),
		"url":      req.Redacted(),
	})

	return p.Name, req, nil
}

// BuildRequests builds the request for every provider. Providers that fail
// are logged and left out; an error is returned only if none succeed.
func (s *RequestService) BuildRequests(ctx context.Context, q models.Query) (map[string]forecast.Request, error) {
	if len(s.providers) == 0 {
		return nil, ErrNoProviders
	}

	s.l.Info("starting request build", map[string]any{
		"params":    q.RequestParams(),
		"providers": len(s.providers),
	})

	results := make(map[string]forecast.Request)
	var mu sync.Mutex
	var firstErr error

	wg := sync.WaitGroup{}

	for _, p := range s.providers {
		wg.Add(1)

		go func(p providers.Provider) {
			defer wg.Done()

			if ctx.Err() != nil {
				return
			}

			req, err := s.build(p, q)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				s.l.Warning("failed to build request", map[string]any{"provider": p.Name, "err": err})
				if firstErr == nil {
					firstErr = errors.Wrapf(err, "build %s request", p.Name)
				}
				return
			}
			results[p.Name] = req
		}(p)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.l.Info("completed request build", map[string]any{
		"successfulProviders": len(results),
	})

	if len(results) == 0 {
		s.l.Error(firstErr, map[string]any{"params": q.RequestParams()})
		return nil, firstErr
	}

	return results, nil
}

func (s *RequestService) provider(name string) (providers.Provider, error) {
	if len(s.providers) == 0 {
		return providers.Provider{}, ErrNoProviders
	}
	if name == "" {
		return s.providers[0], nil
	}
	for _, p := range s.providers {
		if p.Name == name {
			return p, nil
		}
	}
	return providers.Provider{}, errors.Wrap(ErrUnknownProvider, name)
}

// build uses a fresh builder per call; builders are not shared between goroutines.
func (s *RequestService) build(p providers.Provider, q models.Query) (forecast.Request, error) {
	location, err := forecast.NewGeoCoordinates(q.Lat, q.Lon)
	if err != nil {
		return forecast.Request{}, err
	}

	b := p.Builder().SetLocation(location)

	if s.defaults.Language != "" {
		b.SetLanguage(s.defaults.Language)
	}
	if s.defaults.Units != "" {
		b.SetUnits(s.defaults.Units)
	}

	if q.Language != "" {
		b.SetLanguage(forecast.Language(q.Language))
	}
	if q.Units != "" {
		b.SetUnits(forecast.Units(q.Units))
	}

	if len(q.Exclude) > 0 {
		blocks := make([]forecast.Block, len(q.Exclude))
		for i, name := range q.Exclude {
			blocks[i] = forecast.Block(name)
		}
		b.AddExclusions(blocks...)
	}

	if q.ExtendHourly {
		b.EnableExtendedHourly()
	}

	return b.Build()
}
