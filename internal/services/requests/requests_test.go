package requests_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darksky-forecast/internal/models"
	"darksky-forecast/internal/providers"
	"darksky-forecast/internal/services/requests"
	"darksky-forecast/pkg/forecast"
	"darksky-forecast/pkg/observe"
)

func testProviders() []providers.Provider {
	return []providers.Provider{
		{Name: "darksky", APIKey: "dark-key"},
		{Name: "local", APIKey: "local-key", URLTemplate: "http://localhost:9999/f/##key##/##latitude##,##longitude##"},
	}
}

func newService(ps []providers.Provider, defaults requests.Defaults) *requests.RequestService {
	return requests.NewRequestService(ps, defaults, observe.NewZapLogger("test-app", io.Discard))
}

func TestRequestService_BuildRequest_DefaultProvider(t *testing.T) {
	service := newService(testProviders(), requests.Defaults{})

	name, req, err := service.BuildRequest(context.Background(), "", models.Query{Lat: 40.7128, Lon: -74.006})
	require.NoError(t, err)

	assert.Equal(t, "darksky", name)

	assert.Equal(t, "https://api.darksky.net/forecast/dark-key/40.7128,-74.006?lang=de&units=si", req.String())
}

func TestRequestService_BuildRequest_NamedProvider(t *testing.T) {
	service := newService(testProviders(), requests.Defaults{})

	name, req, err := service.BuildRequest(context.Background(), "local", models.Query{
		Lat:          10,
		Lon:          20.5,
		Language:     "en",
		Units:        "us",
		Exclude:      []string{"minutely", "flags"},
		ExtendHourly: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "local", name)
	assert.Equal(t, "http://localhost:9999/f/local-key/10,20.5?lang=en&units=us&exclude=minutely,flags&extend=hourly", req.String())
}

func TestRequestService_BuildRequest_ConfiguredDefaults(t *testing.T) {
	service := newService(testProviders(), requests.Defaults{Language: forecast.LanguageEN, Units: forecast.UnitsAuto})

	_, req, err := service.BuildRequest(context.Background(), "", models.Query{Lat: 1, Lon: 2})
	require.NoError(t, err)
	assert.Equal(t, "https://api.darksky.net/forecast/dark-key/1,2?lang=en&units=auto", req.String())

	_, req, err = service.BuildRequest(context.Background(), "", models.Query{Lat: 1, Lon: 2, Units: "uk2"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.darksky.net/forecast/dark-key/1,2?lang=en&units=uk2", req.String())
}

func TestRequestService_BuildRequest_Errors(t *testing.T) {
	service := newService(testProviders(), requests.Defaults{})
	ctx := context.Background()

	_, _, err := service.BuildRequest(ctx, "nope", models.Query{Lat: 1, Lon: 1})
	assert.ErrorIs(t, err, requests.ErrUnknownProvider)

	_, _, err = service.BuildRequest(ctx, "", models.Query{Lat: 91, Lon: 1})
	assert.ErrorIs(t, err, forecast.ErrInvalidArgument)

	_, _, err = service.BuildRequest(ctx, "", models.Query{Lat: 1, Lon: 1, Language: "fr"})
	assert.ErrorIs(t, err, forecast.ErrInvalidArgument)

	_, _, err = service.BuildRequest(ctx, "", models.Query{Lat: 1, Lon: 1, Exclude: []string{"weekly", "daily"}})
	assert.ErrorIs(t, err, forecast.ErrInvalidArgument)

	_, _, err = newService(nil, requests.Defaults{}).BuildRequest(ctx, "", models.Query{})
	assert.ErrorIs(t, err, requests.ErrNoProviders)
}

func TestRequestService_BuildRequest_Cancelled(t *testing.T) {
	service := newService(testProviders(), requests.Defaults{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := service.BuildRequest(ctx, "", models.Query{Lat: 1, Lon: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRequestService_BuildRequests(t *testing.T) {
	service := newService(testProviders(), requests.Defaults{})

	results, err := service.BuildRequests(context.Background(), models.Query{Lat: 1, Lon: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "https://api.darksky.net/forecast/dark-key/1,2?lang=de&units=si", results["darksky"].String())
	assert.Equal(t, "http://localhost:9999/f/local-key/1,2?lang=de&units=si", results["local"].String())
}

func TestRequestService_BuildRequests_PartialFailure(t *testing.T) {
	ps := append(testProviders(), providers.Provider{Name: "broken", APIKey: "k", URLTemplate: "not a url"})
	service := newService(ps, requests.Defaults{})

	results, err := service.BuildRequests(context.Background(), models.Query{Lat: 1, Lon: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.NotContains(t, results, "broken")
}

func TestRequestService_BuildRequests_AllFail(t *testing.T) {
	service := newService(testProviders(), requests.Defaults{})

	_, err := service.BuildRequests(context.Background(), models.Query{Lat: 1, Lon: 2, Units: "metric"})
	assert.ErrorIs(t, err, forecast.ErrInvalidArgument)

	_, err = newService(nil, requests.Defaults{}).BuildRequests(context.Background(), models.Query{})
	assert.ErrorIs(t, err, requests.ErrNoProviders)
}

func TestRequestService_Providers(t *testing.T) {
	service := newService(testProviders(), requests.Defaults{})
	assert.Equal(t, []string{"darksky", "local"}, service.Providers())
}
