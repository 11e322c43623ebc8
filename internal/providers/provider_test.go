package providers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darksky-forecast/config"
	"darksky-forecast/pkg/forecast"
	"darksky-forecast/pkg/observe"
)

func TestInitProviders(t *testing.T) {
	var buf bytes.Buffer
	l := observe.NewZapLogger("test-app", &buf)

	cfg := &config.Config{
		Providers: []config.ProviderConfig{
			{Name: "darksky", APIKey: "k1"},
			{Name: "pirateweather", APIKey: "k2"},
			{Name: "custom", APIKey: "k3", URLTemplate: "http://localhost/##key##/##latitude##,##longitude##"},
			{Name: "unknown", APIKey: "k4"},
		},
	}

	providers := InitProviders(cfg, l)
	require.Len(t, providers, 3)

	assert.Equal(t, Provider{Name: "darksky", APIKey: "k1"}, providers[0])
	assert.Equal(t, builtinTemplates[PirateWeather], providers[1].URLTemplate)
	assert.Equal(t, "custom", providers[2].Name)
	assert.Contains(t, buf.String(), "unknown")
}

func TestProvider_Builder(t *testing.T) {
	location, err := forecast.NewGeoCoordinates(1.5, -2.25)
	require.NoError(t, err)

	tests := []struct {
		provider Provider
		want     string
	}{
		{
			provider: Provider{Name: DarkSky, APIKey: "key"},
			want:     "https://api.darksky.net/forecast/key/1.5,-2.25?lang=de&units=si",
		},
		{
			provider: Provider{Name: PirateWeather, APIKey: "key", URLTemplate: builtinTemplates[PirateWeather]},
			want:     "https://api.pirateweather.net/forecast/key/1.5,-2.25?lang=de&units=si",
		},
	}

	for _, tt := range tests {
		t.Run(tt.provider.Name, func(t *testing.T) {
			req, err := tt.provider.Builder().SetLocation(location).Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.String())
		})
	}
}

func TestProvider_Builder_MissingKey(t *testing.T) {
	location, err := forecast.NewGeoCoordinates(1, 1)
	require.NoError(t, err)

	_, err = Provider{Name: DarkSky}.Builder().SetLocation(location).Build()
	assert.ErrorIs(t, err, forecast.ErrInvalidArgument)
}
