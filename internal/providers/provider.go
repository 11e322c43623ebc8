package providers

import (
	"darksky-forecast/config"
	"darksky-forecast/pkg/forecast"
	"darksky-forecast/pkg/observe"
)

const (
	DarkSky       = "darksky"
	PirateWeather = "pirateweather"
)

// builtinTemplates are Dark Sky compatible endpoints known by name.
// An empty template means the builder default.
var builtinTemplates = map[string]string{
	DarkSky:       "",
	PirateWeather: "https://api.pirateweather.net/forecast/##key##/##latitude##,##longitude##",
}

// Provider is a named forecast endpoint and the credential for it.
type Provider struct {
	Name        string
	URLTemplate string
	APIKey      forecast.APIKey
}

// Builder returns a RequestBuilder preloaded with the provider's key and template.
func (p Provider) Builder() *forecast.RequestBuilder {
	b := forecast.NewRequestBuilder().SetKey(p.APIKey)
	if p.URLTemplate != "" {
		b.SetURLOverride(p.URLTemplate)
	}
	return b
}

func InitProviders(cfg *config.Config, l *observe.Logger) []Provider {
	var providers []Provider
	for _, api := range cfg.Providers {
		template := api.URLTemplate
		if template == "" {
			builtin, ok := builtinTemplates[api.Name]
			if !ok {
				l.Warning("skipping provider without url template", map[string]any{"provider": api.Name})
				continue
			}
			template = builtin
		}

		providers = append(providers, Provider{
			Name:        api.Name,
			URLTemplate: template,
			APIKey:      forecast.APIKey(api.APIKey),
		})
	}

	return providers
}
