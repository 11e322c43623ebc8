package forecast

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultURLTemplate is the Dark Sky forecast endpoint.
const DefaultURLTemplate = "https://api.darksky.net/forecast/##key##/##latitude##,##longitude##"

// Placeholder tokens substituted in a URL template.
const (
	KeyToken       = "##key##"
	LatitudeToken  = "##latitude##"
	LongitudeToken = "##longitude##"
)

const (
	DefaultLanguage = LanguageDE
	DefaultUnits    = UnitsSI
)

const redactedKey = "REDACTED"

const (
	paramLang    = "lang"
	paramUnits   = "units"
	paramExclude = "exclude"
	paramExtend  = "extend"
)

// setter field names, in the order Build reports their errors
var fieldOrder = []string{"key", "location", "url", "language", "units", "exclude"}

// RequestBuilder accumulates the parameters of a forecast request.
//
// Setters return the builder so calls can be chained. A setter given an
// absent or unknown value keeps the previous value and records an
// ErrInvalidArgument error for its field, which Err and Build report until
// the same setter is called again with a valid value.
//
// A RequestBuilder must not be used from several goroutines at once.
type RequestBuilder struct {
	apiKey       APIKey
	location     GeoCoordinates
	overrideURL  string
	language     Language
	units        Units
	exclusions   []Block
	extendHourly bool

	errs map[string]error
}

// NewRequestBuilder returns a builder with the default language and units.
// The zero value is also ready to use.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		language: DefaultLanguage,
		units:    DefaultUnits,
		errs:     make(map[string]error),
	}
}

// SetKey sets the API key used to authenticate.
// Surrounding whitespace is dropped.
func (b *RequestBuilder) SetKey(apiKey APIKey) *RequestBuilder {
	apiKey = APIKey(strings.TrimSpace(string(apiKey)))
	if !apiKey.present() {
		return b.fail("key", "api key cannot be empty")
	}
	b.apiKey = apiKey
	return b.clear("key")
}

// SetLocation sets the location the forecast is requested for.
func (b *RequestBuilder) SetLocation(coordinates GeoCoordinates) *RequestBuilder {
	if !coordinates.valid {
		return b.fail("location", "geo coordinates cannot be empty")
	}
	b.location = coordinates
	return b.clear("location")
}

// SetURLOverride replaces DefaultURLTemplate. The template should contain
// KeyToken, LatitudeToken and LongitudeToken; a missing token is not
// detected and simply isn't substituted.
func (b *RequestBuilder) SetURLOverride(template string) *RequestBuilder {
	template = strings.TrimSpace(template)
	if template == "" {
		return b.fail("url", "url template cannot be empty")
	}
	b.overrideURL = template
	return b.clear("url")
}

// SetLanguage sets the language of the forecast response.
func (b *RequestBuilder) SetLanguage(language Language) *RequestBuilder {
	if !language.Valid() {
		return b.fail("language", fmt.Sprintf("unknown language %q", language))
	}
	b.language = language
	return b.clear("language")
}

// SetUnits sets the units of the forecast response.
func (b *RequestBuilder) SetUnits(units Units) *RequestBuilder {
	if !units.Valid() {
		return b.fail("units", fmt.Sprintf("unknown units %q", units))
	}
	b.units = units
	return b.clear("units")
}

// EnableExtendedHourly requests hourly data for the next 168 hours instead of 48.
func (b *RequestBuilder) EnableExtendedHourly() *RequestBuilder {
	b.extendHourly = true
	return b
}

// AddExclusions appends blocks to leave out of the response. Repeated calls
// accumulate, duplicates included.
func (b *RequestBuilder) AddExclusions(blocks ...Block) *RequestBuilder {
	for _, block := range blocks {
		if !block.Valid() {
			return b.fail("exclude", fmt.Sprintf("unknown block %q", block))
		}
	}
	b.exclusions = append(b.exclusions, blocks...)
	return b.clear("exclude")
}

// Err returns the first recorded setter error, if any.
func (b *RequestBuilder) Err() error {
	for _, field := range fieldOrder {
		if err, ok := b.errs[field]; ok {
			return err
		}
	}
	return nil
}

// Build resolves the template and query parameters into a Request.
// The builder is left untouched, so it can be corrected and built again.
func (b *RequestBuilder) Build() (Request, error) {
	if err := b.Err(); err != nil {
		return Request{}, err
	}
	if !b.apiKey.present() {
		return Request{}, &BuildError{Kind: ErrInvalidState, Field: "key", Message: "the api key must be set before build"}
	}
	if !b.location.valid {
		return Request{}, &BuildError{Kind: ErrInvalidState, Field: "location", Message: "the geo coordinates must be set before build"}
	}

	raw := b.resolve(string(b.apiKey))

	u, err := url.Parse(raw)
	if err != nil {
		return Request{}, &BuildError{Kind: ErrInvalidArgument, Field: "url", Message: "cannot create forecast request, the url is invalid", Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return Request{}, &BuildError{
			Kind:    ErrInvalidArgument,
			Field:   "url",
			Message: "cannot create forecast request, the url is invalid",
			Err:     fmt.Errorf("missing scheme or host in %q", b.template()),
		}
	}

	return Request{u: *u, raw: raw, redacted: b.resolve(redactedKey)}, nil
}

func (b *RequestBuilder) template() string {
	if b.overrideURL != "" {
		return b.overrideURL
	}
	return DefaultURLTemplate
}

func (b *RequestBuilder) resolve(key string) string {
	r := strings.NewReplacer(
		KeyToken, key,
		LatitudeToken, formatDegrees(b.location.latitude),
		LongitudeToken, formatDegrees(b.location.longitude),
	)
	return r.Replace(b.template()) + b.query()
}

func (b *RequestBuilder) query() string {
	var sb strings.Builder
	sb.WriteString("?")

	language, units := b.language, b.units
	if language == "" {
		language = DefaultLanguage
	}
	if units == "" {
		units = DefaultUnits
	}

	sb.WriteString(paramLang + "=" + string(language) + "&")
	sb.WriteString(paramUnits + "=" + string(units) + "&")

	if len(b.exclusions) > 0 {
		names := make([]string, len(b.exclusions))
		for i, block := range b.exclusions {
			names[i] = string(block)
		}
		sb.WriteString(paramExclude + "=" + strings.Join(names, ",") + "&")
	}

	if b.extendHourly {
		sb.WriteString(paramExtend + "=" + string(BlockHourly) + "&")
	}

	s := sb.String()
	return s[:len(s)-1]
}

func (b *RequestBuilder) fail(field, msg string) *RequestBuilder {
	if b.errs == nil {
		b.errs = make(map[string]error)
	}
	b.errs[field] = &BuildError{Kind: ErrInvalidArgument, Field: field, Message: msg}
	return b
}

func (b *RequestBuilder) clear(field string) *RequestBuilder {
	delete(b.errs, field)
	return b
}
