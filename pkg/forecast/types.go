package forecast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// APIKey is the credential used to authenticate against the forecast API.
type APIKey string

func (k APIKey) present() bool {
	return strings.TrimSpace(string(k)) != ""
}

// GeoCoordinates is a validated latitude/longitude pair.
// The zero value is not a location; use NewGeoCoordinates.
type GeoCoordinates struct {
	latitude  float64
	longitude float64
	valid     bool
}

// NewGeoCoordinates validates the pair and returns the coordinates.
func NewGeoCoordinates(latitude, longitude float64) (GeoCoordinates, error) {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return GeoCoordinates{}, &BuildError{
			Kind:    ErrInvalidArgument,
			Field:   "latitude",
			Message: fmt.Sprintf("latitude must be between -90 and 90, got %v", latitude),
		}
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return GeoCoordinates{}, &BuildError{
			Kind:    ErrInvalidArgument,
			Field:   "longitude",
			Message: fmt.Sprintf("longitude must be between -180 and 180, got %v", longitude),
		}
	}

	return GeoCoordinates{latitude: latitude, longitude: longitude, valid: true}, nil
}

func (g GeoCoordinates) Latitude() float64  { return g.latitude }
func (g GeoCoordinates) Longitude() float64 { return g.longitude }

func (g GeoCoordinates) String() string {
	return formatDegrees(g.latitude) + "," + formatDegrees(g.longitude)
}

// formatDegrees renders the shortest decimal form, never an exponent.
func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Language the textual parts of the forecast response are translated to.
type Language string

const (
	LanguageDE Language = "de"
	LanguageEN Language = "en"
)

var languages = []Language{LanguageDE, LanguageEN}

func (l Language) Valid() bool {
	for _, v := range languages {
		if l == v {
			return true
		}
	}
	return false
}

// ParseLanguage returns the Language named s.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.TrimSpace(s))
	if !l.Valid() {
		return "", &BuildError{Kind: ErrInvalidArgument, Field: "language", Message: fmt.Sprintf("unknown language %q", s)}
	}
	return l, nil
}

// Units the forecast response values are expressed in.
type Units string

const (
	// UnitsAuto selects units based on the geographic location.
	UnitsAuto Units = "auto"
	// UnitsCA is the same as si, except that windSpeed is in kilometers per hour.
	UnitsCA Units = "ca"
	// UnitsSI uses degrees Celsius, millimeters per hour, meters per second and hectopascals.
	UnitsSI Units = "si"
	// UnitsUK2 is the same as si, except that nearestStormDistance and
	// visibility are in miles and windSpeed is in miles per hour.
	UnitsUK2 Units = "uk2"
	// UnitsUS are imperial units.
	UnitsUS Units = "us"
)

var units = []Units{UnitsAuto, UnitsCA, UnitsSI, UnitsUK2, UnitsUS}

func (u Units) Valid() bool {
	for _, v := range units {
		if u == v {
			return true
		}
	}
	return false
}

// ParseUnits returns the Units named s.
func ParseUnits(s string) (Units, error) {
	u := Units(strings.TrimSpace(s))
	if !u.Valid() {
		return "", &BuildError{Kind: ErrInvalidArgument, Field: "units", Message: fmt.Sprintf("unknown units %q", s)}
	}
	return u, nil
}

// Block is a section of the forecast response.
type Block string

const (
	BlockCurrently Block = "currently"
	BlockMinutely  Block = "minutely"
	BlockHourly    Block = "hourly"
	BlockDaily     Block = "daily"
	BlockAlerts    Block = "alerts"
	BlockFlags     Block = "flags"
)

var blocks = []Block{BlockCurrently, BlockMinutely, BlockHourly, BlockDaily, BlockAlerts, BlockFlags}

func (b Block) Valid() bool {
	for _, v := range blocks {
		if b == v {
			return true
		}
	}
	return false
}

// ParseBlock returns the Block named s.
func ParseBlock(s string) (Block, error) {
	b := Block(strings.TrimSpace(s))
	if !b.Valid() {
		return "", &BuildError{Kind: ErrInvalidArgument, Field: "exclude", Message: fmt.Sprintf("unknown block %q", s)}
	}
	return b, nil
}
