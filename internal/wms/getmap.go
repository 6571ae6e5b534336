package wms

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Fixed GetMap template. Only SLD_BODY changes between requests.
const (
	DefaultVersion = "1.3.0"
	DefaultCRS     = "CRS:84"
	DefaultBBox    = "-180,-90,180,90"
	DefaultWidth   = 1024
	DefaultHeight  = 512
	DefaultFormat  = "image/png"
)

// SupportedVersions lists the WMS versions a GetMap request may carry.
var SupportedVersions = []string{"1.1.1", "1.3.0"}

var (
	ErrUnsupportedVersion = errors.New("wms: unsupported version")
	ErrInvalidSize        = errors.New("wms: width and height must be positive")
)

// MapRequest holds the fixed part of a GetMap request.
type MapRequest struct {
	Version     string
	CRS         string
	BBox        string
	Width       int
	Height      int
	Format      string
	Transparent bool
}

// DefaultMapRequest returns the global-extent, transparent PNG template.
func DefaultMapRequest() MapRequest {
	return MapRequest{
		Version:     DefaultVersion,
		CRS:         DefaultCRS,
		BBox:        DefaultBBox,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Format:      DefaultFormat,
		Transparent: true,
	}
}

// Validate checks the version and image size.
func (r MapRequest) Validate() error {
	if !slices.Contains(SupportedVersions, r.Version) {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, r.Version)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, r.Width, r.Height)
	}
	return nil
}

// crsKey is SRS before WMS 1.3.0.
func (r MapRequest) crsKey() string {
	if r.Version == "1.1.1" {
		return "SRS"
	}
	return "CRS"
}

// Query returns the GetMap query string for the given SLD document.
// Parameters are written in a fixed order and only sld is escaped; the rest
// of the template appears verbatim.
func (r MapRequest) Query(sld string) string {
	var b strings.Builder
	b.WriteString("REQUEST=GetMap")
	b.WriteString("&VERSION=" + r.Version)
	b.WriteString("&SLD_BODY=" + url.QueryEscape(sld))
	b.WriteString("&" + r.crsKey() + "=" + r.CRS)
	b.WriteString("&WIDTH=" + strconv.Itoa(r.Width))
	b.WriteString("&HEIGHT=" + strconv.Itoa(r.Height))
	b.WriteString("&FORMAT=" + r.Format)
	b.WriteString("&TRANSPARENT=" + strconv.FormatBool(r.Transparent))
	b.WriteString("&BBOX=" + r.BBox)
	return b.String()
}

// URL appends the GetMap query to endpoint.
func (r MapRequest) URL(endpoint, sld string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
		if strings.HasSuffix(endpoint, "?") || strings.HasSuffix(endpoint, "&") {
			sep = ""
		}
	}
	return endpoint + sep + r.Query(sld)
}
