package road

import (
	"fmt"
	"regexp"
	"strings"
)

var reTag = regexp.MustCompile(`<[^>]*>`)

// SanitizeText strips tag-like substrings and trims surrounding whitespace.
// Applied to every free-text field on the create and update paths.
func SanitizeText(s string) string {
	return strings.TrimSpace(reTag.ReplaceAllString(s, ""))
}

// ValidateLocation checks the point anchor against valid coordinate ranges.
func ValidateLocation(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrValidation, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrValidation, lng)
	}
	return nil
}

// ValidateGeometry rejects line-strings with out-of-range vertices.
func ValidateGeometry(g LineString) error {
	for _, pt := range g {
		if err := ValidateLocation(pt[1], pt[0]); err != nil {
			return err
		}
	}
	return nil
}
