package content

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var multipleDashes = regexp.MustCompile(`-+`)

// symbolSub keeps slug.Make from spelling symbols out as English words.
var symbolSub = map[string]string{"&": " ", "@": " "}

// Slugify builds the URL slug of a post from its date and title. The result
// is ASCII only, lower case, with every run of other characters collapsed
// into a single hyphen.
func Slugify(date, title string) string {
	s := slug.Make(slug.Substitute(date+"-"+title, symbolSub))
	s = multipleDashes.ReplaceAllString(strings.ReplaceAll(s, "_", "-"), "-")
	return strings.Trim(s, "-")
}
