package imgur

import (
	"net/url"
	"regexp"
	"strconv"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
)

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// route is an API path template with its bindings, e.g.
// "/3/account/{user}/albums/{page}" bound to user=sarah. The page binding
// is supplied per request by the pagination loop.
type route struct {
	template string
	bindings map[string]string
}

func newRoute(template string, pairs ...string) route {
	bindings := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		bindings[pairs[i]] = pairs[i+1]
	}

	return route{template: template, bindings: bindings}
}

func (r route) String() string {
	return r.expand(nil)
}

// page expands the template for one page index.
func (r route) page(n int) string {
	return r.expand(map[string]string{constants.PagePlaceholder: strconv.Itoa(n)})
}

// expand substitutes bindings, escaping each value as a path segment.
// Unbound placeholders are left in place.
func (r route) expand(extra map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(r.template, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := extra[name]; ok {
			return url.PathEscape(value)
		}

		if value, ok := r.bindings[name]; ok {
			return url.PathEscape(value)
		}

		return match
	})
}
