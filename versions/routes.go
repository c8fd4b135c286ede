package versions

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidRoute is returned for paths that are neither browse nor compare routes.
var ErrInvalidRoute = errors.New("invalid route")

// RouteKind distinguishes browse and compare routes.
type RouteKind int

const (
	RouteBrowse RouteKind = iota
	RouteCompare
)

// Route is a parsed viewer location.
type Route struct {
	Kind    RouteKind
	Lang    string
	AddonID int
	Base    int // Compare only
	Head    int // Version shown; the browsed version for browse routes
	Path    string
}

// String renders the route as a URL path with an optional path query.
func (r Route) String() string {
	var s string
	switch r.Kind {
	case RouteCompare:
		s = fmt.Sprintf("/%s/compare/%d/versions/%d...%d/", r.Lang, r.AddonID, r.Base, r.Head)
	default:
		s = fmt.Sprintf("/%s/browse/%d/versions/%d/", r.Lang, r.AddonID, r.Head)
	}
	if r.Path != "" {
		s += "?" + url.Values{"path": {r.Path}}.Encode()
	}
	return s
}

// CompareURL builds a compare route.
func CompareURL(lang string, addonID, base, head int, path string) string {
	return Route{Kind: RouteCompare, Lang: lang, AddonID: addonID, Base: base, Head: head, Path: path}.String()
}

// BrowseURL builds a browse route.
func BrowseURL(lang string, addonID, versionID int) string {
	return Route{Kind: RouteBrowse, Lang: lang, AddonID: addonID, Head: versionID}.String()
}

// ParseRoute parses a browse or compare route. Scheme and host are ignored,
// so full links work too.
func ParseRoute(raw string) (Route, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Route{}, fmt.Errorf("%w: %v", ErrInvalidRoute, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 5 || parts[0] == "" || parts[3] != "versions" {
		return Route{}, fmt.Errorf("%w: %q", ErrInvalidRoute, raw)
	}

	r := Route{Lang: parts[0], Path: u.Query().Get("path")}
	if r.AddonID, err = parseID(parts[2]); err != nil {
		return Route{}, fmt.Errorf("%w: addon id: %v", ErrInvalidRoute, err)
	}

	switch parts[1] {
	case "browse":
		r.Kind = RouteBrowse
		if r.Head, err = parseID(parts[4]); err != nil {
			return Route{}, fmt.Errorf("%w: version id: %v", ErrInvalidRoute, err)
		}
	case "compare":
		r.Kind = RouteCompare
		base, head, found := strings.Cut(parts[4], "...")
		if !found {
			return Route{}, fmt.Errorf("%w: compare needs base...head", ErrInvalidRoute)
		}
		if r.Base, err = parseID(base); err != nil {
			return Route{}, fmt.Errorf("%w: base version id: %v", ErrInvalidRoute, err)
		}
		if r.Head, err = parseID(head); err != nil {
			return Route{}, fmt.Errorf("%w: head version id: %v", ErrInvalidRoute, err)
		}
	default:
		return Route{}, fmt.Errorf("%w: unknown view %q", ErrInvalidRoute, parts[1])
	}
	return r, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive, got %d", id)
	}
	return id, nil
}
