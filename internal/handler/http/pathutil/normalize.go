package pathutil

import "strings"

// Unmatched is the label used for any path outside the route table, so 404
// scans cannot grow metric cardinality.
const Unmatched = "other"

var fixedRoutes = map[string]bool{
	"/contents":        true,
	"/contents/source": true,
	"/health":          true,
	"/ready":           true,
	"/live":            true,
	"/metrics":         true,
}

// NormalizePath maps a request path to the route template it was served by.
//
//	NormalizePath("/contents/654c609c1d32906852a3b01e")            // "/contents/:id"
//	NormalizePath("/contents/654c609c1d32906852a3b01e/like-count") // "/contents/:id/like-count"
//	NormalizePath("/contents/source")                              // "/contents/source"
//	NormalizePath("/contents?level=Easy")                          // "/contents"
//	NormalizePath("/swagger/index.html")                           // "/swagger/*"
//	NormalizePath("/unknown/path")                                 // "other"
//
// Any segment in the id position counts as an id, malformed ones included.
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if fixedRoutes[path] {
		return path
	}
	if strings.HasPrefix(path, "/swagger/") {
		return "/swagger/*"
	}

	segs := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if segs[0] != "contents" || len(segs) < 2 || segs[1] == "" {
		return Unmatched
	}
	switch {
	case len(segs) == 2:
		return "/contents/:id"
	case len(segs) == 3 && segs[2] == "like-count":
		return "/contents/:id/like-count"
	}
	return Unmatched
}
