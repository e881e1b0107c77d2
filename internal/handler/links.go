package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/maxviazov/customer-pages-service/internal/pagination"
)

// BuildLinkHeader renders an RFC 8288 Link header with first, prev, next and last
// relations for w, preserving the other query params of the request.
func BuildLinkHeader(basePath string, query url.Values, w pagination.PageWindow) string {
	if w.TotalPages() == 0 {
		return ""
	}
	link := func(page int, rel string) string {
		q := cloneValues(query)
		q.Set("page", strconv.Itoa(page))
		return fmt.Sprintf("<%s?%s>; rel=\"%s\"", basePath, q.Encode(), rel)
	}

	links := []string{link(1, "first")}
	if w.HasPrevious() {
		links = append(links, link(w.PageNumber()-1, "prev"))
	}
	if w.HasNext() {
		links = append(links, link(w.PageNumber()+1, "next"))
	}
	links = append(links, link(w.TotalPages(), "last"))
	return strings.Join(links, ", ")
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return make(url.Values)
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
