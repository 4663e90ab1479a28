package tui

import (
	"net/url"
	"strings"
)

// parseLink extracts uid and token from an emailed link such as
// http://host/verify-email/<uid>/<token>/. A bare "<uid>/<token>" pair is
// accepted too.
func parseLink(link string) (uid, token string, ok bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", "", false
	}

	path := link
	if u, err := url.Parse(link); err == nil && u.Path != "" {
		path = u.Path
	}

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return "", "", false
	}
	return segments[len(segments)-2], segments[len(segments)-1], true
}
