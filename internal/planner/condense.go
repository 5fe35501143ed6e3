package planner

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	htmldom "golang.org/x/net/html"

	"reconpipe/internal/utils"
)

const defaultOutputLimit = 4000

var (
	htmlMarker = regexp.MustCompile(`(?i)<(html|body|head|a\s|form|div|title)[\s>]`)
	spaceRun   = regexp.MustCompile(`\s+`)
)

// CondenseOutput prepares command output for a mining prompt. HTML bodies
// (curl, http probes) are reduced to visible text plus discovered links and
// form actions, resolved against <base> or the canonical URL when present.
// The result is cut to at most limit bytes.
func CondenseOutput(output string, limit int) string {
	if limit <= 0 {
		limit = defaultOutputLimit
	}
	out := output
	if htmlMarker.MatchString(output) {
		if text, ok := htmlSummary(output); ok {
			out = text
		}
	}
	return utils.Truncate(strings.TrimSpace(out), limit)
}

func htmlSummary(raw string) (string, bool) {
	root, err := htmldom.Parse(strings.NewReader(raw))
	if err != nil {
		return "", false
	}
	doc := goquery.NewDocumentFromNode(root)
	doc.Find("script, style, noscript").Remove()

	var sb strings.Builder
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		sb.WriteString("Title: " + title + "\n")
	}
	text := strings.TrimSpace(spaceRun.ReplaceAllString(doc.Find("body").Text(), " "))
	if text != "" {
		sb.WriteString("Text: " + text + "\n")
	}

	base := doc.Find("base[href]").First().AttrOr("href", "")
	if base == "" {
		base = doc.Find(`link[rel="canonical"]`).First().AttrOr("href", "")
	}
	seen := map[string]struct{}{}
	var links []string
	doc.Find("a[href], form[action]").Each(func(_ int, s *goquery.Selection) {
		ref, ok := s.Attr("href")
		if !ok {
			ref, _ = s.Attr("action")
		}
		ref = strings.TrimSpace(ref)
		if ref == "" || strings.HasPrefix(ref, "#") {
			return
		}
		ref = utils.ResolveLink(base, ref)
		if _, dup := seen[ref]; dup {
			return
		}
		seen[ref] = struct{}{}
		links = append(links, ref)
	})
	if len(links) > 0 {
		sb.WriteString("Links: " + strings.Join(links, " ") + "\n")
	}
	return sb.String(), sb.Len() > 0
}
