package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/nfcepipe/core/norm"
)

// stampLayout parses the template's timestamps after the colon is removed
// from the "-03:00" style offset suffix.
const stampLayout = "02/01/2006 15:04:05-0700"

// DocumentInfo holds the identifier and authorization fields read from the
// info region.
type DocumentInfo struct {
	AccessKey             string
	Number                string
	Series                string
	IssuedAt              time.Time
	AuthorizationProtocol string
	AuthorizedAt          time.Time
}

// Info reads the access key and the fixed-structure general-information
// list: invoice number, series, emission timestamp, and an authorization
// line combining protocol and timestamp.
//
// The list extraction is all-or-nothing: if any of its steps fails, every
// list field stays empty. The access key is read first and independently,
// so it survives a list failure.
func Info(doc *goquery.Document) (DocumentInfo, error) {
	region := doc.Find(infoRegion)
	info := DocumentInfo{AccessKey: norm.Clean(region.Find("span.chave").Text())}

	fields := textNodes(region.Find("ul.ui-listview li").First())
	if len(fields) < 4 {
		return info, fmt.Errorf("info list has %d fields, want 4", len(fields))
	}

	issuedAt, err := parseStamp(fields[2])
	if err != nil {
		return info, fmt.Errorf("parsing emission timestamp: %w", err)
	}

	// The authorization line reads "<protocol> <date> às <time>".
	auth := norm.CollapseSpaces(strings.ReplaceAll(fields[3], "às", ""))
	protocol, stamp, ok := strings.Cut(auth, " ")
	if !ok {
		return info, fmt.Errorf("malformed authorization line %q", fields[3])
	}
	authorizedAt, err := parseStamp(stamp)
	if err != nil {
		return info, fmt.Errorf("parsing authorization timestamp: %w", err)
	}

	info.Number = norm.Sanitize(fields[0])
	info.Series = norm.Sanitize(fields[1])
	info.IssuedAt = issuedAt
	info.AuthorizationProtocol = protocol
	info.AuthorizedAt = authorizedAt
	return info, nil
}

// parseStamp parses a "15/07/2023 10:30:45-03:00" style timestamp. Only the
// first line of the node text counts; the offset's last colon is removed so
// the stamp matches stampLayout.
func parseStamp(s string) (time.Time, error) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		s = s[:i] + s[i+1:]
	}
	return time.Parse(stampLayout, s)
}

// textNodes returns the trimmed non-empty text nodes directly under sel,
// skipping element children such as <strong> labels and <br> separators.
func textNodes(sel *goquery.Selection) []string {
	var out []string
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) != "#text" {
			return
		}
		if t := strings.TrimSpace(s.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}
