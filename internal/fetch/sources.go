package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"

	"github.com/PuerkitoBio/goquery"
)

// Published source locations. The OEWS URL pins one release; use
// ResolveLatestOEWS to discover the newest one instead.
const (
	DefaultOEWSURL   = "https://www.bls.gov/oes/special-requests/oesm24st.zip"
	DefaultSkillsURL = "https://www.onetcenter.org/dl_files/database/db_30_0_excel/Skills.xlsx"

	oewsTablesURL = "https://www.bls.gov/oes/tables.htm"
)

var oewsArchivePattern = regexp.MustCompile(`oesm(\d{2})st\.zip$`)

// ResolveLatestOEWS scrapes the BLS tables page for by-state archive links
// (oesmNNst.zip) and returns the newest release as an absolute URL. Callers
// should fall back to DefaultOEWSURL when resolution fails.
func ResolveLatestOEWS(ctx context.Context, c *Client) (string, error) {
	return resolveLatestOEWS(ctx, c, oewsTablesURL)
}

func resolveLatestOEWS(ctx context.Context, c *Client, tablesURL string) (string, error) {
	page, err := c.Download(ctx, tablesURL)
	if err != nil {
		return "", fmt.Errorf("fetch tables page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse tables page: %w", err)
	}

	base, err := url.Parse(tablesURL)
	if err != nil {
		return "", err
	}

	type release struct {
		year string
		href string
	}
	var releases []release
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := oewsArchivePattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		ref, err := base.Parse(href)
		if err != nil {
			return
		}
		releases = append(releases, release{year: m[1], href: ref.String()})
	})
	if len(releases) == 0 {
		return "", fmt.Errorf("no by-state archive links on %s", tablesURL)
	}

	// Two-digit release years sort lexically within a century.
	sort.Slice(releases, func(i, j int) bool { return releases[i].year > releases[j].year })
	return releases[0].href, nil
}
