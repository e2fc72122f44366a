// Package pageaudit fetches the pages behind ranking opportunities and
// checks their title and meta description against on-page SEO length
// guidelines. It is an optional follow-up step: the analysis engine
// points at a page, the audit says whether the page's head tags explain
// the click-through gap.
package pageaudit

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/MarcinG1922/gsc-analyzer/logger"
)

const (
	titleMinLen = 30
	titleMaxLen = 60
	metaMinLen  = 120
	metaMaxLen  = 160

	maxConcurrent = 10
)

// PageAudit is the result for one page.
type PageAudit struct {
	URL            string   `json:"url"`
	Title          string   `json:"title"`
	TitleLength    int      `json:"titleLength"`
	Description    string   `json:"description"`
	DescriptionLen int      `json:"descriptionLen"`
	Issues         []string `json:"issues"`
	Error          string   `json:"error,omitempty"`
}

// Auditor fetches and inspects pages with a bounded HTTP client.
type Auditor struct {
	client   *http.Client
	log      logger.Logger
	maxPages int
}

// New builds an Auditor. maxPages caps how many URLs a single Audit call
// will fetch; zero means no cap.
func New(log logger.Logger, timeout time.Duration, maxPages int) *Auditor {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Auditor{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log:      log,
		maxPages: maxPages,
	}
}

// Audit fetches every distinct URL concurrently and returns one audit per
// URL, sorted by URL for stable output. Fetch failures are reported in
// the audit's Error field rather than failing the batch.
func (a *Auditor) Audit(ctx context.Context, urls []string) []PageAudit {
	distinct := dedupe(urls)
	if a.maxPages > 0 && len(distinct) > a.maxPages {
		distinct = distinct[:a.maxPages]
	}

	audits := make([]PageAudit, len(distinct))
	semaphore := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for i, url := range distinct {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			audits[i] = a.auditPage(ctx, url)
		}(i, url)
	}
	wg.Wait()

	sort.SliceStable(audits, func(i, j int) bool { return audits[i].URL < audits[j].URL })
	return audits
}

func (a *Auditor) auditPage(ctx context.Context, url string) PageAudit {
	audit := PageAudit{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		audit.Error = err.Error()
		return audit
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.log.WithError(err).Warn("page fetch failed", map[string]interface{}{"url": url})
		audit.Error = err.Error()
		return audit
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		audit.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		return audit
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		audit.Error = err.Error()
		return audit
	}

	audit.Title = strings.TrimSpace(doc.Find("title").First().Text())
	audit.TitleLength = len(audit.Title)
	audit.Description, _ = doc.Find("meta[name='description']").Attr("content")
	audit.Description = strings.TrimSpace(audit.Description)
	audit.DescriptionLen = len(audit.Description)
	audit.Issues = checkHead(audit)

	return audit
}

func checkHead(audit PageAudit) []string {
	var issues []string

	switch {
	case audit.TitleLength == 0:
		issues = append(issues, "Missing title tag")
	case audit.TitleLength < titleMinLen:
		issues = append(issues, fmt.Sprintf("Title too short (%d chars, should be %d-%d)", audit.TitleLength, titleMinLen, titleMaxLen))
	case audit.TitleLength > titleMaxLen:
		issues = append(issues, fmt.Sprintf("Title too long (%d chars, should be %d-%d)", audit.TitleLength, titleMinLen, titleMaxLen))
	}

	switch {
	case audit.DescriptionLen == 0:
		issues = append(issues, "Missing meta description")
	case audit.DescriptionLen < metaMinLen:
		issues = append(issues, fmt.Sprintf("Meta description too short (%d chars, should be %d-%d)", audit.DescriptionLen, metaMinLen, metaMaxLen))
	case audit.DescriptionLen > metaMaxLen:
		issues = append(issues, fmt.Sprintf("Meta description too long (%d chars, should be %d-%d)", audit.DescriptionLen, metaMinLen, metaMaxLen))
	}

	return issues
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
