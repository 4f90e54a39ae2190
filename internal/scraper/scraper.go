package scraper

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/cinema-times/internal/showing"
)

const (
	DefaultGuideURL = "https://sheffield.thelight.co.uk/cinema/guide"
	UserAgent       = "cinema-times-cli/1.0 (github.com/pfrederiksen/cinema-times)"
	Timeout         = 30 * time.Second
)

// Scraper handles fetching and parsing cinema showtimes
type Scraper struct {
	client *http.Client
	url    string
	cinema string
}

// New creates a new Scraper for the given guide URL and cinema name
func New(url, cinema string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url:    url,
		cinema: cinema,
	}
}

// URL returns the guide URL the scraper fetches
func (s *Scraper) URL() string {
	return s.url
}

// FetchShowings fetches the guide page and parses all showings
func (s *Scraper) FetchShowings() ([]*showing.Showing, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return s.parseShowings(resp.Body)
}

// parseShowings extracts showings from the guide page, preferring the
// embedded guide data over HTML heuristics
func (s *Scraper) parseShowings(r io.Reader) ([]*showing.Showing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	if movies, err := extractGuideData(doc); err == nil && len(movies) > 0 {
		return s.fromGuideData(movies), nil
	}

	return s.fromHTML(doc), nil
}

var (
	timePattern   = regexp.MustCompile(`\b(\d{1,2}[:.]?\d{2})\b`)
	leadingTimeRe = regexp.MustCompile(`^\d{1,2}[:.]?\d{2}`)

	excludedPhrases = []string{
		"stay in touch", "contact us", "newsletter", "subscribe",
		"follow us", "social media", "coming soon", "book now",
		"buy tickets", "gift cards", "membership", "accessibility",
	}
	excludedCaptions = []string{"captioned", "rewind", "explore", "iconic"}
)

// fromHTML parses showings for the current day from the page structure.
// Containers must carry both a showtime pattern and a plausible title
// element to count as a film listing.
func (s *Scraper) fromHTML(doc *goquery.Document) []*showing.Showing {
	date := time.Now().Format("2006-01-02")
	dateDisplay := time.Now().Format("Mon 02 Jan")

	seen := make(map[string]bool)
	showings := make([]*showing.Showing, 0)

	doc.Find("div, article, section").Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) <= 20 || !timePattern.MatchString(text) {
			return
		}
		if class, _ := sel.Attr("class"); strings.Contains(class, "sessions") {
			return
		}

		title := extractTitle(sel)
		if title == "" {
			return
		}
		for _, phrase := range excludedPhrases {
			if strings.Contains(strings.ToLower(title), phrase) {
				return
			}
		}

		for _, match := range timePattern.FindAllString(text, -1) {
			timeStr := showing.NormalizeTime(match)
			sh := showing.New(s.cinema, title, date, timeStr, showing.SourceHTML)
			sh.DateDisplay = dateDisplay
			if !seen[sh.Key()] {
				seen[sh.Key()] = true
				showings = append(showings, sh)
			}
		}
	})

	return showings
}

// extractTitle finds the most plausible film title within a listing container
func extractTitle(sel *goquery.Selection) string {
	title := ""

	sel.Find("h1, h2, h3, h4, h5, strong, b").EachWithBreak(func(i int, el *goquery.Selection) bool {
		candidate := strings.TrimSpace(el.Text())
		if len(candidate) > 3 && !leadingTimeRe.MatchString(candidate) && !isCaption(candidate) {
			title = candidate
			return false
		}
		return true
	})

	if title == "" {
		if attr, ok := sel.Attr("data-title"); ok && len(attr) > 3 {
			title = attr
		}
	}

	return strings.TrimSpace(strings.ReplaceAll(title, "|", ""))
}

func isCaption(text string) bool {
	lower := strings.ToLower(text)
	for _, c := range excludedCaptions {
		if lower == c {
			return true
		}
	}
	return false
}
