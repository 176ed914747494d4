package cpfolio

import (
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// Sentiment is the keyword-based reading of a headline. It is a coarse
// classifier over the title text only, not an analysis of the article.
type Sentiment int

const (
	NeutralNews Sentiment = iota
	PositiveNews
	NegativeNews
)

func (s Sentiment) String() string {
	switch s {
	case PositiveNews:
		return "Positive"
	case NegativeNews:
		return "Negative"
	}
	return "Neutral"
}

// Headline is one news item for a holding.
type Headline struct {
	Title     string
	Link      string
	Source    string
	Published string
	Sentiment Sentiment
}

// NewsConfig drives the headline fetch. Queries maps a symbol to its news
// search query; a symbol without an entry is searched verbatim, which works
// poorly for tickers like "D05.SI", so the defaults name the issuers.
type NewsConfig struct {
	MaxPerHolding int               `toml:"max_per_holding"`
	Queries       map[string]string `toml:"queries"`
}

// Bullish and bearish headline vocabulary, matched as substrings of the
// lowercased title.
var (
	positiveWords = []string{
		"upgrade", "buy", "outperform", "overweight", "profit",
		"earnings beat", "record", "surge", "growth", "grows", "dividend",
		"hike", "raises", "bullish", "rally", "rallies", "gain", "strong",
		"recovery", "recover", "optimistic", "positive", "boost",
		"expansion", "expand", "acquisition", "deal", "partnership",
	}
	negativeWords = []string{
		"downgrade", "sell", "underperform", "underweight", "loss",
		"earnings miss", "decline", "drop", "fall", "plunge", "crash",
		"slump", "weak", "risk", "warning", "warns", "concern", "bearish",
		"recession", "layoff", "cut", "debt", "default", "fraud",
		"investigation", "lawsuit", "fine", "inflation", "headwind",
		"slowdown", "contraction",
	}
)

// ClassifySentiment scores a title by its bullish and bearish vocabulary;
// the larger count wins, ties are neutral.
func ClassifySentiment(title string) Sentiment {
	lower := strings.ToLower(title)
	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	switch {
	case pos > neg:
		return PositiveNews
	case neg > pos:
		return NegativeNews
	default:
		return NeutralNews
	}
}

const newsBase = "https://news.google.com"

// FetchNews retrieves the latest headlines per symbol from the Google News
// RSS feed, classified by sentiment. Failures degrade to an empty list per
// symbol, never to an error: headlines are context, not data the
// evaluation depends on.
func (c NewsConfig) FetchNews(client *http.Client, symbols []string) map[string][]Headline {
	return c.fetchNews(client, newsBase, symbols)
}

func (c NewsConfig) fetchNews(client *http.Client, base string, symbols []string) map[string][]Headline {
	out := make(map[string][]Headline, len(symbols))
	for _, symbol := range symbols {
		query := c.Queries[symbol]
		if query == "" {
			query = symbol
		}
		addr := fmt.Sprintf("%s/rss/search?q=%s&hl=en-SG&gl=SG&ceid=SG:en", base, url.QueryEscape(query))
		headlines, err := fetchFeed(client, addr)
		if err != nil {
			log.Printf("warning, news fetch %s failed (ignored): %v", symbol, err)
			out[symbol] = nil
			continue
		}
		if c.MaxPerHolding > 0 && len(headlines) > c.MaxPerHolding {
			headlines = headlines[:c.MaxPerHolding]
		}
		out[symbol] = headlines
	}
	return out
}

// rssFeed is the slice of the RSS document the headlines need.
type rssFeed struct {
	Items []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Source  string `xml:"source"`
}

func fetchFeed(client *http.Client, addr string) ([]Headline, error) {
	resp, err := client.Get(addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed replied %s", resp.Status)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}

	headlines := make([]Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, Headline{
			Title:     title,
			Link:      strings.TrimSpace(item.Link),
			Source:    strings.TrimSpace(item.Source),
			Published: strings.TrimSpace(item.PubDate),
			Sentiment: ClassifySentiment(title),
		})
	}
	return headlines, nil
}
