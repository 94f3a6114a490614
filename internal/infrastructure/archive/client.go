package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsSummary/internal/domain"
	"NewsSummary/internal/ports"
	"NewsSummary/internal/srt"
)

// Archive coverage starts here and new days are published with a delay.
var archiveEpoch = time.Date(2022, time.March, 25, 0, 0, 0, 0, time.UTC)

const publishLag = 30 * time.Hour

// Client scrapes channel day pages and downloads SRT transcripts from the
// TV news archive.
type Client struct {
	client  *http.Client
	baseURL string
}

var (
	_ ports.InventorySource  = (*Client)(nil)
	_ ports.TranscriptSource = (*Client)(nil)
)

// NewClient wires an HTTP client against the archive base URL.
func NewClient(client *http.Client, baseURL string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// DayInventory scrapes the channel's day page and returns one record per
// listed program. A day the archive has not published yet surfaces as
// *domain.NotAvailableError.
func (c *Client) DayInventory(ctx context.Context, channel, date string, lang domain.Language) ([]domain.ProgramRecord, error) {
	pageURL := fmt.Sprintf("%s/channel/%s/day/%s?lang=%s", c.baseURL, channel, date, lang)

	doc, err := c.fetchDocument(ctx, pageURL, channel, date)
	if err != nil {
		return nil, err
	}

	var programs []domain.ProgramRecord
	doc.Find("div.program").Each(func(_ int, sel *goquery.Selection) {
		rec, ok := parseProgram(sel)
		if ok {
			programs = append(programs, rec)
		}
	})

	if len(programs) == 0 {
		return nil, &domain.NotAvailableError{Channel: channel, Date: date, Reason: "day page lists no programs"}
	}
	return programs, nil
}

// Transcript downloads and parses the program's SRT track. English requests
// the translated track.
func (c *Client) Transcript(ctx context.Context, programID string, lang domain.Language) ([]domain.TranscriptLine, error) {
	name := programID + ".srt"
	if lang == domain.LanguageEnglish {
		name = programID + "_en.srt"
	}
	fileURL := fmt.Sprintf("%s/transcript/%s", c.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsSummary/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &domain.NotAvailableError{Channel: programID, Reason: "transcript not published"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("archive returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	return srt.Parse(string(body)), nil
}

func (c *Client) fetchDocument(ctx context.Context, pageURL, channel, date string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsSummary/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &domain.NotAvailableError{Channel: channel, Date: date, Reason: "day page not published"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("archive returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func parseProgram(sel *goquery.Selection) (domain.ProgramRecord, bool) {
	id, ok := sel.Attr("data-identifier")
	if !ok || id == "" {
		return domain.ProgramRecord{}, false
	}

	rec := domain.ProgramRecord{
		ID:    id,
		Title: strings.TrimSpace(sel.Find(".title").First().Text()),
	}
	if v, ok := sel.Attr("data-start"); ok {
		rec.Start, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := sel.Attr("data-end"); ok {
		rec.End, _ = strconv.ParseFloat(v, 64)
	}
	return rec, true
}

// CheckDate verifies the requested day falls inside the archive's coverage
// window: from the epoch up to roughly thirty hours behind now.
func CheckDate(channel, date string, now time.Time) error {
	day, err := time.Parse("20060102", date)
	if err != nil {
		return fmt.Errorf("invalid date %q (want YYYYMMDD): %w", date, err)
	}

	if day.Before(archiveEpoch) {
		return &domain.NotAvailableError{Channel: channel, Date: date, Reason: "before archive coverage"}
	}
	if day.After(LatestAvailableDay(now)) {
		return &domain.NotAvailableError{Channel: channel, Date: date, Reason: "not yet published"}
	}
	return nil
}

// LatestAvailableDay returns the most recent day the archive has fully
// published.
func LatestAvailableDay(now time.Time) time.Time {
	return now.UTC().Add(-publishLag).Truncate(24 * time.Hour)
}
