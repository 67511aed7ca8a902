package hltv

import (
	"context"
	"fmt"
	"strings"

	"github.com/akimerslys/hltv-go/document"
	"github.com/akimerslys/hltv-go/models"
)

// BigResults returns finished matches from the big-results block of the
// results page, starting at the given offset.
func (c *Client) BigResults(ctx context.Context, offset int) ([]models.BigResult, error) {
	doc, err := c.fetcher.Fetch(ctx, fmt.Sprintf("%s/results?offset=%d", baseURL, offset))
	if err != nil {
		return nil, err
	}
	return parseBigResults(doc)
}

func parseBigResults(doc *document.Document) ([]models.BigResult, error) {
	container := doc.Find("div.big-results")
	if container == nil {
		return nil, layoutErr("big results block not found")
	}

	var results []models.BigResult
	for _, res := range container.FindAll("div.result-con") {
		team1 := res.Find("div.team")
		team2 := res.Find("div.team.team-won")
		score := res.Find("td.result-score")
		if team1 == nil || team2 == nil || score == nil {
			return nil, layoutErr("result line missing team or score")
		}
		score1, score2 := splitScore(score.Text())
		results = append(results, models.BigResult{
			Team1:  strings.TrimSpace(team1.Text()),
			Team2:  strings.TrimSpace(team2.Text()),
			Score1: score1,
			Score2: score2,
		})
	}
	return results, nil
}

// EventResults returns an event's finished matches grouped by day.
func (c *Client) EventResults(ctx context.Context, eventID string) ([]models.DayResults, error) {
	doc, err := c.fetcher.Fetch(ctx, fmt.Sprintf("%s/results?event=%s", baseURL, eventID))
	if err != nil {
		return nil, err
	}
	return parseEventResults(doc)
}

func parseEventResults(doc *document.Document) ([]models.DayResults, error) {
	holder := doc.Find("div.results-holder")
	if holder == nil {
		return nil, layoutErr("results holder not found")
	}

	var days []models.DayResults
	for _, sublist := range holder.FindAll("div.results-sublist") {
		headline := sublist.Find("span.standard-headline")
		if headline == nil {
			return nil, layoutErr("results day headline not found")
		}

		var matches []models.MatchResult
		for _, match := range sublist.FindAll("a.a-reset") {
			teams := match.FindAll("div.team")
			score := match.Find("td.result-score")
			if len(teams) < 2 || score == nil {
				return nil, layoutErr("result line missing team or score")
			}
			score1, score2 := splitScore(score.Text())
			matches = append(matches, models.MatchResult{
				ID:     hrefPart(match.Attr("href"), 2),
				Team1:  strings.TrimSpace(teams[0].Text()),
				Team2:  strings.TrimSpace(teams[1].Text()),
				Score1: score1,
				Score2: score2,
			})
		}
		days = append(days, models.DayResults{
			Date:    strings.TrimSpace(headline.Text()),
			Matches: matches,
		})
	}
	return days, nil
}

// splitScore splits "16 - 9" into its two sides.
func splitScore(s string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}
