package hltv

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/akimerslys/hltv-go/document"
	"github.com/akimerslys/hltv-go/models"
)

// LiveMatches returns all matches currently being played, with the maps in
// play and the star rating. An empty slice means nothing is live right now.
func (c *Client) LiveMatches(ctx context.Context) ([]models.LiveMatch, error) {
	doc, err := c.fetcher.Fetch(ctx, baseURL+"/matches")
	if err != nil {
		return nil, err
	}
	return parseLiveMatches(doc)
}

func parseLiveMatches(doc *document.Document) ([]models.LiveMatch, error) {
	container := doc.Find("div.liveMatchesContainer")
	if container == nil {
		return []models.LiveMatch{}, nil
	}

	names := container.FindAll("div.matchTeamName.text-ellipsis")
	entries := container.FindAll("div.liveMatch-container")

	matches := make([]models.LiveMatch, 0, len(entries))
	for i, entry := range entries {
		var team1, team2 string
		if 2*i+1 < len(names) {
			team1 = strings.TrimSpace(names[2*i].Text())
			team2 = strings.TrimSpace(names[2*i+1].Text())
		}
		matches = append(matches, models.LiveMatch{
			Team1: team1,
			Team2: team2,
			Maps:  strings.Split(entry.Attr("data-maps"), ","),
			Stars: entry.Attr("stars"),
		})
	}
	return matches, nil
}

// UpcomingMatches returns scheduled matches grouped by day, up to days
// sections ahead, keeping only matches rated at least minRating stars.
func (c *Client) UpcomingMatches(ctx context.Context, days, minRating int) ([]models.MatchDay, error) {
	doc, err := c.fetcher.Fetch(ctx, baseURL+"/matches")
	if err != nil {
		return nil, err
	}
	return parseUpcomingMatches(doc, days, minRating)
}

func parseUpcomingMatches(doc *document.Document, days, minRating int) ([]models.MatchDay, error) {
	var matchDays []models.MatchDay
	for i, section := range doc.FindAll("div.upcomingMatchesSection") {
		if i >= days {
			break
		}
		headline := section.Find("span.matchDayHeadline")
		if headline == nil {
			return nil, layoutErr("upcoming matches day headline not found")
		}
		fields := strings.Fields(headline.Text())
		if len(fields) == 0 {
			return nil, layoutErr("upcoming matches day headline is empty")
		}
		date := fields[len(fields)-1]

		var matches []models.UpcomingMatch
		for _, match := range section.FindAll("div.upcomingMatch") {
			rating, _ := strconv.Atoi(match.Attr("stars"))
			if rating < minRating {
				continue
			}
			link := match.Find("a")
			if link == nil {
				return nil, layoutErr("upcoming match link not found")
			}

			var matchTime, maps string
			if el := match.Find("div.matchTime"); el != nil {
				matchTime = strings.TrimSpace(el.Text())
			}
			if el := match.Find("div.matchMeta"); el != nil {
				if text := strings.TrimSpace(el.Text()); text != "" {
					maps = text[len(text)-1:]
				}
			}

			team1, team2 := "TBD", "TBD"
			if teams := match.FindAll("div.matchTeamName.text-ellipsis"); len(teams) >= 2 {
				team1 = strings.TrimSpace(teams[0].Text())
				team2 = strings.TrimSpace(teams[1].Text())
			}

			var event string
			if el := match.Find("div.matchEventName.gtSmartphone-only"); el != nil {
				event = strings.TrimSpace(el.Text())
			} else if el := match.Find("span.line-clamp-3"); el != nil {
				event = strings.TrimSpace(el.Text())
			}

			matches = append(matches, models.UpcomingMatch{
				MatchID: hrefPart(link.Attr("href"), 2),
				Team1:   team1,
				Team2:   team2,
				Time:    matchTime,
				Maps:    maps,
				Rating:  rating,
				Event:   event,
			})
		}
		matchDays = append(matchDays, models.MatchDay{Date: date, Matches: matches})
	}
	return matchDays, nil
}

var nicknameRe = regexp.MustCompile(`'(.*?)'`)

// MatchInfo returns the detail view of one match page. Player statistics
// are extracted only for finished matches and only when withStats is set.
func (c *Client) MatchInfo(ctx context.Context, matchID, team1, team2, eventTitle string, withStats bool) (*models.MatchInfo, error) {
	url := fmt.Sprintf("%s/matches/%s/%s-vs-%s-%s",
		baseURL, matchID, slug(team1), slug(team2), slug(eventTitle))
	doc, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseMatchInfo(doc, matchID, withStats)
}

func parseMatchInfo(doc *document.Document, matchID string, withStats bool) (*models.MatchInfo, error) {
	countdown := doc.Find("div.countdown")
	if countdown == nil {
		return nil, layoutErr("match status not found")
	}
	status := strings.TrimSpace(countdown.Text())

	info := &models.MatchInfo{ID: matchID, Status: status}

	if status == "Match over" {
		teams := doc.FindAll("div.team")
		if len(teams) >= 2 {
			info.Score1 = lastChar(teams[0].Text())
			info.Score2 = lastChar(teams[1].Text())
		}
	}

	for _, holder := range doc.FindAll("div.mapholder") {
		name := holder.Find("div.mapname")
		if name == nil {
			return nil, layoutErr("map name not found")
		}
		score1, score2 := "0", "0"
		if scores := holder.FindAll("div.results-team-score"); len(scores) >= 2 {
			score1 = strings.TrimSpace(scores[0].Text())
			score2 = strings.TrimSpace(scores[1].Text())
		}
		info.Maps = append(info.Maps, models.MapResult{
			Name:   strings.TrimSpace(name.Text()),
			Score1: score1,
			Score2: score2,
		})
	}

	if withStats && status == "Match over" {
		tables := doc.FindAll("table.table.totalstats")
		if len(tables) > 2 {
			tables = tables[:2]
		}
		for _, table := range tables {
			rows := table.FindAll("tr")
			if len(rows) < 2 {
				continue
			}
			for _, row := range rows[1:] {
				link := row.Find("a.flagAlign")
				name := row.Find("div.statsPlayerName")
				if link == nil || name == nil {
					return nil, layoutErr("player scoreboard line not found")
				}
				nickname := ""
				if m := nicknameRe.FindStringSubmatch(name.Text()); m != nil {
					nickname = m[1]
				}
				info.Stats = append(info.Stats, models.PlayerStat{
					ID:       hrefPart(link.Attr("href"), 2),
					Nickname: nickname,
					KD:       cellText(row, "td.kd"),
					ADR:      cellText(row, "td.adr"),
					Rating:   cellText(row, "td.rating"),
				})
			}
		}
	}
	return info, nil
}

func cellText(row *document.Element, selector string) string {
	if el := row.Find(selector); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

// lastChar returns the final character of the text with whitespace stripped,
// the score digit on the match page's team blocks.
func lastChar(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", ""))
	if s == "" {
		return ""
	}
	return s[len(s)-1:]
}
