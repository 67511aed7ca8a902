package hltv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akimerslys/hltv-go/document"
	"github.com/akimerslys/hltv-go/models"
)

// TopTeams returns up to maxTeams entries of the current world ranking,
// published every Monday.
func (c *Client) TopTeams(ctx context.Context, maxTeams int) ([]models.TeamRank, error) {
	url := fmt.Sprintf("%s/ranking/teams/%s", baseURL, rankingPath(time.Now()))
	doc, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseTopTeams(doc, maxTeams)
}

func parseTopTeams(doc *document.Document, maxTeams int) ([]models.TeamRank, error) {
	entries := doc.FindAll("div.ranked-team.standard-box")
	if entries == nil {
		return nil, layoutErr("ranking entries not found, probably page not fully loaded")
	}

	var teams []models.TeamRank
	for i, team := range entries {
		if i >= maxTeams {
			break
		}
		position := team.Find("span.position")
		line := team.Find("div.teamLine.sectionTeamPlayers")
		link := team.Find("a.details.moreLink")
		if position == nil || line == nil || link == nil {
			return nil, layoutErr("ranking entry incomplete")
		}
		name := line.Find("span.name")
		points := line.Find("span.points")
		if name == nil || points == nil {
			return nil, layoutErr("ranking team line incomplete")
		}

		var change string
		if el := team.Find("div.change"); el != nil {
			change = strings.TrimSpace(el.Text())
		}

		teams = append(teams, models.TeamRank{
			ID:     hrefPart(link.Attr("href"), -1),
			Rank:   strings.TrimPrefix(strings.TrimSpace(position.Text()), "#"),
			Title:  strings.TrimSpace(name.Text()),
			Points: pointsValue(points.Text()),
			Change: change,
		})
	}
	return teams, nil
}

// pointsValue extracts "912" from "(912 points)".
func pointsValue(s string) string {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimPrefix(fields[0], "(")
}

// TeamInfo returns the detail view of one team page.
func (c *Client) TeamInfo(ctx context.Context, teamID, title string) (*models.TeamInfo, error) {
	doc, err := c.fetcher.Fetch(ctx, fmt.Sprintf("%s/team/%s/%s", baseURL, teamID, slug(title)))
	if err != nil {
		return nil, err
	}
	return parseTeamInfo(doc, teamID, title)
}

func parseTeamInfo(doc *document.Document, teamID, title string) (*models.TeamInfo, error) {
	info := &models.TeamInfo{ID: teamID, Title: title}

	for _, player := range doc.FindAll("span.text-ellipsis.bold") {
		info.Players = append(info.Players, strings.TrimSpace(player.Text()))
	}

	stats := doc.FindAll("div.profile-team-stat")
	if stats == nil {
		return nil, layoutErr("team profile stats not found, probably page not fully loaded")
	}
	for i, stat := range stats {
		switch i {
		case 0:
			if el := stat.Find("a"); el != nil {
				info.Rank = strings.TrimPrefix(strings.TrimSpace(el.Text()), "#")
			}
		case 1:
			if el := stat.Find("span.right"); el != nil {
				info.WeeksInTop20 = strings.TrimSpace(el.Text())
			}
		case 2:
			if el := stat.Find("span.right"); el != nil {
				info.AverageAge = strings.TrimSpace(el.Text())
			}
		case 3:
			if el := stat.Find("span.bold.a-default"); el != nil {
				info.Coach = strings.Trim(strings.TrimSpace(el.Text()), "'")
			}
		}
	}

	trophies := doc.FindAll("div.trophyHolder")
	info.TotalTrophies = len(trophies)
	if len(trophies) > 0 {
		if el := trophies[0].Find("span"); el != nil {
			info.LastTrophy = el.Attr("title")
		}
	}
	return info, nil
}
