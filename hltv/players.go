package hltv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akimerslys/hltv-go/document"
	"github.com/akimerslys/hltv-go/models"
)

// BestPlayers returns up to top entries of the yearly player statistics,
// filtered to players on top-20 teams.
func (c *Client) BestPlayers(ctx context.Context, top int) ([]models.PlayerRank, error) {
	year := time.Now().UTC().Year()
	url := fmt.Sprintf("%s/stats/players?startDate=%d-01-01&endDate=%d-12-31&rankingFilter=Top20",
		baseURL, year, year)
	doc, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseBestPlayers(doc, top)
}

func parseBestPlayers(doc *document.Document, top int) ([]models.PlayerRank, error) {
	body := doc.Find("tbody")
	if body == nil {
		return nil, layoutErr("player statistics table not found, probably page not fully loaded")
	}

	var players []models.PlayerRank
	rank := 1
	for _, row := range body.FindAll("tr") {
		nameCell := row.Find("td.playerCol")
		teamCell := row.Find("td.teamCol")
		mapsCell := row.Find("td.statsDetail")
		ratingCell := row.Find("td.ratingCol")
		if nameCell == nil || teamCell == nil || mapsCell == nil || ratingCell == nil {
			return nil, layoutErr("player statistics row incomplete")
		}
		link := nameCell.Find("a")
		if link == nil {
			return nil, layoutErr("player link not found")
		}

		players = append(players, models.PlayerRank{
			ID:     hrefPart(link.Attr("href"), 3),
			Rank:   rank,
			Name:   strings.TrimSpace(link.Text()),
			Team:   teamCell.Attr("data-sort"),
			Maps:   strings.TrimSpace(mapsCell.Text()),
			Rating: strings.TrimSpace(ratingCell.Text()),
		})
		rank++
		if rank > top {
			break
		}
	}
	return players, nil
}
