package hltv

import (
	"context"
	"strings"
	"time"

	"github.com/akimerslys/hltv-go/document"
	"github.com/akimerslys/hltv-go/models"
)

// LastNews returns front-page articles grouped by publication day. The front
// page shows today, yesterday and an older block; onlyToday keeps the first,
// onlyFeatured drops the regular article lists, maxRegNews caps the number
// of regular articles collected overall.
func (c *Client) LastNews(ctx context.Context, maxRegNews int, onlyToday, onlyFeatured bool) ([]models.NewsDay, error) {
	doc, err := c.fetcher.Fetch(ctx, baseURL+"/")
	if err != nil {
		return nil, err
	}
	return parseLastNews(doc, time.Now().In(hltvTime()), maxRegNews, onlyToday, onlyFeatured)
}

// hltvTime is the site's publication timezone.
func hltvTime() *time.Location {
	loc, err := time.LoadLocation("Europe/Copenhagen")
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseLastNews(doc *document.Document, now time.Time, maxRegNews int, onlyToday, onlyFeatured bool) ([]models.NewsDay, error) {
	dayLabels := []string{
		now.Format("02-01"),
		now.AddDate(0, 0, -1).Format("02-01"),
		"old",
	}

	var days []models.NewsDay
	regNews := 0
	for i, block := range doc.FindAll("div.standard-box.standard-list") {
		date := "old"
		if i < len(dayLabels) {
			date = dayLabels[i]
		}

		day := models.NewsDay{Date: date}
		for _, article := range block.FindAll("a.newsline.article.featured.breaking-featured") {
			title := article.Find("div.featured-newstext")
			desc := article.Find("div.featured-small-newstext")
			if title == nil || desc == nil {
				return nil, layoutErr("featured article incomplete")
			}
			day.Featured = append(day.Featured, models.FeaturedNews{
				ID:          hrefPart(article.Attr("href"), 2),
				Title:       strings.TrimSpace(title.Text()),
				Description: strings.TrimSpace(desc.Text()),
			})
		}

		if !onlyFeatured {
			for _, article := range block.FindAll("a.newsline.article") {
				if regNews >= maxRegNews {
					break
				}
				// The featured selector matches these too; skip them here.
				if strings.Contains(article.Attr("class"), "featured") {
					continue
				}
				title := article.Find("div.newstext")
				posted := article.Find("div.newsrecent")
				if title == nil || posted == nil {
					return nil, layoutErr("article incomplete")
				}
				day.News = append(day.News, models.NewsItem{
					ID:     hrefPart(article.Attr("href"), 2),
					Title:  strings.TrimSpace(title.Text()),
					Posted: strings.TrimSpace(posted.Text()),
				})
				regNews++
			}
		}

		days = append(days, day)
		if onlyToday {
			break
		}
	}
	return days, nil
}
