package hltv

import (
	"context"
	"fmt"
	"strings"

	"github.com/akimerslys/hltv-go/document"
	"github.com/akimerslys/hltv-go/models"
)

// Events returns tournaments from the events listing page. ongoing includes
// live tournaments, future includes upcoming ones capped at maxEvents.
func (c *Client) Events(ctx context.Context, ongoing, future bool, maxEvents int) ([]models.Event, error) {
	doc, err := c.fetcher.Fetch(ctx, baseURL+"/events")
	if err != nil {
		return nil, err
	}
	return parseEvents(doc, ongoing, future, maxEvents)
}

func parseEvents(doc *document.Document, ongoing, future bool, maxEvents int) ([]models.Event, error) {
	var events []models.Event

	if ongoing {
		today := doc.Find("div.tab-content#TODAY")
		if today == nil {
			return nil, layoutErr("ongoing events tab not found")
		}
		for _, event := range today.FindAll("a.a-reset.ongoing-event") {
			name := event.Find("div.text-ellipsis")
			if name == nil {
				return nil, layoutErr("ongoing event name not found")
			}
			start, end := eventDates(event)
			events = append(events, models.Event{
				ID:        hrefPart(event.Attr("href"), -2),
				Name:      strings.TrimSpace(name.Text()),
				StartDate: start,
				EndDate:   end,
			})
		}
	}

	if future {
		count := 0
		for _, block := range doc.FindAll("div.big-events") {
			for _, event := range block.FindAll("a.a-reset.standard-box.big-event") {
				if count >= maxEvents {
					break
				}
				name := event.Find("div.big-event-name")
				if name == nil {
					return nil, layoutErr("future event name not found")
				}
				start, end := eventDates(event)
				events = append(events, models.Event{
					ID:        hrefPart(event.Attr("href"), -2),
					Name:      strings.TrimSpace(name.Text()),
					StartDate: start,
					EndDate:   end,
				})
				count++
			}
		}
	}
	return events, nil
}

// eventDates reads the pair of formatted date spans of an event card.
func eventDates(event *document.Element) (string, string) {
	spans := event.FindAll("span[data-time-format='MMM do']")
	var start, end string
	if len(spans) >= 1 {
		start, _ = normalizeDate(strings.Fields(spans[0].Text()))
	}
	if len(spans) >= 2 {
		end, _ = normalizeDate(strings.Fields(spans[1].Text()))
	}
	return start, end
}

// EventInfo returns the detail view of one event page.
func (c *Client) EventInfo(ctx context.Context, eventID, title string) (*models.EventInfo, error) {
	doc, err := c.fetcher.Fetch(ctx, fmt.Sprintf("%s/events/%s/%s", baseURL, eventID, slug(title)))
	if err != nil {
		return nil, err
	}
	return parseEventInfo(doc, eventID, title)
}

func parseEventInfo(doc *document.Document, eventID, title string) (*models.EventInfo, error) {
	dateCell := doc.Find("td.eventdate")
	if dateCell == nil {
		return nil, layoutErr("event date not found")
	}

	var start, end string
	spans := dateCell.FindAll("span")
	if len(spans) >= 1 {
		start, _ = normalizeDate(strings.Fields(spans[0].Text()))
	}
	if len(spans) >= 2 {
		// The end span reads like "- Apr 14th 2024"; the date is in the middle.
		fields := strings.Fields(spans[1].Text())
		if len(fields) > 2 {
			end, _ = normalizeDate(fields[1 : len(fields)-1])
		}
	}

	info := &models.EventInfo{
		ID:        eventID,
		Title:     title,
		StartDate: start,
		EndDate:   end,
	}
	if el := doc.Find("td.prizepool.text-ellipsis"); el != nil {
		info.Prize = strings.TrimSpace(el.Text())
	}
	if el := doc.Find("td.teamsNumber"); el != nil {
		info.TeamCount = strings.TrimSpace(el.Text())
	}
	if el := doc.Find("td.location.gtSmartphone-only"); el != nil {
		info.Location = strings.TrimSpace(strings.ReplaceAll(el.Text(), "\n", ""))
	}

	if groups := doc.Find("div.groups-container"); groups != nil {
		for _, table := range groups.FindAll("table.table.standard-box") {
			name := table.Find("td.table-header.group-name")
			if name == nil {
				return nil, layoutErr("group name not found")
			}
			group := models.EventGroup{Name: strings.TrimSpace(name.Text())}
			for _, team := range table.FindAll("div.text-ellipsis") {
				if link := team.Find("a"); link != nil {
					group.Teams = append(group.Teams, strings.TrimSpace(link.Text()))
				}
			}
			info.Groups = append(info.Groups, group)
		}
	}
	return info, nil
}

// EventMatches returns an event's live and upcoming matches. Live matches
// carry "LIVE" as their date.
func (c *Client) EventMatches(ctx context.Context, eventID string) ([]models.EventMatch, error) {
	doc, err := c.fetcher.Fetch(ctx, fmt.Sprintf("%s/events/%s/matches", baseURL, eventID))
	if err != nil {
		return nil, err
	}
	return parseEventMatches(doc)
}

func parseEventMatches(doc *document.Document) ([]models.EventMatch, error) {
	var matches []models.EventMatch

	if live := doc.Find("div.liveMatchesSection"); live != nil {
		for _, match := range live.FindAll("div.liveMatch") {
			link := match.Find("a.match.a-reset")
			teams := match.FindAll("div.matchTeamName.text-ellipsis")
			if link == nil || len(teams) < 2 {
				return nil, layoutErr("live match entry incomplete")
			}
			matches = append(matches, models.EventMatch{
				ID:    hrefPart(link.Attr("href"), 2),
				Team1: strings.TrimSpace(teams[0].Text()),
				Team2: strings.TrimSpace(teams[1].Text()),
				Date:  "LIVE",
			})
		}
	}

	for _, section := range doc.FindAll("div.upcomingMatchesSection") {
		headline := section.Find("span.matchDayHeadline")
		if headline == nil {
			return nil, layoutErr("event matches day headline not found")
		}
		fields := strings.Fields(headline.Text())
		if len(fields) == 0 {
			return nil, layoutErr("event matches day headline is empty")
		}
		date := fields[len(fields)-1]

		for _, match := range section.FindAll("a.match.a-reset") {
			teams := match.FindAll("div.matchTeamName.text-ellipsis")
			if len(teams) < 2 {
				break
			}
			var matchTime string
			if el := match.Find("div.matchTime"); el != nil {
				matchTime = strings.TrimSpace(el.Text())
			}
			matches = append(matches, models.EventMatch{
				ID:    hrefPart(match.Attr("href"), 2),
				Team1: strings.TrimSpace(teams[0].Text()),
				Team2: strings.TrimSpace(teams[1].Text()),
				Date:  date + " " + matchTime,
			})
		}
	}
	return matches, nil
}
