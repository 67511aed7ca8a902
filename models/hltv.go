package models

// TeamRank is one entry of the world ranking page.
type TeamRank struct {
	ID     string `json:"id"`
	Rank   string `json:"rank"`
	Title  string `json:"title"`
	Points string `json:"points"`
	Change string `json:"change"` // difference since the last ranking update
}

// BigResult is one finished match from the big-results block of the results page.
type BigResult struct {
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Score1 string `json:"score1"`
	Score2 string `json:"score2"`
}

// MatchResult is one finished match of an event results listing.
type MatchResult struct {
	ID     string `json:"id"`
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Score1 string `json:"score1"`
	Score2 string `json:"score2"`
}

// DayResults groups match results under their headline date.
type DayResults struct {
	Date    string        `json:"date"`
	Matches []MatchResult `json:"matches"`
}

// EventMatch is a live or upcoming match on an event's match page.
// Date is "LIVE" for matches currently being played.
type EventMatch struct {
	ID    string `json:"id"`
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
	Date  string `json:"date"`
}

// Event is one entry of the events listing page.
type Event struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // "day-month"
	EndDate   string `json:"end_date"`
}

// EventGroup is one group-stage group on an event page.
type EventGroup struct {
	Name  string   `json:"name"`
	Teams []string `json:"teams"`
}

// EventInfo is the detail view of a single event page.
type EventInfo struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Prize     string       `json:"prize"`
	TeamCount string       `json:"team_count"`
	Location  string       `json:"location"`
	Groups    []EventGroup `json:"groups"`
}

// TeamInfo is the detail view of a team page.
type TeamInfo struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Rank          string   `json:"rank"`
	Players       []string `json:"players"`
	Coach         string   `json:"coach"`
	AverageAge    string   `json:"average_age"`
	WeeksInTop20  string   `json:"weeks_in_top20"`
	LastTrophy    string   `json:"last_trophy"`
	TotalTrophies int      `json:"total_trophies"`
}

// PlayerRank is one entry of the yearly top-players statistics page.
type PlayerRank struct {
	ID     string `json:"id"`
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Team   string `json:"team"`
	Maps   string `json:"maps"` // maps played
	Rating string `json:"rating"`
}

// UpcomingMatch is one scheduled match on the matches page.
type UpcomingMatch struct {
	MatchID string `json:"match_id"`
	Team1   string `json:"team1"`
	Team2   string `json:"team2"`
	Time    string `json:"time"`
	Maps    string `json:"maps"` // best-of count
	Rating  int    `json:"rating"`
	Event   string `json:"event"`
}

// MatchDay groups upcoming matches under their headline date.
type MatchDay struct {
	Date    string          `json:"date"`
	Matches []UpcomingMatch `json:"matches"`
}

// LiveMatch is one match currently being played.
type LiveMatch struct {
	Team1 string   `json:"team1"`
	Team2 string   `json:"team2"`
	Maps  []string `json:"maps"`
	Stars string   `json:"stars"`
}

// MapResult is the per-map score line of a match page.
type MapResult struct {
	Name   string `json:"name"`
	Score1 string `json:"score1"`
	Score2 string `json:"score2"`
}

// PlayerStat is one player's scoreboard line on a finished match page.
type PlayerStat struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	KD       string `json:"kd"`
	ADR      string `json:"adr"`
	Rating   string `json:"rating"`
}

// MatchInfo is the detail view of a single match page.
type MatchInfo struct {
	ID     string       `json:"id"`
	Score1 string       `json:"score1"`
	Score2 string       `json:"score2"`
	Status string       `json:"status"`
	Maps   []MapResult  `json:"maps"`
	Stats  []PlayerStat `json:"stats"`
}

// FeaturedNews is one featured article on the front page.
type FeaturedNews struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewsItem is one regular article on the front page.
type NewsItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Posted string `json:"posted"`
}

// NewsDay groups front-page articles under their publication day.
type NewsDay struct {
	Date     string         `json:"date"`
	Featured []FeaturedNews `json:"featured"`
	News     []NewsItem     `json:"news"`
}
