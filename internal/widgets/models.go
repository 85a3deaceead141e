package widgets

import "league_results_renderer/internal/timefmt"

// Session types used by the league API.
const (
	SessionPractice   = "Practice"
	SessionQualifying = "Qualifying"
	SessionRace       = "Race"
)

// ResultTab holds the results of one championship for an event.
type ResultTab struct {
	EventID         int64           `json:"eventId"`
	EventName       string          `json:"eventName"`
	Date            string          `json:"date"`
	TrackName       string          `json:"trackName"`
	ConfigName      string          `json:"configName"`
	DisplayName     string          `json:"displayName"`
	StrengthOfField int             `json:"strengthOfField"`
	SessionResults  []SessionResult `json:"sessionResults"`
}

// SessionResult is the result of a single session of an event.
type SessionResult struct {
	SessionName string      `json:"sessionName"`
	ResultRows  []ResultRow `json:"resultRows"`
}

// ResultRow is one competitor of a session result. MemberID is nil for
// team results. Time fields are normalized while decoding.
type ResultRow struct {
	MemberID            *int64                 `json:"memberId"`
	Firstname           string                 `json:"firstname"`
	Lastname            string                 `json:"lastname"`
	TeamName            string                 `json:"teamName"`
	TeamColor           string                 `json:"teamColor"`
	StartPosition       int                    `json:"startPosition"`
	FinalPosition       int                    `json:"finalPosition"`
	FinalPositionChange int                    `json:"finalPositionChange"`
	QualifyingTime      timefmt.StructuredTime `json:"qualifyingTime"`
	FastestLapTime      timefmt.StructuredTime `json:"fastestLapTime"`
	AvgLapTime          timefmt.StructuredTime `json:"avgLapTime"`
	Interval            timefmt.Interval       `json:"interval"`
	LeadLaps            int                    `json:"leadLaps"`
	CompletedLaps       int                    `json:"completedLaps"`
	RacePoints          float64                `json:"racePoints"`
	BonusPoints         float64                `json:"bonusPoints"`
	PenaltyPoints       float64                `json:"penaltyPoints"`
	TotalPoints         float64                `json:"totalPoints"`
	OldIrating          int                    `json:"oldIrating"`
	Incidents           float64                `json:"incidents"`
}

// StandingTab holds the standings of one championship after an event.
type StandingTab struct {
	Name           string        `json:"name"`
	IsTeamStanding bool          `json:"isTeamStanding"`
	StandingRows   []StandingRow `json:"standingRows"`
}

// StandingRow is one driver or team of a standing. The *Change fields hold
// the difference to the previous standing.
type StandingRow struct {
	Position            int     `json:"position"`
	PositionChange      int     `json:"positionChange"`
	Firstname           string  `json:"firstname"`
	Lastname            string  `json:"lastname"`
	TeamName            string  `json:"teamName"`
	TeamColor           string  `json:"teamColor"`
	RacePoints          float64 `json:"racePoints"`
	RacePointsChange    float64 `json:"racePointsChange"`
	PenaltyPoints       float64 `json:"penaltyPoints"`
	PenaltyPointsChange float64 `json:"penaltyPointsChange"`
	TotalPoints         float64 `json:"totalPoints"`
	TotalPointsChange   float64 `json:"totalPointsChange"`
	RacesCounted        int     `json:"racesCounted"`
	Races               int     `json:"races"`
	PolePositions       int     `json:"polePositions"`
	PolePositionsChange int     `json:"polePositionsChange"`
	Wins                int     `json:"wins"`
	WinsChange          int     `json:"winsChange"`
	Top3                int     `json:"top3"`
	Incidents           float64 `json:"incidents"`
}

// Season identifies a season of a league.
type Season struct {
	SeasonID   int64  `json:"seasonId"`
	SeasonName string `json:"seasonName"`
}

// Event is one entry of a season schedule.
type Event struct {
	EventID    int64     `json:"eventId"`
	Date       string    `json:"date"`
	Name       string    `json:"name"`
	TrackName  string    `json:"trackName"`
	ConfigName string    `json:"configName"`
	Sessions   []Session `json:"sessions"`
}

// Session is one session of a scheduled event.
type Session struct {
	Name        string                 `json:"name"`
	SessionType string                 `json:"sessionType"`
	Laps        int                    `json:"laps"`
	Duration    timefmt.StructuredTime `json:"duration"`
}
