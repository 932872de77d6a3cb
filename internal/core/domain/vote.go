package domain

import "time"

type Action string

const (
	ActionLike    Action = "like"
	ActionDislike Action = "dislike"
)

// Vote is one researcher's current opinion on one grant. There is at most
// one row per (GrantID, ResearcherID); a repeated write replaces Action and
// refreshes UpdatedAt in place.
type Vote struct {
	GrantID      string    `json:"grant_id"`
	ResearcherID string    `json:"researcher_id"`
	Action       Action    `json:"action"`
	UpdatedAt    time.Time `json:"timestamp"`
}

type GrantTotals struct {
	GrantID  string `json:"grant_id"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

type GrantRatio struct {
	GrantID    string  `json:"grant_id"`
	Likes      int64   `json:"likes"`
	Dislikes   int64   `json:"dislikes"`
	LikePct    float64 `json:"like_pct"`
	DislikePct float64 `json:"dislike_pct"`
}

type ResearcherVote struct {
	GrantID string `json:"grant_id"`
	Action  Action `json:"action"`
}

type ResearcherSummary struct {
	ResearcherID string `json:"researcher_id"`
	TotalVotes   int64  `json:"total_votes"`
	Likes        int64  `json:"likes"`
	Dislikes     int64  `json:"dislikes"`
	RecentVotes  []Vote `json:"recent_votes"`
}

// TrendBucket groups a grant's current votes by the calendar day (UTC) of
// their last write. Date is formatted as 2006-01-02.
type TrendBucket struct {
	Date     string `json:"date"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

type HealthStats struct {
	TotalVotes        int64      `json:"total_votes"`
	UniqueGrants      int64      `json:"unique_grants"`
	UniqueResearchers int64      `json:"unique_researchers"`
	TopGrant          string     `json:"top_grant,omitempty"`
	LastVoteAt        *time.Time `json:"last_vote_timestamp,omitempty"`
}
