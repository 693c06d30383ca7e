package models

// TotalStats is the aggregate interaction summary across all posts.
type TotalStats struct {
	TotalViews    int64 `json:"total_views"`
	TotalLikes    int64 `json:"total_likes"`
	TotalShares   int64 `json:"total_shares"`
	TotalClicks   int64 `json:"total_clicks"`
	TotalComments int64 `json:"total_comments"`
}

// DashboardStats is the admin dashboard snapshot: every post joined with its
// live comment count plus summed totals.
type DashboardStats struct {
	Posts      []*Post    `json:"posts"`
	// Key kept camelCase for the previously deployed admin dashboard.
	TotalStats TotalStats `json:"totalStats"`
}
