package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/crucial707/bloglist/internal/metrics"
	"github.com/crucial707/bloglist/internal/repo"
	"github.com/crucial707/bloglist/internal/stats"
)

// Run starts a background cron that refreshes the post and like gauges from
// the database once a minute. The gauges are also refreshed immediately so
// /metrics is populated right after startup.
func Run(posts *repo.PostRepo) *cron.Cron {
	refresh := func() {
		list, err := posts.List(context.Background())
		if err != nil {
			slog.Error("metrics refresh: list posts", "err", err)
			return
		}
		metrics.SetBlogGauges(len(list), stats.TotalLikes(list))
	}

	refresh()

	c := cron.New()
	if _, err := c.AddFunc("@every 1m", refresh); err != nil {
		slog.Error("metrics refresh: add cron entry", "err", err)
		return c
	}
	c.Start()
	return c
}
