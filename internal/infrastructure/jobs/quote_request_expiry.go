package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	domainRepos "voltbay.backend/internal/domain/repositories"
)

// QuoteRequestExpiryJob handles expiring open quote requests
type QuoteRequestExpiryJob struct {
	repo     domainRepos.QuoteRequestRepository
	interval time.Duration
	stop     chan struct{}
}

func NewQuoteRequestExpiryJob(repo domainRepos.QuoteRequestRepository, interval time.Duration) *QuoteRequestExpiryJob {
	return &QuoteRequestExpiryJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *QuoteRequestExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting quote request expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Quote request expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Quote request expiry job stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

func (j *QuoteRequestExpiryJob) Stop() {
	close(j.stop)
}

// RunOnce expires one batch of overdue open requests.
func (j *QuoteRequestExpiryJob) RunOnce(ctx context.Context) {
	expired, err := j.repo.GetExpiredOpen(ctx, time.Now(), 100)
	if err != nil {
		log.Printf("❌ Error fetching expired quote requests: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	ids := make([]uuid.UUID, 0, len(expired))
	for _, req := range expired {
		ids = append(ids, req.ID)
	}

	if err := j.repo.ExpireRequests(ctx, ids); err != nil {
		log.Printf("❌ Error expiring quote requests: %v", err)
		return
	}

	log.Printf("✅ Expired %d quote requests", len(expired))
}
