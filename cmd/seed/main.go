// Command seed populates the database with demo users and a realistic
// spread of tickets so the dashboard has something to show out of the box.
// It applies pending migrations first and is safe to re-run: duplicate
// ticket keys and usernames are skipped.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsboard/ticket-health-backend/internal/adapters/secondary/postgres"
	"github.com/opsboard/ticket-health-backend/internal/config"
	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
	"github.com/opsboard/ticket-health-backend/internal/infrastructure/logging"
)

const (
	seedTicketCount = 200
	firstTicketKey  = 1000
)

var (
	teams      = []string{"Platform", "Data", "ML", "Security", "Infrastructure", "API"}
	severities = []string{"Critical", "High", "Medium", "Low"}
	statuses   = []string{domain.StatusOpen, domain.StatusInProgress, domain.StatusResolved, domain.StatusClosed, domain.StatusBlocked}
	assignees  = []string{"alice", "bob", "carol", "dave", "erin", ""}

	summaries = []string{
		"Elevated error rate on ingest pipeline",
		"Search latency above SLO",
		"Nightly batch job failed",
		"Disk pressure on worker nodes",
		"Certificate renewal failed",
		"Replica lag on primary database",
		"Queue backlog growing",
		"Intermittent 502s behind load balancer",
		"Cache hit rate dropped",
		"Deploy rollback required",
	}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      "text",
		Output:      os.Stdout,
		ServiceName: "ticket-health-seed",
		Environment: cfg.App.Environment,
	})

	if err := runMigrations(cfg.Database.URL, logger); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, pool, logger); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seeding complete")
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logger.Info("migrations applied")
	return nil
}

func seed(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	userRepo := postgres.NewUserRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)

	demoUsers := []struct {
		username    string
		displayName string
		password    string
	}{
		{"demo", "Demo User", "demo1234"},
		{"oncall", "On-Call Engineer", "oncall1234"},
	}

	for _, u := range demoUsers {
		user, err := domain.NewUser(u.username, u.displayName, u.password)
		if err != nil {
			return err
		}
		if _, err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, apperrors.ErrUserExists) {
				logger.Info("user already exists, skipping", "username", u.username)
				continue
			}
			return err
		}
		logger.Info("user created", "username", u.username)
	}

	// Fixed seed keeps re-runs and demos reproducible.
	rng := rand.New(rand.NewSource(42))
	now := time.Now().UTC()

	created := 0
	for i := 0; i < seedTicketCount; i++ {
		ticket, err := randomTicket(rng, now, firstTicketKey+i)
		if err != nil {
			return err
		}

		if _, err := ticketRepo.Create(ctx, ticket); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateKey) {
				continue
			}
			return err
		}
		created++
	}

	logger.Info("tickets seeded", "created", created, "requested", seedTicketCount)
	return nil
}

func randomTicket(rng *rand.Rand, now time.Time, keyNumber int) (*domain.Ticket, error) {
	team := teams[rng.Intn(len(teams))]
	severity := severities[rng.Intn(len(severities))]
	status := statuses[rng.Intn(len(statuses))]

	// Spread creation over the last 90 days.
	createdAt := now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour)

	params := domain.TicketParams{
		Key:      fmt.Sprintf("ES-%d", keyNumber),
		Summary:  summaries[rng.Intn(len(summaries))],
		Status:   status,
		Priority: severity,
		Assignee: assignees[rng.Intn(len(assignees))],
		Team:     &team,
		Severity: &severity,
		Created:  createdAt,
	}

	// Leave roughly one in eight tickets without team/severity so the
	// Unknown bucket shows up in the cross-tab and ranking.
	if rng.Intn(8) == 0 {
		params.Team = nil
	}
	if rng.Intn(8) == 0 {
		params.Severity = nil
	}

	ticket, err := domain.NewTicket(params)
	if err != nil {
		return nil, err
	}

	// About 60% mitigated, measured a few hours after creation.
	if rng.Intn(10) < 6 {
		ticket.MarkMitigated(createdAt.Add(time.Duration(1+rng.Intn(12)) * time.Hour))
	}

	// About 40% resolved; resolution lands between one hour and five days
	// after creation.
	if rng.Intn(10) < 4 {
		resolvedAt := createdAt.Add(time.Duration(1+rng.Intn(120)) * time.Hour)
		ticket.SetStatus(domain.StatusResolved, resolvedAt)
	}

	return ticket, nil
}
