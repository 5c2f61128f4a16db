package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"eventhorizon/internal/config"
	"eventhorizon/internal/database"
	"eventhorizon/internal/logger"
	"eventhorizon/internal/middleware"
	"eventhorizon/internal/models"
	"eventhorizon/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	adminEmail    = flag.String("admin-email", "admin@eventhorizon.local", "Email for the seeded admin account")
	adminPassword = flag.String("admin-password", "", "Password for the seeded admin account (required)")
	withDemo      = flag.Bool("demo", false, "Seed demo categories, venues, events and tickets")
)

type Seeder struct {
	repos *repository.Repositories
}

func main() {
	flag.Parse()

	logger.Init("info", "text")
	slog.Info("Starting seeder...")

	if *adminPassword == "" {
		slog.Error("admin-password flag is required")
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	seeder := &Seeder{repos: repository.NewRepositories(db)}
	ctx := context.Background()

	admin, err := seeder.seedAdmin(ctx, *adminEmail, *adminPassword)
	if err != nil {
		slog.Error("Failed to seed admin", "error", err)
		os.Exit(1)
	}

	if *withDemo {
		if err := seeder.seedDemo(ctx, admin); err != nil {
			slog.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Seeding completed successfully!")
}

// seedAdmin creates (or reuses) the admin account and makes sure it carries
// the admin role.
func (s *Seeder) seedAdmin(ctx context.Context, email, password string) (*models.User, error) {
	admin, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if admin == nil {
		admin = &models.User{
			Email:        email,
			PasswordHash: middleware.HashPassword(password),
			FirstName:    "Admin",
			LastName:     "User",
		}
		if err := s.repos.Users.Create(ctx, admin); err != nil {
			return nil, fmt.Errorf("failed to create admin: %w", err)
		}
		slog.Info("Created admin user", "email", email, "id", admin.ID)
	} else {
		slog.Info("Admin user already exists", "email", email, "id", admin.ID)
	}

	for _, role := range []string{models.RoleAdmin, models.RoleUser} {
		if _, err := s.repos.Users.GrantRole(ctx, admin.ID, role); err != nil {
			return nil, fmt.Errorf("failed to grant %s role: %w", role, err)
		}
	}

	return admin, nil
}

// seedDemo fills the catalog with a small demo data set organized by the
// admin account.
func (s *Seeder) seedDemo(ctx context.Context, admin *models.User) error {
	category := &models.Category{Name: "Conferences", Description: strPtr("Tech and business conferences")}
	if err := s.repos.Categories.Create(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	venue := &models.Venue{
		Name:        "Grand Hall",
		Description: strPtr("Main conference hall downtown"),
		Address:     "1 Expo Avenue",
		Capacity:    500,
	}
	if err := s.repos.Venues.Create(ctx, venue); err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}

	start := time.Now().AddDate(0, 1, 0).Truncate(time.Hour)
	event := &models.Event{
		Title:       "EventHorizon Conf",
		Description: strPtr("Annual community conference"),
		StartDate:   start,
		EndDate:     start.Add(8 * time.Hour),
		VenueID:     venue.ID,
		CategoryID:  category.ID,
		OrganizerID: admin.ID,
	}
	if err := s.repos.Events.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	tickets := []models.Ticket{
		{EventID: event.ID, Name: "Standard", Price: decimal.NewFromInt(50), Quantity: 400},
		{EventID: event.ID, Name: "VIP", Price: decimal.NewFromInt(150), Quantity: 50},
	}
	for i := range tickets {
		if err := s.repos.Tickets.Create(ctx, &tickets[i]); err != nil {
			return fmt.Errorf("failed to create ticket %q: %w", tickets[i].Name, err)
		}
	}

	slog.Info("Seeded demo catalog",
		"category_id", category.ID,
		"venue_id", venue.ID,
		"event_id", event.ID,
		"tickets", len(tickets))

	return nil
}

func strPtr(s string) *string {
	return &s
}
