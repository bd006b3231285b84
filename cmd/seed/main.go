package main

import (
	"context"
	"log"
	"log/slog"

	"teamup-service/internal/config"
	"teamup-service/internal/database"
	"teamup-service/internal/models"
	"teamup-service/internal/repositories/postgres"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	slog.Info("Database connection established")

	ctx := context.Background()
	userRepo := postgres.NewUserRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	slog.Info("Creating test users...")

	testUsers := []struct {
		username string
		email    string
		region   string
		language string
	}{
		{"alice", "alice@teamup.gg", "EU", "en"},
		{"bob", "bob@teamup.gg", "EU", "en"},
		{"carol", "carol@teamup.gg", "NA", "en"},
		{"dmitri", "dmitri@teamup.gg", "EU", "ru"},
	}

	userIDs := make(map[string]string)
	for _, u := range testUsers {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
		user := &models.User{
			ID:       uuid.New().String(),
			Username: u.username,
			Email:    u.email,
			Password: string(hashed),
			Region:   u.region,
			Language: u.language,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			slog.Warn("User might already exist", "username", u.username, "error", err)
			if existing, lookupErr := userRepo.GetByEmail(ctx, u.email); lookupErr == nil && existing != nil {
				userIDs[u.username] = existing.ID
			}
			continue
		}
		userIDs[u.username] = user.ID
		slog.Info("Created user", "username", u.username, "id", user.ID)
	}

	alice, bob := userIDs["alice"], userIDs["bob"]
	if alice == "" || bob == "" {
		slog.Warn("Skipping match seed, alice or bob missing")
		return
	}

	slog.Info("Creating mutual like between alice and bob...")

	for _, pair := range [][2]string{{alice, bob}, {bob, alice}} {
		swipe := &models.Swipe{
			ID:         uuid.New().String(),
			FromUserID: pair[0],
			ToUserID:   pair[1],
			SwipeType:  models.SwipeTypeLike,
		}
		if err := swipeRepo.Create(ctx, swipe); err != nil {
			slog.Warn("Swipe might already exist", "error", err)
		}
	}

	match, err := matchRepo.MatchBetween(ctx, alice, bob)
	if err != nil {
		log.Fatal("Failed to look up match:", err)
	}
	if match == nil {
		match = &models.Match{
			ID:      uuid.New().String(),
			User1ID: alice,
			User2ID: bob,
		}
		if err := matchRepo.Create(ctx, match); err != nil {
			log.Fatal("Failed to create match:", err)
		}
		slog.Info("Created match", "id", match.ID)
	}

	messages := []struct {
		sender  string
		content string
	}{
		{alice, "hey, up for ranked tonight?"},
		{bob, "sure, online after 8"},
	}
	for _, m := range messages {
		msg := &models.Message{
			ID:       uuid.New().String(),
			MatchID:  match.ID,
			SenderID: m.sender,
			Content:  m.content,
		}
		if err := messageRepo.Create(ctx, msg); err != nil {
			slog.Warn("Failed to create message", "error", err)
			continue
		}
		if err := matchRepo.TouchLastMessageAt(ctx, match.ID); err != nil {
			slog.Warn("Failed to touch match", "error", err)
		}
	}

	slog.Info("Seeding complete")
}
