package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
)

const (
	demoEmail    = "demo@storefront.local"
	demoPassword = "demo-password"
)

var demoItems = []model.Item{
	{Title: "Yeti Hondo", Description: "Soft cooler that keeps drinks cold all day", Price: 3423},
	{Title: "KITH Hoodie", Description: "Heavyweight fleece hoodie", Price: 12500},
	{Title: "Nike Air Max", Description: "Classic runners with visible air unit", Price: 18900},
	{Title: "Leather Tote", Description: "Full-grain leather carryall", Price: 22000},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Item{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)

	user, err := seedDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	created, err := seedItems(ctx, itemRepo, user)
	if err != nil {
		log.Fatalf("Failed to seed items: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Demo user: %s", user.Email)
	log.Printf("  - Items created: %d", created)
}

// seedDemoUser creates the demo account unless it already exists.
func seedDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	email := service.NormalizeEmail(demoEmail)

	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		log.Printf("Demo user %s already exists, skipping", email)
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := auth.NewPasswordHasher().Hash(demoPassword)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		Name:         "Demo User",
		PasswordHash: hashed,
		Permissions:  model.Permissions{model.PermissionUser},
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// seedItems creates the demo catalog owned by user.
func seedItems(ctx context.Context, repo repository.ItemRepository, user *model.User) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Printf("Found %d existing items, skipping item seed", len(existing))
		return 0, nil
	}

	created := 0
	for _, item := range demoItems {
		item.UserID = user.ID
		if err := repo.Create(ctx, &item); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
