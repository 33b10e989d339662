package main

import (
	"context"
	"flag"
	"log"

	"selection-mapper-be/internal/config"
	"selection-mapper-be/internal/model"
	"selection-mapper-be/internal/repository/specification"
	"selection-mapper-be/internal/repository/unitofwork"
	"selection-mapper-be/pkg/database"

	"github.com/google/uuid"
)

var demoTags = []string{"backend", "database", "golang", "ideas", "todo"}

func main() {
	userFlag := flag.String("user", "", "owner of the seeded tags and note (uuid, random when empty)")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	userId := uuid.New()
	if *userFlag != "" {
		if userId, err = uuid.Parse(*userFlag); err != nil {
			log.Fatalf("Error: invalid -user: %v", err)
		}
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Fatalf("Error: begin transaction: %v", err)
	}

	log.Printf("Seeding tags for user %s...", userId)
	for _, name := range demoTags {
		existing, err := uow.TagRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.Filter("name", name),
		)
		if err != nil {
			uow.Rollback()
			log.Fatalf("Error looking up tag '%s': %v", name, err)
		}
		if len(existing) > 0 {
			log.Printf("Tag '%s' already exists, skipping...", name)
			continue
		}

		tag := &model.Tag{Id: uuid.New(), Name: name, UserId: userId}
		if err := uow.TagRepository().Create(ctx, tag); err != nil {
			uow.Rollback()
			log.Fatalf("Error creating tag '%s': %v", name, err)
		}
		log.Printf("Created tag: %s (%s)", tag.Name, tag.Id)
	}

	note := &model.Note{
		Id:         uuid.New(),
		Title:      "Welcome",
		Content:    "Pick a few tags for this note.",
		NotebookId: uuid.New(),
		UserId:     userId,
	}
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		uow.Rollback()
		log.Fatalf("Error creating note: %v", err)
	}

	if err := uow.Commit(); err != nil {
		log.Fatalf("Error: commit: %v", err)
	}
	log.Printf("Created note %s. Seeding completed!", note.Id)
}
