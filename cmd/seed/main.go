package main

import (
	"context"
	"log"
	"os"
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/repository/implementation"
	"training-builder-be/internal/repository/specification"
	"training-builder-be/pkg/database"
	"training-builder-be/pkg/outline"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds the starter template catalog. Safe to re-run: templates are matched
// by name and skipped when present.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	registry := outline.NewRegistry()
	repo := implementation.NewTemplateRepository(db)
	ctx := context.Background()

	templates := []*entity.Template{
		{
			Id:          uuid.New(),
			Name:        "Leadership Fundamentals",
			Category:    "leadership",
			Description: "A balanced half-day session covering core leadership skills with hands-on practice.",
			Outline:     buildOutline(registry, outline.TypeTopic, outline.TypeExercise, outline.TypeInspiration, outline.TypeTopic),
			IsActive:    true,
			SortOrder:   1,
			CreatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Name:        "Team Communication Workshop",
			Category:    "communication",
			Description: "Discussion-heavy format built around group exercises and peer feedback.",
			Outline:     buildOutline(registry, outline.TypeTopic, outline.TypeDiscussion, outline.TypeExercise, outline.TypeBreak, outline.TypeDiscussion),
			IsActive:    true,
			SortOrder:   2,
			CreatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Name:        "Quick Skills Refresher",
			Category:    "general",
			Description: "A compact one-hour format: one topic, one exercise, wrap up.",
			Outline:     buildOutline(registry, outline.TypeTopic, outline.TypeExercise),
			IsActive:    true,
			SortOrder:   3,
			CreatedAt:   time.Now(),
		},
	}

	created, skipped := 0, 0
	for _, t := range templates {
		existing, err := repo.FindOne(ctx, specification.FilterBy{Field: "name", Value: t.Name})
		if err != nil {
			color.Red("Failed to check template %q: %v", t.Name, err)
			os.Exit(1)
		}
		if existing != nil {
			color.Yellow("Template %q already exists, skipping", t.Name)
			skipped++
			continue
		}

		if err := repo.Create(ctx, t); err != nil {
			color.Red("Failed to create template %q: %v", t.Name, err)
			os.Exit(1)
		}
		color.Green("Created template %q (%s)", t.Name, t.Category)
		created++
	}

	color.Cyan("Done: %d created, %d skipped", created, skipped)
}

// buildOutline assembles an opener, the given middle sections, and a
// closing, all at registry defaults.
func buildOutline(r *outline.Registry, middle ...outline.SectionType) *outline.Document {
	doc := outline.NewDocument(r)

	var err error
	for _, t := range append([]outline.SectionType{outline.TypeOpener}, append(middle, outline.TypeClosing)...) {
		doc, err = doc.AddSection(t, nil)
		if err != nil {
			log.Fatalf("Error: failed to build template outline: %v", err)
		}
	}
	return doc
}
