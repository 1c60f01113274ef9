package main

import (
	"context"
	"flag"
	"log"
	"time"

	"launchpad-api/internal/admins"
	"launchpad-api/internal/auth"
	"launchpad-api/internal/config"
	"launchpad-api/internal/content"
	"launchpad-api/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedVideo struct {
	Title       string
	Description string
	VideoID     string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	email := flag.String("email", cfg.DefaultAdminEmail, "admin email (DEFAULT_ADMIN_EMAIL)")
	password := flag.String("password", cfg.DefaultAdminPassword, "admin password (DEFAULT_ADMIN_PASSWORD)")
	name := flag.String("name", cfg.DefaultAdminName, "admin display name")
	withVideos := flag.Bool("videos", false, "also insert the sample showreel videos")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	if *email == "" || *password == "" {
		log.Println("seed admin: email or password missing, skipping")
	} else {
		tokens := &auth.Manager{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL, Issuer: cfg.JWTIssuer}
		svc := admins.NewService(admins.NewRepository(cols.Admins), tokens)
		admin, created, err := svc.EnsureDefaultAdmin(ctx, *email, *password, *name)
		if err != nil {
			log.Fatalf("seed admin error for %s: %v", *email, err)
		}
		log.Printf("seed admin: %s (created=%t)", admin.Email, created)
	}

	if *withVideos {
		samples := []seedVideo{
			{Title: "Brand launch film", Description: "Sixty-second hero cut for a product launch.", VideoID: "dQw4w9WgXcQ"},
			{Title: "Behind the campaign", Description: "Making-of for the spring campaign shoot.", VideoID: "ScMzIvxBSi4"},
		}
		for _, v := range samples {
			now := content.Now()
			update := bson.M{
				"$setOnInsert": bson.M{
					"_id":            content.NewID(),
					"title":          v.Title,
					"description":    v.Description,
					"youtubeVideoId": v.VideoID,
					"isPublished":    true,
					"createdAt":      now,
					"updatedAt":      now,
				},
			}
			_, err := cols.Videos.UpdateOne(ctx, bson.M{"youtubeVideoId": v.VideoID}, update, options.Update().SetUpsert(true))
			if err != nil {
				log.Fatalf("seed error for %s: %v", v.Title, err)
			}
		}
		log.Printf("seed videos: %d ensured", len(samples))
	}

	log.Println("seed completed")
}
