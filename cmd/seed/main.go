// Package main implements a standalone seed script that fills the shop
// database with realistic development data: a catalog of learning products
// across the merchandising facets, and a handful of published blog posts.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	subcategories = []string{"Numeracy", "Literacy", "Science Kits", "Art & Craft", ""}
	ageGroups     = []string{"0-2", "3-5", "6-8", "9-12"}
	materials     = []string{"Wood", "Plastic", "Fabric", "Paper"}
	useCases      = []string{"Classroom", "Home Learning", "Outdoor Play"}

	productNouns = []string{
		"Abacus", "Flashcard Set", "Counting Blocks", "Alphabet Puzzle",
		"Story Book", "Globe", "Microscope Kit", "Crayon Pack",
		"Number Chart", "Phonics Board", "Building Set", "Memory Game",
	}
)

func seedProducts(ctx context.Context, pool *pgxpool.Pool, count int, faker *gofakeit.Faker) error {
	base := time.Now().UTC()

	for i := 0; i < count; i++ {
		listPrice := decimal.NewFromFloat(faker.Price(15, 350)).Round(2)

		var salePrice *decimal.Decimal
		if faker.Bool() && faker.Bool() {
			sp := listPrice.Mul(decimal.NewFromFloat(0.7)).Round(2)
			salePrice = &sp
		}

		sub := subcategories[faker.Number(0, len(subcategories)-1)]
		var subcategory *string
		if sub != "" {
			subcategory = &sub
		}

		age := ageGroups[faker.Number(0, len(ageGroups)-1)]
		material := materials[faker.Number(0, len(materials)-1)]
		useCase := useCases[faker.Number(0, len(useCases)-1)]
		name := fmt.Sprintf("%s %s", faker.AdjectiveDescriptive(), productNouns[faker.Number(0, len(productNouns)-1)])

		// Spread created_at so keyset pagination has a stable order to walk.
		createdAt := base.Add(-time.Duration(i) * time.Hour)

		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, description, category, subcategory, age_group,
				material, use_case, list_price, sale_price, image_url, featured, active,
				created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)`,
			uuid.New().String(),
			name,
			faker.Paragraph(1, 3, 12, " "),
			"educational-toys",
			subcategory,
			&age,
			&material,
			&useCase,
			listPrice,
			salePrice,
			fmt.Sprintf("https://cdn.edughana.example/products/%d.jpg", i),
			i%7 == 0,
			true,
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("insert product %d: %w", i, err)
		}
	}

	return nil
}

func seedBlogPosts(ctx context.Context, pool *pgxpool.Pool, count int, faker *gofakeit.Faker) error {
	base := time.Now().UTC()

	for i := 0; i < count; i++ {
		publishedAt := base.Add(-time.Duration(i*36) * time.Hour)

		_, err := pool.Exec(ctx, `
			INSERT INTO blog_posts (id, title, excerpt, body, author, cover_image,
				published, published_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
			uuid.New().String(),
			faker.Sentence(6),
			faker.Sentence(14),
			faker.Paragraph(4, 5, 20, "\n\n"),
			faker.Name(),
			fmt.Sprintf("https://cdn.edughana.example/blog/%d.jpg", i),
			true,
			publishedAt,
		)
		if err != nil {
			return fmt.Errorf("insert blog post %d: %w", i, err)
		}
	}

	return nil
}

func main() {
	log.SetFlags(log.Ltime | log.Lmsgprefix)
	log.SetPrefix("seed: ")

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "edughana"),
		getEnv("POSTGRES_PASSWORD", "edughana"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "edughana_shop"),
		getEnv("POSTGRES_SSLMODE", "disable"),
	)

	productCount, err := strconv.Atoi(getEnv("SEED_PRODUCT_COUNT", "120"))
	if err != nil || productCount < 1 {
		log.Fatalf("invalid SEED_PRODUCT_COUNT")
	}
	blogCount, err := strconv.Atoi(getEnv("SEED_BLOG_COUNT", "15"))
	if err != nil || blogCount < 1 {
		log.Fatalf("invalid SEED_BLOG_COUNT")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	// Fixed seed keeps reseeded environments comparable.
	faker := gofakeit.New(42)

	log.Printf("seeding %d products...", productCount)
	if err := seedProducts(ctx, pool, productCount, faker); err != nil {
		log.Fatalf("seed products: %v", err)
	}

	log.Printf("seeding %d blog posts...", blogCount)
	if err := seedBlogPosts(ctx, pool, blogCount, faker); err != nil {
		log.Fatalf("seed blog posts: %v", err)
	}

	log.Printf("done")
}
