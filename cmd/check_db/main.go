package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"drawing-backend/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Database connection
	h, err := database.Connect(database.LoadConfig())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer h.Close()

	if !h.IsConnected() {
		log.Fatal("Database is not reachable")
	}
	db := h.DB()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Check that the elements column is jsonb
	var colType string
	query := `
		SELECT data_type
		FROM information_schema.columns
		WHERE table_name = 'chats'
		AND column_name = 'elements'
	`
	if err := db.Raw(query).Scan(&colType).Error; err != nil {
		log.Fatal("Failed to check elements column:", err)
	}

	if colType == "" {
		fmt.Println("❌ chats.elements column does NOT exist!")
		fmt.Println("⚠️  Need to run migration (start the server once)")
		return
	}

	fmt.Printf("📊 chats.elements column type: %s\n", colType)
	if colType != "jsonb" {
		fmt.Println("⚠️  Expected jsonb; element queries will not use GIN indexes")
	}
	fmt.Println()

	// Document statistics
	type ChatStats struct {
		Total     int64
		Users     int64
		Empty     int64
		AvgLength float64
	}
	var stats ChatStats
	query = `
		SELECT
			COUNT(*) as total,
			COUNT(DISTINCT user_id) as users,
			COUNT(CASE WHEN elements::text = '[]' THEN 1 END) as empty,
			COALESCE(AVG(LENGTH(elements::text)), 0) as avg_length
		FROM chats
	`
	if err := db.Raw(query).Scan(&stats).Error; err != nil {
		log.Fatal("Failed to get statistics:", err)
	}

	fmt.Println("📈 Chat Statistics:")
	fmt.Printf("  - Total chats: %d\n", stats.Total)
	fmt.Printf("  - Distinct users: %d\n", stats.Users)
	fmt.Printf("  - Empty documents: %d\n", stats.Empty)
	fmt.Printf("  - Avg document size: %.0f bytes\n", stats.AvgLength)
	fmt.Println()

	// Recent chats
	type ChatInfo struct {
		ID        string
		UserID    int64
		Title     string
		UpdatedAt string
	}
	var chats []ChatInfo
	query = `
		SELECT id, user_id, title, updated_at
		FROM chats
		ORDER BY updated_at DESC
		LIMIT 10
	`
	if err := db.Raw(query).Scan(&chats).Error; err != nil {
		log.Fatal("Failed to get recent chats:", err)
	}

	fmt.Println("🗂 Recent Chats (last 10):")
	for _, c := range chats {
		fmt.Printf("  - ID: %s, User: %d, Title: %q, Updated: %s\n",
			c.ID, c.UserID, c.Title, c.UpdatedAt)
	}
}
