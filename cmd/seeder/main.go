// Command seeder loads a set of demo partners into the database so a fresh
// environment has couriers available for dispatch.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

type seedPartner struct {
	id              string
	name            string
	kind            int
	phone           string
	vehicle         string
	workStartMinute int
	workEndMinute   int
	weekdays        []int64
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(".env"); err != nil {
		logger.Error("failed to load .env file", slog.Any("error", err))
		os.Exit(1)
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"), os.Getenv("DB_SSLMODE"))

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logger.Error("failed to open connection", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err = seed(db); err != nil {
		logger.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("demo partners seeded")
}

func seed(db *sql.DB) error {
	allWeek := []int64{0, 1, 2, 3, 4, 5, 6}
	monToFri := []int64{1, 2, 3, 4, 5}

	// Fixed ids keep reruns idempotent.
	partners := []seedPartner{
		{"0198c0de-0000-7000-8000-000000000001", "Amina Nkoulou", 1, "+237650000001", "motorbike", 8 * 60, 18 * 60, monToFri},
		{"0198c0de-0000-7000-8000-000000000002", "Biko Essomba", 1, "+237650000002", "bicycle", 22 * 60, 6 * 60, allWeek},
		{"0198c0de-0000-7000-8000-000000000003", "Chantal Mbarga", 1, "+237650000003", "motorbike", 9 * 60, 17 * 60, monToFri},
		{"0198c0de-0000-7000-8000-000000000010", "Douala Express Fleet", 2, "+237650000010", "van", 0, 0, allWeek},
	}

	for _, p := range partners {
		_, err := db.Exec(`
			INSERT INTO partners (
				id, name, kind, phone, vehicle, rating, completed_deliveries,
				active, work_start_minute, work_end_minute, work_weekdays
			) VALUES ($1, $2, $3, $4, $5, 0, 0, true, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, uuid.MustParse(p.id), p.name, p.kind, p.phone, p.vehicle,
			p.workStartMinute, p.workEndMinute, pq.Array(p.weekdays))
		if err != nil {
			return fmt.Errorf("insert partner %s: %w", p.name, err)
		}
	}

	return nil
}
