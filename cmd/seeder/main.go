package main

import (
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/clubhouse/internal/club"
	"github.com/mauv0809/clubhouse/internal/database"
	"github.com/mauv0809/clubhouse/internal/tournament"
	"github.com/spf13/cobra"
)

var (
	rounds int
	names  []string
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Populate a database with a demo roster and played rounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return seed()
	},
}

func init() {
	rootCmd.Flags().IntVar(&rounds, "rounds", 3, "Number of rounds to generate and score")
	rootCmd.Flags().StringSliceVar(&names, "players", []string{"Alice", "Bob", "Chloé", "Dan", "Eve", "Fred", "Gaspard"}, "Names of the players to add")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	primaryURL = os.Getenv("TURSO_PRIMARY_URL")
	authToken = os.Getenv("TURSO_AUTH_TOKEN")
	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok && primaryURL == "" {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	return dbName, primaryURL, authToken
}

func seed() error {
	log.Info("Starting database seeder...")
	db, teardown, err := database.InitDB(loadConfig())
	if err != nil {
		return err
	}
	defer teardown()

	store := club.New(db)
	for _, name := range names {
		if _, err := store.AddPlayer(name); err != nil {
			return err
		}
	}
	log.Info("Added demo players", "count", len(names))

	engine := tournament.New(nil)
	for r := 0; r < rounds; r++ {
		players, err := store.GetAllPlayers()
		if err != nil {
			return err
		}
		history, err := store.GetMatches()
		if err != nil {
			return err
		}

		round, err := engine.GenerateRound(players, history)
		if err != nil {
			log.Warn("Stopping early", "round", r+1, "reason", err)
			break
		}
		stored, err := store.InsertMatches(round)
		if err != nil {
			return err
		}
		for _, m := range stored {
			if _, err := store.RecordScore(m.ID, rand.IntN(6), rand.IntN(6)); err != nil {
				return err
			}
		}
		log.Info("Seeded round", "round", r+1, "matches", len(stored))
	}

	log.Info("Seeding finished")
	return nil
}
