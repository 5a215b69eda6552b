package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"dish-delivery-service/internal/adapters/agentstore"
	"dish-delivery-service/internal/adapters/repositories"
	"dish-delivery-service/internal/domain"
	"dish-delivery-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	app := &cli.App{
		Name:  "dbtool",
		Usage: "Initialize and seed the dish delivery catalog",
		Commands: []*cli.Command{
			initCmd,
			seedCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

var initCmd = &cli.Command{
	Name:  "init",
	Usage: "Create the postgres schema",
	Action: func(ctx *cli.Context) error {
		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		log.Println("Initializing database schema...")
		if err := repositories.InitSchema(ctx.Context, database); err != nil {
			return err
		}
		log.Println("Schema ready.")
		return nil
	},
}

var seedCmd = &cli.Command{
	Name:  "seed",
	Usage: "Load shops into postgres and agents into redis",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "seed",
			Value: "data/seeds/catalog.json",
			Usage: "path to the catalog seed file",
		},
	},
	Action: func(ctx *cli.Context) error {
		seed, err := repositories.LoadSeed(ctx.String("seed"))
		if err != nil {
			return err
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		log.Println("Initializing database schema...")
		if err := repositories.InitSchema(ctx.Context, database); err != nil {
			return err
		}

		log.Printf("Seeding %d shops...", len(seed.Shops))
		if err := repositories.SeedShops(ctx.Context, database, seed.Shops); err != nil {
			return err
		}

		if len(seed.Agents) > 0 {
			store, err := openAgentStore()
			if err != nil {
				return err
			}

			log.Printf("Seeding %d agents...", len(seed.Agents))
			if err := seedAgents(ctx.Context, store, seed.Agents); err != nil {
				return err
			}
		}

		log.Println("Seeding complete.")
		return nil
	},
}

func openDatabase() (database *sql.DB, err error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return db.Open(databaseURL)
}

func openAgentStore() (*agentstore.RedisAgentStore, error) {
	addr := os.Getenv("REDIS_ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = "localhost:6379"
	}
	return agentstore.NewRedisAgentStore(addr, os.Getenv("REDIS_PASSWORD"))
}

func seedAgents(ctx context.Context, store *agentstore.RedisAgentStore, seeds []repositories.AgentSeed) error {
	for _, a := range seeds {
		status := domain.AgentStatus(a.Status)
		if status != domain.AgentBusy {
			status = domain.AgentAvailable
		}

		agent := &domain.DeliveryAgent{
			ID:       a.AgentID,
			Name:     a.Name,
			Location: domain.GeoPoint{Lat: a.Lat, Lng: a.Lng},
			Status:   status,
		}
		if err := store.PutAgent(ctx, agent); err != nil {
			return fmt.Errorf("seed agents: %w", err)
		}
	}
	return nil
}
