package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"placebook/internal/adapters/observability"
	"placebook/internal/domain"
	"placebook/internal/shared"
	mysqlrepo "placebook/internal/storage/mysql"
)

// seed loads a demo dataset: a few categories and a batch of places with
// their locations, inserted by a bounded pool of workers.

type seedPlace struct {
	name, spec string
	price      float64
	category   string
	address    string
	city       string
}

var seedCategories = []domain.Category{
	{Name: "Lofts"},
	{Name: "Villas"},
	{Name: "Chalets"},
	{Name: "Farms"},
}

var seedPlaces = []seedPlace{
	{"Downtown Loft", "studio, sleeps 2", 55, "Lofts", "12 Rainbow St", "Amman"},
	{"Rooftop Loft", "1br with terrace", 70, "Lofts", "4 Paris Sq", "Amman"},
	{"Sea Villa", "4br, private pool", 320, "Villas", "1 Marina Rd", "Aqaba"},
	{"Hill Villa", "3br, garden", 240, "Villas", "9 Pine Hill", "Ajloun"},
	{"Cedar Chalet", "2br, fireplace", 130, "Chalets", "7 Forest Ln", "Jerash"},
	{"Dead Sea Chalet", "1br, beach access", 150, "Chalets", "3 Shore Dr", "Sweimeh"},
	{"Olive Farm", "farmhouse, sleeps 8", 180, "Farms", "Route 35 km 12", "Madaba"},
	{"Citrus Farm", "cottage, sleeps 4", 95, "Farms", "Valley Rd 2", "Jordan Valley"},
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.SeedWorkers).Msg("seed starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	categories := mysqlrepo.NewCategoryRepo(db)
	places := mysqlrepo.NewPlaceRepo(db)

	// categories first; places reference them by id
	catIDs := make(map[string]int64, len(seedCategories))
	for _, c := range seedCategories {
		created, err := categories.Create(ctx, c)
		if err != nil {
			log.Fatal().Err(err).Str("category", c.Name).Msg("seed category failed")
		}
		catIDs[c.Name] = created.ID
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, sp := range seedPlaces {
		sp := sp

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			catID := catIDs[sp.category]
			price := sp.price
			p, _, err := places.CreateWithLocation(ctx,
				domain.Place{Name: sp.name, Specification: sp.spec, Price: &price, CategoryID: &catID},
				domain.Location{Address: sp.address, City: sp.city},
			)
			if err != nil {
				log.Warn().Str("place", sp.name).Err(err).Msg("seed place failed")
				return
			}
			log.Info().Int64("id", p.ID).Str("place", sp.name).Msg("seed ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("seed completed")
}
