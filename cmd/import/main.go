package main

import (
	"context"
	"flag"
	"log"
	"time"

	"roadwatch/internal/adapter/repository/mysql"
	"roadwatch/internal/config"
	roadDomain "roadwatch/internal/domain/road"
	"roadwatch/internal/infrastructure/db"
	"roadwatch/internal/infrastructure/osm"
	roaduc "roadwatch/internal/usecase/road"
)

// Bulk importer: pulls highway ways from Overpass for a bounding box and
// writes them as pre-approved road records. Re-running is safe, existing
// way ids are skipped.
func main() {
	var (
		minLat = flag.Float64("min-lat", 6.5, "bounding box south edge")
		maxLat = flag.Float64("max-lat", 35.5, "bounding box north edge")
		minLng = flag.Float64("min-lng", 68.0, "bounding box west edge")
		maxLng = flag.Float64("max-lng", 97.5, "bounding box east edge")
		ref    = flag.String("ref", "NH", "ref tag filter regex, empty for all highways")
	)
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := gormDB.AutoMigrate(&roadDomain.Road{}, &roadDomain.Feedback{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	overpass := osm.NewClient(cfg.OverpassURL)
	uc := roaduc.NewUsecase(mysql.NewRoadRepository(gormDB), mysql.NewFeedbackRepository(gormDB),
		overpass, nil)

	bbox := roadDomain.BBox{MinLat: *minLat, MaxLat: *maxLat, MinLng: *minLng, MaxLng: *maxLng}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Printf("fetching highways in (%g,%g)-(%g,%g) ref=%q", *minLat, *minLng, *maxLat, *maxLng, *ref)
	ways, err := overpass.FetchHighwaysInBBox(ctx, bbox, *ref)
	if err != nil {
		log.Fatalf("overpass: %v", err)
	}
	log.Printf("fetched %d ways", len(ways))

	var imported, skipped, failed int
	for _, w := range ways {
		ok, err := uc.ImportWay(ctx, w)
		switch {
		case err != nil:
			failed++
			log.Printf("import way %s: %v", w.WayID, err)
		case ok:
			imported++
		default:
			skipped++
		}
	}
	log.Printf("done: imported=%d skipped=%d failed=%d", imported, skipped, failed)
}
