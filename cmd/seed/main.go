package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rocketiq/careers/api/internal/config"
	mongodoc "github.com/rocketiq/careers/api/internal/infrastructure/mongo"
	"github.com/rocketiq/careers/api/internal/infrastructure/postgres"
	publicapp "github.com/rocketiq/careers/api/internal/public/application"
	"github.com/rocketiq/careers/api/internal/public/domain"
)

type seedOptions struct {
	envName    string
	samples    int
	randomSeed int64
}

func main() {
	opts := parseFlags()

	if err := loadEnvFiles(opts.envName); err != nil {
		log.Fatalf("failed to load env files: %v", err)
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var records publicapp.ApplicationRepository

	if cfg.UsesMongo() {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("MongoDB connect failed: %v", err)
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		db := client.Database(cfg.MongoDatabase)
		targets := mongodoc.IndexTargets{}
		if cfg.RecordBackend == config.BackendMongo {
			targets.Applications = cfg.ApplicationCollection
			targets.Orphans = cfg.OrphanCollection
			records = mongodoc.NewApplicationRepository(db, cfg.ApplicationCollection)
		}
		if cfg.StorageBackend == config.BackendGridFS {
			targets.GridFSBucket = cfg.StorageBucket
		}
		if err := mongodoc.EnsureIndexes(ctx, db, targets); err != nil {
			log.Fatalf("index creation failed: %v", err)
		}
		log.Printf("Mongo indexes ready: %s / %s", cfg.MongoURI, cfg.MongoDatabase)
	}

	if cfg.UsesPostgres() {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Postgres connect failed: %v", err)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool, cfg.ServerLog); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		records = postgres.NewApplicationRepository(pool)
	}

	if opts.samples == 0 {
		log.Printf("seed complete (env=%s)", opts.envName)
		return
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	postings := cfg.Postings.Listed()
	if len(postings) == 0 {
		log.Fatal("no listed postings to attach sample applications to")
	}
	for i := 0; i < opts.samples; i++ {
		app := sampleApplication(rng, postings[rng.Intn(len(postings))], i)
		if err := records.Create(ctx, &app); err != nil {
			log.Fatalf("sample application insert failed: %v", err)
		}
	}
	log.Printf("seed complete: samples=%d (env=%s)", opts.samples, opts.envName)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env file name under ../env (e.g. local, staging)")
	flag.IntVar(&opts.samples, "samples", 0, "number of sample applications to insert")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed for sample data")
	flag.Parse()

	if opts.samples < 0 {
		opts.samples = 0
	}
	return opts
}

// loadEnvFiles loads shared.env then <env>.env; missing files are skipped.
func loadEnvFiles(envName string) error {
	base := filepath.Clean(filepath.Join("..", "env"))
	for _, file := range []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

var (
	sampleNames     = []string{"Aarav Sharma", "Priya Nair", "Rohan Gupta", "Ananya Iyer", "Kabir Singh", "Meera Joshi"}
	sampleCountries = []string{"India", "India", "India", "Nepal", "Sri Lanka"}
	sampleStates    = []string{"Karnataka", "Maharashtra", "Delhi", "Tamil Nadu", "Kerala"}
	sampleSources   = []string{"LinkedIn", "Instagram", "Friend or colleague", "College placement cell"}
)

func sampleApplication(rng *rand.Rand, posting domain.Posting, n int) domain.Application {
	name := sampleNames[rng.Intn(len(sampleNames))]
	createdAt := time.Now().Add(-time.Duration(rng.Intn(30*24)) * time.Hour).UTC()
	age := 19 + rng.Intn(15)

	app := domain.Application{
		JobSlug: posting.Slug,
		Applicant: domain.Applicant{
			Name:     name,
			Email:    fmt.Sprintf("%s.%d@example.com", strings.ToLower(strings.Fields(name)[0]), n),
			Age:      &age,
			Country:  sampleCountries[rng.Intn(len(sampleCountries))],
			State:    sampleStates[rng.Intn(len(sampleStates))],
			WhatsApp: fmt.Sprintf("+91 9%09d", rng.Intn(1_000_000_000)),
		},
		DegreeName: "B.Tech",
		HeardFrom:  sampleSources[rng.Intn(len(sampleSources))],
		Motivation: "I want to build products that reach real users.",
		Consent:    true,
		Experiences: []domain.Experience{
			{Role: "Intern", Organization: "Campus Labs", Dates: "2023-2024", Summary: "Built internal dashboards."},
		},
		CreatedAt: createdAt,
	}
	if len(posting.QualificationOptions) > 0 {
		app.Qualification = posting.QualificationOptions[rng.Intn(len(posting.QualificationOptions))]
	}
	for _, slot := range domain.SlotOrder {
		req, ok := posting.Slot(slot)
		if !ok || (!req.Required && rng.Intn(2) == 0) {
			continue
		}
		app.Attachments = append(app.Attachments, domain.StoredAttachment{
			Slot:        slot,
			Path:        domain.AttachmentPath(slot, createdAt, name),
			ContentType: domain.PDFContentType,
		})
	}
	return app
}
