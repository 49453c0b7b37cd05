package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// ─── Models ──────────────────────────────────────────────────────────────────

// Plan is one submitted trip form.
type Plan struct {
	ID              string    `json:"id"`
	StartDate       string    `json:"start_date"`
	Days            int       `json:"days"`
	CurrentLocation string    `json:"current_location"`
	Destination     string    `json:"destination"`
	Budget          string    `json:"budget"`
	Preferences     string    `json:"preferences"`
	CreatedAt       time.Time `json:"created_at"`
}

// Itinerary is the normalized result of one successful planning cycle,
// stored alongside the plan it answers. ItineraryJSON is the canonical
// record serialized as-is; PDFData is filled in lazily on export.
type Itinerary struct {
	ID            string    `json:"id"`
	PlanID        string    `json:"plan_id"`
	ItineraryJSON string    `json:"itinerary_json"`
	EstimatedCost float64   `json:"estimated_cost"`
	PDFData       []byte    `json:"pdf_data,omitempty"`
	TravelerName  string    `json:"traveler_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// ─── Init ─────────────────────────────────────────────────────────────────────

func InitDB(dsn string) {
	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Retry connection up to 10 times (managed Postgres may take a moment)
	for i := 0; i < 10; i++ {
		if err = DB.Ping(); err == nil {
			break
		}
		log.Printf("⏳ Waiting for database... attempt %d/10: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("❌ Failed to connect to database after retries: %v", err)
	}

	migrate()
	log.Println("✅ Database connected and migrated")
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func migrate() {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			id               TEXT PRIMARY KEY,
			start_date       TEXT NOT NULL,
			days             INTEGER NOT NULL,
			current_location TEXT NOT NULL,
			destination      TEXT NOT NULL,
			budget           TEXT NOT NULL,
			preferences      TEXT,
			created_at       TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS itineraries (
			id             TEXT PRIMARY KEY,
			plan_id        TEXT NOT NULL REFERENCES plans(id),
			itinerary_json TEXT NOT NULL,
			estimated_cost NUMERIC(12,2) DEFAULT 0,
			pdf_data       BYTEA,
			traveler_name  TEXT,
			created_at     TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_itineraries_plan_id
			ON itineraries(plan_id)`,

		`CREATE INDEX IF NOT EXISTS idx_plans_created_at
			ON plans(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := DB.Exec(m); err != nil {
			log.Fatalf("❌ Migration failed: %v\nSQL: %s", err, m)
		}
	}
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

func SavePlan(p *Plan) error {
	_, err := DB.Exec(`
		INSERT INTO plans (id, start_date, days, current_location, destination, budget, preferences)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.StartDate, p.Days, p.CurrentLocation, p.Destination, p.Budget, p.Preferences)
	return err
}

func GetPlan(id string) (*Plan, error) {
	p := &Plan{}
	err := DB.QueryRow(`
		SELECT id, start_date, days, current_location, destination, budget, preferences, created_at
		FROM plans WHERE id = $1`, id).
		Scan(&p.ID, &p.StartDate, &p.Days, &p.CurrentLocation, &p.Destination,
			&p.Budget, &p.Preferences, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func SaveItinerary(i *Itinerary) error {
	_, err := DB.Exec(`
		INSERT INTO itineraries (id, plan_id, itinerary_json, estimated_cost, pdf_data, traveler_name)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		i.ID, i.PlanID, i.ItineraryJSON, i.EstimatedCost, i.PDFData, i.TravelerName)
	return err
}

func UpdateItineraryPDF(id string, pdfData []byte, travelerName string) error {
	_, err := DB.Exec(`
		UPDATE itineraries SET pdf_data = $1, traveler_name = $2 WHERE id = $3`,
		pdfData, travelerName, id)
	return err
}

func GetItinerary(id string) (*Itinerary, error) {
	i := &Itinerary{}
	err := DB.QueryRow(`
		SELECT id, plan_id, itinerary_json, estimated_cost, pdf_data, traveler_name, created_at
		FROM itineraries WHERE id = $1`, id).
		Scan(&i.ID, &i.PlanID, &i.ItineraryJSON, &i.EstimatedCost,
			&i.PDFData, &i.TravelerName, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func GetItineraryByPlanID(planID string) (*Itinerary, error) {
	i := &Itinerary{}
	err := DB.QueryRow(`
		SELECT id, plan_id, itinerary_json, estimated_cost, pdf_data, traveler_name, created_at
		FROM itineraries WHERE plan_id = $1
		ORDER BY created_at DESC LIMIT 1`, planID).
		Scan(&i.ID, &i.PlanID, &i.ItineraryJSON, &i.EstimatedCost,
			&i.PDFData, &i.TravelerName, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}
