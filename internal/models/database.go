package models

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gorm_zerolog "github.com/wei840222/gorm-zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

type DBContext string

const (
	// DBContextURL is the request context key for the API base URL.
	DBContextURL DBContext = "agencydesk-backend-url"
)

// SchemaCapabilities records which optional parts of the schema are present.
// It is resolved once when the database connection is established, never
// probed per request.
type SchemaCapabilities struct {
	// StructuredCosts is true when the structured cost ledger exists. When
	// false, cost aggregation falls back to the legacy expense tables.
	StructuredCosts bool

	// RevenueLedger is true when the pre-aggregated monthly revenue table
	// exists. When false, revenue is always derived from projects.
	RevenueLedger bool
}

// Schema holds the capabilities of the connected database.
var Schema SchemaCapabilities

// Connect opens the database and configures the connection pool.
//
// The dsn is used for SQLite. When DB_HOST is set in the environment,
// PostgreSQL is used instead and the dsn is ignored.
func Connect(dsn string) error {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: gorm_zerolog.New(),
	}

	var db *gorm.DB
	var err error

	_, usePostgres := os.LookupEnv("DB_HOST")
	if usePostgres {
		log.Debug().Msg("DB_HOST is set, using postgresql")
		pgDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s", os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
		db, err = gorm.Open(postgres.Open(pgDSN), config)
	} else {
		log.Debug().Msg("DB_HOST is not set, using sqlite database")
		db, err = gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)), config)
	}

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	if !usePostgres {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get database object: %w", err)
		}

		// Get new connections after one hour
		sqlDB.SetConnMaxLifetime(time.Hour)

		// A single connection prevents SQLITE_BUSY errors and serializes
		// concurrent allocation saves.
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	// Query callbacks
	err = db.Callback().Query().After("*").Register("agencydesk:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("agencydesk:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("agencydesk:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("agencydesk:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("agencydesk:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("agencydesk:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("agencydesk:after_delete_general", generalCallback)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	RefreshSchemaCapabilities()

	return nil
}

// RefreshSchemaCapabilities re-resolves the schema capabilities.
//
// It is called by Connect. Tests that drop optional tables to exercise the
// legacy fallbacks call it again afterwards.
func RefreshSchemaCapabilities() {
	Schema = SchemaCapabilities{
		StructuredCosts: DB.Migrator().HasTable(&Cost{}),
		RevenueLedger:   DB.Migrator().HasTable(&MonthlyRevenue{}),
	}
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// Foreign keys are enforced, so references to missing resources fail here
	if strings.Contains(db.Error.Error(), "FOREIGN KEY constraint failed") {
		db.Error = ErrReferenceNotFound
	}

	// Company codes must be unique
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: companies.code") {
		db.Error = ErrCompanyCodeNotUnique
	}

	// One allocation row per member, month and week
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: project_allocations.") {
		db.Error = ErrAllocationNotUnique
	}

	// One ledger row per company, project, month and revenue type
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: monthly_revenues.") {
		db.Error = ErrMonthlyRevenueNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(
		Company{},
		Client{},
		UserProfile{},
		Project{},
		ProjectAllocation{},
		MonthlyRevenue{},
		Cost{},
		Expense{},
		ContractorExpense{},
		CapacitySnapshot{},
	)
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
