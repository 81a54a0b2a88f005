// Package stationdb stores imported fuel stations in SQLite and answers
// nearby-station queries with precomputed distances.
package stationdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/patrickmn/go-cache"
	"github.com/tkrajina/gpxgo/gpx"

	"fueladvisor/pkg/advisor"
)

const (
	cacheDefaultExpiry = 5 * time.Minute
	cacheCleanupTime   = 10 * time.Minute

	metersPerMile = 1609.344
	decimalBase   = 10

	defaultReducePrecisionDecimalPlace = 2
	defaultCacheSize                   = -1024 * 1024 // negative value for pages
	defaultPageSize                    = 4096
)

// Storage persists stations and search logs in a SQLite database.
type Storage struct {
	db    *sql.DB
	cache *cache.Cache
	log   *slog.Logger
}

// NewStorage opens (or creates) the database at dbPath and prepares the
// schema.
func NewStorage(ctx context.Context, dbPath string, logger *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := configureSQLitePragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Storage{
		db:    db,
		cache: cache.New(cacheDefaultExpiry, cacheCleanupTime),
		log:   logger,
	}

	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	return s, nil
}

func (s *Storage) createTables(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS stations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		brand TEXT NOT NULL,
		address TEXT,
		price REAL NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		is_open INTEGER NOT NULL DEFAULT 1,
		amenities TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_stations_brand ON stations(brand);
	CREATE INDEX IF NOT EXISTS idx_stations_latitude_longitude ON stations(latitude, longitude);

	CREATE TABLE IF NOT EXISTS imports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		imported_at TEXT NOT NULL,
		source TEXT NOT NULL,
		station_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS location_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		distance REAL NOT NULL,
		search_count INTEGER NOT NULL DEFAULT 1,
		search_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_search TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_location_logs_coordinates ON location_logs (latitude, longitude);
	`

	_, err := s.db.ExecContext(ctx, createTableSQL)
	if err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}
	return nil
}

// Close flushes the cache and closes the database.
func (s *Storage) Close() error {
	if s.cache != nil {
		s.cache.Flush()
	}
	return s.db.Close()
}

// Count returns the number of stored stations.
func (s *Storage) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stations").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting stations: %w", err)
	}
	return count, nil
}

// LastImport returns the time of the most recent import, or nil when no
// import has happened yet.
func (s *Storage) LastImport(ctx context.Context) (*time.Time, error) {
	var stamp string
	err := s.db.QueryRowContext(ctx, "SELECT imported_at FROM imports ORDER BY id DESC LIMIT 1").Scan(&stamp)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying last import: %w", err)
	}

	last, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return nil, fmt.Errorf("error parsing import time %s: %w", stamp, err)
	}
	return &last, nil
}

// Nearby returns all stations within maxMiles of the given coordinate, with
// DistanceMiles filled in. Results are cached briefly; the ranking layer
// orders them.
func (s *Storage) Nearby(ctx context.Context, lat, lng, maxMiles float64) ([]advisor.Station, error) {
	cacheKey := fmt.Sprintf("nearby_%f_%f_%f", lat, lng, maxMiles)

	newLat, newLng := reduceLocationPrecision(lat, lng, defaultReducePrecisionDecimalPlace)
	if err := s.LogSearchLocation(ctx, newLat, newLng, maxMiles); err != nil {
		// Log error but don't fail the search if logging fails
		s.log.Error("Failed to log search location", "error", err)
	}

	if cachedData, found := s.cache.Get(cacheKey); found {
		s.log.Debug("Using cached data", "key", cacheKey)
		return cachedData.([]advisor.Station), nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, brand, address, price, latitude, longitude, is_open, amenities FROM stations")
	if err != nil {
		return nil, fmt.Errorf("error querying stations: %w", err)
	}
	defer rows.Close()

	var nearby []advisor.Station
	for rows.Next() {
		var st advisor.Station
		var open int
		var amenitiesJSON string
		if err := rows.Scan(&st.ID, &st.Name, &st.Brand, &st.Address, &st.Price,
			&st.Coordinate.Latitude, &st.Coordinate.Longitude, &open, &amenitiesJSON); err != nil {
			return nil, fmt.Errorf("error scanning station: %w", err)
		}
		st.IsOpen = open != 0
		if err := json.Unmarshal([]byte(amenitiesJSON), &st.Amenities); err != nil {
			s.log.Warn("Skipping station with bad amenities", "id", st.ID, "error", err)
			continue
		}

		meters := gpx.Distance2D(lat, lng, st.Coordinate.Latitude, st.Coordinate.Longitude, true)
		st.DistanceMiles = meters / metersPerMile
		if st.DistanceMiles <= maxMiles {
			nearby = append(nearby, st)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %w", err)
	}

	s.cache.Set(cacheKey, nearby, cache.DefaultExpiration)

	return nearby, nil
}

// LogSearchLocation records a nearby search for popularity tracking,
// bumping the counter when the (precision-reduced) location was seen before.
func (s *Storage) LogSearchLocation(ctx context.Context, latitude, longitude, distance float64) error {
	var id int64
	var count int

	err := s.db.QueryRowContext(ctx, `
		SELECT id, search_count FROM location_logs
		WHERE latitude = ? AND longitude = ?
		LIMIT 1
	`, latitude, longitude).Scan(&id, &count)

	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("error checking for existing location: %w", err)
	}

	if err == sql.ErrNoRows {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO location_logs (latitude, longitude, distance)
			VALUES (?, ?, ?)
		`, latitude, longitude, distance)
		if err != nil {
			return fmt.Errorf("error logging search location: %w", err)
		}
	} else {
		_, err := s.db.ExecContext(ctx, `
			UPDATE location_logs
			SET search_count = search_count + 1, last_search = CURRENT_TIMESTAMP, distance = ?
			WHERE id = ?
		`, distance, id)
		if err != nil {
			return fmt.Errorf("error updating search location: %w", err)
		}
	}

	return nil
}

// LocationLog represents a row in the location_logs table.
type LocationLog struct {
	ID          int64
	Latitude    float64
	Longitude   float64
	Distance    float64
	SearchCount int64
	SearchTime  time.Time
	LastSearch  time.Time
}

// GetLocationLogs retrieves location logs ordered by popularity.
// limit: maximum number of rows to return (0 for all).
func (s *Storage) GetLocationLogs(ctx context.Context, limit int) ([]LocationLog, error) {
	query := `SELECT id, latitude, longitude, distance, search_count, search_time, last_search
			  FROM location_logs
			  ORDER BY search_count DESC `
	if limit > 0 {
		query += fmt.Sprintf("LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving location logs: %w", err)
	}
	defer rows.Close()

	var logs []LocationLog
	for rows.Next() {
		var logEntry LocationLog
		if err := rows.Scan(
			&logEntry.ID,
			&logEntry.Latitude,
			&logEntry.Longitude,
			&logEntry.Distance,
			&logEntry.SearchCount,
			&logEntry.SearchTime,
			&logEntry.LastSearch,
		); err != nil {
			return nil, fmt.Errorf("error scanning location log: %w", err)
		}
		logs = append(logs, logEntry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}

	return logs, nil
}

func reduceLocationPrecision(lat, lng float64, decimalPlaces int) (roundedLat, roundedLng float64) {
	factor := math.Pow(decimalBase, float64(decimalPlaces))
	roundedLat = math.Round(lat*factor) / factor
	roundedLng = math.Round(lng*factor) / factor
	return
}

func configureSQLitePragmas(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 10000;"); err != nil {
		return fmt.Errorf("error setting busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("error setting journal mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA synchronous = NORMAL;"); err != nil {
		return fmt.Errorf("error setting synchronous: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA cache_size = %d;", defaultCacheSize)); err != nil {
		return fmt.Errorf("error setting cache size: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA page_size = %d;", defaultPageSize)); err != nil {
		return fmt.Errorf("error setting page size: %w", err)
	}
	return nil
}
