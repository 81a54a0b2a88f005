package stationdb

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// priceTokenRe extracts the first float-like token from a price cell, so
// values like "$4.99" or "4,99 $" import cleanly.
var priceTokenRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// ImportCSV loads stations from the scraped-stations CSV into the database,
// replacing any previous rows. Required columns: name, address, price,
// latitude, longitude. Optional columns: brand, open, amenities (amenity
// tags separated by ';'). Rows with unparseable price or coordinates are
// skipped. Returns the number of imported stations.
func (s *Storage) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("error opening CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("error reading CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"name", "address", "price", "latitude", "longitude"} {
		if _, ok := cols[required]; !ok {
			return 0, fmt.Errorf("CSV missing required column: %s", required)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Printf("rollback error: %v", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM stations"); err != nil {
		return 0, fmt.Errorf("error clearing stations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO stations (id, name, brand, address, price, latitude, longitude, is_open, amenities)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close()

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	seen := make(map[string]int)
	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("error reading CSV record: %w", err)
		}

		name := field(record, "name")
		if name == "" {
			continue
		}

		price, ok := parsePrice(field(record, "price"))
		if !ok {
			s.log.Debug("Skipping station with unparseable price", "name", name)
			continue
		}
		lat, err1 := strconv.ParseFloat(field(record, "latitude"), 64)
		lng, err2 := strconv.ParseFloat(field(record, "longitude"), 64)
		if err1 != nil || err2 != nil {
			s.log.Debug("Skipping station with bad coordinates", "name", name)
			continue
		}

		brand := field(record, "brand")
		if brand == "" {
			brand = name
		}

		open := true
		if v := field(record, "open"); v != "" {
			open = v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
		}

		var amenities []string
		if v := field(record, "amenities"); v != "" {
			for _, tag := range strings.Split(v, ";") {
				if tag = strings.TrimSpace(tag); tag != "" {
					amenities = append(amenities, tag)
				}
			}
		}
		amenitiesJSON, err := json.Marshal(amenities)
		if err != nil {
			return 0, fmt.Errorf("error encoding amenities: %w", err)
		}

		id := uniqueID(slugify(name), seen)
		openInt := 0
		if open {
			openInt = 1
		}

		if _, err := stmt.ExecContext(ctx, id, name, brand, field(record, "address"),
			price, lat, lng, openInt, string(amenitiesJSON)); err != nil {
			return 0, fmt.Errorf("error inserting station %s: %w", id, err)
		}
		imported++
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO imports (imported_at, source, station_count) VALUES (?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), filepath.Base(path), imported); err != nil {
		return 0, fmt.Errorf("error recording import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}

	s.cache.Flush()
	s.log.Debug("Import completed", "source", path, "stations", imported)

	return imported, nil
}

func parsePrice(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	token := priceTokenRe.FindString(cleaned)
	if token == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

func slugify(name string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "station"
	}
	return slug
}

// uniqueID suffixes duplicate slugs with -2, -3, ... so every station id is
// unique within one import.
func uniqueID(base string, seen map[string]int) string {
	count := seen[base]
	seen[base] = count + 1
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, count+1)
}
