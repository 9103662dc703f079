// Package store persists attendance records and company holidays in a single JSON file.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hyaku122/kintai-final/internal/attendance"
	"github.com/hyaku122/kintai-final/internal/calendar"
	"github.com/hyaku122/kintai-final/pkg/dateutil"
	"go.uber.org/zap"
)

const fileVersion = 1

// fileData is the on-disk layout.
type fileData struct {
	Version         int                             `json:"version"`
	Records         map[string]attendance.DayRecord `json:"records"`
	CompanyHolidays []string                        `json:"company_holidays"`
	UpdatedAt       string                          `json:"updated_at,omitempty"`
}

// Store keeps records keyed by YYYY-MM-DD. Records in their default state are
// never kept.
type Store struct {
	path     string
	logger   *zap.Logger
	mu       sync.RWMutex
	records  map[string]attendance.DayRecord
	holidays *calendar.HolidaySet
}

// New creates a store backed by path. Call Load before use.
func New(path string, logger *zap.Logger) *Store {
	return &Store{
		path:     path,
		logger:   logger,
		records:  make(map[string]attendance.DayRecord),
		holidays: calendar.NewHolidaySet(),
	}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the file. A missing file yields an empty store. A corrupt file is
// moved aside to <path>.corrupt and reported.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// created on first save
			s.records = make(map[string]attendance.DayRecord)
			s.holidays = calendar.NewHolidaySet()
			return nil
		}
		return fmt.Errorf("failed to read store file: %w", err)
	}

	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		backupPath := s.path + ".corrupt"
		if renameErr := os.Rename(s.path, backupPath); renameErr != nil {
			s.logger.Error("Failed to back up corrupt store file", zap.String("path", s.path), zap.Error(renameErr))
			return fmt.Errorf("failed to parse store file (backup to %s failed: %v): %w", backupPath, renameErr, err)
		}
		return fmt.Errorf("failed to parse store file (backed up to %s): %w", backupPath, err)
	}

	records := make(map[string]attendance.DayRecord, len(fd.Records))
	for key, rec := range fd.Records {
		k, err := dateutil.NormalizeKey(key)
		if err != nil {
			s.logger.Warn("Dropping record with invalid date", zap.String("date", key), zap.Error(err))
			continue
		}
		if rec.IsDefault() {
			continue
		}
		records[k] = rec
	}

	holidays := calendar.NewHolidaySet()
	for _, key := range fd.CompanyHolidays {
		if err := holidays.Add(key); err != nil {
			s.logger.Warn("Dropping invalid company holiday", zap.String("date", key), zap.Error(err))
		}
	}

	s.records = records
	s.holidays = holidays

	s.logger.Info("Store loaded",
		zap.String("file", s.path),
		zap.Int("records", len(records)),
		zap.Int("company_holidays", holidays.Len()))

	return nil
}

// save writes the file atomically. Callers hold the lock.
func (s *Store) save() error {
	fd := fileData{
		Version:         fileVersion,
		Records:         s.records,
		CompanyHolidays: s.holidays.Keys(),
		UpdatedAt:       time.Now().In(dateutil.Tokyo).Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(fd, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp store file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	s.logger.Debug("Store saved",
		zap.String("file", s.path),
		zap.Int("records", len(s.records)))

	return nil
}

// Save persists the current state.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// Record returns the sanitized record for a canonical key, or the default record.
func (s *Store) Record(key string) attendance.DayRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.records[key]; ok {
		return rec.Sanitize()
	}
	return attendance.DayRecord{Kind: attendance.Normal}
}

// Upsert loads the record for key (normalized), applies mutate and persists the
// result. A record that ends up in its default state is deleted. If mutate
// returns an error nothing is changed.
func (s *Store) Upsert(key string, mutate func(rec *attendance.DayRecord) error) (attendance.DayRecord, error) {
	k, err := dateutil.NormalizeKey(key)
	if err != nil {
		return attendance.DayRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.records[k]
	rec := attendance.DayRecord{Kind: attendance.Normal}
	if existed {
		rec = prev.Sanitize()
	}

	if err := mutate(&rec); err != nil {
		return attendance.DayRecord{}, err
	}
	rec = rec.Sanitize()

	if rec.IsDefault() {
		delete(s.records, k)
	} else {
		s.records[k] = rec
	}

	if err := s.save(); err != nil {
		if existed {
			s.records[k] = prev
		} else {
			delete(s.records, k)
		}
		return attendance.DayRecord{}, err
	}

	s.logger.Info("Record updated",
		zap.String("date", k),
		zap.String("kind", string(rec.Kind)),
		zap.Bool("deleted", rec.IsDefault()))

	return rec, nil
}

// Keys returns the keys of stored records in date order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// CompanyHolidays returns a snapshot of the company holiday set.
func (s *Store) CompanyHolidays() *calendar.HolidaySet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calendar.NewHolidaySet(s.holidays.Keys()...)
}

// AddCompanyHolidays adds the keys and persists. It returns how many were new.
func (s *Store) AddCompanyHolidays(keys ...string) (int, error) {
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		k, err := dateutil.NormalizeKey(key)
		if err != nil {
			return 0, err
		}
		normalized = append(normalized, k)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var added []string
	for _, k := range normalized {
		if !s.holidays.Contains(k) {
			_ = s.holidays.Add(k)
			added = append(added, k)
		}
	}

	if err := s.save(); err != nil {
		for _, k := range added {
			s.holidays.Remove(k)
		}
		return 0, err
	}

	s.logger.Info("Company holidays added", zap.Strings("dates", normalized), zap.Int("new", len(added)))
	return len(added), nil
}

// RemoveCompanyHoliday removes the key and persists. It reports whether the key was present.
func (s *Store) RemoveCompanyHoliday(key string) (bool, error) {
	k, err := dateutil.NormalizeKey(key)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.holidays.Remove(k) {
		return false, nil
	}
	if err := s.save(); err != nil {
		_ = s.holidays.Add(k)
		return false, err
	}

	s.logger.Info("Company holiday removed", zap.String("date", k))
	return true, nil
}

// ResetCompanyHolidays removes every company holiday.
func (s *Store) ResetCompanyHolidays() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.holidays
	s.holidays = calendar.NewHolidaySet()
	if err := s.save(); err != nil {
		s.holidays = prev
		return err
	}

	s.logger.Info("Company holidays reset", zap.Int("removed", prev.Len()))
	return nil
}
