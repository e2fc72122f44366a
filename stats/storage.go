// Package stats keeps lightweight monthly usage counters for the service
// (uploads, analysis runs, exports), persisted to a JSON file. Counters
// only; no analysis data is ever written here.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats is the usage for one calendar month.
type MonthlyStats struct {
	Uploads     int       `json:"uploads"`
	Analyses    int       `json:"analyses"`
	Exports     int       `json:"exports"`
	LastUpdated time.Time `json:"last_updated"`
}

// Storage handles persistent storage of usage statistics.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
}

// NewStorage creates a statistics store backed by dataDir/stats.json,
// loading any existing counters.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	go s.backgroundWriter()
	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return json.Unmarshal(data, &s.stats)
}

func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	// Write to a temp file and rename so readers never see a torn file.
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("write temp stats file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("rename stats file: %w", err)
	}
	return nil
}

func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			s.save()
			return
		}
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// A write is already pending.
	}
}

func (s *Storage) bump(apply func(*MonthlyStats)) {
	month := currentMonth()

	s.mutex.Lock()
	m, ok := s.stats[month]
	if !ok {
		m = &MonthlyStats{}
		s.stats[month] = m
	}
	apply(m)
	m.LastUpdated = time.Now()
	needWrite := time.Since(s.lastWrite) > time.Minute
	if needWrite {
		s.lastWrite = time.Now()
	}
	s.mutex.Unlock()

	if needWrite {
		s.requestWrite()
	}
}

// RecordUpload counts one dataset upload.
func (s *Storage) RecordUpload() {
	s.bump(func(m *MonthlyStats) { m.Uploads++ })
}

// RecordAnalysis counts one analysis run.
func (s *Storage) RecordAnalysis() {
	s.bump(func(m *MonthlyStats) { m.Analyses++ })
}

// RecordExport counts one CSV export.
func (s *Storage) RecordExport() {
	s.bump(func(m *MonthlyStats) { m.Exports++ })
}

// CurrentStats returns the counters for the current month.
func (s *Storage) CurrentStats() MonthlyStats {
	month := currentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if m, ok := s.stats[month]; ok {
		return *m
	}
	return MonthlyStats{}
}

// MonthStats returns the counters for a specific "YYYY-MM" month.
func (s *Storage) MonthStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if m, ok := s.stats[yearMonth]; ok {
		return *m, true
	}
	return MonthlyStats{}, false
}

// Months returns all recorded months, newest first.
func (s *Storage) Months() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for m := range s.stats {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Cleanup drops every month except the current and previous one.
func (s *Storage) Cleanup() {
	now := time.Now()
	current := now.Format("2006-01")
	previous := now.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	for key := range s.stats {
		if key != current && key != previous {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
}

// Shutdown flushes counters and stops the background writer.
func (s *Storage) Shutdown() error {
	close(s.done)
	return nil
}
