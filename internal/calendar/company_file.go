package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyaku122/kintai-final/pkg/dateutil"
	"go.uber.org/zap"
)

// CompanyHoliday is one line of a company holiday file.
type CompanyHoliday struct {
	Key  string `json:"date"`
	Note string `json:"note,omitempty"`
}

// CompanyHolidayFile reads company holidays from a local text file.
//
// Format, one day per line:
//
//	YYYY-MM-DD [note]
//	# comment
//
// Unpadded dates are accepted. Malformed lines are logged and skipped.
type CompanyHolidayFile struct {
	filePath string
	logger   *zap.Logger
	entries  []CompanyHoliday
}

// NewCompanyHolidayFile creates a new CompanyHolidayFile instance
func NewCompanyHolidayFile(filePath string, logger *zap.Logger) *CompanyHolidayFile {
	return &CompanyHolidayFile{
		filePath: filePath,
		logger:   logger,
	}
}

// Load reads and parses the file
func (cf *CompanyHolidayFile) Load() error {
	file, err := os.Open(cf.filePath)
	if err != nil {
		return fmt.Errorf("failed to open company holiday file: %w", err)
	}
	defer file.Close()

	entries, err := cf.parse(file)
	if err != nil {
		return err
	}
	cf.entries = entries

	cf.logger.Info("Company holiday file loaded",
		zap.String("file", cf.filePath),
		zap.Int("days", len(entries)))

	return nil
}

func (cf *CompanyHolidayFile) parse(r io.Reader) ([]CompanyHoliday, error) {
	scanner := bufio.NewScanner(r)
	seen := make(map[string]bool)
	var entries []CompanyHoliday

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Example: 2025-08-13 夏季休暇
		fields := strings.Fields(line)
		key, err := dateutil.NormalizeKey(fields[0])
		if err != nil {
			cf.logger.Warn("Failed to parse date",
				zap.Int("line", lineNo),
				zap.String("date", fields[0]),
				zap.Error(err))
			continue
		}
		if seen[key] {
			cf.logger.Debug("Duplicate company holiday", zap.String("date", key))
			continue
		}
		seen[key] = true

		entries = append(entries, CompanyHoliday{
			Key:  key,
			Note: strings.Join(fields[1:], " "),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading company holiday file: %w", err)
	}

	return entries, nil
}

// Entries returns the parsed days in file order.
func (cf *CompanyHolidayFile) Entries() []CompanyHoliday {
	return cf.entries
}

// Keys returns the parsed date keys in file order.
func (cf *CompanyHolidayFile) Keys() []string {
	keys := make([]string, 0, len(cf.entries))
	for _, e := range cf.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Set returns the parsed days as a HolidaySet.
func (cf *CompanyHolidayFile) Set() *HolidaySet {
	return NewHolidaySet(cf.Keys()...)
}
