package urlhandler

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/rs/zerolog"
)

const maxTargetFileSize = 10 * 1024 * 1024

// Custom errors for target loading
var (
	ErrTargetsDirNotFound = errors.New("targets directory not found")
	ErrTargetsNotDir      = errors.New("targets path is not a directory")
)

// LoadEndpoints reads every non-hidden file directly inside dir, in lexical order, and
// returns one endpoint per non-blank trimmed line. Duplicates keep their first position.
// Lines are not validated here so that malformed ones can be reported by the caller.
func LoadEndpoints(dir string, logger zerolog.Logger) ([]string, error) {
	loadLogger := logger.With().Str("component", "TargetLoader").Str("dir", dir).Logger()

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrTargetsDirNotFound, dir)
	}
	if err != nil {
		return nil, common.WrapError(err, "failed to stat targets directory")
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrTargetsNotDir, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.WrapError(err, "failed to list targets directory")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	fileManager := common.NewFileManager(logger)
	seen := make(map[string]struct{})
	var endpoints []string
	duplicates := 0

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, name)
		lines, err := ReadLinesFromFile(fileManager, path)
		if err != nil {
			return nil, err
		}

		for _, line := range lines {
			if _, ok := seen[line]; ok {
				duplicates++
				continue
			}
			seen[line] = struct{}{}
			endpoints = append(endpoints, line)
		}
	}

	loadLogger.Info().
		Int("endpoints", len(endpoints)).
		Int("duplicates", duplicates).
		Msg("Loaded endpoints")
	return endpoints, nil
}

// ReadLinesFromFile returns the trimmed, non-blank lines of a file.
func ReadLinesFromFile(fileManager *common.FileManager, path string) ([]string, error) {
	data, err := fileManager.ReadFile(path, maxTargetFileSize)
	if err != nil {
		return nil, common.WrapError(err, "failed to read targets file")
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), maxTargetFileSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, common.WrapErrorf(err, "failed to scan %s", path)
	}
	return lines, nil
}
