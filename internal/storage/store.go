package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/gridspace/internal/config"
	"github.com/san-kum/gridspace/internal/export"
)

const (
	metadataFile   = "metadata.json"
	descriptorFile = "descriptor.yaml"
	cellsFile      = "cells.csv"
)

var (
	ErrNotFound    = errors.New("storage: grid not found")
	ErrInvalidName = errors.New("storage: invalid grid name")
)

// checkName rejects names and IDs that would leave the store directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) ||
		filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Store keeps named grid descriptors under baseDir, one directory per saved
// grid.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type GridMetadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	Precision  string    `json:"precision"`
	Timestamp  time.Time `json:"timestamp"`
	TotalCells int       `json:"total_cells"`
	NumPix     []int     `json:"num_pix"`
	PixelSize  []float64 `json:"pixel_size"`
}

// Save validates cfg by building its grid, then writes the descriptor, its
// metadata and a CSV of every cell. It returns the new grid ID. The record
// is written to a temporary directory and renamed into place, so a failed
// save leaves nothing behind.
func (s *Store) Save(name string, cfg *config.Config) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	data, err := export.FromConfig(cfg)
	if err != nil {
		return "", err
	}

	if err := s.Init(); err != nil {
		return "", err
	}
	tmp, err := os.MkdirTemp(s.baseDir, ".save-")
	if err != nil {
		return "", err
	}

	id := fmt.Sprintf("%s_%s", name, uuid.NewString()[:8])
	if err := writeRecord(tmp, id, name, cfg, data); err != nil {
		os.RemoveAll(tmp)
		return "", err
	}
	if err := os.Rename(tmp, filepath.Join(s.baseDir, id)); err != nil {
		os.RemoveAll(tmp)
		return "", err
	}
	return id, nil
}

func writeRecord(dir, id, name string, cfg *config.Config, data export.GridData) error {
	precision := cfg.Precision
	if precision == "" {
		precision = config.PrecisionFloat64
	}
	meta := GridMetadata{
		ID:         id,
		Name:       name,
		Kind:       cfg.Kind,
		Precision:  precision,
		Timestamp:  time.Now(),
		TotalCells: data.Total,
	}
	for _, a := range data.Axes {
		meta.NumPix = append(meta.NumPix, a.NumPix)
		meta.PixelSize = append(meta.PixelSize, a.PixelSize)
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	named := cfg.Clone()
	named.Name = name
	if err := config.Save(filepath.Join(dir, descriptorFile), named); err != nil {
		return err
	}

	return export.ToFile(filepath.Join(dir, cellsFile), data, export.WriteCSV)
}

// List returns every saved grid, oldest first.
func (s *Store) List() ([]GridMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []GridMetadata{}, nil
		}
		return nil, err
	}

	grids := make([]GridMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		grids = append(grids, *meta)
	}

	sort.Slice(grids, func(i, j int) bool {
		return grids[i].Timestamp.Before(grids[j].Timestamp)
	})
	return grids, nil
}

func (s *Store) Load(id string) (*GridMetadata, error) {
	if err := checkName(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta GridMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadConfig reads back the descriptor of a saved grid.
func (s *Store) LoadConfig(id string) (*config.Config, error) {
	if err := checkName(id); err != nil {
		return nil, err
	}
	path := filepath.Join(s.baseDir, id, descriptorFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return config.Load(path)
}

// LoadCenters reads the stored cell centers, keyed by axis name.
func (s *Store) LoadCenters(id string) (map[string][]float64, error) {
	if err := checkName(id); err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, id, cellsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	centers := make(map[string][]float64)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}
		c, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", cellsFile, i+1, err)
		}
		centers[record[0]] = append(centers[record[0]], c)
	}

	return centers, nil
}

func (s *Store) Delete(id string) error {
	if err := checkName(id); err != nil {
		return err
	}
	dir := filepath.Join(s.baseDir, id)
	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return os.RemoveAll(dir)
}
