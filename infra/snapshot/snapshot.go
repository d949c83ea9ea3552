// Package snapshot persists the flight, runway and crew registries between
// runs. Each entity type lives in its own file holding a little-endian
// int32 count followed by that many fixed-size records.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kilianp07/flightops/core/logger"
	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/registry"
)

const (
	FlightsFile = "flights.dat"
	RunwaysFile = "runways.dat"
	CrewFile    = "crew.dat"
)

var byteOrder = binary.LittleEndian

// Snapshot is the registry content saved at shutdown.
type Snapshot struct {
	Flights []model.Flight
	Runways []model.Runway
	Crew    []model.Crew
	// Found lists the files that were present on load.
	Found []string
	// Truncated lists the files that held more records than the limits allow.
	Truncated []Truncation
}

// Truncation records a file whose count exceeded its limit on load.
type Truncation struct {
	File  string
	Count int
	Kept  int
}

// Limits caps how many records of each kind Load keeps. Non-positive
// values select the registry defaults.
type Limits struct {
	Flights int
	Runways int
	Crew    int
}

func (l Limits) withDefaults() Limits {
	if l.Flights <= 0 {
		l.Flights = registry.MaxFlights
	}
	if l.Runways <= 0 {
		l.Runways = registry.MaxRunways
	}
	if l.Crew <= 0 {
		l.Crew = registry.MaxCrew
	}
	return l
}

// Empty reports whether no snapshot file was found.
func (s Snapshot) Empty() bool { return len(s.Found) == 0 }

// Has reports whether file was present on load.
func (s Snapshot) Has(file string) bool {
	for _, f := range s.Found {
		if f == file {
			return true
		}
	}
	return false
}

// Store reads and writes snapshot files in a directory.
type Store struct {
	dir    string
	limits Limits
	log    logger.Logger
}

// NewStore returns a store rooted at dir that loads at most limits records
// of each kind.
func NewStore(dir string, limits Limits, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop{}
	}
	return &Store{dir: dir, limits: limits.withDefaults(), log: log}
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string { return s.dir }

// Load reads every snapshot file. Missing files are skipped; counts above
// the store limits are truncated and listed in Snapshot.Truncated.
func (s *Store) Load() (Snapshot, error) {
	var snap Snapshot
	found, err := readFile(s, &snap, FlightsFile, s.limits.Flights, func(r flightRecord) error {
		f, err := r.decode()
		if err != nil {
			return err
		}
		snap.Flights = append(snap.Flights, f)
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	if found {
		snap.Found = append(snap.Found, FlightsFile)
	}
	found, err = readFile(s, &snap, RunwaysFile, s.limits.Runways, func(r runwayRecord) error {
		rw, err := r.decode()
		if err != nil {
			return err
		}
		snap.Runways = append(snap.Runways, rw)
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	if found {
		snap.Found = append(snap.Found, RunwaysFile)
	}
	found, err = readFile(s, &snap, CrewFile, s.limits.Crew, func(r crewRecord) error {
		c, err := r.decode()
		if err != nil {
			return err
		}
		snap.Crew = append(snap.Crew, c)
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	if found {
		snap.Found = append(snap.Found, CrewFile)
	}
	s.log.Infof("snapshot loaded from %s: %d flights, %d runways, %d crew",
		s.dir, len(snap.Flights), len(snap.Runways), len(snap.Crew))
	return snap, nil
}

// Save writes the three files. Each file is replaced atomically.
func (s *Store) Save(flights []model.Flight, runways []model.Runway, crew []model.Crew) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	frecs := make([]flightRecord, 0, len(flights))
	for _, f := range flights {
		rec, err := encodeFlight(f)
		if err != nil {
			return err
		}
		frecs = append(frecs, rec)
	}
	rrecs := make([]runwayRecord, 0, len(runways))
	for _, rw := range runways {
		rrecs = append(rrecs, encodeRunway(rw))
	}
	crecs := make([]crewRecord, 0, len(crew))
	for _, c := range crew {
		rec, clipped := encodeCrew(c)
		if clipped {
			s.log.Warnf("crew %d: name or qualifications clipped to %d bytes", c.ID, maxText)
		}
		crecs = append(crecs, rec)
	}
	if err := writeFile(s.path(FlightsFile), frecs); err != nil {
		return err
	}
	if err := writeFile(s.path(RunwaysFile), rrecs); err != nil {
		return err
	}
	if err := writeFile(s.path(CrewFile), crecs); err != nil {
		return err
	}
	s.log.Infof("snapshot saved to %s", s.dir)
	return nil
}

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

func readFile[R any](s *Store, snap *Snapshot, name string, limit int, fn func(R) error) (bool, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	var count int32
	if err := binary.Read(f, byteOrder, &count); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return true, fmt.Errorf("%s count: %w", name, err)
	}
	if count < 0 {
		return true, fmt.Errorf("%s: negative count %d", name, count)
	}
	if int(count) > limit {
		s.log.Warnf("%s holds %d records, keeping the first %d", name, count, limit)
		snap.Truncated = append(snap.Truncated, Truncation{File: name, Count: int(count), Kept: limit})
		count = int32(limit)
	}
	for i := int32(0); i < count; i++ {
		var rec R
		if err := binary.Read(f, byteOrder, &rec); err != nil {
			return true, fmt.Errorf("%s record %d: %w", name, i, err)
		}
		if err := fn(rec); err != nil {
			return true, fmt.Errorf("%s record %d: %w", name, i, err)
		}
	}
	return true, nil
}

func writeFile[R any](path string, recs []R) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if err := binary.Write(tmp, byteOrder, int32(len(recs))); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, rec := range recs {
		if err := binary.Write(tmp, byteOrder, rec); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}
