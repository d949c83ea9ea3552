// Package seed provides the initial runway and crew roster of a session.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/flightops/core/model"
)

// RunwayEntry describes one runway in a roster file.
type RunwayEntry struct {
	ID   int    `yaml:"id" json:"id" validate:"gte=0"`
	Type string `yaml:"type" json:"type" validate:"required"`
}

// CrewEntry describes one crew member. Qualifications is a comma separated
// list of aircraft types.
type CrewEntry struct {
	ID             int    `yaml:"id" json:"id" validate:"gte=0"`
	Name           string `yaml:"name" json:"name" validate:"required,max=49"`
	Qualifications string `yaml:"qualifications" json:"qualifications" validate:"max=49"`
}

// Roster is the fixed infrastructure a session starts with.
type Roster struct {
	Runways []RunwayEntry `yaml:"runways" json:"runways" validate:"dive"`
	Crew    []CrewEntry   `yaml:"crew" json:"crew" validate:"dive"`
}

var validate = validator.New()

// Validate rejects entries the registries or the snapshot files cannot
// hold, such as a crew name or qualification list over 49 bytes.
func (r Roster) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("roster %s: failed %s check", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("roster: %w", err)
	}
	return nil
}

// Default returns the built-in roster: three runways and ten crew.
func Default() Roster {
	return Roster{
		Runways: []RunwayEntry{
			{ID: 0, Type: "all"},
			{ID: 1, Type: "international"},
			{ID: 2, Type: "cargo"},
		},
		Crew: []CrewEntry{
			{ID: 0, Name: "Capt. Smith", Qualifications: "Boeing737,AirbusA320"},
			{ID: 1, Name: "F/O Johnson", Qualifications: "Boeing787,AirbusA350"},
			{ID: 2, Name: "Capt. Williams", Qualifications: "Boeing737,Embraer190"},
			{ID: 3, Name: "F/O Brown", Qualifications: "AirbusA320,AirbusA380"},
			{ID: 4, Name: "Capt. Davis", Qualifications: "Boeing777,AirbusA350"},
			{ID: 5, Name: "F/O Miller", Qualifications: "Boeing737,AirbusA320"},
			{ID: 6, Name: "Capt. Wilson", Qualifications: "Boeing787,AirbusA350"},
			{ID: 7, Name: "F/O Moore", Qualifications: "Boeing747,AirbusA380"},
			{ID: 8, Name: "Capt. Taylor", Qualifications: "Embraer190,Embraer195"},
			{ID: 9, Name: "F/O Anderson", Qualifications: "Boeing737,AirbusA320"},
		},
	}
}

// Load reads a roster from a .yaml, .yml or .json file. An empty path
// returns Default.
func Load(path string) (Roster, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("read roster: %w", err)
	}
	var r Roster
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &r)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &r)
	default:
		return Roster{}, fmt.Errorf("unsupported roster format %q", filepath.Ext(path))
	}
	if err != nil {
		return Roster{}, fmt.Errorf("decode roster: %w", err)
	}
	return r, nil
}

// Build converts the roster into available runways and rested crew.
func (r Roster) Build() ([]model.Runway, []model.Crew, error) {
	if err := r.Validate(); err != nil {
		return nil, nil, err
	}
	runways := make([]model.Runway, 0, len(r.Runways))
	for _, e := range r.Runways {
		typ, err := model.ParseRunwayType(e.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("runway %d: %w", e.ID, err)
		}
		runways = append(runways, model.Runway{ID: e.ID, Type: typ, Available: true})
	}
	crew := make([]model.Crew, 0, len(r.Crew))
	for _, e := range r.Crew {
		crew = append(crew, model.Crew{
			ID:             e.ID,
			Name:           e.Name,
			Available:      true,
			Qualifications: model.ParseQualifications(e.Qualifications),
		})
	}
	return runways, crew, nil
}
