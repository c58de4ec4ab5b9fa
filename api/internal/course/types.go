package course

import (
	"encoding/json"
	"fmt"
)

// Coursework is one configured piece of instructional material. The course
// service ships it as a fixed-position array; only the positions below carry
// meaning for us and they are named here once, at the boundary.
//
//	[2]  start date, "2006-01-02"
//	[3]  week number
//	[4]  material type
//	[11] title
//	[13] [0].link.url
//	[17] material identifier
type Coursework struct {
	StartDate    string `json:"start_date"`
	Week         int    `json:"week"`
	MaterialType string `json:"material_type"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	MaterialID   string `json:"material_id"`
}

// CourseRecord is the unwrapped course service payload: the exam/course name,
// the configured coursework sequence (order preserved) and the per-assignee,
// weekday-keyed assigned-material identifiers.
type CourseRecord struct {
	ID                string
	Course            string
	Courseworks       []Coursework
	AssignedMaterials map[string]map[string][][]string
}

const (
	cwIdxStartDate = 2
	cwIdxWeek      = 3
	cwIdxType      = 4
	cwIdxTitle     = 11
	cwIdxLinks     = 13
	cwIdxMaterial  = 17
)

func parseCoursework(raw []json.RawMessage) (Coursework, error) {
	var cw Coursework
	if len(raw) <= cwIdxMaterial {
		return cw, fmt.Errorf("coursework record has %d positions, want at least %d", len(raw), cwIdxMaterial+1)
	}
	if err := json.Unmarshal(raw[cwIdxStartDate], &cw.StartDate); err != nil {
		return cw, fmt.Errorf("coursework start date: %w", err)
	}
	if err := json.Unmarshal(raw[cwIdxWeek], &cw.Week); err != nil {
		return cw, fmt.Errorf("coursework week: %w", err)
	}
	if err := json.Unmarshal(raw[cwIdxType], &cw.MaterialType); err != nil {
		return cw, fmt.Errorf("coursework material type: %w", err)
	}
	if err := json.Unmarshal(raw[cwIdxTitle], &cw.Title); err != nil {
		return cw, fmt.Errorf("coursework title: %w", err)
	}
	if err := json.Unmarshal(raw[cwIdxMaterial], &cw.MaterialID); err != nil {
		return cw, fmt.Errorf("coursework material id: %w", err)
	}

	var links []struct {
		Link struct {
			URL string `json:"url"`
		} `json:"link"`
	}
	if err := json.Unmarshal(raw[cwIdxLinks], &links); err != nil {
		return cw, fmt.Errorf("coursework links: %w", err)
	}
	if len(links) > 0 {
		cw.URL = links[0].Link.URL
	}
	return cw, nil
}

type wireLearningPath struct {
	LearningPath struct {
		Primary struct {
			MainInstruction struct {
				Course string `json:"course"`
			} `json:"main instruction"`
			ConfiguredCourseworks [][]json.RawMessage `json:"configured courseworks"`
			CwsMetadata           struct {
				AssignedMaterials map[string]map[string][][]string `json:"assigned materials"`
			} `json:"cws metadata"`
		} `json:"PRIMARY"`
	} `json:"learning path"`
}

func parseCourseRecord(id string, envelope []json.RawMessage) (*CourseRecord, error) {
	if len(envelope) < 3 {
		return nil, fmt.Errorf("course: envelope has %d elements, want at least 3", len(envelope))
	}
	var wire wireLearningPath
	if err := json.Unmarshal(envelope[2], &wire); err != nil {
		return nil, fmt.Errorf("course: decode learning path: %w", err)
	}
	primary := wire.LearningPath.Primary

	rec := &CourseRecord{
		ID:                id,
		Course:            primary.MainInstruction.Course,
		AssignedMaterials: primary.CwsMetadata.AssignedMaterials,
	}
	for i, raw := range primary.ConfiguredCourseworks {
		cw, err := parseCoursework(raw)
		if err != nil {
			return nil, fmt.Errorf("course: coursework %d: %w", i, err)
		}
		rec.Courseworks = append(rec.Courseworks, cw)
	}
	return rec, nil
}
