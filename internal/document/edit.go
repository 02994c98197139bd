package document

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Collection names an editable list of entities with stable ids.
type Collection string

const (
	CollectionExperiences  Collection = "experiences"
	CollectionEducation    Collection = "education"
	CollectionLanguages    Collection = "languages"
	CollectionAchievements Collection = "achievements"
)

var fieldNames = map[string]struct{}{
	"template":     {},
	"theme":        {},
	"personalInfo": {},
	"experiences":  {},
	"education":    {},
	"skills":       {},
	"courses":      {},
	"interests":    {},
	"languages":    {},
	"achievements": {},
	"sectionOrder": {},
	"coverLetter":  {},
}

// ReplaceFields replaces each named top-level field wholesale and returns the updated document.
// Entities arriving without an id get a fresh one; existing ids are kept.
func ReplaceFields(doc Document, patch map[string]json.RawMessage) (Document, error) {
	for name := range patch {
		if _, ok := fieldNames[name]; !ok {
			return doc, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}

	base, err := json.Marshal(doc)
	if err != nil {
		return doc, fmt.Errorf("encode document: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return doc, fmt.Errorf("decode document: %w", err)
	}
	for name, raw := range patch {
		fields[name] = raw
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return doc, fmt.Errorf("encode patch: %w", err)
	}

	var out Document
	if err := json.Unmarshal(merged, &out); err != nil {
		return doc, &ValidationError{Problems: []string{err.Error()}}
	}
	AssignIDs(&out)
	return out, nil
}

// AssignIDs gives a fresh id to every entity that lacks one.
func AssignIDs(doc *Document) {
	for i := range doc.Experiences {
		if doc.Experiences[i].ID == "" {
			doc.Experiences[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Education {
		if doc.Education[i].ID == "" {
			doc.Education[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Languages {
		if doc.Languages[i].ID == "" {
			doc.Languages[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Achievements {
		if doc.Achievements[i].ID == "" {
			doc.Achievements[i].ID = uuid.NewString()
		}
	}
}

// AddItem appends an empty entity with a fresh id to the collection.
func AddItem(doc Document, c Collection) (Document, string, error) {
	out := doc.Clone()
	id := uuid.NewString()
	switch c {
	case CollectionExperiences:
		out.Experiences = append(out.Experiences, Experience{ID: id})
	case CollectionEducation:
		out.Education = append(out.Education, Education{ID: id})
	case CollectionLanguages:
		out.Languages = append(out.Languages, LanguageItem{ID: id, Proficiency: 3})
	case CollectionAchievements:
		out.Achievements = append(out.Achievements, Achievement{ID: id})
	default:
		return doc, "", fmt.Errorf("%w: %s", ErrUnknownCollection, c)
	}
	return out, id, nil
}

// RemoveItem deletes the entity with the given id.
func RemoveItem(doc Document, c Collection, id string) (Document, error) {
	out := doc.Clone()
	var err error
	switch c {
	case CollectionExperiences:
		out.Experiences, err = removeByID(out.Experiences, func(e Experience) string { return e.ID }, id)
	case CollectionEducation:
		out.Education, err = removeByID(out.Education, func(e Education) string { return e.ID }, id)
	case CollectionLanguages:
		out.Languages, err = removeByID(out.Languages, func(l LanguageItem) string { return l.ID }, id)
	case CollectionAchievements:
		out.Achievements, err = removeByID(out.Achievements, func(a Achievement) string { return a.ID }, id)
	default:
		return doc, fmt.Errorf("%w: %s", ErrUnknownCollection, c)
	}
	if err != nil {
		return doc, err
	}
	return out, nil
}

// MoveItem shifts the entity with the given id by delta positions, clamped to the list bounds.
func MoveItem(doc Document, c Collection, id string, delta int) (Document, error) {
	out := doc.Clone()
	var err error
	switch c {
	case CollectionExperiences:
		err = moveByID(out.Experiences, func(e Experience) string { return e.ID }, id, delta)
	case CollectionEducation:
		err = moveByID(out.Education, func(e Education) string { return e.ID }, id, delta)
	case CollectionLanguages:
		err = moveByID(out.Languages, func(l LanguageItem) string { return l.ID }, id, delta)
	case CollectionAchievements:
		err = moveByID(out.Achievements, func(a Achievement) string { return a.ID }, id, delta)
	default:
		return doc, fmt.Errorf("%w: %s", ErrUnknownCollection, c)
	}
	if err != nil {
		return doc, err
	}
	return out, nil
}

// MoveSection shifts a key within sectionOrder by delta positions, clamped to the list bounds.
func MoveSection(doc Document, key string, delta int) (Document, error) {
	out := doc.Clone()
	if err := moveByID(out.SectionOrder, func(k string) string { return k }, key, delta); err != nil {
		return doc, err
	}
	return out, nil
}

func removeByID[T any](items []T, idOf func(T) string, id string) ([]T, error) {
	for i, it := range items {
		if idOf(it) == id {
			return append(items[:i:i], items[i+1:]...), nil
		}
	}
	return items, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

func moveByID[T any](items []T, idOf func(T) string, id string, delta int) error {
	from := -1
	for i, it := range items {
		if idOf(it) == id {
			from = i
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	delta = max(-len(items), min(delta, len(items)))
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(items)-1 {
		to = len(items) - 1
	}
	if to == from {
		return nil
	}
	moved := items[from]
	if to < from {
		copy(items[to+1:from+1], items[to:from])
	} else {
		copy(items[from:to], items[from+1:to+1])
	}
	items[to] = moved
	return nil
}
