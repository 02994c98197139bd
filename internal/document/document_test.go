package document

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDocumentIsValid(t *testing.T) {
	doc := Default()
	require.NoError(t, doc.Validate())
	assert.Len(t, doc.SectionOrder, len(SectionKeys))
	assert.Equal(t, TemplateModern, doc.Template)
}

func TestValidateRejectsOutOfRangeProficiency(t *testing.T) {
	doc := Default()
	doc.Languages[1].Proficiency = 7

	err := doc.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDocument))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Problems)
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	doc := Default()
	doc.Experiences = append(doc.Experiences, doc.Experiences[0])

	err := doc.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Problems, "experiences[1].id duplicates experiences[0].id")
}

func TestValidateToleratesUnknownSectionKeys(t *testing.T) {
	doc := Default()
	doc.SectionOrder = append(doc.SectionOrder, "publications")
	assert.NoError(t, doc.Validate())
}

func TestValidateJSONRejectsUnknownTemplate(t *testing.T) {
	err := ValidateJSON([]byte(`{"template":"retro","personalInfo":{}}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDocument))
}

func TestReplaceFieldsKeepsIDsAndAssignsMissing(t *testing.T) {
	doc := Default()
	keptID := doc.Experiences[0].ID

	patch := map[string]json.RawMessage{
		"experiences": json.RawMessage(`[{"id":"` + keptID + `","company":"Acme"},{"company":"Globex"}]`),
		"skills":      json.RawMessage(`[]`),
	}
	out, err := ReplaceFields(doc, patch)
	require.NoError(t, err)

	require.Len(t, out.Experiences, 2)
	assert.Equal(t, keptID, out.Experiences[0].ID)
	assert.Equal(t, "Acme", out.Experiences[0].Company)
	assert.NotEmpty(t, out.Experiences[1].ID)
	assert.Empty(t, out.Skills)
	assert.Equal(t, doc.PersonalInfo, out.PersonalInfo)
	assert.Equal(t, "Northwind", doc.Experiences[0].Company, "input document must not change")
}

func TestReplaceFieldsRejectsUnknownField(t *testing.T) {
	_, err := ReplaceFields(Default(), map[string]json.RawMessage{"hobbies": json.RawMessage(`[]`)})
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestAddRemoveItemKeepsIdentity(t *testing.T) {
	doc := Default()
	first := doc.Languages[0].ID

	doc, id, err := AddItem(doc, CollectionLanguages)
	require.NoError(t, err)
	require.Len(t, doc.Languages, 3)
	assert.Equal(t, id, doc.Languages[2].ID)
	assert.Equal(t, 3, doc.Languages[2].Proficiency)

	doc, err = RemoveItem(doc, CollectionLanguages, doc.Languages[1].ID)
	require.NoError(t, err)
	require.Len(t, doc.Languages, 2)
	assert.Equal(t, first, doc.Languages[0].ID)
	assert.Equal(t, id, doc.Languages[1].ID)

	_, err = RemoveItem(doc, CollectionLanguages, "missing")
	assert.True(t, errors.Is(err, ErrItemNotFound))
}

func TestMoveItemClampsAndPreservesIDs(t *testing.T) {
	doc := Default()
	doc, a, _ := AddItem(doc, CollectionAchievements)
	doc, b, _ := AddItem(doc, CollectionAchievements)
	doc, c, _ := AddItem(doc, CollectionAchievements)

	moved, err := MoveItem(doc, CollectionAchievements, c, -5)
	require.NoError(t, err)
	assert.Equal(t, []string{c, a, b}, achievementIDs(moved.Achievements))

	moved, err = MoveItem(moved, CollectionAchievements, c, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{a, c, b}, achievementIDs(moved.Achievements))

	assert.Equal(t, []string{a, b, c}, achievementIDs(doc.Achievements), "input document must not change")
}

func TestMoveItemHugeDeltaClampsToEnds(t *testing.T) {
	doc := Default()
	doc, a, _ := AddItem(doc, CollectionAchievements)
	doc, b, _ := AddItem(doc, CollectionAchievements)
	doc, c, _ := AddItem(doc, CollectionAchievements)

	last, err := MoveItem(doc, CollectionAchievements, a, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, []string{b, c, a}, achievementIDs(last.Achievements))

	first, err := MoveItem(doc, CollectionAchievements, c, math.MinInt)
	require.NoError(t, err)
	assert.Equal(t, []string{c, a, b}, achievementIDs(first.Achievements))

	out, err := MoveSection(Default(), "experience", math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, "experience", out.SectionOrder[len(out.SectionOrder)-1])
}

func TestMoveSection(t *testing.T) {
	doc := Default()
	out, err := MoveSection(doc, "education", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"education", "experience"}, out.SectionOrder[:2])

	_, err = MoveSection(doc, "publications", 1)
	assert.True(t, errors.Is(err, ErrItemNotFound))
}

func TestUnknownCollection(t *testing.T) {
	_, _, err := AddItem(Default(), Collection("projects"))
	assert.True(t, errors.Is(err, ErrUnknownCollection))
}
