package render_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/document"
	"resume-studio/internal/render"
)

func fullDocument(t document.Template) document.Document {
	return document.Document{
		Template: t,
		PersonalInfo: document.PersonalInfo{
			FullName: "Jane Doe",
			Role:     "Backend Engineer",
			Email:    "jane@example.com",
			Phone:    "+1 555 0100",
			LinkedIn: "https://linkedin.com/in/janedoe",
			Location: "Montréal",
			Summary:  "Ten years building payment systems.",
		},
		Experiences: []document.Experience{
			{ID: "exp-1", Company: "Initech", Title: "Staff Engineer", StartDate: "2019", EndDate: "Present", Description: "Owned the ledger."},
		},
		Education: []document.Education{
			{ID: "edu-1", School: "McGill", Degree: "BSc Computer Science", StartDate: "2008", EndDate: "2012"},
		},
		Skills:    []string{"Go", "Postgres"},
		Courses:   []string{"Distributed systems"},
		Interests: []string{"Climbing"},
		Languages: []document.LanguageItem{
			{ID: "lang-1", Language: "English", Proficiency: 5},
			{ID: "lang-2", Language: "French", Proficiency: 3},
		},
		Achievements: []document.Achievement{
			{ID: "ach-1", Title: "Speaker", Description: "GopherCon 2023"},
		},
		SectionOrder: []string{"experience", "education", "skills", "languages", "achievements", "courses", "interests"},
	}
}

func regionOf(tree *render.Tree, key string) (render.Region, bool) {
	for _, col := range tree.Columns {
		for _, b := range col.Blocks {
			if b.Find(key) != nil {
				return col.Region, true
			}
		}
	}
	return "", false
}

func sectionKeysIn(tree *render.Tree, region render.Region) []string {
	col := tree.Column(region)
	if col == nil {
		return nil
	}
	var out []string
	for _, b := range col.Blocks {
		if strings.HasPrefix(b.Key, "section:") {
			out = append(out, strings.TrimPrefix(b.Key, "section:"))
		}
	}
	return out
}

func TestRenderIsDeterministic(t *testing.T) {
	reg := render.DefaultRegistry()
	labels := render.LabelsFor("en")
	for _, tpl := range document.Templates {
		t.Run(string(tpl), func(t *testing.T) {
			doc := fullDocument(tpl)
			first := reg.Render(doc, labels)
			second := reg.Render(doc, labels)
			assert.Equal(t, first, second)
			assert.Equal(t, first.HTML(), second.HTML())
		})
	}
}

func TestRenderDoesNotMutateDocument(t *testing.T) {
	reg := render.DefaultRegistry()
	doc := fullDocument(document.TemplateCreative)
	before := doc.Clone()
	reg.Render(doc, render.LabelsFor("fr"))
	assert.Equal(t, before, doc)
}

func TestEmptySectionsRenderNothing(t *testing.T) {
	reg := render.DefaultRegistry()
	labels := render.LabelsFor("en")
	empties := map[document.SectionKey]func(*document.Document){
		document.SectionExperience:   func(d *document.Document) { d.Experiences = nil },
		document.SectionEducation:    func(d *document.Document) { d.Education = []document.Education{} },
		document.SectionSkills:       func(d *document.Document) { d.Skills = []string{" ", ""} },
		document.SectionLanguages:    func(d *document.Document) { d.Languages = nil },
		document.SectionAchievements: func(d *document.Document) { d.Achievements = nil },
		document.SectionCourses:      func(d *document.Document) { d.Courses = nil },
		document.SectionInterests:    func(d *document.Document) { d.Interests = nil },
	}
	for _, tpl := range document.Templates {
		for key, clear := range empties {
			doc := fullDocument(tpl)
			clear(&doc)
			tree := reg.Render(doc, labels)
			assert.Nil(t, tree.Root().Find("section:"+string(key)), "%s/%s", tpl, key)
			assert.Len(t, tree.Root().Keys("section:"), len(document.SectionKeys)-1, "%s/%s", tpl, key)
		}
	}
}

func TestSummaryOnlyWhenPresent(t *testing.T) {
	reg := render.DefaultRegistry()
	for _, tpl := range document.Templates {
		doc := fullDocument(tpl)
		assert.NotNil(t, reg.Render(doc, render.LabelsFor("en")).Root().Find("summary"), tpl)

		doc.PersonalInfo.Summary = "   "
		assert.Nil(t, reg.Render(doc, render.LabelsFor("en")).Root().Find("summary"), tpl)
	}
}

func TestSectionOrderNeverChangesRegion(t *testing.T) {
	reg := render.DefaultRegistry()
	labels := render.LabelsFor("en")
	orders := [][]string{
		{"experience", "education", "skills", "languages", "achievements", "courses", "interests"},
		{"interests", "courses", "achievements", "languages", "skills", "education", "experience"},
		{"skills", "achievements", "experience", "interests", "education", "courses", "languages"},
	}
	for _, tpl := range document.Templates {
		layout := reg.Lookup(tpl).Layout()
		for _, order := range orders {
			doc := fullDocument(tpl)
			doc.SectionOrder = order
			tree := reg.Render(doc, labels)
			for _, key := range document.SectionKeys {
				got, ok := regionOf(tree, "section:"+string(key))
				require.True(t, ok, "%s missing %s", tpl, key)
				want, _ := layout.RegionOf(key)
				assert.Equal(t, want, got, "%s/%s", tpl, key)
			}
		}
	}
}

func TestSectionOrderSequencesWithinRegion(t *testing.T) {
	reg := render.DefaultRegistry()
	doc := fullDocument(document.TemplateProfessional)
	doc.SectionOrder = []string{"interests", "education", "skills", "experience"}

	tree := reg.Render(doc, render.LabelsFor("en"))
	assert.Equal(t, []string{"education", "experience"}, sectionKeysIn(tree, render.RegionMain))
	assert.Equal(t, []string{"interests", "skills"}, sectionKeysIn(tree, render.RegionSidebar))
}

func TestModernSingleExperience(t *testing.T) {
	doc := fullDocument(document.TemplateModern)
	doc.SectionOrder = []string{"experience"}

	tree := render.DefaultRegistry().Render(doc, render.LabelsFor("en"))
	root := tree.Root()

	assert.Equal(t, []string{"section:experience"}, root.Keys("section:"))
	assert.Len(t, root.Keys("entry:exp-1"), 1)
	region, ok := regionOf(tree, "section:experience")
	require.True(t, ok)
	assert.Equal(t, render.RegionRight, region)
	assert.Nil(t, root.Find("section:education"))
	assert.Nil(t, root.Find("section:skills"))
}

func TestEmptySkillsFirstInOrder(t *testing.T) {
	reg := render.DefaultRegistry()
	for _, tpl := range document.Templates {
		doc := fullDocument(tpl)
		doc.Skills = []string{}
		doc.SectionOrder = []string{"skills", "experience"}

		root := reg.Render(doc, render.LabelsFor("en")).Root()
		assert.Nil(t, root.Find("section:skills"), tpl)
		exp := root.Find("section:experience")
		require.NotNil(t, exp, tpl)
		assert.NotNil(t, exp.Find("heading"), tpl)
		assert.NotNil(t, exp.Find("entry:exp-1"), tpl)
	}
}

func TestUnknownAndDuplicateKeysAreSkipped(t *testing.T) {
	doc := fullDocument(document.TemplateClassic)
	doc.SectionOrder = []string{"publications", "skills", "skills", "", "courses"}

	root := render.DefaultRegistry().Render(doc, render.LabelsFor("en")).Root()
	assert.Equal(t, []string{"section:skills", "section:courses"}, root.Keys("section:"))
}

func TestLookupFallsBackToModern(t *testing.T) {
	reg := render.DefaultRegistry()
	assert.Equal(t, document.TemplateModern, reg.Lookup("").Name())
	assert.Equal(t, document.TemplateModern, reg.Lookup("retro").Name())
	assert.Equal(t, document.TemplateElegant, reg.Lookup(document.TemplateElegant).Name())
}

func TestProficiencyIsClamped(t *testing.T) {
	doc := fullDocument(document.TemplateProfessional)
	doc.Languages = []document.LanguageItem{{ID: "l", Language: "German", Proficiency: 9}}
	root := render.DefaultRegistry().Render(doc, render.LabelsFor("en")).Root()
	assert.Equal(t, []string{"proficiency:5"}, root.Keys("proficiency:"))
}

func TestLinkedInSchemeIsStripped(t *testing.T) {
	reg := render.DefaultRegistry()
	for _, tpl := range []document.Template{document.TemplateModern, document.TemplateClassic, document.TemplateProfessional, document.TemplateCreative} {
		contacts := reg.Render(fullDocument(tpl), render.LabelsFor("en")).Root().Find("contacts")
		require.NotNil(t, contacts, tpl)
		text := contacts.TextContent()
		assert.Contains(t, text, "linkedin.com/in/janedoe", tpl)
		assert.NotContains(t, text, "https://", tpl)
	}
}

func TestThemeOverridesPalette(t *testing.T) {
	reg := render.DefaultRegistry()
	for _, tpl := range document.Templates {
		doc := fullDocument(tpl)
		doc.Theme = &document.Theme{Primary: "#ff0000"}
		tree := reg.Render(doc, render.LabelsFor("en"))
		assert.Equal(t, "#ff0000", tree.Theme.Primary, tpl)
		assert.NotEmpty(t, tree.Theme.Background, tpl)
		assert.Contains(t, tree.HTML(), "#ff0000", tpl)
	}
}

func TestCreativeCarriesHexagon(t *testing.T) {
	tree := render.DefaultRegistry().Render(fullDocument(document.TemplateCreative), render.LabelsFor("en"))
	require.Len(t, tree.Decorations, 1)
	assert.Equal(t, "decoration:hexagon", tree.Decorations[0].Key)
	assert.NotNil(t, tree.Header)
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, "fr", render.LabelsFor("fr-CA").Lang)
	assert.Equal(t, "fr", render.LabelsFor("de;q=0.9, fr;q=0.8").Lang)
	assert.Equal(t, "en", render.LabelsFor("en-GB").Lang)
	assert.Equal(t, "en", render.LabelsFor("ja").Lang)
	assert.Equal(t, "en", render.LabelsFor().Lang)
	assert.Equal(t, "Compétences", render.LabelsFor("fr").Section(document.SectionSkills))
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "October 16, 2026", render.LabelsFor("en").FormatDate(day))
	assert.Equal(t, "16 octobre 2026", render.LabelsFor("fr").FormatDate(day))
}

func TestCoverLetterRecipientAndPlaceholder(t *testing.T) {
	day := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	doc := fullDocument(document.TemplateMinimal)
	doc.CoverLetter = document.CoverLetter{RecipientName: "Ms. Smith", CompanyName: "Globex"}

	root := render.CoverLetter(doc, render.LabelsFor("en"), day).Root()
	assert.Nil(t, root.Find("hiring"))
	assert.Equal(t, render.LabelsFor("en").CoverLetterPlaceholder, root.Find("body").Text)
	assert.Equal(t, "October 16, 2026", root.Find("date").Text)

	doc.CoverLetter.JobTitle = "Platform Lead"
	doc.CoverLetter.Body = "Dear Ms. Smith,"
	root = render.CoverLetter(doc, render.LabelsFor("fr"), day).Root()
	require.NotNil(t, root.Find("hiring"))
	assert.Equal(t, "Candidature pour Platform Lead", root.Find("hiring").Text)
	assert.Equal(t, "Dear Ms. Smith,", root.Find("body").Text)
}

func TestCoverLetterHeaderFollowsTemplate(t *testing.T) {
	day := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	classic := render.CoverLetter(fullDocument(document.TemplateClassic), render.LabelsFor("en"), day).Root()
	assert.Equal(t, "center", classic.Find("header").Style["text-align"])
	assert.Equal(t, "jane@example.com • +1 555 0100 • Montréal", classic.Find("contacts").Text)

	modern := render.CoverLetter(fullDocument(document.TemplateModern), render.LabelsFor("en"), day).Root()
	assert.Contains(t, modern.Find("header").TextContent(), "Backend Engineer")
}

func TestWriteHTMLEscapesAndSorts(t *testing.T) {
	n := render.El("div", render.Style{"z-index": "1", "color": "red"},
		render.Txt("p", `<b>"hi"</b>`, nil),
		render.El("img", nil).Attr("src", "a.png").Attr("alt", "x"),
	).Keyed("box")

	var buf bytes.Buffer
	require.NoError(t, render.WriteHTML(&buf, n))
	assert.Equal(t,
		`<div data-key="box" style="color: red; z-index: 1"><p>&lt;b&gt;&#34;hi&#34;&lt;/b&gt;</p><img alt="x" src="a.png"></div>`,
		buf.String())
}
