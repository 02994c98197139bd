package render

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"resume-studio/internal/document"
)

// Labels is the language pack used for section titles and captions.
type Labels struct {
	Lang                   string
	Experience             string
	Education              string
	Skills                 string
	Languages              string
	Achievements           string
	Courses                string
	Interests              string
	Summary                string
	Contact                string
	About                  string
	Level                  string
	HiringFor              string
	CoverLetterPlaceholder string
	Months                 [12]string
}

// Section returns the localized title for a section key.
func (l Labels) Section(key document.SectionKey) string {
	switch key {
	case document.SectionExperience:
		return l.Experience
	case document.SectionEducation:
		return l.Education
	case document.SectionSkills:
		return l.Skills
	case document.SectionLanguages:
		return l.Languages
	case document.SectionAchievements:
		return l.Achievements
	case document.SectionCourses:
		return l.Courses
	case document.SectionInterests:
		return l.Interests
	}
	return string(key)
}

// FormatDate renders a long date in the pack's language.
func (l Labels) FormatDate(t time.Time) string {
	month := l.Months[int(t.Month())-1]
	if l.Lang == "fr" {
		return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
}

var english = Labels{
	Lang:                   "en",
	Experience:             "Experience",
	Education:              "Education",
	Skills:                 "Skills",
	Languages:              "Languages",
	Achievements:           "Achievements",
	Courses:                "Courses",
	Interests:              "Interests",
	Summary:                "Profile",
	Contact:                "Contact",
	About:                  "About",
	Level:                  "Level",
	HiringFor:              "Hiring for",
	CoverLetterPlaceholder: "Write your cover letter here, or generate a draft from your resume.",
	Months: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
}

var french = Labels{
	Lang:                   "fr",
	Experience:             "Expérience",
	Education:              "Formation",
	Skills:                 "Compétences",
	Languages:              "Langues",
	Achievements:           "Réalisations",
	Courses:                "Formations complémentaires",
	Interests:              "Centres d'intérêt",
	Summary:                "Profil",
	Contact:                "Contact",
	About:                  "À propos",
	Level:                  "Niveau",
	HiringFor:              "Candidature pour",
	CoverLetterPlaceholder: "Rédigez votre lettre de motivation ici, ou générez un brouillon à partir de votre CV.",
	Months: [12]string{"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
}

var (
	supported = []language.Tag{language.English, language.French}
	packs     = []Labels{english, french}
	matcher   = language.NewMatcher(supported)
)

// LabelsFor resolves a language tag or Accept-Language value to a pack, defaulting to English.
func LabelsFor(lang ...string) Labels {
	_, idx := language.MatchStrings(matcher, lang...)
	if idx < 0 || idx >= len(packs) {
		return english
	}
	return packs[idx]
}
