package document

// Template selects the layout strategy used to render a document.
type Template string

const (
	TemplateModern       Template = "modern"
	TemplateClassic      Template = "classic"
	TemplateMinimal      Template = "minimal"
	TemplateProfessional Template = "professional"
	TemplateElegant      Template = "elegant"
	TemplateCreative     Template = "creative"
)

// Templates lists every supported template in display order.
var Templates = []Template{
	TemplateModern,
	TemplateClassic,
	TemplateMinimal,
	TemplateProfessional,
	TemplateElegant,
	TemplateCreative,
}

// Valid reports whether t is one of the supported templates.
func (t Template) Valid() bool {
	for _, known := range Templates {
		if t == known {
			return true
		}
	}
	return false
}

// SectionKey names a reorderable resume section.
type SectionKey string

const (
	SectionExperience   SectionKey = "experience"
	SectionEducation    SectionKey = "education"
	SectionSkills       SectionKey = "skills"
	SectionLanguages    SectionKey = "languages"
	SectionAchievements SectionKey = "achievements"
	SectionCourses      SectionKey = "courses"
	SectionInterests    SectionKey = "interests"
)

// SectionKeys lists every reorderable section in the default order.
var SectionKeys = []SectionKey{
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionLanguages,
	SectionAchievements,
	SectionCourses,
	SectionInterests,
}

// ParseSectionKey returns the key for raw and whether it is known.
func ParseSectionKey(raw string) (SectionKey, bool) {
	for _, k := range SectionKeys {
		if string(k) == raw {
			return k, true
		}
	}
	return "", false
}

// Theme is an optional color set; empty fields fall back to template defaults.
type Theme struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// PersonalInfo holds identity and contact details shared by resume and cover letter.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
	PhotoURL string `json:"photoUrl"`
}

// Experience is one work history entry.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Education is one school entry.
type Education struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// LanguageItem is a spoken language with a proficiency between 1 and 5.
type LanguageItem struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Proficiency int    `json:"proficiency"`
}

// Achievement is a titled accomplishment.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CoverLetter is the cover letter sub-document.
type CoverLetter struct {
	RecipientName string `json:"recipientName"`
	CompanyName   string `json:"companyName"`
	JobTitle      string `json:"jobTitle"`
	Body          string `json:"body"`
}

// Document is the canonical resume + cover letter model owned by an editor session.
type Document struct {
	Template     Template       `json:"template"`
	Theme        *Theme         `json:"theme,omitempty"`
	PersonalInfo PersonalInfo   `json:"personalInfo"`
	Experiences  []Experience   `json:"experiences"`
	Education    []Education    `json:"education"`
	Skills       []string       `json:"skills"`
	Courses      []string       `json:"courses"`
	Interests    []string       `json:"interests"`
	Languages    []LanguageItem `json:"languages"`
	Achievements []Achievement  `json:"achievements"`
	SectionOrder []string       `json:"sectionOrder"`
	CoverLetter  CoverLetter    `json:"coverLetter"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	if d.Theme != nil {
		theme := *d.Theme
		out.Theme = &theme
	}
	out.Experiences = append([]Experience(nil), d.Experiences...)
	out.Education = append([]Education(nil), d.Education...)
	out.Skills = append([]string(nil), d.Skills...)
	out.Courses = append([]string(nil), d.Courses...)
	out.Interests = append([]string(nil), d.Interests...)
	out.Languages = append([]LanguageItem(nil), d.Languages...)
	out.Achievements = append([]Achievement(nil), d.Achievements...)
	out.SectionOrder = append([]string(nil), d.SectionOrder...)
	return out
}
