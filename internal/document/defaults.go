package document

import "github.com/google/uuid"

// Default returns the sample document a new editor session starts with.
func Default() Document {
	order := make([]string, 0, len(SectionKeys))
	for _, k := range SectionKeys {
		order = append(order, string(k))
	}
	return Document{
		Template: TemplateModern,
		PersonalInfo: PersonalInfo{
			FullName: "Alex Morgan",
			Role:     "Product Designer",
			Email:    "alex.morgan@example.com",
			Phone:    "+33 6 12 34 56 78",
			LinkedIn: "https://linkedin.com/in/alexmorgan",
			Location: "Lyon, France",
			Summary:  "Designer with eight years of experience shipping web and mobile products for fintech and retail teams.",
		},
		Experiences: []Experience{
			{
				ID:          uuid.NewString(),
				Company:     "Northwind",
				Title:       "Senior Product Designer",
				Location:    "Lyon",
				StartDate:   "2021-03",
				EndDate:     "Present",
				Description: "Led the redesign of the onboarding flow.\nBuilt and maintained the design system.",
			},
		},
		Education: []Education{
			{
				ID:        uuid.NewString(),
				School:    "Université Lumière Lyon 2",
				Degree:    "Master in Interaction Design",
				StartDate: "2013",
				EndDate:   "2015",
			},
		},
		Skills:    []string{"Figma", "User research", "Prototyping", "Design systems"},
		Courses:   []string{"Accessibility fundamentals"},
		Interests: []string{"Photography", "Cycling"},
		Languages: []LanguageItem{
			{ID: uuid.NewString(), Language: "French", Proficiency: 5},
			{ID: uuid.NewString(), Language: "English", Proficiency: 4},
		},
		SectionOrder: order,
	}
}
