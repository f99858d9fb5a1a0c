package prompt

const (
	defaultEconomicYears = 5
	defaultHeadlineCount = 5
)

// BuildCountryProfile renders the profile generation prompt.
func (pb *PromptBuilder) BuildCountryProfile(countryName, language string, strictJSON bool) (string, error) {
	return pb.Render(CountryProfileData{
		CountryName:   countryName,
		Language:      language,
		EconomicYears: pb.EconomicYears,
		StrictJSON:    strictJSON,
	})
}

// BuildContentTranslation renders the translation prompt for the original
// description and fun facts of a profile.
func (pb *PromptBuilder) BuildContentTranslation(description string, funFacts []string, targetLanguage string) (string, error) {
	return pb.Render(ContentTranslationData{
		TargetLanguage: targetLanguage,
		Description:    description,
		FunFacts:       funFacts,
	})
}

func (pb *PromptBuilder) BuildCountryNews(countryName, language string) (string, error) {
	return pb.Render(CountryNewsData{
		CountryName:   countryName,
		Language:      language,
		HeadlineCount: pb.HeadlineCount,
	})
}
