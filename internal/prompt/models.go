package prompt

type CountryProfileData struct {
	CountryName   string
	Language      string
	EconomicYears int
	// StrictJSON spells out the key list for providers without schema support.
	StrictJSON bool
}

func (CountryProfileData) templateName() TemplateName { return TemplateCountryProfile }

type ContentTranslationData struct {
	TargetLanguage string
	Description    string
	FunFacts       []string
}

func (ContentTranslationData) templateName() TemplateName { return TemplateContentTranslation }

type CountryNewsData struct {
	CountryName   string
	Language      string
	HeadlineCount int
}

func (CountryNewsData) templateName() TemplateName { return TemplateCountryNews }
