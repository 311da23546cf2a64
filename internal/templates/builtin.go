package templates

import "github.com/conneroisu/branddna/internal/brand"

func builtinTemplates() []Template {
	return []Template{
		New(DefaultID, "Default", "Neutral slate palette with Inter throughout.", "general", defaultBrand),
		New("professional", "Professional", "Deep navy and serif headings for established firms.", "corporate", professionalBrand),
		New("startup", "Startup", "Electric violet with geometric sans type.", "technology", startupBrand),
		New("organic", "Organic", "Forest greens on warm cream with humanist type.", "nature", organicBrand),
		New("minimal", "Minimal", "Monochrome palette with tight radii.", "minimal", minimalBrand),
		New("vibrant", "Vibrant", "Saturated magenta with rounded shapes.", "bold", vibrantBrand),
		New("creative", "Creative", "Burnt orange on paper with expressive display type.", "creative", creativeBrand),
	}
}

func defaultBrand() brand.BrandDNA {
	return brand.Default()
}

func font(name string, weights []int, url string, fallback ...string) brand.FontFamily {
	return brand.FontFamily{
		Name:     name,
		Weights:  weights,
		Styles:   []string{"normal"},
		URL:      url,
		Fallback: fallback,
	}
}

func professionalBrand() brand.BrandDNA {
	b := brand.Default()
	b.Metadata.Name = "Professional"
	b.Metadata.Industry = "Professional Services"

	b.Colors.Light.Primary = "215 70% 30%"
	b.Colors.Light.Secondary = "210 20% 94%"
	b.Colors.Light.Accent = "43 74% 49%"
	b.Colors.Light.Muted = "210 20% 96%"
	b.Colors.Light.Foreground = "222 47% 11%"
	b.Colors.Light.Ring = "215 70% 30%"
	b.Colors.Dark.Primary = "213 80% 70%"
	b.Colors.Dark.Background = "222 47% 6%"
	b.Colors.Dark.Foreground = "0 0% 98%"
	b.Colors.Dark.Card = "222 47% 9%"
	b.Colors.Chart = []string{"215 70% 30%", "215 50% 55%", "43 74% 49%", "200 18% 46%", "168 40% 40%"}

	b.Typography.Heading = font("Merriweather", []int{700, 900},
		"https://fonts.googleapis.com/css2?family=Merriweather:wght@700;900&display=swap", "Georgia", "serif")
	b.Spacing.Radius["lg"] = "0.25rem"

	b.Strategy = &brand.Strategy{
		ToneOfVoice: brand.ToneOfVoice{Traits: []string{"authoritative", "precise", "trustworthy"}},
	}

	return b
}

func startupBrand() brand.BrandDNA {
	b := brand.Default()
	b.Metadata.Name = "Startup"
	b.Metadata.Industry = "Technology"

	b.Colors.Light.Primary = "262 83% 45%"
	b.Colors.Light.Secondary = "220 14% 96%"
	b.Colors.Light.Accent = "172 66% 50%"
	b.Colors.Light.Foreground = "224 71% 4%"
	b.Colors.Light.Ring = "262 83% 45%"
	b.Colors.Dark.Primary = "263 70% 65%"
	b.Colors.Dark.Background = "224 71% 4%"
	b.Colors.Dark.Foreground = "0 0% 98%"
	b.Colors.Dark.Card = "224 71% 6%"
	b.Colors.Chart = []string{"262 83% 58%", "172 66% 50%", "199 89% 48%", "330 81% 60%", "38 92% 50%"}

	b.Typography.Heading = font("Space Grotesk", []int{500, 700},
		"https://fonts.googleapis.com/css2?family=Space+Grotesk:wght@500;700&display=swap", "system-ui", "sans-serif")
	b.Spacing.Radius["lg"] = "0.75rem"

	b.Strategy = &brand.Strategy{
		ToneOfVoice: brand.ToneOfVoice{Traits: []string{"bold", "optimistic", "curious"}},
	}

	return b
}

func organicBrand() brand.BrandDNA {
	b := brand.Default()
	b.Metadata.Name = "Organic"
	b.Metadata.Industry = "Food & Wellness"

	b.Colors.Light.Primary = "142 50% 28%"
	b.Colors.Light.Secondary = "35 40% 90%"
	b.Colors.Light.Accent = "25 60% 55%"
	b.Colors.Light.Muted = "40 20% 92%"
	b.Colors.Light.Background = "40 33% 98%"
	b.Colors.Light.Foreground = "30 20% 12%"
	b.Colors.Light.Card = "40 33% 99%"
	b.Colors.Light.Border = "35 20% 85%"
	b.Colors.Light.Input = "35 20% 85%"
	b.Colors.Light.Ring = "142 50% 28%"
	b.Colors.Dark.Primary = "142 45% 55%"
	b.Colors.Dark.Background = "30 15% 7%"
	b.Colors.Dark.Foreground = "40 33% 96%"
	b.Colors.Dark.Card = "30 15% 10%"
	b.Colors.Chart = []string{"142 50% 35%", "85 40% 45%", "25 60% 55%", "45 70% 55%", "190 30% 40%"}

	b.Typography.Heading = font("Fraunces", []int{600, 700},
		"https://fonts.googleapis.com/css2?family=Fraunces:wght@600;700&display=swap", "Georgia", "serif")
	b.Typography.Body = font("Nunito Sans", []int{400, 600},
		"https://fonts.googleapis.com/css2?family=Nunito+Sans:wght@400;600&display=swap", "system-ui", "sans-serif")
	b.Spacing.Radius["lg"] = "1rem"

	b.Strategy = &brand.Strategy{
		ToneOfVoice: brand.ToneOfVoice{Traits: []string{"warm", "natural", "honest"}},
	}

	return b
}

func minimalBrand() brand.BrandDNA {
	b := brand.Default()
	b.Metadata.Name = "Minimal"
	b.Metadata.Industry = "Design"

	b.Colors.Light.Primary = "0 0% 9%"
	b.Colors.Light.Secondary = "0 0% 96%"
	b.Colors.Light.Accent = "0 0% 96%"
	b.Colors.Light.Muted = "0 0% 96%"
	b.Colors.Light.Foreground = "0 0% 4%"
	b.Colors.Light.Border = "0 0% 90%"
	b.Colors.Light.Input = "0 0% 90%"
	b.Colors.Light.Ring = "0 0% 4%"
	b.Colors.Dark.Primary = "0 0% 98%"
	b.Colors.Dark.Secondary = "0 0% 15%"
	b.Colors.Dark.Accent = "0 0% 15%"
	b.Colors.Dark.Muted = "0 0% 15%"
	b.Colors.Dark.Background = "0 0% 4%"
	b.Colors.Dark.Foreground = "0 0% 98%"
	b.Colors.Dark.Card = "0 0% 4%"
	b.Colors.Dark.Border = "0 0% 15%"
	b.Colors.Dark.Input = "0 0% 15%"
	b.Colors.Dark.Ring = "0 0% 83%"
	b.Colors.Chart = []string{"0 0% 9%", "0 0% 30%", "0 0% 50%", "0 0% 70%", "0 0% 85%"}

	b.Spacing.Radius["sm"] = "0"
	b.Spacing.Radius["md"] = "0.125rem"
	b.Spacing.Radius["lg"] = "0.125rem"

	b.Strategy = &brand.Strategy{
		ToneOfVoice: brand.ToneOfVoice{Traits: []string{"calm", "concise"}},
	}

	return b
}

func vibrantBrand() brand.BrandDNA {
	b := brand.Default()
	b.Metadata.Name = "Vibrant"
	b.Metadata.Industry = "Entertainment"

	b.Colors.Light.Primary = "330 81% 40%"
	b.Colors.Light.Secondary = "48 96% 89%"
	b.Colors.Light.Accent = "190 95% 39%"
	b.Colors.Light.Foreground = "240 10% 4%"
	b.Colors.Light.Ring = "330 81% 40%"
	b.Colors.Dark.Primary = "330 81% 65%"
	b.Colors.Dark.Background = "240 10% 4%"
	b.Colors.Dark.Foreground = "0 0% 98%"
	b.Colors.Dark.Card = "240 10% 7%"
	b.Colors.Chart = []string{"330 81% 60%", "48 96% 53%", "190 95% 39%", "262 83% 58%", "142 71% 45%"}

	b.Typography.Heading = font("Poppins", []int{700, 800},
		"https://fonts.googleapis.com/css2?family=Poppins:wght@700;800&display=swap", "system-ui", "sans-serif")
	b.Spacing.Radius["lg"] = "1rem"
	b.Spacing.Radius["xl"] = "1.5rem"

	b.Strategy = &brand.Strategy{
		ToneOfVoice: brand.ToneOfVoice{Traits: []string{"playful", "energetic", "loud"}},
	}

	return b
}

func creativeBrand() brand.BrandDNA {
	b := brand.Default()
	b.Metadata.Name = "Creative"
	b.Metadata.Industry = "Creative Agency"

	b.Colors.Light.Primary = "24 95% 35%"
	b.Colors.Light.Secondary = "262 40% 92%"
	b.Colors.Light.Accent = "174 60% 40%"
	b.Colors.Light.Muted = "48 30% 92%"
	b.Colors.Light.Background = "48 100% 98%"
	b.Colors.Light.Foreground = "20 14% 8%"
	b.Colors.Light.Card = "48 100% 99%"
	b.Colors.Light.Border = "40 20% 85%"
	b.Colors.Light.Input = "40 20% 85%"
	b.Colors.Light.Ring = "24 95% 35%"
	b.Colors.Dark.Primary = "24 95% 60%"
	b.Colors.Dark.Background = "20 14% 6%"
	b.Colors.Dark.Foreground = "48 100% 96%"
	b.Colors.Dark.Card = "20 14% 9%"
	b.Colors.Chart = []string{"24 95% 53%", "262 60% 55%", "174 60% 40%", "340 75% 55%", "48 96% 53%"}

	b.Typography.Heading = font("Playfair Display", []int{700, 900},
		"https://fonts.googleapis.com/css2?family=Playfair+Display:wght@700;900&display=swap", "Georgia", "serif")
	b.Typography.Body = font("DM Sans", []int{400, 500, 700},
		"https://fonts.googleapis.com/css2?family=DM+Sans:wght@400;500;700&display=swap", "system-ui", "sans-serif")

	b.Strategy = &brand.Strategy{
		ToneOfVoice: brand.ToneOfVoice{Traits: []string{"expressive", "witty", "unconventional"}},
	}

	return b
}
