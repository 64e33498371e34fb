package content

import "time"

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"

	defaultLocale = LocaleZH
)

var supportedLocales = []Locale{LocaleEN, LocaleZH}

// LocalizedText holds one string per supported locale.
type LocalizedText struct {
	EN string
	ZH string
}

func (t LocalizedText) In(locale Locale) string {
	if locale == LocaleEN {
		return t.EN
	}
	return t.ZH
}

type Bootcamp struct {
	UID             string
	Title           LocalizedText
	Tagline         LocalizedText
	PriceInCents    int64
	Currency        string
	GoodsResourceID string
	CreatedAt       time.Time
}

type Training struct {
	UID             string
	Title           LocalizedText
	Description     LocalizedText
	PriceInCents    int64
	Currency        string
	GoodsResourceID string
	CreatedAt       time.Time
}

// View models carry text already resolved to the request locale so that
// templates stay free of locale logic.

type bootcampView struct {
	UID          string
	Title        string
	Tagline      string
	PriceInCents int64
	Currency     string
	ResourceID   string
}

type trainingView struct {
	UID          string
	Title        string
	Description  string
	PriceInCents int64
	Currency     string
	ResourceID   string
}

type pageData struct {
	Locale    Locale
	Bootcamps []bootcampView
	Bootcamp  bootcampView
	Training  trainingView
	BotID     string
}
