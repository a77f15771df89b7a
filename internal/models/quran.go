package models

// VerseData is a single ayah with its English translation and surah metadata
type VerseData struct {
	GlobalAyah   int    `json:"globalAyah"`
	ArabicAyah   string `json:"arabicAyah"`
	EnglishAyah  string `json:"englishAyah"`
	SurahArabic  string `json:"surahArabic"`
	SurahEnglish string `json:"surahEnglish"`
	AyahInSurah  int    `json:"ayahInSurah"`
	SurahNumber  int    `json:"surahNumber"`
}

// Ref returns the "surah:ayah" reference used to dedupe favorites
func (v VerseData) Ref() string {
	return FormatRef(v.SurahNumber, v.AyahInSurah)
}

// SurahMeta is an entry of the surah index
type SurahMeta struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"`
}

// Ayah is a verse within a surah listing
type Ayah struct {
	NumberInSurah int    `json:"numberInSurah"`
	Text          string `json:"text"`
}

// Surah is a full surah in one language
type Surah struct {
	SurahMeta
	Ayahs []Ayah `json:"ayahs"`
}
