package i18n

// Language describes one supported response language.
type Language struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	IsSALanguage bool   `json:"is_sa_language"`
}

// DefaultLanguage is the language of the base catalog; all translations are
// derived from it.
const DefaultLanguage = "en"

// languageNames maps supported codes to names in their native script.
var languageNames = map[string]string{
	"en":    "English",
	"zu":    "isiZulu",
	"xh":    "isiXhosa",
	"st":    "Sesotho",
	"af":    "Afrikaans",
	"nso":   "Sepedi",
	"tn":    "Setswana",
	"ts":    "Xitsonga",
	"ve":    "Tshivenda",
	"ss":    "siSwati",
	"nr":    "isiNdebele",
	"fr":    "Français",
	"pt":    "Português",
	"es":    "Español",
	"de":    "Deutsch",
	"it":    "Italiano",
	"ar":    "العربية",
	"zh-CN": "中文",
	"hi":    "हिन्दी",
	"sw":    "Kiswahili",
}

// saLanguages is the set of South African official languages.
var saLanguages = map[string]bool{
	"en": true, "zu": true, "xh": true, "st": true, "af": true,
	"nso": true, "tn": true, "ts": true, "ve": true, "ss": true, "nr": true,
}

// Message categories.
const (
	CategoryUI        = "ui"
	CategoryDetection = "detection"
	CategoryError     = "error"
)

// baseTexts is the English catalog. Authors only ever write English here;
// everything else is produced by the translator and cached.
var baseTexts = map[string]map[string]string{
	CategoryUI: {
		"welcome":           "Welcome to AI Detection Tool",
		"upload_video":      "Upload Video",
		"upload_document":   "Upload Document",
		"enter_url":         "Enter URL",
		"analyze":           "Analyze",
		"results":           "Results",
		"ai_detected":       "AI-generated content detected",
		"human_content":     "Likely human-generated content",
		"confidence":        "Confidence",
		"language_detected": "Language Detected",
		"processing":        "Processing your request...",
		"error":             "An error occurred",
		"supported_formats": "Supported formats",
		"video_info":        "Video Information",
		"audio_info":        "Audio Information",
		"document_info":     "Document Information",
	},
	CategoryDetection: {
		"high_confidence_ai":      "This content is very likely AI-generated",
		"medium_confidence_ai":    "This content appears to be AI-generated",
		"low_confidence_ai":       "This content may be AI-generated",
		"high_confidence_human":   "This content is very likely created by a human",
		"medium_confidence_human": "This content appears to be created by a human",
		"low_confidence_human":    "This content may be created by a human",
		"warning":                 "Warning: this content shows signs of AI manipulation. Verify before sharing.",
		"safe":                    "No signs of AI manipulation were detected in this content.",
	},
	CategoryError: {
		"invalid_format":    "Invalid file type",
		"file_too_large":    "The file exceeds the maximum allowed size",
		"no_frames":         "No frames could be extracted from the video",
		"no_text":           "No analyzable text was found in the document",
		"invalid_threshold": "The detection threshold must be between 0 and 1",
		"invalid_url":       "Please provide a valid URL",
		"download_failed":   "Failed to download content from the URL",
		"processing_failed": "Failed to process the uploaded content",
	},
}

// IsSupported reports whether the language code is in the catalog.
func IsSupported(code string) bool {
	_, ok := languageNames[code]
	return ok
}

// LanguageName returns the native-script name for a code, or the code itself
// when unknown.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// SupportedLanguages lists every supported language, SA languages first.
func SupportedLanguages() []Language {
	langs := make([]Language, 0, len(languageNames))
	for code, name := range languageNames {
		langs = append(langs, Language{Code: code, Name: name, IsSALanguage: saLanguages[code]})
	}
	sortLanguages(langs)
	return langs
}

func sortLanguages(langs []Language) {
	// SA languages first, then alphabetical by code.
	for i := 1; i < len(langs); i++ {
		for j := i; j > 0 && less(langs[j], langs[j-1]); j-- {
			langs[j], langs[j-1] = langs[j-1], langs[j]
		}
	}
}

func less(a, b Language) bool {
	if a.IsSALanguage != b.IsSALanguage {
		return a.IsSALanguage
	}
	return a.Code < b.Code
}
