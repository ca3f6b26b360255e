package extractor

import (
	"net/url"
	"sort"

	"github.com/BishopFox/jsluice"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/rs/zerolog"
)

// JSluiceAnalyzer lists URLs referenced by JavaScript source using jsluice
type JSluiceAnalyzer struct {
	logger    zerolog.Logger
	validator *URLValidator
	maxListed int
}

// NewJSluiceAnalyzer creates a new jsluice analyzer
func NewJSluiceAnalyzer(cfg config.ExtractorConfig, logger zerolog.Logger) *JSluiceAnalyzer {
	maxListed := cfg.MaxListed
	if maxListed <= 0 {
		maxListed = config.DefaultExtractorMaxListedURLs
	}
	return &JSluiceAnalyzer{
		logger:    logger.With().Str("component", "JSluiceAnalyzer").Logger(),
		validator: NewURLValidator(logger),
		maxListed: maxListed,
	}
}

// ExtractURLs returns the set of absolute URLs found in content.
func (jsa *JSluiceAnalyzer) ExtractURLs(content []byte, base *url.URL) map[string]struct{} {
	found := make(map[string]struct{})
	if len(content) == 0 {
		return found
	}

	analyzer := jsluice.NewAnalyzer(content)
	results := analyzer.GetURLs()
	jsa.logger.Debug().Int("jsluice_url_count", len(results)).Msg("Jsluice analysis completed")

	for _, res := range results {
		absolute, err := jsa.validator.Resolve(res.URL, base)
		if err != nil {
			jsa.logger.Debug().Str("url", res.URL).Str("type", res.Type).Err(err).Msg("Skipping URL from jsluice")
			continue
		}
		found[absolute] = struct{}{}
	}
	return found
}

// NewURLs returns URLs present in newContent but not in oldContent, sorted and capped at the
// configured maximum. The second value reports how many were left out by the cap.
func (jsa *JSluiceAnalyzer) NewURLs(oldContent, newContent []byte, base *url.URL) ([]string, int) {
	before := jsa.ExtractURLs(oldContent, base)
	after := jsa.ExtractURLs(newContent, base)

	var added []string
	for u := range after {
		if _, seen := before[u]; !seen {
			added = append(added, u)
		}
	}
	sort.Strings(added)

	if len(added) > jsa.maxListed {
		return added[:jsa.maxListed], len(added) - jsa.maxListed
	}
	return added, 0
}
