package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/logisco/courierfront/internal/core/domain"
)

var errUnexpectedQuoteShape = errors.New("price response is neither an object nor an array")

// DecodeQuoteResult turns a price response into a tagged result. The
// backend answers with a single quote object or with a list of options.
func DecodeQuoteResult(body []byte) (domain.QuoteResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return domain.QuoteResult{}, fmt.Errorf("decode quote: %w", errUnexpectedQuoteShape)
	}

	switch trimmed[0] {
	case '{':
		var q domain.PriceQuote
		if err := json.Unmarshal(trimmed, &q); err != nil {
			return domain.QuoteResult{}, fmt.Errorf("decode quote: %w", err)
		}
		return domain.QuoteResult{Kind: domain.QuoteSingle, Quotes: []domain.PriceQuote{q}}, nil
	case '[':
		var qs []domain.PriceQuote
		if err := json.Unmarshal(trimmed, &qs); err != nil {
			return domain.QuoteResult{}, fmt.Errorf("decode quotes: %w", err)
		}
		return domain.QuoteResult{Kind: domain.QuoteOptions, Quotes: qs}, nil
	default:
		return domain.QuoteResult{}, fmt.Errorf("decode quote: %w", errUnexpectedQuoteShape)
	}
}
