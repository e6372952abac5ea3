package nodes

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// ApologyText is the terminal answer when both backends fail. The turn still
// completes successfully; only the source label records that nobody answered.
const ApologyText = "Lo siento, estoy teniendo problemas para responder en este momento. " +
	"Por favor, inténtalo de nuevo más tarde."

// FallbackCall settles the final answer text and its source. When the primary
// path succeeded it just adopts that answer; otherwise it tries the text-only
// fallback, and failing that, the fixed apology.
func FallbackCall(ctx context.Context, in *GraphState, fb contractx.FallbackModel, primarySource contractx.Source) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	if in.PrimaryErr == nil {
		in.FinalText = in.Primary.Text
		in.Source = primarySource
		return in, nil
	}

	// The song card only accompanies a primary-path answer.
	in.Song = nil

	if fb != nil {
		text, err := fb.Complete(ctx, in.History)
		if err == nil {
			in.FinalText = text
			in.Source = fb.Source()
			return in, nil
		}
		log.Warn().Err(err).Str("source", string(fb.Source())).Msg("fallback completion failed")
	}

	in.FinalText = ApologyText
	in.Source = contractx.SourceNone
	return in, nil
}
