package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// TranslationSummary reports how many segments carry a translation
// after the stage ran, out of the project's total.
type TranslationSummary struct {
	TranslatedCount int
	TotalCount      int
}

// runTranslation translates every untranslated segment with original
// text. A per-segment provider failure is logged and skipped; the
// stage only fails outright when the project has no segments or no
// text to work with. Already-translated segments are never touched, so
// re-running the stage only fills remaining gaps.
func (p *Pipeline) runTranslation(ctx context.Context, projectID uuid.UUID, targetLanguage string) (*TranslationSummary, error) {
	segments, err := p.repo.ListSegments(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load segments: %w", err)
	}
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	type job struct {
		id   uuid.UUID
		text string
	}

	var pending []job
	alreadyTranslated := 0
	attemptable := 0
	for _, seg := range segments {
		if seg.OriginalText == "" {
			continue
		}
		attemptable++
		if seg.TranslatedText != nil {
			alreadyTranslated++
			continue
		}
		pending = append(pending, job{id: seg.ID, text: seg.OriginalText})
	}
	if attemptable == 0 {
		return nil, ErrNothingToTranslate
	}

	log.Printf("[Translate] Translating %d segments...", len(pending))

	var mu sync.Mutex
	results := make(map[uuid.UUID]string, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	for _, j := range pending {
		j := j
		g.Go(func() error {
			translated, err := p.translator.Translate(gctx, j.text, targetLanguage)
			if err != nil {
				log.Printf("[Translate] Failed to translate segment %s: %v", j.id, err)
				return nil
			}
			mu.Lock()
			results[j.id] = translated
			mu.Unlock()
			return nil
		})
	}
	// Per-segment failures are swallowed above, so Wait only orders the
	// batch write after every attempt has finished.
	_ = g.Wait()

	log.Printf("[Translate] Updating %d translations...", len(results))
	if err := p.repo.UpdateSegmentTranslations(ctx, results); err != nil {
		return nil, fmt.Errorf("failed to persist translations: %w", err)
	}

	return &TranslationSummary{
		TranslatedCount: alreadyTranslated + len(results),
		TotalCount:      len(segments),
	}, nil
}
