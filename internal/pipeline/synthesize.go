package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/TwentyOOO/audiodub-magic/internal/tts"
)

// synthesisItem is one segment's text queued for a speaker's voice
type synthesisItem struct {
	text      string
	startTime float64
}

// synthesisUnit batches one speaker's segments in chronological order
type synthesisUnit struct {
	voiceID string
	items   []synthesisItem
}

// runSynthesis synthesizes audio for every segment, speaker by
// speaker, and concatenates the buffers in global start-time order
// into one deliverable. Segments without a translation fall back to
// their original text; a per-segment synthesis failure contributes no
// audio but does not abort the stage.
func (p *Pipeline) runSynthesis(ctx context.Context, projectID uuid.UUID) (string, error) {
	segments, err := p.repo.ListSegments(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("failed to load segments: %w", err)
	}
	if len(segments) == 0 {
		return "", ErrNoSegments
	}

	log.Printf("[Synthesize] Synthesizing %d segments...", len(segments))

	// Group by speaker in first-encounter order. The segment list is
	// start-time ordered, so encounter order is deterministic.
	var speakerOrder []uuid.UUID
	units := make(map[uuid.UUID]*synthesisUnit)

	for _, seg := range segments {
		text := seg.OriginalText
		if seg.TranslatedText != nil && *seg.TranslatedText != "" {
			text = *seg.TranslatedText
		}
		if text == "" {
			continue
		}

		speakerID := uuid.Nil
		if seg.SpeakerID != nil {
			speakerID = *seg.SpeakerID
		}
		unit, ok := units[speakerID]
		if !ok {
			unit = &synthesisUnit{voiceID: tts.VoiceForSpeaker(len(speakerOrder))}
			units[speakerID] = unit
			speakerOrder = append(speakerOrder, speakerID)
		}
		unit.items = append(unit.items, synthesisItem{text: text, startTime: seg.StartTime})
	}

	type audioSegment struct {
		audio     []byte
		startTime float64
	}

	var mu sync.Mutex
	var produced []audioSegment

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	for _, speakerID := range speakerOrder {
		unit := units[speakerID]
		log.Printf("[Synthesize] Processing speaker %s with voice %s", speakerID, unit.voiceID)

		for _, item := range unit.items {
			item := item
			voiceID := unit.voiceID
			g.Go(func() error {
				audio, err := p.tts.Synthesize(gctx, item.text, voiceID)
				if err != nil {
					log.Printf("[Synthesize] Failed to synthesize segment at %.2fs: %v", item.startTime, err)
					return nil
				}
				mu.Lock()
				produced = append(produced, audioSegment{audio: audio, startTime: item.startTime})
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	if len(produced) == 0 {
		return "", ErrNoAudioGenerated
	}

	log.Printf("[Synthesize] Generated %d audio segments", len(produced))

	// Assembly order follows the timeline, never per-speaker grouping
	// or call-completion order.
	sort.SliceStable(produced, func(i, j int) bool {
		return produced[i].startTime < produced[j].startTime
	})

	total := 0
	for _, seg := range produced {
		total += len(seg.audio)
	}
	combined := make([]byte, 0, total)
	for _, seg := range produced {
		combined = append(combined, seg.audio...)
	}

	name := fmt.Sprintf("%s/dubbed_audio_%d.mp3", projectID, time.Now().Unix())
	dubbedURL, err := p.store.Put(ctx, name, combined, "audio/mpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload deliverable: %w", err)
	}

	log.Printf("[Synthesize] Upload completed: %s", dubbedURL)
	return dubbedURL, nil
}
