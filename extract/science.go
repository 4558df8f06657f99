package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gcnml/gcnkit/llm"
)

// ReportIntents is the closed set of primary communication intents a
// circular's scientific content can carry.
var ReportIntents = []string{
	"NEW_EVENT_DETECTION",
	"FOLLOW_UP_OBSERVATION",
	"NON_DETECTION_LIMIT",
	"ANALYSIS_REFINEMENT",
	"CALL_FOR_FOLLOWUP",
	"NON_EVENT_REPORT",
}

var reportIntentDescriptions = map[string]string{
	"NEW_EVENT_DETECTION":   "The circular reports the initial detection of a new astrophysical transient or event. Key indicators: 'detected', 'discovered', 'triggered', 'alert', 'first report', 'new source'.",
	"FOLLOW_UP_OBSERVATION": "The circular presents observational results (imaging, spectroscopy, photometry, timing) of a previously reported astrophysical event. Key indicators: 'follow-up', 'counterpart candidate', 'monitoring', 'light curve', 'spectrum'.",
	"NON_DETECTION_LIMIT":   "The circular explicitly states that no counterpart or signal was found for a previously reported event and provides quantitative upper limits. Key indicators: 'no detection', 'upper limit', 'limiting magnitude', 'flux limit'.",
	"ANALYSIS_REFINEMENT":   "The circular refines, corrects, or improves upon earlier information about a known event. Key indicators: 'refined position', 'updated localization', 'revised redshift', 'corrected coordinates', 're-analysis of'.",
	"CALL_FOR_FOLLOWUP":     "The circular explicitly requests or encourages other observers or facilities to conduct additional observations of a specific event. Key indicators: 'request follow-up', 'encourage observations', 'please observe'.",
	"NON_EVENT_REPORT":      "The circular does not pertain to any real astrophysical event: system tests, simulations, injections, maintenance notices, or administrative messages. Key indicators: 'test alert', 'simulation', 'maintenance', 'this is a test'.",
}

// QuantityCategories is the closed set of physical-quantity categories for
// the opt-in sentence extraction pass.
var QuantityCategories = map[string]string{
	"position_and_coordinates":                  "Source location on the sky, associated uncertainties, and angular separations. Includes coordinates (RA, Dec, J2000), error regions, and offsets.",
	"time_and_duration":                         "Timing of events or observations. Includes trigger times (T0), durations (T90), intervals, and timestamps (UTC, MJD).",
	"flux_and_brightness":                       "Observed intensity or energy reception rate. Includes flux, count rate, fluence, magnitude.",
	"spectrum_and_energy":                       "Photon/energy distribution vs. wavelength or energy, including spectral indices, characteristic energies (Ep, Epeak, cutoff), isotropic energies (Eiso), and energy bands.",
	"observation_conditions_and_instrument":     "Observation setup and environment: wavelength band/filter, instrumental mode, exposure time, pointing, atmospheric conditions.",
	"distance_and_redshift":                     "Cosmological distance of the source. Primarily redshift, luminosity distance.",
	"extinction_and_absorption":                 "Light attenuation due to intervening material: dust extinction (E(B-V), Av) and gas absorption (NH).",
	"statistical_significance_and_uncertainty":  "Detection significance (sigma, SNR), p-values, false alarm rates, chi-squared statistics, and uncertainties with confidence levels.",
	"upper_limit":                               "A measurement indicating the true value is likely below a threshold with a given confidence; always tied to a quantity from another category.",
	"source_identification_and_characteristics": "Classification (GRB, GW event, neutrino candidate), counterpart association, host galaxy information, and spectral features used for identification.",
}

// scienceExtractor classifies the ScientificContent paragraph's primary
// intent and, when enabled, extracts verbatim sentences per
// physical-quantity category.
type scienceExtractor struct {
	chat              llm.Provider
	extractQuantities bool
}

type reportLabelResult struct {
	Label string `json:"label"`
}

func (e scienceExtractor) Extract(ctx context.Context, paragraph string) (map[string]any, error) {
	resp, err := e.chat.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: reportLabelSystemPrompt()},
			{Role: "user", Content: "GCN Circular text:\n" + paragraph},
		},
		Temperature:    0,
		ResponseFormat: "json_object",
	})
	if err != nil {
		return nil, fmt.Errorf("report labeling chat: %w", err)
	}

	payload, err := llm.ExtractJSON(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing report label: %w", err)
	}
	var result reportLabelResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("unmarshalling report label: %w", err)
	}
	intent := strings.TrimSpace(result.Label)
	if intent == "" {
		return nil, fmt.Errorf("report labeler returned an empty label")
	}
	if !knownIntent(intent) {
		slog.Warn("extract: report intent outside the closed set", "intent", intent)
	}
	slog.Info("extract: primary intent labeled", "intent", intent)

	fields := map[string]any{"intent": intent}

	// Quantity extraction is opt-in; its failure never loses the intent.
	if e.extractQuantities {
		quantities, err := e.extractQuantitySentences(ctx, paragraph)
		if err != nil {
			slog.Warn("extract: quantity extraction failed (non-fatal)", "error", err)
		} else if len(quantities) > 0 {
			fields["quantities"] = quantities
		}
	}
	return fields, nil
}

func (e scienceExtractor) extractQuantitySentences(ctx context.Context, paragraph string) (map[string][]string, error) {
	resp, err := e.chat.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: quantitySystemPrompt()},
			{Role: "user", Content: "GCN Circular text:\n" + paragraph},
		},
		Temperature:    0,
		ResponseFormat: "json_object",
	})
	if err != nil {
		return nil, fmt.Errorf("quantity extraction chat: %w", err)
	}

	payload, err := llm.ExtractJSON(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing quantity result: %w", err)
	}
	var raw map[string][]string
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling quantity result: %w", err)
	}

	// Keep only known, non-empty categories.
	quantities := make(map[string][]string)
	for cat, sentences := range raw {
		if _, ok := QuantityCategories[cat]; !ok || len(sentences) == 0 {
			continue
		}
		quantities[cat] = sentences
	}
	return quantities, nil
}

func knownIntent(intent string) bool {
	for _, i := range ReportIntents {
		if i == intent {
			return true
		}
	}
	return false
}

func reportLabelSystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an expert astronomer analyzing NASA GCN Circulars.\n")
	b.WriteString("Your task is to determine the PRIMARY communication intent of the following circular.\n\n")
	b.WriteString("**Allowed topics (Choose Only From These):**\n")
	for _, label := range ReportIntents {
		fmt.Fprintf(&b, "- %s: %s\n", label, reportIntentDescriptions[label])
	}
	b.WriteString("\nInstructions:\n- Return ONLY one label that best matches the primary purpose.\n")
	b.WriteString("- Respond ONLY with a JSON object of the form {\"label\": \"...\"}.")
	return b.String()
}

func quantitySystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an expert astronomer analyzing NASA GCN Circulars.\n")
	b.WriteString("Your task is to identify and extract specific sentences from the text that contain information about the following physical quantity categories.\n\n")
	b.WriteString("**Categories to Extract:**\n")
	cats := make([]string, 0, len(QuantityCategories))
	for cat := range QuantityCategories {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	for _, cat := range cats {
		fmt.Fprintf(&b, "- %s: %s\n", cat, QuantityCategories[cat])
	}
	b.WriteString(`
**Task Instructions:**
1. Identify Sentences: find all sentences relevant to any of the predefined categories.
2. One Category per Sentence: assign each sentence to the ONE most specific category; do not duplicate a sentence across categories.
3. Extract Verbatim: copy each sentence exactly as it appears. Do not paraphrase.
4. Preserve Context: do not truncate sentences.

Respond ONLY with a JSON object mapping category names to arrays of sentences. Omit empty categories.`)
	return b.String()
}
