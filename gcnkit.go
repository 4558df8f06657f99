// Package gcnkit turns raw GCN circular text into a structured record,
// grafts those records onto a relational graph of circulars, authors and
// collaborations, and answers natural-language questions against that
// graph.
package gcnkit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gcnml/gcnkit/classify"
	"github.com/gcnml/gcnkit/extract"
	"github.com/gcnml/gcnkit/graphdb"
	"github.com/gcnml/gcnkit/llm"
	"github.com/gcnml/gcnkit/query"
)

// Engine is the main entry point for the circular pipeline.
type Engine interface {
	// Extract runs the label-driven extraction pipeline over one
	// circular's raw text.
	Extract(ctx context.Context, rawText string) (*extract.Result, error)

	// ExtractFile extracts one circular from a text file.
	ExtractFile(ctx context.Context, path string) (*extract.Result, error)

	// ExtractPath extracts every .txt file under inputDir and writes one
	// JSON record per circular into outputDir. Per-file failures are
	// skipped and reported, not fatal.
	ExtractPath(ctx context.Context, inputDir, outputDir string) (*BatchReport, error)

	// Ingest grafts extraction records (a single .json file or a
	// directory of them) onto the graph under a fresh batch ID.
	Ingest(ctx context.Context, path string) (*BatchReport, error)

	// Ask answers a natural-language question against the graph.
	Ask(ctx context.Context, question string) (*Answer, error)

	// Store returns the underlying graph store for diagnostic access.
	Store() *graphdb.Store

	// Close cleanly shuts down the engine.
	Close() error
}

// Answer is the result of one question run.
type Answer struct {
	Question string           `json:"question"`
	Query    string           `json:"query,omitempty"`
	Text     string           `json:"text"`
	Rows     []map[string]any `json:"rows,omitempty"`
	Retries  int              `json:"retries"`
}

// BatchReport summarises a batch extraction or ingestion run.
type BatchReport struct {
	BatchID   string   `json:"batch_id,omitempty"`
	Processed int      `json:"processed"`
	Skipped   []string `json:"skipped,omitempty"`
}

// engine is the concrete implementation of Engine.
type engine struct {
	cfg       Config
	store     *graphdb.Store
	chat      llm.Provider
	extractor *extract.Orchestrator
	asker     *query.Orchestrator
}

// New creates a gcnkit engine with the given configuration.
func New(cfg Config) (Engine, error) {
	dbPath := cfg.resolveDBPath()

	s, err := graphdb.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening graph store: %w", err)
	}

	chat, err := llm.NewProvider(llm.Config{
		Provider: cfg.Chat.Provider,
		Model:    cfg.Chat.Model,
		BaseURL:  cfg.Chat.BaseURL,
		APIKey:   cfg.Chat.APIKey,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating chat provider: %w", err)
	}

	translator := query.NewLLMTranslator(chat)
	return &engine{
		cfg:   cfg,
		store: s,
		chat:  chat,
		extractor: extract.New(chat, classify.NewLLMClassifier(chat), extract.Options{
			ExtractQuantities: cfg.ExtractQuantities,
		}),
		asker: query.New(
			query.NewLLMGuardrail(chat),
			translator,
			translator,
			s,
			query.NewLLMSynthesizer(chat),
			slog.Default(),
		),
	}, nil
}

func (e *engine) Extract(ctx context.Context, rawText string) (*extract.Result, error) {
	return e.extractor.Run(ctx, rawText)
}

func (e *engine) ExtractFile(ctx context.Context, path string) (*extract.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading circular: %w", err)
	}
	return e.extractor.Run(ctx, string(data))
}

func (e *engine) ExtractPath(ctx context.Context, inputDir, outputDir string) (*BatchReport, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	report := &BatchReport{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		src := filepath.Join(inputDir, entry.Name())
		result, err := e.ExtractFile(ctx, src)
		if err != nil {
			slog.Warn("extraction failed, skipping file", "path", src, "error", err)
			report.Skipped = append(report.Skipped, entry.Name())
			continue
		}

		out := filepath.Join(outputDir, strings.TrimSuffix(entry.Name(), ".txt")+".json")
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			slog.Warn("encoding record failed, skipping file", "path", src, "error", err)
			report.Skipped = append(report.Skipped, entry.Name())
			continue
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return report, fmt.Errorf("writing record %s: %w", out, err)
		}
		report.Processed++
	}
	return report, nil
}

func (e *engine) Ingest(ctx context.Context, path string) (*BatchReport, error) {
	files, err := recordFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoRecords
	}

	report := &BatchReport{BatchID: uuid.NewString()}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			slog.Warn("reading record failed, skipping file", "path", file, "error", err)
			report.Skipped = append(report.Skipped, filepath.Base(file))
			continue
		}
		var rec graphdb.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			slog.Warn("parsing record failed, skipping file", "path", file, "error", err)
			report.Skipped = append(report.Skipped, filepath.Base(file))
			continue
		}
		if err := e.store.Ingest(ctx, rec, report.BatchID); err != nil {
			slog.Warn("ingesting record failed, skipping file", "path", file, "error", err)
			report.Skipped = append(report.Skipped, filepath.Base(file))
			continue
		}
		report.Processed++
	}
	return report, nil
}

// recordFiles resolves path to the list of .json record files it names.
func recordFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("inspecting ingest path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading ingest directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	return files, nil
}

func (e *engine) Ask(ctx context.Context, question string) (*Answer, error) {
	schema, err := e.store.Schema(ctx)
	if err != nil {
		// A missing schema degrades generation quality but is not fatal.
		slog.Warn("reading schema failed, proceeding without it", "error", err)
		schema = ""
	}

	st := e.asker.Run(ctx, question, schema)

	if err := e.store.LogQuery(ctx, graphdb.QueryLog{
		Question: st.Question,
		Query:    st.Query,
		Answer:   st.Answer,
		Retries:  st.Retries,
		RowCount: len(st.Rows),
	}); err != nil {
		slog.Warn("query audit logging failed", "error", err)
	}

	return &Answer{
		Question: st.Question,
		Query:    st.Query,
		Text:     st.Answer,
		Rows:     st.Rows,
		Retries:  st.Retries,
	}, nil
}

func (e *engine) Store() *graphdb.Store {
	return e.store
}

func (e *engine) Close() error {
	return e.store.Close()
}
