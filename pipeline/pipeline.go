package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
	"go.uber.org/zap"

	"glean/config"
	"glean/extract"
	"glean/fetch"
	"glean/search"
	"glean/summarize"
)

// Pipeline turns a research topic into structured document summaries:
// search, URL selection, page fetch, text extraction, summarization.
type Pipeline struct {
	cfg         config.Config
	logger      *zap.Logger
	engine      search.Engine
	loader      fetch.Loader
	transformer extract.Transformer
	summarizer  *summarize.Summarizer
}

// NewPipeline wires explicitly provided collaborators.
func NewPipeline(cfg config.Config, logger *zap.Logger, engine search.Engine, loader fetch.Loader, transformer extract.Transformer, llm llms.Model, splitter textsplitter.TextSplitter) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		logger:      logger,
		engine:      engine,
		loader:      loader,
		transformer: transformer,
		summarizer:  summarize.NewSummarizer(llm, splitter, logger, cfg.Model, cfg.Temperature),
	}
}

// New builds the production pipeline: SerpAPI search, headless Chromium
// fetching, the configured extraction strategy and an OpenAI model.
func New(cfg config.Config, logger *zap.Logger) (*Pipeline, error) {
	transformer, err := newTransformer(cfg, logger)
	if err != nil {
		return nil, err
	}

	llm, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(cfg.ChunkSize),
		textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
	)

	return NewPipeline(
		cfg,
		logger,
		search.NewSerpAPI(cfg.SerpAPIKey, cfg.SearchLocation, logger),
		fetch.NewChromiumLoader(logger, cfg.UserAgent, cfg.FetchTimeout, cfg.MaxConcurrency),
		transformer,
		llm,
		splitter,
	), nil
}

func newTransformer(cfg config.Config, logger *zap.Logger) (extract.Transformer, error) {
	switch cfg.ExtractMode {
	case "", config.ExtractMarkdown:
		return extract.NewMarkdown(logger), nil
	case config.ExtractArticle:
		return extract.NewArticle(logger), nil
	case config.ExtractReadability:
		return extract.NewReadability(logger), nil
	default:
		return nil, fmt.Errorf("unknown extract mode %q", cfg.ExtractMode)
	}
}

// Run executes the full pipeline for one topic.
func (p *Pipeline) Run(ctx context.Context, topic string) ([]summarize.DocumentSummary, error) {
	logger := p.runLogger(topic)
	logger.Info("pipeline started")

	docs, err := p.collect(ctx, logger, topic)
	if err != nil {
		return nil, err
	}

	summaries, err := p.summarizer.CreateAll(ctx, docs, p.cfg.MaxConcurrency)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	logger.Info("pipeline finished", zap.Int("summaries", len(summaries)))
	return summaries, nil
}

// CollectDocuments runs the pipeline up to text extraction and returns
// one plain-text document per fetched page.
func (p *Pipeline) CollectDocuments(ctx context.Context, topic string) ([]schema.Document, error) {
	return p.collect(ctx, p.runLogger(topic), topic)
}

func (p *Pipeline) collect(ctx context.Context, logger *zap.Logger, topic string) ([]schema.Document, error) {
	results, err := p.engine.Search(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	urls, err := search.TopURLs(results, p.cfg.TopURLCount, p.cfg.URLField)
	if err != nil {
		return nil, fmt.Errorf("select urls: %w", err)
	}
	logger.Info("urls selected", zap.Strings("urls", urls))

	htmlDocs, err := p.loader.Load(ctx, urls)
	if err != nil {
		return nil, fmt.Errorf("fetch pages: %w", err)
	}

	docs := p.transformer.Transform(htmlDocs)
	logger.Info("documents collected", zap.Int("count", len(docs)))
	return docs, nil
}

func (p *Pipeline) runLogger(topic string) *zap.Logger {
	return p.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("topic", topic))
}
