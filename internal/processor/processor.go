package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"

	"codeberg.org/snonux/wordbridge/internal/cli"
	"codeberg.org/snonux/wordbridge/internal/corpus"
	"codeberg.org/snonux/wordbridge/internal/progress"
	"codeberg.org/snonux/wordbridge/internal/segment"
	"codeberg.org/snonux/wordbridge/internal/translation"
	"codeberg.org/snonux/wordbridge/internal/urlmask"
)

// ErrInterrupted is returned by Run when the context is cancelled mid-run.
// The checkpoint has already been flushed by the time it is returned.
var ErrInterrupted = errors.New("run interrupted")

// Processor drives the article translation loop
type Processor struct {
	flags  *cli.Flags
	client *translation.Client
}

// NewProcessor creates a processor from the command-line flags, building the
// configured translation provider and its retrying client.
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	source, err := language.Parse(flags.SourceLang)
	if err != nil {
		return nil, fmt.Errorf("invalid source language %q: %w", flags.SourceLang, err)
	}
	target, err := language.Parse(flags.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", flags.TargetLang, err)
	}

	cfg := &translation.Config{
		Provider:       flags.Provider,
		Model:          flags.Model,
		SourceLanguage: source,
		TargetLanguage: target,
		OpenAIKey:      cli.GetOpenAIKey(),
		GeminiKey:      cli.GetGeminiKey(),
	}

	provider, err := translation.NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	baseDelay := time.Duration(flags.RetryDelay * float64(time.Second))
	client := translation.NewClient(provider, flags.MaxRetries, baseDelay)

	return &Processor{flags: flags, client: client}, nil
}

// NewProcessorWithClient creates a processor around an existing translation
// client, bypassing provider construction.
func NewProcessorWithClient(flags *cli.Flags, client *translation.Client) *Processor {
	return &Processor{flags: flags, client: client}
}

// Run processes the corpus from input to output. It skips finished rows,
// checkpoints every checkpoint-every processed articles, and always flushes
// a final checkpoint when anything changed or no output file exists yet.
func (p *Processor) Run(ctx context.Context) error {
	input, err := corpus.LoadInput(p.flags.Input)
	if err != nil {
		return err
	}

	table := corpus.LoadOrInit(input, p.flags.Output, p.flags.Overwrite)
	plog := progress.New(p.flags.Output + ".progress.log")

	p.warnSourceLanguage(table)

	start := p.flags.StartIdx
	if start < 0 {
		start = 0
	}
	end := table.Len()
	if p.flags.MaxRows > 0 && start+p.flags.MaxRows < end {
		end = start + p.flags.MaxRows
	}

	var processed, skipped, empty, failed int
	sinceCheckpoint := 0
	dirty := false
	interrupted := false

	for i := start; i < end; i++ {
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		id := table.ID(i)

		if !p.flags.Overwrite && table.Done(i) {
			fmt.Printf("Skipping %d/%d: ID=%s (already translated)\n", i+1, end, id)
			plog.Append(id, progress.OutcomeSkip)
			skipped++
			continue
		}

		fmt.Printf("Processing %d/%d: ID=%s\n", i+1, end, id)

		src := table.SourceText(i)
		if strings.TrimSpace(src) == "" {
			table.SetResult(i, "", corpus.StatusEmpty)
			plog.Append(id, progress.OutcomeEmpty)
			empty++
		} else {
			translated, err := p.translateArticle(ctx, src)
			switch {
			case err == nil:
				table.SetResult(i, translated, corpus.StatusOK)
				plog.Append(id, progress.OutcomeOK)
				processed++
			case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
				// Leave the article untouched; its partial work is discarded.
				interrupted = true
			default:
				// Article-level failure: keep the source text, mark the row
				// and move on to the next article.
				table.SetResult(i, src, corpus.ErrorStatus(err.Error()))
				plog.Append(id, progress.ErrorOutcome(err.Error()))
				failed++
			}
			if interrupted {
				break
			}
		}

		dirty = true
		sinceCheckpoint++

		if sinceCheckpoint >= p.flags.CheckpointEvery {
			if err := table.Save(p.flags.Output); err != nil {
				return err
			}
			sinceCheckpoint = 0
			dirty = false
		}
	}

	if dirty || !fileExists(p.flags.Output) {
		if err := table.Save(p.flags.Output); err != nil {
			return err
		}
	}

	p.printSummary(processed, skipped, empty, failed, plog)

	if interrupted {
		return ErrInterrupted
	}
	return nil
}

// translateArticle translates one article sentence by sentence, masking URLs
// around each remote call and joining the results with single spaces.
func (p *Processor) translateArticle(ctx context.Context, text string) (string, error) {
	sentences := segment.Split(text)
	translated := make([]string, 0, len(sentences))

	for _, sentence := range sentences {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		masked, reps := urlmask.Mask(sentence)
		result, err := p.client.Translate(ctx, masked)
		if err != nil {
			return "", err
		}
		translated = append(translated, urlmask.Unmask(result, reps))

		if p.flags.Sleep > 0 {
			if err := sleepContext(ctx, time.Duration(p.flags.Sleep*float64(time.Second))); err != nil {
				return "", err
			}
		}
	}

	return strings.Join(translated, " "), nil
}

// warnSourceLanguage checks the first non-blank article against the
// configured source language and warns on a mismatch. Detection is advisory
// only; the run proceeds either way.
func (p *Processor) warnSourceLanguage(table *corpus.Table) {
	for i := 0; i < table.Len(); i++ {
		text := strings.TrimSpace(table.SourceText(i))
		if text == "" {
			continue
		}

		detected := whatlanggo.DetectLang(text).Iso6391()
		if detected != "" && detected != p.flags.SourceLang {
			fmt.Fprintf(os.Stderr, "Warning: input looks like %q but --source-lang is %q\n",
				detected, p.flags.SourceLang)
		}
		return
	}
}

func (p *Processor) printSummary(processed, skipped, empty, failed int, plog *progress.Log) {
	fmt.Printf("\n=== Translation Summary ===\n")
	fmt.Printf("Translated: %d\n", processed)
	fmt.Printf("Skipped (already done): %d\n", skipped)
	fmt.Printf("Empty source: %d\n", empty)
	if failed > 0 {
		fmt.Printf("Errors: %d\n", failed)
	}
	fmt.Printf("Output: %s\n", p.flags.Output)
	fmt.Printf("Progress log: %s\n", plog.Path())
	fmt.Printf("===========================\n")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
