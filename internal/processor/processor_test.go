package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/wordbridge/internal/cli"
	"codeberg.org/snonux/wordbridge/internal/testutil"
	"codeberg.org/snonux/wordbridge/internal/translation"
)

func newTestProcessor(t *testing.T, dir string, provider *testutil.MockProvider, rows [][]string) (*Processor, *cli.Flags) {
	t.Helper()

	flags := cli.NewFlags()
	flags.Input = testutil.WriteCSV(t, dir, "input.csv", rows)
	flags.Output = filepath.Join(dir, "output.csv")

	client := translation.NewClient(provider, 1, time.Millisecond)
	return NewProcessorWithClient(flags, client), flags
}

func TestRun_TranslatesCorpus(t *testing.T) {
	dir := t.TempDir()
	provider := &testutil.MockProvider{}
	proc, flags := newTestProcessor(t, dir, provider, [][]string{
		{"id", "sourceText"},
		{"A1", "Первое предложение. Второе предложение."},
		{"B2", "Одно предложение."},
	})

	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rows := testutil.ReadCSV(t, flags.Output)
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}

	header := rows[0]
	statusCol, translatedCol := columnOf(t, header, "status"), columnOf(t, header, "translatedText")

	for _, row := range rows[1:] {
		if row[statusCol] != "ok" {
			t.Errorf("Expected status ok, got %q", row[statusCol])
		}
		if row[translatedCol] == "" {
			t.Error("Expected non-empty translation")
		}
	}

	// Three sentences total, one remote call each.
	if provider.CallCount() != 3 {
		t.Errorf("Expected 3 remote calls, got %d", provider.CallCount())
	}
}

func TestRun_URLSurvivesTranslation(t *testing.T) {
	dir := t.TempDir()
	provider := &testutil.MockProvider{}
	proc, flags := newTestProcessor(t, dir, provider, [][]string{
		{"id", "sourceText"},
		{"A1", "Он купил акции. Подробнее на https://example.com/news."},
	})

	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rows := testutil.ReadCSV(t, flags.Output)
	translated := rows[1][columnOf(t, rows[0], "translatedText")]

	if !strings.HasSuffix(translated, "https://example.com/news.") {
		t.Errorf("Expected translation to end with the literal URL, got %q", translated)
	}
	if strings.Contains(translated, "URLTOKEN") {
		t.Errorf("Placeholder leaked into the output: %q", translated)
	}

	// The URL itself never reaches the remote service.
	for _, call := range provider.Calls {
		if strings.Contains(call, "example.com") {
			t.Errorf("URL was sent to the translator: %q", call)
		}
	}
}

func TestRun_BlankArticle(t *testing.T) {
	dir := t.TempDir()
	provider := &testutil.MockProvider{}
	proc, flags := newTestProcessor(t, dir, provider, [][]string{
		{"id", "sourceText"},
		{"A1", "   "},
	})

	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rows := testutil.ReadCSV(t, flags.Output)
	if got := rows[1][columnOf(t, rows[0], "status")]; got != "empty" {
		t.Errorf("Expected status empty, got %q", got)
	}
	if got := rows[1][columnOf(t, rows[0], "translatedText")]; got != "" {
		t.Errorf("Expected empty translation, got %q", got)
	}
	if provider.CallCount() != 0 {
		t.Errorf("Blank article must not reach the translator, got %d calls", provider.CallCount())
	}
}

func TestRun_ResumeSkipsFinishedRows(t *testing.T) {
	dir := t.TempDir()
	provider := &testutil.MockProvider{}
	proc, flags := newTestProcessor(t, dir, provider, [][]string{
		{"id", "sourceText"},
		{"A1", "Первое предложение."},
		{"B2", "Второе предложение."},
	})

	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	firstOutput := testutil.ReadCSV(t, flags.Output)
	callsAfterFirst := provider.CallCount()

	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if provider.CallCount() != callsAfterFirst {
		t.Errorf("Second run issued %d extra remote calls", provider.CallCount()-callsAfterFirst)
	}

	secondOutput := testutil.ReadCSV(t, flags.Output)
	if len(firstOutput) != len(secondOutput) {
		t.Fatalf("Output row count changed between runs")
	}
	for i := range firstOutput {
		if strings.Join(firstOutput[i], "|") != strings.Join(secondOutput[i], "|") {
			t.Errorf("Row %d changed on resume:\n first: %v\nsecond: %v", i, firstOutput[i], secondOutput[i])
		}
	}

	// The second run records skips in the progress log.
	content, err := os.ReadFile(flags.Output + ".progress.log")
	if err != nil {
		t.Fatalf("Failed to read progress log: %v", err)
	}
	if got := strings.Count(string(content), "skip"); got != 2 {
		t.Errorf("Expected 2 skip entries, got %d", got)
	}
}

func TestRun_OverwriteRetranslates(t *testing.T) {
	dir := t.TempDir()
	provider := &testutil.MockProvider{}
	proc, flags := newTestProcessor(t, dir, provider, [][]string{
		{"id", "sourceText"},
		{"A1", "Первое предложение."},
	})

	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	callsAfterFirst := provider.CallCount()

	flags.Overwrite = true
	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("Overwrite run failed: %v", err)
	}

	if provider.CallCount() != callsAfterFirst*2 {
		t.Errorf("Overwrite run should re-translate everything, got %d calls total", provider.CallCount())
	}
}

func TestRun_ArticleLevelError(t *testing.T) {
	dir := t.TempDir()
	permErr := &translation.PermanentError{StatusCode: 401, Err: errors.New("bad key")}
	provider := &testutil.MockProvider{FailCalls: 1000, Err: permErr}
	proc, flags := newTestProcessor(t, dir, provider, [][]string{
		{"id", "sourceText"},
		{"A1", "Первое предложение."},
	})

	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("Run must continue past article errors, got: %v", err)
	}

	rows := testutil.ReadCSV(t, flags.Output)
	status := rows[1][columnOf(t, rows[0], "status")]
	translated := rows[1][columnOf(t, rows[0], "translatedText")]

	if !strings.HasPrefix(status, "error: ") {
		t.Errorf("Expected error status, got %q", status)
	}
	if translated != "Первое предложение." {
		t.Errorf("Failed article must keep its source text, got %q", translated)
	}
}

func TestRun_DegradedSentenceKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	provider := &testutil.MockProvider{FailCalls: 1000}
	proc, flags := newTestProcessor(t, dir, provider, [][]string{
		{"id", "sourceText"},
		{"A1", "Первое предложение."},
	})

	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rows := testutil.ReadCSV(t, flags.Output)
	if got := rows[1][columnOf(t, rows[0], "status")]; got != "ok" {
		t.Errorf("Soft-failed sentences still yield status ok, got %q", got)
	}
	if got := rows[1][columnOf(t, rows[0], "translatedText")]; got != "Первое предложение." {
		t.Errorf("Expected the untranslated original back, got %q", got)
	}
}

func TestRun_Interrupted(t *testing.T) {
	dir := t.TempDir()
	provider := &testutil.MockProvider{}
	proc, flags := newTestProcessor(t, dir, provider, [][]string{
		{"id", "sourceText"},
		{"A1", "Первое предложение."},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := proc.Run(ctx)
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("Expected ErrInterrupted, got %v", err)
	}

	// The checkpoint exists even though nothing was processed.
	if _, statErr := os.Stat(flags.Output); statErr != nil {
		t.Errorf("Expected a final checkpoint after interruption: %v", statErr)
	}
}

func TestRun_StartIdxAndMaxRows(t *testing.T) {
	dir := t.TempDir()
	provider := &testutil.MockProvider{}
	proc, flags := newTestProcessor(t, dir, provider, [][]string{
		{"id", "sourceText"},
		{"A1", "Первый."},
		{"B2", "Второй."},
		{"C3", "Третий."},
		{"D4", "Четвёртый."},
	})
	flags.StartIdx = 1
	flags.MaxRows = 2

	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rows := testutil.ReadCSV(t, flags.Output)
	statusCol := columnOf(t, rows[0], "status")

	wantStatus := []string{"", "ok", "ok", ""}
	for i, want := range wantStatus {
		if got := rows[i+1][statusCol]; got != want {
			t.Errorf("Row %d: expected status %q, got %q", i, want, got)
		}
	}
}

func TestRun_CheckpointCadence(t *testing.T) {
	dir := t.TempDir()
	provider := &testutil.MockProvider{}
	proc, flags := newTestProcessor(t, dir, provider, [][]string{
		{"id", "sourceText"},
		{"A1", "Один."},
		{"B2", "Два."},
		{"C3", "Три."},
	})
	flags.CheckpointEvery = 1

	if err := proc.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rows := testutil.ReadCSV(t, flags.Output)
	if len(rows) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d", len(rows))
	}
}

func TestRun_MissingInput(t *testing.T) {
	flags := cli.NewFlags()
	flags.Input = "/nonexistent/input.csv"
	flags.Output = filepath.Join(t.TempDir(), "output.csv")

	proc := NewProcessorWithClient(flags, translation.NewClient(&testutil.MockProvider{}, 1, time.Millisecond))
	if err := proc.Run(context.Background()); err == nil {
		t.Fatal("Expected error for missing input file")
	}

	if _, statErr := os.Stat(flags.Output); !os.IsNotExist(statErr) {
		t.Error("No checkpoint may be produced on a configuration error")
	}
}

func TestNewProcessor_InvalidLanguage(t *testing.T) {
	flags := cli.NewFlags()
	flags.SourceLang = "not-a-language-tag"

	if _, err := NewProcessor(flags); err == nil {
		t.Fatal("Expected error for invalid language tag")
	}
}

func columnOf(t *testing.T, header []string, name string) int {
	t.Helper()
	for i, col := range header {
		if col == name {
			return i
		}
	}
	t.Fatalf("Column %s not found in header %v", name, header)
	return -1
}
