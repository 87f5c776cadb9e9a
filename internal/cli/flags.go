package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Input      string
	Output     string
	Overwrite  bool
	ListModels bool
	Archive    bool

	// Run control flags
	Sleep           float64
	CheckpointEvery int
	StartIdx        int
	MaxRows         int

	// Translation flags
	SourceLang string
	TargetLang string
	Provider   string
	Model      string
	MaxRetries int
	RetryDelay float64
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		CheckpointEvery: 20,
		MaxRows:         0, // unbounded
		SourceLang:      "ru",
		TargetLang:      "en",
		Provider:        "openai",
		MaxRetries:      5,
		RetryDelay:      0.5,
	}
}
