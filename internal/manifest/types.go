package manifest

// Manifest records the output of one conversion run.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	Format      string           `json:"format"`
	SourceDir   string           `json:"source_dir"`
	Files       map[string]Entry `json:"files"` // keyed by output path relative to SourceDir
	Failures    []Failure        `json:"failures,omitempty"`
	Stats       Stats            `json:"stats"`
}

// Entry describes one converted file.
type Entry struct {
	Source     string `json:"source"` // relative to source_dir
	Output     string `json:"output"` // relative to source_dir
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SourceSize int64  `json:"source_size"`
	Size       int64  `json:"size"`
	Hash       string `json:"hash"` // 16 hex chars of xxhash64
}

// Failure is a file the run could not convert.
type Failure struct {
	Source string `json:"source"`
	Kind   string `json:"kind"`
	Error  string `json:"error,omitempty"`
}

// Stats aggregates run metrics.
type Stats struct {
	TotalFiles       int   `json:"total_files"`
	Failed           int   `json:"failed"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
