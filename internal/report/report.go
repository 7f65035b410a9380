package report

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies the outcome of a single file or folder operation.
type Kind int

const (
	KindNone Kind = iota
	KindMissingSource
	KindDecode
	KindEncode
	KindWrite
	KindInvalidDimensions
	KindUnmapped
	KindMove
	KindCopy
	KindCleanup
	KindRewriteMiss
)

var kindNames = map[Kind]string{
	KindNone:              "ok",
	KindMissingSource:     "missing-source",
	KindDecode:            "decode",
	KindEncode:            "encode",
	KindWrite:             "write",
	KindInvalidDimensions: "invalid-dimensions",
	KindUnmapped:          "unmapped",
	KindMove:              "move",
	KindCopy:              "copy",
	KindCleanup:           "cleanup",
	KindRewriteMiss:       "rewrite-miss",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Result is the outcome of one best-effort operation. Failures are values,
// never panics, so callers can aggregate them.
type Result struct {
	OK   bool
	Kind Kind
	Path string
	Err  error
}

// Success returns a successful result for path.
func Success(path string) Result {
	return Result{OK: true, Kind: KindNone, Path: path}
}

// Failure returns a failed result for path.
func Failure(kind Kind, path string, err error) Result {
	return Result{Kind: kind, Path: path, Err: err}
}

func (r Result) String() string {
	if r.OK {
		return "ok " + r.Path
	}
	if r.Err != nil {
		return fmt.Sprintf("%s %s: %v", r.Kind, r.Path, r.Err)
	}
	return fmt.Sprintf("%s %s", r.Kind, r.Path)
}

// Summary aggregates results by kind.
type Summary struct {
	OK       int
	Failed   int
	ByKind   map[Kind]int
	Failures []Result
}

// Add records r.
func (s *Summary) Add(r Result) {
	if r.OK {
		s.OK++
		return
	}
	s.Failed++
	if s.ByKind == nil {
		s.ByKind = make(map[Kind]int)
	}
	s.ByKind[r.Kind]++
	s.Failures = append(s.Failures, r)
}

// Merge folds other into s.
func (s *Summary) Merge(other Summary) {
	s.OK += other.OK
	for _, r := range other.Failures {
		s.Add(r)
	}
}

// String renders e.g. "3 ok, 2 failed (decode=1, unmapped=1)".
func (s Summary) String() string {
	if s.Failed == 0 {
		return fmt.Sprintf("%d ok, 0 failed", s.OK)
	}
	kinds := make([]Kind, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, s.ByKind[k]))
	}
	return fmt.Sprintf("%d ok, %d failed (%s)", s.OK, s.Failed, strings.Join(parts, ", "))
}
