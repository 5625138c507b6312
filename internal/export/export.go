// Package export copies workflow files that are already API graphs into a
// destination directory under their *.api.json name.
package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"

	"wfcatalog/internal/safeio"
	"wfcatalog/internal/util/jsonutil"
	"wfcatalog/internal/workflow"
)

const DefaultGlob = "*.json"

// Mirror receives a copy of every file written to the destination.
type Mirror interface {
	Put(ctx context.Context, name string, content []byte) error
}

type Request struct {
	SourceDir string `json:"source_dir"`
	DestDir   string `json:"dest_dir"`
	Overwrite bool   `json:"overwrite"`
	Glob      string `json:"glob"`
}

type Result struct {
	SourceDir string   `json:"source_dir"`
	DestDir   string   `json:"dest_dir"`
	Converted []string `json:"converted"`
	// SkippedUI holds UI workflows and files that could not be parsed.
	SkippedUI []string `json:"skipped_ui"`
	// Invalid is the subset of SkippedUI that failed to parse.
	Invalid      []string `json:"invalid"`
	Failed       []string `json:"failed"`
	MirrorFailed []string `json:"mirror_failed"`
}

func (r *Result) Summary() string {
	return fmt.Sprintf("Converted: %d | UI-only (needs API export): %d", len(r.Converted), len(r.SkippedUI))
}

type Option func(*Exporter)

// WithMirror uploads every converted file to m after it is written locally.
func WithMirror(m Mirror) Option {
	return func(e *Exporter) { e.mirror = m }
}

// WithOpener replaces how source and destination directories are opened.
func WithOpener(open func(dir string) (*safeio.SafeFS, error)) Option {
	return func(e *Exporter) { e.open = open }
}

type Exporter struct {
	open   func(dir string) (*safeio.SafeFS, error)
	mkdir  func(dir string) error
	mirror Mirror
}

func New(opts ...Option) *Exporter {
	e := &Exporter{
		open:  safeio.NewOS,
		mkdir: safeio.MkdirRoot,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ConvertAll scans req.SourceDir and writes every API graph it finds into
// req.DestDir. Per-file failures are recorded in the result; only setup
// failures and cancellation are returned as errors.
func (e *Exporter) ConvertAll(ctx context.Context, req Request) (*Result, error) {
	if e == nil {
		return nil, errors.New("exporter is nil")
	}
	glob := req.Glob
	if glob == "" {
		glob = DefaultGlob
	}
	res := &Result{
		SourceDir:    req.SourceDir,
		DestDir:      req.DestDir,
		Converted:    []string{},
		SkippedUI:    []string{},
		Invalid:      []string{},
		Failed:       []string{},
		MirrorFailed: []string{},
	}

	if e.mkdir != nil {
		if err := e.mkdir(req.DestDir); err != nil {
			return nil, fmt.Errorf("create dest dir: %w", err)
		}
	}
	src, err := e.open(req.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("open source dir: %w", err)
	}
	dst, err := e.open(req.DestDir)
	if err != nil {
		return nil, fmt.Errorf("open dest dir: %w", err)
	}

	matches, err := src.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", glob, err)
	}
	for _, match := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.convertOne(ctx, src, dst, match, req.Overwrite, res)
	}
	return res, nil
}

func (e *Exporter) convertOne(ctx context.Context, src, dst *safeio.SafeFS, match string, overwrite bool, res *Result) {
	name := path.Base(match)

	raw, err := src.ReadMatch(match)
	if err != nil {
		log.Printf("export: read %s: %v", match, err)
		res.SkippedUI = append(res.SkippedUI, name)
		res.Invalid = append(res.Invalid, name)
		return
	}
	doc, err := workflow.Parse(raw)
	if err != nil {
		res.SkippedUI = append(res.SkippedUI, name)
		res.Invalid = append(res.Invalid, name)
		return
	}
	if !workflow.IsAPIGraph(doc) {
		res.SkippedUI = append(res.SkippedUI, name)
		return
	}

	out := workflow.ExportName(name)
	exists, err := dst.Exists(out)
	if err != nil {
		log.Printf("export: stat %s: %v", out, err)
		res.Failed = append(res.Failed, out)
		return
	}
	if exists && !overwrite {
		return
	}

	body, err := jsonutil.IndentNoEscape(raw, "  ")
	if err != nil {
		log.Printf("export: format %s: %v", match, err)
		res.Failed = append(res.Failed, out)
		return
	}
	if err := dst.WriteFileAtomic(out, body); err != nil {
		log.Printf("export: write %s: %v", out, err)
		res.Failed = append(res.Failed, out)
		return
	}
	res.Converted = append(res.Converted, out)

	if e.mirror == nil {
		return
	}
	if err := e.mirror.Put(ctx, out, body); err != nil {
		log.Printf("export: mirror %s: %v", out, err)
		res.MirrorFailed = append(res.MirrorFailed, out)
	}
}
