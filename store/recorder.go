package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const schemaName = "hypersonic_tick_v1"

// Recorder streams TickRows for one session into outDir/tmp and moves the
// finished file into outDir on Finalize, so readers never see a partial file.
type Recorder struct {
	session uuid.UUID
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[TickRow]

	rows int
}

func NewRecorder(outDir string, session uuid.UUID) (*Recorder, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("session_%s.parquet", session)
	tmpPath := filepath.Join(tmpDir, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[TickRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.SkipPageBounds("rows"),
	)
	w.SetKeyValueMetadata("schema", schemaName)

	return &Recorder{
		session: session,
		tmpPath: tmpPath,
		outPath: filepath.Join(absOut, name),
		file:    f,
		writer:  w,
	}, nil
}

func (r *Recorder) Session() uuid.UUID { return r.session }
func (r *Recorder) OutPath() string    { return r.outPath }
func (r *Recorder) Rows() int          { return r.rows }

func (r *Recorder) Record(row TickRow) error {
	if r.writer == nil || r.file == nil {
		return fmt.Errorf("recorder is closed")
	}
	if _, err := r.writer.Write([]TickRow{row}); err != nil {
		return fmt.Errorf("write tick %d: %w", row.Tick, err)
	}
	r.rows++
	return nil
}

// Finalize closes the writer and publishes the file. A session with no rows
// leaves nothing behind and returns an empty path.
func (r *Recorder) Finalize() (outPath string, rows int, err error) {
	if r.writer == nil && r.file == nil {
		return "", 0, nil
	}

	var closeErr error
	if r.writer != nil {
		closeErr = r.writer.Close()
		r.writer = nil
	}
	var fileErr error
	if r.file != nil {
		_ = r.file.Sync()
		fileErr = r.file.Close()
		r.file = nil
	}
	if closeErr != nil {
		return "", 0, fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return "", 0, fmt.Errorf("close parquet file: %w", fileErr)
	}

	if r.rows == 0 {
		_ = os.Remove(r.tmpPath)
		return "", 0, nil
	}
	if err := os.Rename(r.tmpPath, r.outPath); err != nil {
		return "", 0, fmt.Errorf("rename parquet: %w", err)
	}
	return r.outPath, r.rows, nil
}
