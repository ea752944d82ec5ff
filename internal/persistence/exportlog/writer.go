// Package exportlog appends player exports to daily zstd-compressed JSONL files.
package exportlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"randoexport.ai/internal/export/pipeline"
)

const (
	filePrefix = "exports-"
	fileSuffix = ".jsonl.zst"
	dayLayout  = "2006-01-02"
)

// Record is one logged export. Records appended together share RecordedAt.
type Record struct {
	RecordedAt string                `json:"recorded_at"`
	Export     pipeline.PlayerExport `json:"export"`
}

// Log appends export records under dir, one file per UTC day. Every Append
// ends a zstd frame, so a crashed process loses at most the batch in flight.
type Log struct {
	dir string
	now func() time.Time

	mu   sync.Mutex
	day  string
	file *os.File
	zw   *zstd.Encoder
}

func Open(dir string) *Log {
	return &Log{dir: dir, now: time.Now}
}

// Append writes one record per export, stamped with the same time.
func (l *Log) Append(exports ...pipeline.PlayerExport) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	at := l.now().UTC()
	if err := l.useDay(at.Format(dayLayout)); err != nil {
		return err
	}
	stamp := at.Format(time.RFC3339Nano)
	l.zw.Reset(l.file)
	enc := json.NewEncoder(l.zw)
	for _, e := range exports {
		if err := enc.Encode(Record{RecordedAt: stamp, Export: e}); err != nil {
			return fmt.Errorf("exportlog: player %d: %w", e.Player, err)
		}
	}
	if err := l.zw.Close(); err != nil {
		return fmt.Errorf("exportlog: %w", err)
	}
	return nil
}

func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.release()
}

func (l *Log) useDay(day string) error {
	if day == l.day && l.file != nil {
		return nil
	}
	if err := l.release(); err != nil {
		return err
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("exportlog: %w", err)
	}
	f, err := os.OpenFile(dayPath(l.dir, day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("exportlog: %w", err)
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("exportlog: %w", err)
	}
	l.day, l.file, l.zw = day, f, zw
	return nil
}

// release closes the current day's file. Each Append closes its own frame,
// so the encoder has nothing pending here.
func (l *Log) release() error {
	l.zw = nil
	var err error
	if l.file != nil {
		err = l.file.Close()
		l.file = nil
	}
	l.day = ""
	return err
}

func dayPath(dir, day string) string {
	return filepath.Join(dir, filePrefix+day+fileSuffix)
}

// ListFiles returns the export log files under dir in name order, which is
// also day order.
func ListFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}

// ReadFile decodes every record of one export log file. Concatenated zstd
// frames decode as one stream.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var out []Record
	for sc.Scan() {
		var r Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", filepath.Base(path), len(out)+1, err)
		}
		out = append(out, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}
