package ingest

import (
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// MergeDir merges every .csv under root (recursively) into outPath,
// writing the header of the first file once and skipping the header of
// each subsequent file. Files are visited in sorted path order so the
// merged output is deterministic. A previously merged output inside root
// is skipped. Returns the number of data rows written.
func MergeDir(root, outPath string) (int, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		abs, _ := filepath.Abs(path)
		outAbs, _ := filepath.Abs(outPath)
		if abs == outAbs {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return 0, eris.Wrapf(err, "merge: walk %s", root)
	}
	if len(files) == 0 {
		return 0, eris.Errorf("merge: no csv files under %s", root)
	}
	sort.Strings(files)

	out, err := os.Create(outPath)
	if err != nil {
		return 0, eris.Wrapf(err, "merge: create %s", outPath)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	rows := 0
	wroteHeader := false
	for _, path := range files {
		n, err := appendFile(w, path, &wroteHeader)
		if err != nil {
			return rows, err
		}
		rows += n
		zap.L().Debug("merge: appended file", zap.String("path", path), zap.Int("rows", n))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return rows, eris.Wrapf(err, "merge: flush %s", outPath)
	}

	zap.L().Info("merge: complete",
		zap.Int("files", len(files)),
		zap.Int("rows", rows),
		zap.String("out", outPath),
	)
	return rows, nil
}

func appendFile(w *csv.Writer, path string, wroteHeader *bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, eris.Wrapf(err, "merge: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows := 0
	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, eris.Wrapf(err, "merge: read %s", path)
		}
		if first {
			first = false
			if *wroteHeader {
				continue
			}
			*wroteHeader = true
			if err := w.Write(record); err != nil {
				return rows, eris.Wrapf(err, "merge: write header from %s", path)
			}
			continue
		}
		if err := w.Write(record); err != nil {
			return rows, eris.Wrapf(err, "merge: write row from %s", path)
		}
		rows++
	}
	return rows, nil
}
