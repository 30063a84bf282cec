package fetcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cambsdata/crimescope/internal/model"
)

// ArchiveURL builds the monthly street-crime CSV URL for a force, in the
// data.police.uk layout: {base}/{YYYY-MM}/{YYYY-MM}-{force}-street.csv.
func ArchiveURL(baseURL, force string, month time.Time) string {
	m := model.FormatMonth(month)
	return fmt.Sprintf("%s/%s/%s-%s-street.csv", baseURL, m, m, force)
}

// ArchiveFileName is the local file name for a monthly drop.
func ArchiveFileName(force string, month time.Time) string {
	return fmt.Sprintf("%s-%s-street.csv", model.FormatMonth(month), force)
}

// FetchMonths downloads every month from first to last inclusive into
// dataDir, one subdirectory per month. Returns the local paths written.
func (c *Client) FetchMonths(ctx context.Context, baseURL, force, dataDir string, first, last time.Time) ([]string, error) {
	months := model.MonthRange(first, last)
	if len(months) == 0 {
		return nil, eris.New("fetcher: empty month range")
	}

	var paths []string
	for _, m := range months {
		url := ArchiveURL(baseURL, force, m)
		path := filepath.Join(dataDir, model.FormatMonth(m), ArchiveFileName(force, m))
		n, err := c.DownloadToFile(ctx, url, path)
		if err != nil {
			return paths, eris.Wrapf(err, "fetcher: month %s", model.FormatMonth(m))
		}
		zap.L().Info("fetcher: downloaded month",
			zap.String("month", model.FormatMonth(m)),
			zap.String("path", path),
			zap.Int64("bytes", n),
		)
		paths = append(paths, path)
	}
	return paths, nil
}
