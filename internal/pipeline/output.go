package pipeline

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Dirs holds the output directory layout of a run.
type Dirs struct {
	Base    string
	Charts  string
	Maps    string
	Data    string
	Reports string
}

// OutputDirs creates the output/{charts,maps,data,reports} layout under
// base and returns the resolved paths.
func OutputDirs(base string) (Dirs, error) {
	dirs := Dirs{
		Base:    base,
		Charts:  filepath.Join(base, "charts"),
		Maps:    filepath.Join(base, "maps"),
		Data:    filepath.Join(base, "data"),
		Reports: filepath.Join(base, "reports"),
	}
	for _, d := range []string{dirs.Charts, dirs.Maps, dirs.Data, dirs.Reports} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return Dirs{}, eris.Wrapf(err, "pipeline: create output dir %s", d)
		}
	}
	return dirs, nil
}
