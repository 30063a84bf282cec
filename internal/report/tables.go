package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/cambsdata/crimescope/internal/model"
)

var dangerousHeader = []string{"Latitude", "Longitude", "Total_Crimes", "LSOA_Name", "Most_Common_Crime"}

// WriteDangerousCSV exports the dangerous-locations table as CSV.
func WriteDangerousCSV(path string, locations []model.DangerousLocation) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(dangerousHeader); err != nil {
		return eris.Wrapf(err, "report: write header %s", path)
	}
	for _, loc := range locations {
		row := []string{
			strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
			strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
			strconv.Itoa(loc.TotalCrimes),
			loc.AreaName,
			loc.TopCrimeType,
		}
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "report: write row %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "report: flush %s", path)
	}
	return nil
}

// WriteDangerousXLSX exports the dangerous-locations table as a spreadsheet.
func WriteDangerousXLSX(path string, locations []model.DangerousLocation) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Dangerous Locations")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range dangerousHeader {
		header.AddCell().SetString(col)
	}
	for _, loc := range locations {
		row := sheet.AddRow()
		row.AddCell().SetFloat(loc.Latitude)
		row.AddCell().SetFloat(loc.Longitude)
		row.AddCell().SetInt(loc.TotalCrimes)
		row.AddCell().SetString(loc.AreaName)
		row.AddCell().SetString(loc.TopCrimeType)
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}
