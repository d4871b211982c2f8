package knowledge

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ImportXLSX reads key/response pairs from a spreadsheet and adds them to
// the store. Column A is the key, column B the response; every sheet is
// scanned and rows with an empty key are skipped. Keys are taken verbatim,
// like Load does for JSON files. Returns the number of entries added.
func (s *Store) ImportXLSX(path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		s.notifyf("Error opening spreadsheet %q: %v", path, err)
		return 0, err
	}
	defer f.Close()

	added := 0
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			s.notifyf("Error reading sheet %q: %v", sheet, err)
			continue
		}
		for _, row := range rows {
			if len(row) == 0 || row[0] == "" {
				continue
			}
			response := ""
			if len(row) > 1 {
				response = row[1]
			}
			s.Add(row[0], response)
			added++
		}
	}

	if added == 0 {
		return 0, fmt.Errorf("no key/response rows found in %q", path)
	}
	s.notifyf("Imported %d entries from %q.", added, path)
	return added, nil
}
