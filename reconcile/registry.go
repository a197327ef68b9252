package reconcile

import (
	"encoding/csv"
	"os"
	"sort"
	"strings"
)

// loadISORegistry parses the tab-delimited ISO 639-3 registry. The first
// column is the code itself, the next three carry historical and alternate
// codes which feed the alias map (alias -> current ISO 639-3 code).
func loadISORegistry(path string) (isoSet map[string]bool, aliasToISO map[string]string, err error) {
	isoSet = make(map[string]bool)
	aliasToISO = make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		return isoSet, aliasToISO, err
	}
	defer f.Close()

	rdr := csv.NewReader(f)
	rdr.Comma = '\t'
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true

	rows, err := rdr.ReadAll()
	if err != nil {
		return isoSet, aliasToISO, err
	}

	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			// Header line.
			continue
		}
		iso := strings.ToLower(strings.TrimSpace(row[0]))
		if iso == "" {
			continue
		}
		isoSet[iso] = true

		aliases := row[1:]
		if len(row) >= 4 {
			aliases = row[1:4]
		}
		for _, part := range aliases {
			part = strings.ToLower(strings.TrimSpace(part))
			if part != "" {
				aliasToISO[part] = iso
			}
		}
	}

	return isoSet, aliasToISO, nil
}

// loadGlottolog parses the Glottolog export. Each row maps one Glottocode to
// zero-or-one ISO code; rows without an ISO code stand alone. The per-ISO
// Glottocode lists are sorted so the "primary" pick is deterministic no matter
// how the export was ordered.
func loadGlottolog(path string) (glottoToISO map[string]string, isoToGlotto map[string][]string, err error) {
	glottoToISO = make(map[string]string)
	isoToGlotto = make(map[string][]string)

	rows, err := readCSVRows(path)
	if err != nil {
		return glottoToISO, isoToGlotto, err
	}

	for _, row := range rows {
		glotto := strings.ToLower(strings.TrimSpace(row["Glottocode"]))
		iso := strings.ToLower(strings.TrimSpace(row["ISO-639-3"]))
		if iso == "" {
			iso = strings.ToLower(strings.TrimSpace(row["ISO_639_3"]))
		}

		if glotto != "" {
			glottoToISO[glotto] = iso
		}
		if iso != "" && glotto != "" {
			isoToGlotto[iso] = append(isoToGlotto[iso], glotto)
		}
	}

	for iso := range isoToGlotto {
		sort.Strings(isoToGlotto[iso])
	}

	return glottoToISO, isoToGlotto, nil
}
