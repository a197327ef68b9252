// Package reconcile folds every source table into one master row per
// language. Three key systems identify the same language across sources: ISO
// 639-3 codes, Glottocodes, and raw per-source codes. The registry and the
// Glottolog export form a bipartite ISO<->Glottocode graph, built once; every
// other table is then merged by whichever key it exposes.
package reconcile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
)

type Engine struct {
	log *slog.Logger

	isoSet     map[string]bool
	aliasToISO map[string]string

	// The identifier graph. One ISO code can map to several Glottocodes;
	// Glottolog rows without an ISO code stand alone. Read-only after load.
	glottoToISO map[string]string
	isoToGlotto map[string][]string

	jsonFeatures []JSONFeature
	jsonData     map[string]map[string]any

	ethno   map[string]map[string]string
	wals    map[string]map[string]string
	oss     map[string]map[string]string
	tatoeba map[string]map[string]string

	// JW rows are keyed by ISO 639-2, resolved to 639-3 through the alias map.
	jwByISO3 map[string]string
}

// NewEngine loads every source. Missing files degrade to empty sources; an
// unreadable registry or Glottolog export is only a warning, feature tables
// can still key the universe on their own.
func NewEngine(log *slog.Logger, paths Paths) *Engine {
	e := &Engine{
		log:          log,
		jsonFeatures: paths.JSONFeatures,
		jsonData:     make(map[string]map[string]any),
		jwByISO3:     make(map[string]string),
	}

	var err error
	e.isoSet, e.aliasToISO, err = loadISORegistry(paths.ISORegistry)
	if err != nil {
		log.Warn("iso registry unavailable", "path", paths.ISORegistry, "err", err)
	}
	e.glottoToISO, e.isoToGlotto, err = loadGlottolog(paths.Glottolog)
	if err != nil {
		log.Warn("glottolog export unavailable", "path", paths.Glottolog, "err", err)
	}

	for _, feat := range paths.JSONFeatures {
		e.jsonData[feat.Name] = loadJSONMap(feat.Path)
	}

	e.ethno = loadKeyedCSV(paths.Ethnologue, []string{"ISO Code", "ISO_Code"})
	e.wals = loadKeyedCSV(paths.WALS, []string{"ISO 639-3", "iso", "glottocode", "wals_code"})
	e.oss = loadKeyedCSV(paths.OSSupport, []string{"ISO 639-3 Code", "ISO 639-3"})
	e.tatoeba = loadKeyedCSV(paths.Tatoeba, []string{"ISO 639-3", "glottocode"})

	e.loadJW(paths.JW)

	return e
}

// loadJW resolves the JW availability table, keyed by ISO 639-2, into ISO
// 639-3 space via the registry's alias columns.
func (e *Engine) loadJW(path string) {
	rows, err := readCSVRows(path)
	if err != nil {
		return
	}
	for _, row := range rows {
		iso2 := strings.ToLower(strings.TrimSpace(row["ISO 639-2 Code"]))
		val := strings.TrimSpace(row["Does_have_bible"])
		if iso3 := e.aliasToISO[iso2]; iso3 != "" {
			e.jwByISO3[iso3] = val
		}
		if iso2 != "" && e.isoSet[iso2] {
			e.jwByISO3[iso2] = val
		}
	}
}

// universe collects every code observed anywhere, lowercased and trimmed.
func (e *Engine) universe() []string {
	seen := make(map[string]bool)

	for iso := range e.isoSet {
		seen[iso] = true
	}
	for glotto := range e.glottoToISO {
		seen[glotto] = true
	}
	for _, data := range e.jsonData {
		for k := range data {
			seen[strings.ToLower(strings.TrimSpace(k))] = true
		}
	}
	for _, src := range []map[string]map[string]string{e.ethno, e.wals, e.oss, e.tatoeba} {
		for k := range src {
			seen[k] = true
		}
	}
	delete(seen, "")

	codes := make([]string, 0, len(seen))
	for k := range seen {
		codes = append(codes, k)
	}
	sort.Strings(codes)

	return codes
}

// Entities resolves the canonical identity of every observed code and dedupes
// to one entity per canonical code (candidates arrive in sorted order, so the
// ISO-resolved form of an entity wins over its Glottocode aliases).
func (e *Engine) Entities() []Entity {
	var entities []Entity
	taken := make(map[string]bool)

	for _, raw := range e.universe() {
		ent := e.resolve(raw)
		if taken[ent.Code] {
			continue
		}
		taken[ent.Code] = true
		entities = append(entities, ent)
	}

	return entities
}

// resolve maps one observed code to its canonical entity.
func (e *Engine) resolve(raw string) Entity {
	var iso, glotto string

	if mapped, known := e.glottoToISO[raw]; known {
		iso = mapped
	} else if e.isoSet[raw] {
		iso = raw
	}

	// Primary Glottocode: first in sorted order among the ISO code's matches.
	if iso != "" {
		if glottos := e.isoToGlotto[iso]; len(glottos) > 0 {
			glotto = glottos[0]
		}
	}
	if glotto == "" {
		if _, known := e.glottoToISO[raw]; known {
			glotto = raw
		}
	}

	code := iso
	if code == "" {
		code = glotto
	}
	if code == "" {
		code = raw
	}

	return Entity{Code: code, ISO: iso, Glottocode: glotto}
}

// fetchJSON looks a feature up by ISO code first, Glottocode second.
func (e *Engine) fetchJSON(feature, iso, glotto string) string {
	data := e.jsonData[feature]
	for _, key := range []string{iso, glotto} {
		if key == "" {
			continue
		}
		if v, ok := data[key]; ok {
			return formatValue(v)
		}
	}
	return ""
}

// byEitherKey returns a source row matched by ISO code or Glottocode, ISO
// preferred. Rows matching neither contribute nothing.
func byEitherKey(src map[string]map[string]string, iso, glotto string) map[string]string {
	if iso != "" {
		if row, ok := src[iso]; ok {
			return row
		}
	}
	if glotto != "" {
		if row, ok := src[glotto]; ok {
			return row
		}
	}
	return nil
}

func presence(src map[string]map[string]string, iso, glotto string) string {
	if byEitherKey(src, iso, glotto) != nil {
		return "1"
	}
	return "0"
}

// Row renders one entity's master-table row in Header order.
func (e *Engine) Row(ent Entity) []string {
	row := make([]string, 0, len(Header))
	row = append(row, ent.Code, ent.ISO, ent.Glottocode)

	for _, feat := range e.jsonFeatures {
		row = append(row, e.fetchJSON(feat.Name, ent.ISO, ent.Glottocode))
	}

	eth := byEitherKey(e.ethno, ent.ISO, ent.Glottocode)
	population := eth["Population Size"]
	if population == "" {
		population = eth["Population"]
	}
	row = append(row, coerceCount(population))
	for _, fld := range []string{"Institutional (%)", "Stable (%)", "Endangered (%)", "Extinct (%)"} {
		row = append(row, coercePercent(eth[fld]))
	}
	row = append(row, eth["Digital Support"])

	// Presence-derived features check key sets, not copied values.
	hasGlotto := "0"
	if len(e.isoToGlotto[ent.ISO]) > 0 {
		hasGlotto = "1"
	} else if _, ok := e.glottoToISO[ent.Glottocode]; ok && ent.Glottocode != "" {
		hasGlotto = "1"
	}
	row = append(row, hasGlotto)

	row = append(row, e.jwByISO3[ent.ISO])
	row = append(row, presence(e.oss, ent.ISO, ent.Glottocode))

	sentences := ""
	if trow := byEitherKey(e.tatoeba, ent.ISO, ent.Glottocode); trow != nil {
		raw := trow["Sentences"]
		if raw == "" {
			raw = trow[" Sentences"]
		}
		sentences = coerceCount(raw)
	}
	row = append(row, sentences)

	row = append(row, presence(e.wals, ent.ISO, ent.Glottocode))

	return row
}

// WriteMaster emits the master CSV in sorted code order plus the code list
// JSON. Identical inputs produce byte-identical files.
func (e *Engine) WriteMaster(csvPath, codesPath string) (int, error) {
	entities := e.Entities()

	f, err := os.Create(csvPath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", csvPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return 0, err
	}

	codes := make([]string, 0, len(entities))
	for _, ent := range entities {
		if err := w.Write(e.Row(ent)); err != nil {
			return 0, err
		}
		codes = append(codes, ent.Code)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, err
	}

	data, err := json.MarshalIndent(codes, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(codesPath, data, 0644); err != nil {
		return 0, err
	}

	e.log.Info("master table written",
		"rows", len(entities), "csv", csvPath, "codes", codesPath)

	return len(entities), nil
}
