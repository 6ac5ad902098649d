package responses

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/opencourier/client-provider/pkg/types"
)

// WriteJSON writes the payload as the response body. Strings are passed
// through untouched, anything else is marshalled. Both Content-Type and
// Mimetype carry application/json; some downstream consumers (the
// rundeck automation in particular) only match on one of the two names.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Mimetype", "application/json")
	w.WriteHeader(status)

	if s, ok := payload.(string); ok {
		if _, err := io.WriteString(w, s); err != nil {
			log.Printf(`{"level":"error","msg":"failed to write response","err":"%v"}`, err)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}

// WriteResult writes the {"result": ...} body shared by every error and
// not-found response.
func WriteResult(w http.ResponseWriter, status int, result any) {
	WriteJSON(w, status, map[string]any{"result": result})
}

// WriteCSV writes records as text/csv. Accepts nil, a single record or a
// slice; a lone record is treated as a one-element list. The header row
// is the first record's field order, so records are assumed homogeneous.
func WriteCSV(w http.ResponseWriter, status int, data any) {
	var records []*types.Record
	switch v := data.(type) {
	case nil:
	case *types.Record:
		if v != nil {
			records = []*types.Record{v}
		}
	case []*types.Record:
		records = v
	}

	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(status)

	if len(records) == 0 {
		return
	}

	cw := csv.NewWriter(w)
	// excel dialect: rows end in CRLF
	cw.UseCRLF = true
	header := records[0].Keys()
	if err := cw.Write(header); err != nil {
		log.Printf(`{"level":"error","msg":"failed to write csv header","err":"%v"}`, err)
		return
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, key := range header {
			row[i] = rec.Field(key)
		}
		if err := cw.Write(row); err != nil {
			log.Printf(`{"level":"error","msg":"failed to write csv row","err":"%v"}`, err)
			return
		}
	}
	cw.Flush()
}
