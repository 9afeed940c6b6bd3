package bussinbank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeLedger writes l as an indented JSON document.
func EncodeLedger(w io.Writer, l *LedgerData) error {
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode ledger: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// DecodeLedger reads a complete ledger document from r and validates it.
//
// There is no partial recovery: either the whole document is a valid
// LedgerData, or an error is returned. Unknown schema versions are reported
// with ErrUnsupportedSchema before anything else is looked at.
func DecodeLedger(r io.Reader) (*LedgerData, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}

	var probe struct {
		Metadata struct {
			SchemaVersion int `json:"schema_version"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, fmt.Errorf("could not decode ledger: %w", err)
	}
	if v := probe.Metadata.SchemaVersion; v != SchemaVersion {
		return nil, fmt.Errorf("schema version %d: %w", v, ErrUnsupportedSchema)
	}

	var l LedgerData
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("could not decode ledger: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not decode ledger: unexpected data after the document")
	}

	if l.Accounts == nil {
		l.Accounts = make(map[string]Account)
	}
	if l.Transactions == nil {
		l.Transactions = []Transaction{}
	}
	if l.Goals == nil {
		l.Goals = make(map[string]FinancialGoal)
	}
	if l.Metadata.Currency == "" {
		l.Metadata.Currency = DefaultCurrency
	}
	l.bind()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Document returns the generic JSON form of l (maps, slices, float64...),
// as used by JSONPath queries.
func Document(l *LedgerData) (any, error) {
	var b bytes.Buffer
	if err := EncodeLedger(&b, l); err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b.Bytes(), &v); err != nil {
		return nil, err
	}
	return v, nil
}
