// Package bussinbank keeps track of a person's financial state: accounts,
// transactions and goals. It derives metrics such as net worth, burn rate and
// runway from that state.
//
// The core functionalities include:
//   - Domain Model: validated, immutable Transaction values and the Account,
//     FinancialGoal and LedgerData types they are recorded against.
//   - Ledger Store: the single owner of a LedgerData, exposing read-only
//     metrics and the only sanctioned mutation paths.
//   - Persistence: the ledger is a single JSON document replaced atomically
//     on every mutation, and refused outright when it does not validate.
//
// Forward projections live in the forecast sub package, and the bb
// command-line tool in cmd is built on top of this package.
package bussinbank
