package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// setupLedger points the commands to a fresh ledger in a temporary directory,
// with the clock frozen on 2025-06-15.
func setupLedger(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "ledger.json")
	t.Setenv("BUSSINBANK_TESTING_NOW", "2025-06-15T09:00:00Z")
	t.Setenv("BUSSINBANK_ARCHIVE", filepath.Join(tmp, "archive.db"))
	t.Setenv("BUSSINBANK_LOG_LEVEL", "error")
	t.Setenv("BUSSINBANK_BACKUP_URI", "")

	oldLedgerFile, oldPlain := ledgerFile, plain
	ledgerFile = &path
	yes := true
	plain = &yes
	t.Cleanup(func() { ledgerFile, plain = oldLedgerFile, oldPlain })
	return path
}

// seedLedger opens a checking account and records a salary and a rent.
func seedLedger(t *testing.T) {
	t.Helper()
	for _, step := range []struct {
		cmd  subcommands.Command
		args []string
	}{
		{&accountCmd{}, []string{"-id", "chase", "-name", "Chase", "-type", "checking", "-balance", "4200"}},
		{&addCmd{}, []string{"-a", "chase", "-amount", "3000", "-d", "2025-06-01", "-c", "salary"}},
		{&addCmd{}, []string{"-a", "chase", "-amount", "-1200", "-d", "2025-06-02", "-c", "housing:rent", "-m", "Landlord"}},
	} {
		if status, out := run(t, step.cmd, step.args...); status != subcommands.ExitSuccess {
			t.Fatalf("%s %v = %v, output:\n%s", step.cmd.Name(), step.args, status, out)
		}
	}
}

// run executes cmd with args and returns its status and standard output.
func run(t *testing.T, cmd subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Parse(%v) failed: %v", args, err)
	}

	var out bytes.Buffer
	oldStdout := stdout
	stdout = &out
	defer func() { stdout = oldStdout }()

	status := cmd.Execute(context.Background(), f)
	return status, out.String()
}

func TestLedgerCommands(t *testing.T) {
	setupLedger(t)
	seedLedger(t)

	testCases := []struct {
		name string
		cmd  subcommands.Command
		args []string
		want []string
	}{
		{
			name: "status",
			cmd:  &statusCmd{},
			want: []string{"| Net Worth | $6,000.00 |", "| Runway | 150 days |", "| housing | $1,200.00 |"},
		},
		{
			name: "accounts",
			cmd:  &accountsCmd{},
			want: []string{"| chase | Chase | checking |  | $6,000.00 | X |"},
		},
		{
			name: "transactions",
			cmd:  &transactionsCmd{},
			want: []string{"| 2025-06-01 | chase | income | salary | +$3,000.00 |", "| 2025-06-02 | chase | expense | housing:rent | -$1,200.00 | Landlord |"},
		},
		{
			name: "transactions of the month",
			cmd:  &transactionsCmd{},
			args: []string{"-p", "month", "-d", "2025-06-30"},
			want: []string{"salary", "housing:rent"},
		},
		{
			name: "spending",
			cmd:  &spendingCmd{},
			args: []string{"-month", "2025-06"},
			want: []string{"# Spending in June 2025", "| housing | $1,200.00 |"},
		},
		{
			name: "spending this month",
			cmd:  &spendingCmd{},
			want: []string{"# Spending in June 2025"},
		},
		{
			name: "spending without outflows",
			cmd:  &spendingCmd{},
			args: []string{"-month", "2025-05"},
			want: []string{"# Spending in May 2025", "Nothing spent."},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := run(t, tc.cmd, tc.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("Execute() = %v, want ExitSuccess", status)
			}
			for _, want := range tc.want {
				if !strings.Contains(out, want) {
					t.Errorf("output does not contain %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestTransactions_Limits(t *testing.T) {
	setupLedger(t)
	seedLedger(t)

	status, out := run(t, &transactionsCmd{}, "-tail", "1")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	if strings.Contains(out, "salary") || !strings.Contains(out, "housing:rent") {
		t.Errorf("-tail 1 should only list the rent:\n%s", out)
	}

	status, out = run(t, &transactionsCmd{}, "-a", "amex")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	if strings.Contains(out, "chase") {
		t.Errorf("-a amex should list nothing:\n%s", out)
	}

	if status, _ := run(t, &transactionsCmd{}, "-head", "1", "-tail", "1"); status != subcommands.ExitUsageError {
		t.Errorf("Execute(-head -tail) = %v, want ExitUsageError", status)
	}
}

func TestCommandErrors(t *testing.T) {
	setupLedger(t)
	seedLedger(t)

	testCases := []struct {
		name string
		cmd  subcommands.Command
		args []string
		want subcommands.ExitStatus
	}{
		{"add without account", &addCmd{}, []string{"-amount", "12"}, subcommands.ExitUsageError},
		{"add to unknown account", &addCmd{}, []string{"-a", "amex", "-amount", "-12"}, subcommands.ExitFailure},
		{"add with bad amount", &addCmd{}, []string{"-a", "chase", "-amount", "twelve"}, subcommands.ExitFailure},
		{"add with bad date", &addCmd{}, []string{"-a", "chase", "-amount", "-12", "-d", "someday"}, subcommands.ExitFailure},
		{"duplicate account", &accountCmd{}, []string{"-id", "chase", "-name", "Chase"}, subcommands.ExitFailure},
		{"account without name", &accountCmd{}, []string{"-id", "amex"}, subcommands.ExitUsageError},
		{"unknown account type", &accountCmd{}, []string{"-id", "amex", "-name", "Amex", "-type", "shoebox"}, subcommands.ExitFailure},
		{"goal without target", &goalCmd{}, []string{"-name", "Trip"}, subcommands.ExitUsageError},
		{"spending with bad month", &spendingCmd{}, []string{"-month", "June"}, subcommands.ExitUsageError},
		{"project in the past", &projectCmd{}, []string{"-d", "2025-01-01"}, subcommands.ExitFailure},
		{"project with bad expense", &projectCmd{}, []string{"-d", "+1m", "-expense", "500"}, subcommands.ExitUsageError},
		{"months-until without target", &monthsUntilCmd{}, nil, subcommands.ExitUsageError},
		{"retire with zero rate", &retireCmd{}, []string{"-expenses", "40000", "-rate", "0"}, subcommands.ExitFailure},
		{"negative forecast", &forecastCmd{}, []string{"-months", "-1"}, subcommands.ExitUsageError},
		{"forecast too far", &forecastCmd{}, []string{"-months", "5000"}, subcommands.ExitUsageError},
		{"query without path", &queryCmd{}, nil, subcommands.ExitUsageError},
		{"backup without uri", &backupCmd{}, nil, subcommands.ExitUsageError},
		{"unknown topic", &topicCmd{}, []string{"nope"}, subcommands.ExitFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if status, out := run(t, tc.cmd, tc.args...); status != tc.want {
				t.Errorf("Execute(%v) = %v, want %v, output:\n%s", tc.args, status, tc.want, out)
			}
		})
	}
}

func TestAdd_Persists(t *testing.T) {
	path := setupLedger(t)
	seedLedger(t)

	status, out := run(t, &addCmd{}, "-a", "chase", "-amount", "-42.10", "-c", "food:groceries", "-tags", "weekly, food")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	if want := "Recorded expense -$42.10 on 2025-06-15 in chase"; !strings.HasPrefix(out, want) {
		t.Errorf("output = %q, want prefix %q", out, want)
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read ledger: %v", err)
	}
	if !strings.Contains(string(doc), "food:groceries") {
		t.Errorf("ledger file misses the new transaction:\n%s", doc)
	}
}

func TestGoals(t *testing.T) {
	setupLedger(t)
	seedLedger(t)

	status, out := run(t, &goalCmd{}, "-id", "trip", "-name", "Trip", "-target", "1000", "-current", "250")
	if status != subcommands.ExitSuccess {
		t.Fatalf("goal Execute() = %v, want ExitSuccess", status)
	}
	if want := `Goal "Trip" (trip): $250.00 of $1,000.00`; !strings.Contains(out, want) {
		t.Errorf("output = %q, want %q", out, want)
	}

	// Same id replaces the goal.
	if status, _ := run(t, &goalCmd{}, "-id", "trip", "-name", "Trip", "-target", "1000", "-current", "400", "-d", "+6m", "-priority", "high"); status != subcommands.ExitSuccess {
		t.Fatalf("goal Execute() = %v, want ExitSuccess", status)
	}

	status, out = run(t, &goalsCmd{})
	if status != subcommands.ExitSuccess {
		t.Fatalf("goals Execute() = %v, want ExitSuccess", status)
	}
	if want := "| Trip | high | active | $400.00 | $1,000.00 | 2025-12-15 |"; !strings.Contains(out, want) {
		t.Errorf("goals output does not contain %q:\n%s", want, out)
	}
	if strings.Count(out, "| Trip |") != 1 {
		t.Errorf("goal was not replaced:\n%s", out)
	}
}

func TestForecastCommands(t *testing.T) {
	setupLedger(t)
	seedLedger(t)

	testCases := []struct {
		name string
		cmd  subcommands.Command
		args []string
		want string
	}{
		{
			name: "project",
			cmd:  &projectCmd{},
			args: []string{"-d", "2025-07-15"},
			want: "On 2025-07-15, you'll have ≈ $33,000.00 in liquid cash (+$0.00/mo saved)\n",
		},
		{
			name: "project with extra savings",
			cmd:  &projectCmd{},
			args: []string{"-d", "+1m", "-extra", "304.375"},
			want: "On 2025-07-15, you'll have ≈ $33,300.00 in liquid cash (+$304.38/mo saved)\n",
		},
		{
			name: "project with an expense",
			cmd:  &projectCmd{},
			args: []string{"-d", "2025-07-15", "-expense", "2025-07-01:500"},
			want: "On 2025-07-15, you'll have ≈ $32,500.00 in liquid cash (+$0.00/mo saved)\n",
		},
		{
			name: "months until",
			cmd:  &monthsUntilCmd{},
			args: []string{"-target", "1000000"},
			want: "Net worth reaches $1,000,000.00 in 37 months.\n",
		},
		{
			name: "months until reached",
			cmd:  &monthsUntilCmd{},
			args: []string{"-target", "5000"},
			want: "Net worth reaches $5,000.00 in 0 months.\n",
		},
		{
			name: "retire",
			cmd:  &retireCmd{},
			args: []string{"-expenses", "40000"},
			want: "Nest egg: $1,000,000.00\nMonths: 37\nDate: 2028-06-29\n",
		},
		{
			name: "forecast",
			cmd:  &forecastCmd{},
			args: []string{"-months", "0"},
			want: "| Month | Projected Liquid Cash |\n|:---|---:|\n| 2025-06 | $6,000.00 |\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := run(t, tc.cmd, tc.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("Execute() = %v, want ExitSuccess", status)
			}
			if out != tc.want {
				t.Errorf("output = %q, want %q", out, tc.want)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	setupLedger(t)
	seedLedger(t)

	testCases := []struct {
		path string
		want string
	}{
		{"$.metadata.currency", "\"USD\"\n"},
		{"$.accounts.chase.balance", "6000\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			status, out := run(t, &queryCmd{}, tc.path)
			if status != subcommands.ExitSuccess {
				t.Fatalf("Execute() = %v, want ExitSuccess", status)
			}
			if out != tc.want {
				t.Errorf("query %s = %q, want %q", tc.path, out, tc.want)
			}
		})
	}
}

func TestImport(t *testing.T) {
	setupLedger(t)

	seed := filepath.Join(t.TempDir(), "seed.yaml")
	content := `accounts:
  - id: chase
    name: Chase Checking
    type: checking
    opening_balance: 5000
goals:
  - id: trip
    name: Trip
    target_amount: 1000
transactions:
  - date: 2025-06-01
    amount: -42.10
    category: food:groceries
    account_id: chase
    type: expense
  - date: 2025-06-02
    amount: -10
    account_id: amex
    type: expense
`
	if err := os.WriteFile(seed, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	status, out := run(t, &importCmd{}, seed)
	if status != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want ExitFailure for the unknown account", status)
	}
	if want := "Imported 1 accounts, 1 goals and 1 transactions.\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	_, out = run(t, &accountsCmd{})
	if want := "| chase | Chase Checking | checking |  | $4,957.90 | X |"; !strings.Contains(out, want) {
		t.Errorf("accounts output does not contain %q:\n%s", want, out)
	}
}

func TestExportSQLite(t *testing.T) {
	setupLedger(t)
	seedLedger(t)

	db := filepath.Join(t.TempDir(), "ledger.db")
	if status, out := run(t, &exportSQLiteCmd{}, db); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess, output:\n%s", status, out)
	}
	if _, err := os.Stat(db); err != nil {
		t.Errorf("database was not created: %v", err)
	}
	if status, _ := run(t, &exportSQLiteCmd{}, db); status != subcommands.ExitFailure {
		t.Errorf("exporting over an existing file = %v, want ExitFailure", status)
	}
}

func TestSnapshot(t *testing.T) {
	setupLedger(t)
	seedLedger(t)

	status, out := run(t, &snapshotCmd{})
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	key := "2025-06-15T09:00:00.000000000Z"
	if want := "Snapshot " + key + "\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	status, out = run(t, &snapshotCmd{}, "-list")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute(-list) = %v, want ExitSuccess", status)
	}
	if out != key+"\n" {
		t.Errorf("list = %q, want %q", out, key+"\n")
	}
}

func TestTopic(t *testing.T) {
	setupLedger(t)

	status, out := run(t, &topicCmd{})
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	if !strings.Contains(out, "# BussinBank") {
		t.Errorf("readme not printed:\n%s", out)
	}

	status, out = run(t, &topicCmd{}, "-list")
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute(-list) = %v, want ExitSuccess", status)
	}
	want := "forecast\nimport\nledger\nmetrics\ntools\n"
	if out != want {
		t.Errorf("topic -list = %q, want %q", out, want)
	}
}

func TestRegister(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("bb", flag.ContinueOnError), "bb")
	Register(commander)

	names := make(map[string]bool)
	for _, commands := range Commands {
		for _, cmd := range commands {
			if names[cmd.Name()] {
				t.Errorf("command %q registered twice", cmd.Name())
			}
			names[cmd.Name()] = true
		}
	}
	if len(names) != 21 {
		t.Errorf("got %d commands, want 21", len(names))
	}
}

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("bb", flag.ContinueOnError)
	global.String("ledger", "", "")
	global.Bool("plain", false, "")

	root := Completion(global)
	if _, ok := root.Flags["plain"]; !ok {
		t.Error("global -plain flag is not completed")
	}
	add, ok := root.Sub["add"]
	if !ok {
		t.Fatal("add is not completed")
	}
	for _, name := range []string{"a", "amount", "c", "d"} {
		if _, ok := add.Flags[name]; !ok {
			t.Errorf("add -%s is not completed", name)
		}
	}
	if root.Sub["topic"].Args == nil {
		t.Error("topic arguments are not completed")
	}
}

func TestGroups(t *testing.T) {
	if len(groups) != len(Commands) {
		t.Fatalf("got %d ordered groups, want %d", len(groups), len(Commands))
	}
	for _, g := range groups {
		if _, ok := Commands[g]; !ok {
			t.Errorf("group %q has no commands", g)
		}
	}
}
