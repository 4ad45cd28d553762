package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tidwall/pretty"
)

// Hooks receive progress from Builder.Run. Any of them may be nil.
type Hooks struct {
	OnStart   func(runID string, companies int)
	OnCompany func(index int, company string)
	OnRow     func(row LabeledExample)
	OnError   func(company string, err error, count int)
	OnFinish  func(summary Summary)
}

func (h Hooks) start(runID string, companies int) {
	if h.OnStart != nil {
		h.OnStart(runID, companies)
	}
}

func (h Hooks) company(index int, company string) {
	if h.OnCompany != nil {
		h.OnCompany(index, company)
	}
}

func (h Hooks) row(row LabeledExample) {
	if h.OnRow != nil {
		h.OnRow(row)
	}
}

func (h Hooks) error(company string, err error, count int) {
	if h.OnError != nil {
		h.OnError(company, err, count)
	}
}

func (h Hooks) finish(summary Summary) {
	if h.OnFinish != nil {
		h.OnFinish(summary)
	}
}

// Summary describes one finished run.
type Summary struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Companies int           `json:"companies"`
	Skipped   int           `json:"skipped"`
	Headlines int           `json:"headlines"`
	Rows      int           `json:"rows"`
	Fallbacks int           `json:"fallbacks"`
	Errors    int           `json:"errors"`
}

// Report renders the summary as indented JSON.
func (s Summary) Report() []byte {
	data, err := json.Marshal(s)
	if err != nil {
		return []byte(fmt.Sprintf("{\"run_id\":%q}", s.RunID))
	}
	return pretty.Pretty(data)
}

// ConsoleHooks prints progress, error counts and the elapsed time to w.
func ConsoleHooks(w io.Writer) Hooks {
	return Hooks{
		OnStart: func(runID string, companies int) {
			fmt.Fprintf(w, "Building dataset for %d companies (run %s)\n", companies, runID)
		},
		OnCompany: func(index int, company string) {
			fmt.Fprintf(w, "[%d] %s\n", index, company)
		},
		OnError: func(company string, err error, count int) {
			fmt.Fprintf(w, "DataError: %d (%s: %v)\n", count, company, err)
		},
		OnFinish: func(summary Summary) {
			fmt.Fprintf(w, "Wrote %d rows from %d headlines, %d errors, %d price fallbacks\n",
				summary.Rows, summary.Headlines, summary.Errors, summary.Fallbacks)
			fmt.Fprintf(w, "Finished in %.2f seconds\n", summary.Elapsed.Seconds())
		},
	}
}
