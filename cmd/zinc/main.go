// Command zinc runs a bytecode program against public and witness inputs,
// producing its declared outputs and an R1CS constraint system. Flags and
// build metadata follow the teacher's cmd/sentra/main.go convention: a flat
// set of command-line flags, no config file, version info baked in via
// -ldflags rather than read from a config at startup.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/Epiisteme/zinc/internal/bytecode"
	"github.com/Epiisteme/zinc/internal/store"
	"github.com/Epiisteme/zinc/internal/tracehttp"
	"github.com/Epiisteme/zinc/internal/value"
	"github.com/Epiisteme/zinc/internal/vm"
)

// Build metadata, set via -ldflags "-X main.version=... -X main.buildDate=...".
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	var (
		programPath = flag.String("program", "", "path to a marshaled bytecode program")
		publicPath  = flag.String("public", "", "path to a JSON array of decimal public inputs")
		witnessPath = flag.String("witness", "", "path to a JSON array of decimal witness inputs")
		storePath   = flag.String("store", "", "path to a sqlite run-cache database (optional)")
		traceAddr   = flag.String("trace-addr", "", "address to serve a live execution trace over WebSocket (optional)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("zinc %s (built %s)\n", version, buildDate)
		return
	}
	if *programPath == "" {
		log.Fatalf("zinc: -program is required")
	}

	program, err := loadProgram(*programPath)
	if err != nil {
		log.Fatalf("zinc: %v", err)
	}
	publicInputs, err := loadInputs(*publicPath)
	if err != nil {
		log.Fatalf("zinc: loading public inputs: %v", err)
	}
	witnessInputs, err := loadInputs(*witnessPath)
	if err != nil {
		log.Fatalf("zinc: loading witness inputs: %v", err)
	}

	var runStore *store.SQLiteStore
	if *storePath != "" {
		runStore, err = store.Open(*storePath)
		if err != nil {
			log.Fatalf("zinc: opening run store: %v", err)
		}
		defer runStore.Close()
	}

	runID := uuid.NewString()

	var hook vm.Hook = vm.NoopHook
	if *traceAddr != "" {
		srv := tracehttp.NewServer()
		defer srv.Close()
		mux := http.NewServeMux()
		mux.Handle("/trace", srv)
		go func() {
			log.Printf("zinc: trace server listening on %s/trace", *traceAddr)
			if err := http.ListenAndServe(*traceAddr, mux); err != nil && err != http.ErrServerClosed {
				log.Printf("zinc: trace server: %v", err)
			}
		}()
		hook = tracehttp.Hook{Server: srv, RunID: runID}
	}

	ctx := context.Background()
	programHash := store.HashProgram(program)
	publicHash := store.HashInputs(publicInputs)

	if runStore != nil {
		if rec, ok, err := runStore.Lookup(ctx, programHash, publicHash); err != nil {
			log.Fatalf("zinc: run store lookup: %v", err)
		} else if ok {
			printCached(rec)
			return
		}
	}

	outputs, sys, err := vm.Run(program, publicInputs, witnessInputs, hook)
	if err != nil {
		log.Fatalf("zinc: run failed: %v", err)
	}

	printSummary(sys.NumVariables(), len(sys.Constraints()), outputs)

	if runStore != nil {
		outJSON, err := json.Marshal(formatOutputs(outputs))
		if err != nil {
			log.Fatalf("zinc: encoding outputs: %v", err)
		}
		rec := store.RunRecord{
			ID:              runID,
			ProgramHash:     programHash,
			PublicInputHash: publicHash,
			NumConstraints:  len(sys.Constraints()),
			NumVariables:    sys.NumVariables(),
			Outputs:         string(outJSON),
			CreatedAt:       time.Now(),
		}
		if err := runStore.Record(ctx, rec); err != nil {
			log.Fatalf("zinc: recording run: %v", err)
		}
	}
}

func loadProgram(path string) (*bytecode.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	return bytecode.Unmarshal(data)
}

func loadInputs(path string) ([]*big.Int, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	inputs := make([]*big.Int, len(raw))
	for i, s := range raw {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%s: entry %d %q is not a decimal integer", path, i, s)
		}
		inputs[i] = v
	}
	return inputs, nil
}

// formatValue renders a value.Value's concrete witness for CLI display.
// Scalar kinds print their witness integer directly; aggregates recurse
// over their elements. This is a diagnostic rendering only — it has no
// bearing on the run's constraint system.
func formatValue(v value.Value) string {
	switch v.Type.Kind {
	case value.KindUnit:
		return "()"
	case value.KindBool:
		return fmt.Sprintf("%t", !v.IsZero())
	case value.KindInt, value.KindEnum:
		return v.Wire.Val.String()
	case value.KindArray, value.KindTuple:
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case value.KindStruct:
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = fmt.Sprintf("%s: %s", v.Type.FieldNames[i], formatValue(e))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}

func formatOutputs(outputs []value.Value) []string {
	out := make([]string, len(outputs))
	for i, o := range outputs {
		out[i] = formatValue(o)
	}
	return out
}

func printSummary(numVars, numConstraints int, outputs []value.Value) {
	color := isatty.IsTerminal(os.Stdout.Fd())
	bold := func(s string) string {
		if !color {
			return s
		}
		return "\x1b[1m" + s + "\x1b[0m"
	}
	fmt.Printf("%s %s constraints, %s variables\n", bold("zinc:"),
		humanize.Comma(int64(numConstraints)), humanize.Comma(int64(numVars)))
	for i, o := range outputs {
		fmt.Printf("  output[%d] = %s\n", i, formatValue(o))
	}
}

func printCached(rec store.RunRecord) {
	fmt.Printf("zinc: cached run %s (%s constraints, %s variables)\n",
		rec.ID, humanize.Comma(int64(rec.NumConstraints)), humanize.Comma(int64(rec.NumVariables)))
	fmt.Printf("  outputs = %s\n", rec.Outputs)
}

