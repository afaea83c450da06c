// finpro-report prints one user's monthly statement as a terminal table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"finpro/internal/config"
	"finpro/internal/core"
	"finpro/internal/report"
	"finpro/internal/store/sqlite"
)

func main() {
	_ = godotenv.Load()

	var (
		user   = flag.String("user", "", "username whose statement to print")
		period = flag.String("period", "", "period as YYYY-MM (default: current month)")
		dbPath = flag.String("db", "", "SQLite database path (default: SQLITE_DB_PATH)")
	)
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "usage: finpro-report -user <username> [-period YYYY-MM] [-db path]")
		os.Exit(2)
	}

	p := core.Period{Year: time.Now().Year(), Month: time.Now().Month()}
	if *period != "" {
		parsed, err := core.ParsePeriod(*period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid period %q: expected YYYY-MM\n", *period)
			os.Exit(2)
		}
		p = parsed
	}

	path := *dbPath
	if path == "" {
		path = config.Load().SQLiteDBPath
	}

	repo, err := sqlite.NewRepository(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database %s: %v\n", path, err)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	txs, err := repo.Load(ctx, *user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load transactions: %v\n", err)
		os.Exit(1)
	}

	rep, err := report.Assemble(core.FilterByPeriod(txs, &p), p.Label(), time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "assemble report: %v\n", err)
		os.Exit(1)
	}

	report.WriteTable(os.Stdout, rep)
}
