// mkfixture generates a synthetic CMBD episode sheet plus a reference-data
// seed script, for local runs and integration tests.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/clinifin/grdload/internal/model"
)

var grdCodes = []string{"014101", "014102", "052301", "087201", "099102"}

func main() {
	out := flag.String("out", "episodes.csv", "output CSV path")
	seedOut := flag.String("seed", "", "optional reference-data seed SQL path")
	rows := flag.Int("rows", 50, "number of episode rows")
	seed := flag.Int64("rand-seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *out, err)
		os.Exit(1)
	}
	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(model.RequiredHeaders); err != nil {
		fmt.Fprintf(os.Stderr, "write header: %v\n", err)
		os.Exit(1)
	}

	conventions := model.ConventionCodes()
	for i := 0; i < *rows; i++ {
		conv := conventions[rng.Intn(len(conventions))]
		grd := grdCodes[rng.Intn(len(grdCodes))]
		stay := 1 + rng.Intn(30)
		delay := rng.Intn(10)
		classification := "Inlier"
		if stay > 20 {
			classification = model.OutlierSuperior
		}
		record := map[string]string{
			model.ColEpisode:          fmt.Sprintf("EP%06d", i+1),
			model.ColConvention:       conv,
			model.ColGRD:              grd,
			model.ColGRDWeight:        fmt.Sprintf("%d,%04d", rng.Intn(3), rng.Intn(10000)),
			model.ColBasePriceTier:    fmt.Sprintf("%d.%03d", 1+rng.Intn(4), rng.Intn(1000)),
			model.ColAdmissionDate:    fmt.Sprintf("%02d-%02d-2025", 1+rng.Intn(28), 1+rng.Intn(12)),
			model.ColDischargeDate:    fmt.Sprintf("%02d-%02d-2025", 1+rng.Intn(28), 1+rng.Intn(12)),
			model.ColLengthOfStay:     fmt.Sprintf("%d", stay),
			model.ColDelayDays:        fmt.Sprintf("%d", delay),
			model.ColInlierOutlier:    classification,
			model.ColDischargeService: "Medicina Interna",
			model.ColAT:               []string{"S", "N", ""}[rng.Intn(3)],
			model.ColManualDelay:      "",
			model.ColOutlierPayment:   "",
		}
		row := make([]string, len(model.RequiredHeaders))
		for j, col := range model.RequiredHeaders {
			row[j] = record[col]
		}
		if err := w.Write(row); err != nil {
			fmt.Fprintf(os.Stderr, "write row: %v\n", err)
			os.Exit(1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "flush csv: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close csv: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d rows to %s\n", *rows, *out)

	if *seedOut != "" {
		if err := writeSeed(*seedOut); err != nil {
			fmt.Fprintf(os.Stderr, "write seed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote reference seed to %s\n", *seedOut)
	}
}

func writeSeed(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "INSERT INTO ref.grd_norms (grd_code, percentile50, percentile75, superior_cutpoint) VALUES")
	for i, code := range grdCodes {
		sep := ","
		if i == len(grdCodes)-1 {
			sep = ""
		}
		fmt.Fprintf(f, "    ('%s', %d, %d, %d)%s\n", code, 3+i, 5+i, 12+i, sep)
	}
	fmt.Fprintln(f, "ON CONFLICT (grd_code) DO NOTHING;")
	fmt.Fprintln(f)
	fmt.Fprintln(f, "INSERT INTO ref.system_config (key, value) VALUES")
	fmt.Fprintln(f, "    ('diasPercentil75', '6'),")
	fmt.Fprintln(f, "    ('percentil50', '4')")
	fmt.Fprintln(f, "ON CONFLICT (key) DO NOTHING;")
	fmt.Fprintln(f)
	fmt.Fprintln(f, "INSERT INTO ref.waiting_cost_rates (effective_from, daily_rate_cents) VALUES")
	fmt.Fprintln(f, "    ('2025-01-01', 1550000)")
	fmt.Fprintln(f, "ON CONFLICT (effective_from) DO NOTHING;")
	return nil
}
