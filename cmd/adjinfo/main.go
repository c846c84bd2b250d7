// Command adjinfo prints diagnostics for adjoint source files in the
// two-column ASCII format used by spectral-element solvers (time, value per
// line, channel identity encoded in the file name, e.g. II.AAK.00.BHZ.adj).
//
// Usage:
//
//	adjinfo [flags] file ...
//
// Examples:
//
//	adjinfo II.AAK.00.BHZ.adj
//	adjinfo -config adjoint.yml II.AAK.*.adj
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/seis-adjoint/adjoint"
	"github.com/cwbudde/seis-adjoint/diag"
	"github.com/cwbudde/seis-adjoint/trace"
)

func main() {
	configPath := flag.String("config", "", "YAML measurement config; sets the period band for the in-band column")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: adjinfo [flags] file ...\n\n")
		fmt.Fprintf(os.Stderr, "Prints time and spectral diagnostics for ASCII adjoint source files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var minPeriod, maxPeriod float64
	if *configPath != "" {
		cfg, err := adjoint.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("adjinfo: %v", err)
		}
		minPeriod, maxPeriod = cfg.MinPeriod, cfg.MaxPeriod
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tNPTS\tDT\tPEAK\tPEAK@s\tRMS\tDOM.PERIOD\tCENTROID\tIN-BAND")

	for _, path := range flag.Args() {
		src, err := readASCII(path, minPeriod, maxPeriod)
		if err != nil {
			log.Fatalf("adjinfo: %s: %v", path, err)
		}

		rep, err := diag.Analyze(src)
		if err != nil {
			log.Fatalf("adjinfo: %s: %v", path, err)
		}

		inBand := "-"
		if rep.InBand >= 0 {
			inBand = fmt.Sprintf("%.1f%%", 100*rep.InBand)
		}
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4g\t%.2f\t%.4g\t%.2fs\t%.4fHz\t%s\n",
			rep.Channel, rep.Npts, rep.Delta, rep.Peak, rep.PeakTime,
			rep.RMS, rep.DominantPeriod, rep.Centroid, inBand)
	}

	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}

// readASCII loads one two-column adjoint source file. The sample interval is
// taken from the first two time values; the channel identity comes from the
// file name with its extension stripped.
func readASCII(path string, minPeriod, maxPeriod float64) (*adjoint.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var times, values []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed line %q", line)
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(times) < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d", len(times))
	}

	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	network, station, location, channel := trace.SplitID(id)

	return &adjoint.Source{
		Delta:     times[1] - times[0],
		MinPeriod: minPeriod,
		MaxPeriod: maxPeriod,
		Network:   network,
		Station:   station,
		Location:  location,
		Channel:   channel,
		Data:      values,
	}, nil
}
