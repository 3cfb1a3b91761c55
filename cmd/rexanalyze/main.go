/*
 * main.go, part of gorex.
 *
 * Copyright 2024 The goRex Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// rexanalyze analyzes the mixing of one or more replica-exchange archives,
// and prints a report for each.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rmera/gorex/analysis"
	"github.com/rmera/gorex/chemstat"
	"github.com/rmera/gorex/config"
	"github.com/rmera/gorex/report"
	"go.uber.org/zap"
)

func newLogger(json, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if json {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	cfgFile := flag.String("config", "", "YAML configuration file. If not given, the defaults are used")
	nblocks := flag.Int("nblocks", 0, "Number of blocks for the error estimates (overrides the configuration)")
	nbins := flag.Int("nbins", 0, "Number of bins per torsion (overrides the configuration)")
	plots := flag.String("plots", "", "Directory for the plots (overrides the configuration)")
	workers := flag.Int("workers", 0, "Number of archives analyzed concurrently (overrides the configuration)")
	matrix := flag.Bool("matrix", false, "Print the state transition matrix")
	verbose := flag.Bool("verbose", false, "Debug logging")
	jsonlog := flag.Bool("json", false, "Log in JSON format")
	writecfg := flag.String("writeconfig", "", "Write the effective configuration to this file and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] archive.rxf [archive.rxf...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := newLogger(*jsonlog, *verbose)
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.LoadOrDefault(*cfgFile)
	if err != nil {
		logger.Fatal("can't load configuration", zap.String("file", *cfgFile), zap.Error(err))
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "nblocks":
			cfg.NBlocks = *nblocks
		case "nbins":
			cfg.NBins = *nbins
		case "plots":
			cfg.Plots.Dir = *plots
		case "workers":
			cfg.Workers = *workers
		case "matrix":
			cfg.ShowTransitionMatrix = *matrix
		}
	})
	if *writecfg != "" {
		if err := cfg.Save(*writecfg); err != nil {
			logger.Fatal("can't write configuration", zap.String("file", *writecfg), zap.Error(err))
		}
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	A, err := analysis.New(cfg, logger, chemstat.NewEstimator(cfg.InefficiencyOptions()))
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	results, runErr := A.Run(flag.Args())
	for _, r := range results {
		if err := report.Console(os.Stdout, r, cfg.ShowTransitionMatrix); err != nil {
			logger.Fatal("can't write report", zap.Error(err))
		}
		fmt.Println()
	}
	if cfg.LaTeX && len(results) > 0 {
		fmt.Print(report.LaTeXHeader(A.RunID(), A.Torsions()))
		for _, r := range results {
			fmt.Print(report.LaTeXRow(r))
		}
	}
	if runErr != nil {
		_ = logger.Sync()
		os.Exit(1)
	}
}
