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

// rexsynth writes a synthetic replica-exchange archive, useful to try
// rexanalyze and to test the archive format.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rmera/gorex/synth"
	"go.uber.org/zap"
)

func main() {
	o := synth.DefaultOptions()
	flag.IntVar(&o.NReplicas, "replicas", o.NReplicas, "Number of replicas (and states)")
	flag.IntVar(&o.NIterations, "iterations", o.NIterations, "Number of iterations")
	flag.IntVar(&o.NAtoms, "atoms", o.NAtoms, "Number of atoms per replica, 0 for no coordinates")
	flag.Float64Var(&o.Acceptance, "acceptance", o.Acceptance, "Probability of accepting each attempted swap")
	flag.Float64Var(&o.Step, "step", o.Step, "Dihedral step, in radians, at the lowest state")
	flag.Int64Var(&o.Seed, "seed", o.Seed, "Random seed")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] output.rxf\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	name := flag.Arg(0)
	S, err := synth.Generate(name, o)
	if err != nil {
		logger.Fatal("can't write archive", zap.String("archive", name), zap.Error(err))
	}
	logger.Info("archive written", zap.String("archive", name), zap.Int("iterations", S.NIterations()), zap.Int("replicas", S.NReplicas()))
}
