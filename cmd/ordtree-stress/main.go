// Copyright 2021 Andrew Werner.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Command ordtree-stress runs randomized workloads against the AVL and splay
// maps, comparing every result with an independent B-tree and periodically
// verifying the trees' structural invariants.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ajwerner/ordtree"
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ORDTREE_STRESS"

type options struct {
	Tree        string
	Ops         int
	Keys        int
	Seed        int64
	VerifyEvery int
	MaxNodes    int
}

var (
	cfgFile  string
	logLevel string
	opts     options
)

var rootCmd = &cobra.Command{
	Use:   "ordtree-stress",
	Short: "Run randomized workloads against the ordered maps",
	RunE: func(_ *cobra.Command, _ []string) error {
		return run(opts)
	},
	SilenceUsage: true,
}

func initConfig() {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfgErr error
	if cfgFile != "" {
		cfgErr = v.ReadInConfig()
	}
	bindFlags(rootCmd, v)
	initLogger()
	if cfgErr != nil {
		log.Errorf("Read config error: %v", cfgErr)
	}
}

func initLogger() {
	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		ll = log.InfoLevel
	}
	log.SetLevel(ll)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, PadLevelText: true})
}

// bindFlags applies values from the config file or environment to flags
// which were not set on the command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			_ = cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func initFlags() {
	cobra.OnInitialize(initConfig)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warning, error")
	flags.StringVar(&opts.Tree, "tree", "both", "Tree to exercise: avl, splay or both")
	flags.IntVar(&opts.Ops, "ops", 100000, "Number of operations per tree")
	flags.IntVar(&opts.Keys, "keys", 1000, "Size of the key space")
	flags.Int64Var(&opts.Seed, "seed", 1, "Random seed")
	flags.IntVar(&opts.VerifyEvery, "verify-every", 1000, "Verify invariants every N operations (0 to only verify at the end)")
	flags.IntVar(&opts.MaxNodes, "max-nodes", 0, "Node limit for each tree (0 for unbounded)")
}

func main() {
	initFlags()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.Keys <= 0 || opts.Ops < 0 {
		return errors.Newf("invalid options: keys=%d ops=%d", opts.Keys, opts.Ops)
	}
	var builders []func(*ordtree.Descriptor[int, int]) *target
	switch opts.Tree {
	case "avl":
		builders = append(builders, newAVLTarget)
	case "splay":
		builders = append(builders, newSplayTarget)
	case "both":
		builders = append(builders, newAVLTarget, newSplayTarget)
	default:
		return errors.Newf("unknown tree %q", opts.Tree)
	}
	for _, build := range builders {
		if err := runOne(opts, build); err != nil {
			log.WithError(err).Error("workload failed")
			return err
		}
	}
	return nil
}

// runOne runs the workload against a single tree and checks that every
// entry it allocated was handed back through the descriptor.
func runOne(opts options, build func(*ordtree.Descriptor[int, int]) *target) error {
	var released int
	var closed bool
	desc := ordtree.NewDescriptor(ordtree.Info[int, int]{
		Release:  func(int, int) { released++ },
		OnClose:  func() { closed = true },
		MaxNodes: opts.MaxNodes,
	})
	t := build(desc)
	desc.Release()
	w := newWorkload(opts)
	err := w.run(t)
	t.close()
	if err != nil {
		return err
	}
	if !closed {
		return errors.Newf("%s: descriptor still referenced after close", t.name)
	}
	if released != w.created {
		return errors.Newf("%s: released %d entries, created %d", t.name, released, w.created)
	}
	return nil
}
