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

package main

import (
	"math/rand"

	"github.com/ajwerner/ordtree"
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/btree"
)

type op int

const (
	opInsert op = iota
	opAssign
	opErase
	opGet
	opClear
	numOps
)

func (o op) String() string {
	switch o {
	case opInsert:
		return "insert"
	case opAssign:
		return "insert-or-assign"
	case opErase:
		return "erase"
	case opGet:
		return "get"
	case opClear:
		return "clear"
	default:
		return "unknown"
	}
}

// workload drives a target and an oracle map through the same random
// sequence of operations and reports the first divergence.
type workload struct {
	opts   options
	rng    *rand.Rand
	oracle *btree.Map[int, int]
	counts [numOps]int
	// created is the number of entries the target has allocated.
	created int
	// refused is the number of insertions which hit the node limit.
	refused int
}

func newWorkload(opts options) *workload {
	return &workload{
		opts:   opts,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		oracle: btree.NewMap[int, int](0),
	}
}

func (w *workload) pick() op {
	// Clears are rare so that the trees grow.
	if w.rng.Intn(1000) == 0 {
		return opClear
	}
	return op(w.rng.Intn(int(opClear)))
}

func (w *workload) run(t *target) error {
	logger := log.WithField("tree", t.name)
	logger.WithField("ops", w.opts.Ops).Info("starting workload")
	for i := 0; i < w.opts.Ops; i++ {
		o := w.pick()
		w.counts[o]++
		k, v := w.rng.Intn(w.opts.Keys), w.rng.Int()
		if err := w.step(t, o, k, v); err != nil {
			return errors.Wrapf(err, "%s: op %d (%s %d)", t.name, i, o, k)
		}
		if w.opts.VerifyEvery > 0 && (i+1)%w.opts.VerifyEvery == 0 {
			if err := w.check(t); err != nil {
				return errors.Wrapf(err, "%s: after op %d", t.name, i)
			}
			logger.WithFields(log.Fields{
				"op":     i + 1,
				"len":    t.len(),
				"height": t.height(),
			}).Debug("verified")
		}
	}
	if err := w.check(t); err != nil {
		return errors.Wrapf(err, "%s: final check", t.name)
	}
	fields := log.Fields{"len": t.len(), "height": t.height(), "refused": w.refused}
	for o := op(0); o < numOps; o++ {
		fields[o.String()] = w.counts[o]
	}
	logger.WithFields(fields).Info("workload passed")
	return nil
}

func (w *workload) step(t *target, o op, k, v int) error {
	switch o {
	case opInsert:
		_, had := w.oracle.Get(k)
		inserted, err := t.insert(k, v)
		if ordtree.IsOutOfMemory(err) && !had {
			w.refused++
			return nil
		} else if err != nil {
			return err
		}
		if inserted == had {
			return errors.Newf("inserted=%t but key present=%t", inserted, had)
		}
		if !had {
			w.oracle.Set(k, v)
			w.created++
		}
	case opAssign:
		_, had := w.oracle.Get(k)
		inserted, err := t.assign(k, v)
		if ordtree.IsOutOfMemory(err) && !had {
			w.refused++
			return nil
		} else if err != nil {
			return err
		}
		w.oracle.Set(k, v)
		if inserted == had {
			return errors.Newf("inserted=%t but key present=%t", inserted, had)
		}
		if inserted {
			w.created++
		}
	case opErase:
		_, had := w.oracle.Delete(k)
		exp := 0
		if had {
			exp = 1
		}
		if got := t.erase(k); got != exp {
			return errors.Newf("erased %d, expected %d", got, exp)
		}
	case opGet:
		exp, expOK := w.oracle.Get(k)
		got, ok := t.get(k)
		if ok != expOK || got != exp {
			return errors.Newf("got (%d, %t), expected (%d, %t)", got, ok, exp, expOK)
		}
	case opClear:
		t.clear()
		w.oracle = btree.NewMap[int, int](0)
	}
	return nil
}

// check verifies the target's invariants and compares its contents with
// the oracle's.
func (w *workload) check(t *target) error {
	if err := t.verify(); err != nil {
		return err
	}
	if t.len() != w.oracle.Len() {
		return errors.Newf("len %d, oracle len %d", t.len(), w.oracle.Len())
	}
	var i int
	var err error
	t.scan(func(k, v int) bool {
		ok, ov, _ := w.oracle.GetAt(i)
		if k != ok || v != ov {
			err = errors.Newf("entry %d is %d:%d, oracle has %d:%d", i, k, v, ok, ov)
			return false
		}
		i++
		return true
	})
	return err
}
