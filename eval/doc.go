/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package eval dispatches query/context/completion triples to a third-party
evaluation backend, forwarding only a sampled fraction of calls.

# Overview

A dispatcher is bound once to a Provider (one of a closed set of supported
evaluation backends) and a Scorer that talks to that backend. Each call to
Evaluate draws one sample from a RandSource; when the sample is strictly less
than the configured sampling rate the triple is forwarded to the Scorer and its
Result is returned untouched. Otherwise the call reports "not forwarded" and the
backend is never contacted.

	scorer, err := deepeval.New(deepeval.Config{APIKey: key})
	if err != nil {
		return err
	}
	d, err := eval.New("deepeval", scorer, eval.WithSamplingRate(0.1))
	if err != nil {
		return err
	}

	res, ok, err := d.Evaluate(ctx, query, contextText, completion)
	switch {
	case err != nil:
		// the backend failed
	case !ok:
		// skipped by sampling; not an error
	default:
		fmt.Println(res["answer_relevancy"]["score"])
	}

# Sampling

The default RandSource is the process-wide math/rand/v2 generator, which is safe
for concurrent use. NewSource returns a seeded source for reproducible runs.
A rate of 1.0 forwards every call and a rate of 0.0 forwards none; rates outside
[0, 1] are rejected by New.

# Errors

Construction failures are *ConfigError values wrapping one of
ErrUnsupportedProvider, ErrInvalidSamplingRate or ErrNilScorer. Backend failures
are returned from Evaluate exactly as the Scorer produced them.
*/
package eval
